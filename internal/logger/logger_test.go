package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("prod", "debug", WithConsole(zapcore.AddSync(&buf)))
	require.NoError(t, err)

	log.Debug("clicked", zap.String("locator", "css=[data-test='login-button']"))
	log.Sync()

	out := buf.String()
	assert.Contains(t, out, `"level":"DEBUG"`)
	assert.Contains(t, out, `"msg":"clicked"`)
	assert.Contains(t, out, `"locator":"css=[data-test='login-button']"`)
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("prod", "chatty", WithConsole(zapcore.AddSync(&buf)))
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("shown")
	log.Sync()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithFileWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	var buf bytes.Buffer

	log, err := New("dev", "info", WithConsole(zapcore.AddSync(&buf)), WithFile(path))
	require.NoError(t, err)

	log.Info("run started", zap.String("browser", "chromium"))
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"browser":"chromium"`)
	assert.Contains(t, buf.String(), "run started")
}
