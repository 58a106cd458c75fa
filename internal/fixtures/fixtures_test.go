package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultData(t *testing.T) {
	d, err := Default(nil)
	require.NoError(t, err)

	assert.Equal(t, Credentials{Username: "standard_user", Password: "secret_sauce"}, d.Credentials())
	assert.Equal(t, Checkout{FirstName: "John", LastName: "Doe", PostalCode: "12345"}, d.Checkout())
	assert.Equal(t, Pricing{Subtotal: "39.98", Tax: "3.20", Total: "43.18"}, d.Pricing())
}

func TestDottedPaths(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	d, err := Parse([]byte(`{
		"a": {"b": {"c": "deep"}, "n": 42, "f": 1.5, "ok": true, "none": null},
		"list": [1, 2]
	}`), zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, "deep", d.String("a.b.c"))
	assert.Equal(t, "42", d.String("a.n"))
	assert.Equal(t, "1.5", d.String("a.f"))
	assert.Equal(t, "true", d.String("a.ok"))
	assert.Equal(t, "", d.String("a.none"))

	v, ok := d.Get("a.b")
	require.True(t, ok)
	assert.IsType(t, map[string]any{}, v)

	_, ok = d.Get("a.b.c.d")
	assert.False(t, ok)
	_, ok = d.Get("")
	assert.False(t, ok)

	assert.Equal(t, "", d.String("a.missing"))
	assert.Equal(t, "", d.String("list"))
	assert.Equal(t, 2, logs.Len())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"credentials": {"username": "problem_user"}}`), 0o600))

	d, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "problem_user", d.Credentials().Username)
	assert.Empty(t, d.Credentials().Password)

	d, err = Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "standard_user", d.Credentials().Username)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)

	_, err = Parse([]byte(`{broken`), nil)
	assert.Error(t, err)
}
