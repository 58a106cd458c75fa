// Package logger собирает zap-логгер для прогона: консоль для dev, JSON для
// остальных окружений и опциональный файл с ротацией через lumberjack.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Zap struct {
	*zap.Logger
}

type Option func(*options)

type options struct {
	file    string
	console zapcore.WriteSyncer
}

// WithFile дублирует лог в файл с ротацией.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithConsole подменяет вывод в консоль (в тестах пишем в буфер).
func WithConsole(ws zapcore.WriteSyncer) Option {
	return func(o *options) {
		o.console = ws
	}
}

func New(env, level string, opts ...Option) (*Zap, error) {
	o := options{console: zapcore.Lock(os.Stdout)}
	for _, opt := range opts {
		opt(&o)
	}

	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.SetLevel(zap.InfoLevel)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder(env), o.console, lvl),
	}

	if o.file != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   o.file,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     14,
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(encoder("prod"), fileWriter, lvl))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	return &Zap{Logger: l}, nil
}

func encoder(env string) zapcore.Encoder {
	if env == "dev" {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		return zapcore.NewConsoleEncoder(cfg)
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

// Sync игнорирует ошибку синхронизации stdout, которую zap отдаёт на некоторых терминалах.
func (z *Zap) Sync() {
	_ = z.Logger.Sync()
}
