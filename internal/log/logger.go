// Package log provides structured logging for xlsdeid using zap.
package log

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// L is the global logger instance.
	L    *zap.Logger
	once sync.Once
)

// Init initializes the global logger.
// Safe to call multiple times; only the first call takes effect.
func Init(debug bool) {
	once.Do(func() {
		L = New(debug)
	})
}

// New creates a logger writing to stderr.
// Debug mode logs everything in a human-readable form; otherwise only warnings and errors are logged as JSON.
func New(debug bool) *zap.Logger {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		// Fallback to no-op if config fails
		logger = zap.NewNop()
	}
	return logger
}

// Get returns the global logger, or a no-op logger before Init.
func Get() *zap.Logger {
	if L == nil {
		return zap.NewNop()
	}
	return L
}

// Source creates a field naming the input file or table.
func Source(s string) zap.Field {
	return zap.String("source", s)
}

// Columns creates a field listing column names.
func Columns(cols []string) zap.Field {
	return zap.Strings("columns", cols)
}
