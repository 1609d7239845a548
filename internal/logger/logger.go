// Package logger holds the process-wide zap logger used by the decoding
// packages. It is silent until a caller installs a logger with Set.
package logger

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var current atomic.Pointer[zap.Logger]

// L returns the installed logger, or a no-op logger.
func L() *zap.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// Set installs l. Passing nil restores the no-op logger.
func Set(l *zap.Logger) {
	current.Store(l)
}

// New builds a console logger at the given level ("debug", "info", "warn",
// "error"). Unknown levels fall back to info.
func New(level string, json bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if json {
		cfg = zap.NewProductionConfig()
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
