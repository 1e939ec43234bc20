// Package logger provides logging utilities for auto-merger using the bullets library.
//
// Usage:
//
//	log := logger.NewLogger("debug")
//	log.Debug("Fetching open pull requests")
//
//	silentLog := logger.NoLogger() // Suppresses all output
package logger

import (
	"io"
	"os"

	"github.com/sgaunet/bullets"
)

// NewLogger creates a new logger that writes to stdout at the specified level.
//
// Parameters:
//   - logLevel: one of "debug", "info", "warn", "error" (defaults to "info" for unknown values)
func NewLogger(logLevel string) *bullets.Logger {
	return New(os.Stdout, logLevel)
}

// New creates a logger writing to w at the specified level.
func New(w io.Writer, logLevel string) *bullets.Logger {
	logger := bullets.New(w)
	logger.SetLevel(ParseLevel(logLevel))
	return logger
}

// ParseLevel maps a level name to a bullets level, falling back to info.
func ParseLevel(logLevel string) bullets.Level {
	switch logLevel {
	case "debug":
		return bullets.DebugLevel
	case "info":
		return bullets.InfoLevel
	case "warn":
		return bullets.WarnLevel
	case "error":
		return bullets.ErrorLevel
	default:
		return bullets.InfoLevel
	}
}

// EffectiveLevel resolves the level to use when both a command line level and
// the configuration debug switch are available. An explicit flag wins.
func EffectiveLevel(flagLevel string, configDebug bool) string {
	if flagLevel != "" {
		return flagLevel
	}
	if configDebug {
		return "debug"
	}
	return "info"
}

// NoLogger creates a logger that suppresses all output by setting the level to Fatal.
// Useful for tests and silent operation.
func NoLogger() *bullets.Logger {
	logger := bullets.New(io.Discard)
	logger.SetLevel(bullets.FatalLevel)
	return logger
}
