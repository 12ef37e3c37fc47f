// Package flog provides the package-level *slog.Logger used by the
// loader and writer for structural tracing. It defaults to a discard
// handler so library consumers pay nothing unless they opt in.
package flog

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// SetLogger configures the package-level logger. Passing nil restores the
// discard handler. Safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		logger.Store(discard())
		return
	}
	logger.Store(l)
}

// Logger returns the current package-level logger, defaulting to a
// discard handler if none has been set.
func Logger() *slog.Logger {
	l := logger.Load()
	if l == nil {
		l = discard()
		logger.Store(l)
	}
	return l
}
