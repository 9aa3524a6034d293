// Package diag is the diagnostic channel shared by every arbor package:
// a swappable structured logger and the defect reporting used for
// programming errors (stale ids, malformed constraints, broken widget
// contracts).
package diag

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger replaces the logger used by arbor. Passing nil restores the
// default silent logger.
//
// Levels used:
//   - [slog.LevelDebug]: pass lifecycle (nodes visited, queue sizes)
//   - [slog.LevelWarn]: widget callbacks that failed during a pass
//   - [slog.LevelError]: defects when built with the arbor_release tag
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
