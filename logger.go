package renderview

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled returns false, so Tick never
// formats attributes while logging is off.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the package logger. A render loop may read it on another
// goroutine while SetLogger replaces it.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger installs the logger used by every view that has no logger of
// its own (see WithLogger) and by the surface backends. Passing nil makes
// renderview silent again, which is also the initial state. It may be
// called while views are running.
//
// Levels:
//   - [slog.LevelDebug]: one record per drawn frame and per drawable resize
//   - [slog.LevelInfo]: setup and Run start/stop, with Stats on stop
//   - [slog.LevelWarn]: a backend could not acquire, configure or present
//
// Example:
//
//	renderview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the package logger. Backend packages log through it.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
