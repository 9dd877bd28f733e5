package arbor

import (
	"context"
	"log/slog"
)

// nopHandler discards every record. Enabled reports false so callers skip
// attribute formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// logger is only touched from the frame thread, like the rest of the graph.
var logger = slog.New(nopHandler{})

// SetLogger configures the logger used by arbor and its host packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Levels:
//   - [slog.LevelDebug]: cache allocation, consistency checks
//   - [slog.LevelWarn]: advisory anomalies that do not stop the frame
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	logger = l
}

// Logger returns the current logger. Host packages log through it so one
// SetLogger call configures everything.
func Logger() *slog.Logger {
	return logger
}
