package logger

import (
	"io"
	"log/slog"
	"os"
)

// New builds the process logger. Debug lines are dropped unless debug is set;
// production gets JSON output, everything else human-readable text.
func New(w io.Writer, debug, production bool) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if production {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that writes nothing. Used as the zero value for
// services constructed without a logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
