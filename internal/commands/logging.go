package commands

import (
	"io"
	"log/slog"
)

// logSource tags every failure record so they can be filtered out of shared
// logs.
const logSource = "mvcgen"

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func logFailure(logger *slog.Logger, operation string, err error) {
	if logger == nil {
		return
	}
	logger.Error(Message(err),
		slog.String("source", logSource),
		slog.String("operation", operation),
		slog.Any("error", err),
	)
}
