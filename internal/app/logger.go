package app

import (
	"io"
	"log/slog"
)

// newLogger creates an isolated logger writing to w. Reports never share
// this writer, so JSON output stays parseable at any level. Unknown levels
// fall back to warn.
func newLogger(level, format string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
