// Package logger provides opinionated logging capabilities for duet.
//
// Every logger is a *slog.Logger. The pretty variant is backed by
// charmbracelet/log and is what the CLI uses on stderr; the JSON and text
// variants use the standard slog handlers.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

// New builds a *slog.Logger from the given options.
func New(opts ...Option) *slog.Logger {
	c := &config{
		level: slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(c)
	}

	if len(c.writers) == 0 {
		c.writers = []io.Writer{os.Stderr}
	}

	w := c.writers[0]
	if len(c.writers) > 1 {
		w = io.MultiWriter(c.writers...)
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     c.level,
		AddSource: c.source,
	}

	switch {
	case c.json:
		return slog.New(slog.NewJSONHandler(w, handlerOpts))

	case c.pretty:
		h := log.NewWithOptions(w, log.Options{
			Level:           log.Level(c.level),
			ReportTimestamp: true,
			ReportCaller:    c.source,
		})
		return slog.New(h)

	default:
		return slog.New(slog.NewTextHandler(w, handlerOpts))
	}
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
