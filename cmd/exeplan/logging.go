// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"

	"github.com/exeplan/exeplan/internal/config"
)

// newLogger returns the CLI logger. charmbracelet/log renders the records;
// library packages only see the slog API. verbose forces debug level.
func newLogger(w io.Writer, level config.LogLevel, verbose bool) *slog.Logger {
	lvl := level.SlogLevel()
	if verbose {
		lvl = slog.LevelDebug
	}

	handler := log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		// charmbracelet/log levels share slog's numbering.
		Level: log.Level(lvl),
	})
	return slog.New(handler)
}
