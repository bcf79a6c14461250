// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"log/slog"

	"github.com/unistylus/unistylus/internal/config"

	"github.com/charmbracelet/log"
)

// setupLogging routes slog through a charmbracelet logger on w. Verbose
// runs include debug records.
func setupLogging(w io.Writer, verbose bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: config.AppName,
	})
	slog.SetDefault(slog.New(logger))
}
