// Package logging provides leveled console diagnostics with
// charmbracelet/log.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Options holds configuration for the console logger.
type Options struct {
	Verbose         bool
	ReportTimestamp bool
	Prefix          string
}

// DefaultOptions returns the settings the CLI uses: info level, no
// timestamps, "tododiff" prefix. Verbose lowers the level to debug.
func DefaultOptions() Options {
	return Options{
		Verbose:         false,
		ReportTimestamp: false,
		Prefix:          "tododiff",
	}
}

// New creates a logger writing to w. Diagnostics go to stderr in the CLI
// so report output on stdout stays clean.
func New(w io.Writer, opts Options) *log.Logger {
	level := log.InfoLevel
	if opts.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

// Default creates the standard CLI logger on stderr.
func Default(verbose bool) *log.Logger {
	opts := DefaultOptions()
	opts.Verbose = verbose
	return New(os.Stderr, opts)
}
