// Package logging builds the slog loggers used by the command-line tools.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dargueta/bwtz"
)

// Options controls where log records go and how verbose they are.
type Options struct {
	// Verbose enables debug-level records.
	Verbose bool
	// LogFile, if set, receives a copy of every record. Parent directories are
	// created as needed and the file is appended to.
	LogFile string
	// Output is where records are written. Defaults to os.Stderr.
	Output io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger configured by opts. The returned closer must be closed
// once logging is finished; it releases the log file, if any.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	var closer io.Closer = nopCloser{}
	if opts.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.LogFile), 0o755); err != nil {
			return nil, nil, bwtz.ErrIOFailed.Wrap(err)
		}
		file, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, bwtz.ErrIOFailed.Wrap(err)
		}
		output = io.MultiWriter(output, file)
		closer = file
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level:     level,
		AddSource: opts.Verbose,
	}))
	return logger, closer, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
