// Package logx builds the pager's structured logger. The terminal belongs to
// the pager while it runs, so log records go to a file or nowhere.
package logx

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"
)

// Levels lists the accepted log.level values
var Levels = []string{"trace", "debug", "info", "error"}

// Options returns the logger options for a level name
func Options(level string) (pslog.Options, error) {
	opts := pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		VerboseFields: true,
	}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "", "info":
		opts.MinLevel = pslog.InfoLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	default:
		return opts, fmt.Errorf("unknown log level %q (want one of %s)", level, strings.Join(Levels, ", "))
	}
	return opts, nil
}

// New returns a structured logger writing to w
func New(w io.Writer, level string) (pslog.Logger, error) {
	opts, err := Options(level)
	if err != nil {
		return nil, err
	}
	return pslog.NewWithOptions(w, opts), nil
}

// DefaultPath returns the log file used when none is configured
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "logpager", "logpager.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "logpager", "logpager.log"), nil
}

// Open creates the logger for path. "-" or "off" discards records. The
// returned closer releases the file
func Open(path, level string) (pslog.Logger, io.Closer, error) {
	switch path {
	case "-", "off", "none":
		logger, err := New(io.Discard, level)
		return logger, io.NopCloser(nil), err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := New(f, level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// Install attaches logger to ctx and routes the standard library logger through it
func Install(ctx context.Context, logger pslog.Logger) context.Context {
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)
	return pslog.ContextWithLogger(ctx, logger)
}

// Ctx returns the logger bound to ctx
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}
