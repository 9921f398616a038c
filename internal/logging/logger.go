// Package logging provides the leveled logger used across the service and clients.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger writes level=... msg=... lines
type Logger struct {
	sl *slog.Logger
}

// New creates a logger writing to w. Debug lines are dropped unless debug is set.
func New(w io.Writer, debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return &Logger{sl: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

// Default logs to stderr with debug taken from TM_DEBUG
func Default() *Logger {
	return New(os.Stderr, DebugEnabled())
}

// Discard drops everything
func Discard() *Logger {
	return New(io.Discard, false)
}

// OpenFile logs to path, appending. An empty path discards.
func OpenFile(path string, debug bool) (*Logger, io.Closer, error) {
	if path == "" {
		return Discard(), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(f, debug), f, nil
}

// With returns a logger that adds the key/value pairs to every line
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{sl: l.sl.With(kv...)}
}

// DebugEnabled reports whether debug lines are written
func (l *Logger) DebugEnabled() bool {
	return l.sl.Enabled(context.Background(), slog.LevelDebug)
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.DebugEnabled() {
		l.sl.Debug(fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Infof(format string, args ...any) {
	l.sl.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.sl.Error(fmt.Sprintf(format, args...))
}

// Info logs msg with key/value pairs
func (l *Logger) Info(msg string, kv ...any) {
	l.sl.Info(msg, kv...)
}

// Error logs msg with key/value pairs
func (l *Logger) Error(msg string, kv ...any) {
	l.sl.Error(msg, kv...)
}
