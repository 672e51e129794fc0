package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	usecasecontract "github.com/mikiasgoitom/videoreact/internal/usecase/contract"
)

// StdLogger is the application logger, formatted through log/slog.
type StdLogger struct {
	log *slog.Logger
}

// NewStdLogger creates a logger writing to stderr. level is one of
// debug, info, warn or error; format is text or json.
func NewStdLogger(level, format string) usecasecontract.IAppLogger {
	return NewLogger(os.Stderr, level, format)
}

// NewLogger creates a logger writing to w.
func NewLogger(w io.Writer, level, format string) *StdLogger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return &StdLogger{log: slog.New(h)}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debugf logs a debug message.
func (l *StdLogger) Debugf(format string, args ...interface{}) {
	l.logf(slog.LevelDebug, format, args...)
}

// Infof logs an info message.
func (l *StdLogger) Infof(format string, args ...interface{}) {
	l.logf(slog.LevelInfo, format, args...)
}

// Warnf logs a warning message.
func (l *StdLogger) Warnf(format string, args ...interface{}) {
	l.logf(slog.LevelWarn, format, args...)
}

// Errorf logs an error message.
func (l *StdLogger) Errorf(format string, args ...interface{}) {
	l.logf(slog.LevelError, format, args...)
}

// Fatalf logs an error message and exits.
func (l *StdLogger) Fatalf(format string, args ...interface{}) {
	l.logf(slog.LevelError, format, args...)
	os.Exit(1)
}

func (l *StdLogger) logf(level slog.Level, format string, args ...interface{}) {
	ctx := context.Background()
	if !l.log.Enabled(ctx, level) {
		return
	}
	l.log.Log(ctx, level, fmt.Sprintf(format, args...))
}
