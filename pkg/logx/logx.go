// Package logx is the process-wide leveled logger.
package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Level is a logging severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Fields are structured key/value pairs attached to a log entry
type Fields map[string]any

var (
	level  = new(slog.LevelVar)
	logger atomic.Pointer[slog.Logger]
)

func init() {
	SetOutput(os.Stderr)
}

// SetOutput redirects log output, mostly useful in tests
func SetOutput(w io.Writer) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	logger.Store(slog.New(h))
}

// SetLevel sets the minimum level that is written
func SetLevel(l Level) {
	level.Set(toSlog(l))
}

// ParseLevel maps a config string to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func toSlog(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Debug(msg string) { log(nil, slog.LevelDebug, msg) }
func Debugf(format string, args ...any) { log(nil, slog.LevelDebug, fmt.Sprintf(format, args...)) }
func Info(msg string) { log(nil, slog.LevelInfo, msg) }
func Infof(format string, args ...any) { log(nil, slog.LevelInfo, fmt.Sprintf(format, args...)) }
func Warn(msg string) { log(nil, slog.LevelWarn, msg) }
func Warnf(format string, args ...any) { log(nil, slog.LevelWarn, fmt.Sprintf(format, args...)) }
func Error(msg string) { log(nil, slog.LevelError, msg) }
func Errorf(format string, args ...any) { log(nil, slog.LevelError, fmt.Sprintf(format, args...)) }

// Fatalf logs at error level and exits the process
func Fatalf(format string, args ...any) {
	log(nil, slog.LevelError, fmt.Sprintf(format, args...))
	os.Exit(1)
}

// Entry is a log line builder carrying fields
type Entry struct {
	fields Fields
}

// WithFields starts an entry with the given fields
func WithFields(fields Fields) *Entry {
	return &Entry{fields: fields}
}

// WithField starts an entry with a single field
func WithField(key string, value any) *Entry {
	return &Entry{fields: Fields{key: value}}
}

// WithField adds a field to the entry
func (e *Entry) WithField(key string, value any) *Entry {
	merged := make(Fields, len(e.fields)+1)
	for k, v := range e.fields {
		merged[k] = v
	}
	merged[key] = value
	return &Entry{fields: merged}
}

func (e *Entry) Debug(msg string) { log(e.fields, slog.LevelDebug, msg) }
func (e *Entry) Debugf(format string, args ...any) { log(e.fields, slog.LevelDebug, fmt.Sprintf(format, args...)) }
func (e *Entry) Info(msg string) { log(e.fields, slog.LevelInfo, msg) }
func (e *Entry) Infof(format string, args ...any) { log(e.fields, slog.LevelInfo, fmt.Sprintf(format, args...)) }
func (e *Entry) Warn(msg string) { log(e.fields, slog.LevelWarn, msg) }
func (e *Entry) Warnf(format string, args ...any) { log(e.fields, slog.LevelWarn, fmt.Sprintf(format, args...)) }
func (e *Entry) Error(msg string) { log(e.fields, slog.LevelError, msg) }
func (e *Entry) Errorf(format string, args ...any) { log(e.fields, slog.LevelError, fmt.Sprintf(format, args...)) }

func log(fields Fields, l slog.Level, msg string) {
	lg := logger.Load()
	if !lg.Enabled(context.Background(), l) {
		return
	}
	attrs := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	lg.Log(context.Background(), l, msg, attrs...)
}
