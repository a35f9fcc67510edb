// Package logger wraps slog with the severities the services report. Business errors are expected
// failures (bad token, email not delivered) and go out at warn; internal errors are faults and go
// out at error.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// LevelCritical is above error and is printed as CRITICAL.
const LevelCritical = slog.LevelError + 4

type Logger interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
	Critical(message string, args ...any)
	BusinessError(message string, err error, args ...any)
	InternalError(message string, err error, args ...any)
	With(args ...any) Logger
}

// Options selects the minimum level (debug, info, warn, error, critical) and the output
// format (text or json).
type Options struct {
	Level  string
	Format string
}

// DefaultOptions gives development colour text at debug and every other env JSON at info.
func DefaultOptions(env string) Options {
	if strings.EqualFold(strings.TrimSpace(env), "development") {
		return Options{Level: "debug", Format: "text"}
	}
	return Options{Level: "info", Format: "json"}
}

// NewFromEnv writes to stdout using DefaultOptions overridden by LOG_LEVEL and LOG_FORMAT.
func NewFromEnv(env string) Logger {
	opts := DefaultOptions(env)
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		opts.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		opts.Format = v
	}
	return New(os.Stdout, opts)
}

func New(w io.Writer, opts Options) Logger {
	level := ParseLevel(opts.Level)

	var h slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "text") {
		h = tint.NewHandler(w, &tint.Options{
			Level:       level,
			AddSource:   true,
			TimeFormat:  time.Kitchen,
			ReplaceAttr: nameCritical,
		})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, ReplaceAttr: nameCritical})
	}
	return &slogLogger{base: slog.New(h)}
}

// Discard drops everything.
func Discard() Logger {
	return &slogLogger{base: slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

// ParseLevel accepts the slog level names plus "critical". Anything else is info.
func ParseLevel(s string) slog.Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "critical") {
		return LevelCritical
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

type slogLogger struct {
	base *slog.Logger
}

func (l *slogLogger) Debug(message string, args ...any) { l.base.Debug(message, args...) }

func (l *slogLogger) Info(message string, args ...any) { l.base.Info(message, args...) }

func (l *slogLogger) Warn(message string, args ...any) { l.base.Warn(message, args...) }

func (l *slogLogger) Error(message string, args ...any) { l.base.Error(message, args...) }

func (l *slogLogger) Critical(message string, args ...any) {
	l.base.Log(context.Background(), LevelCritical, message, args...)
}

// BusinessError logs at warn. A nil err logs nothing.
func (l *slogLogger) BusinessError(message string, err error, args ...any) {
	l.logErr(slog.LevelWarn, message, err, args)
}

// InternalError logs at error. A nil err logs nothing.
func (l *slogLogger) InternalError(message string, err error, args ...any) {
	l.logErr(slog.LevelError, message, err, args)
}

func (l *slogLogger) logErr(level slog.Level, message string, err error, args []any) {
	if err == nil {
		return
	}
	l.base.Log(context.Background(), level, message, append([]any{"err", err}, args...)...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{base: l.base.With(args...)}
}

func nameCritical(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == slog.LevelKey {
		if level, ok := attr.Value.Any().(slog.Level); ok && level == LevelCritical {
			attr.Value = slog.StringValue("CRITICAL")
		}
	}
	return attr
}
