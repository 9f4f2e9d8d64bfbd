package logging

import (
	"context"
	"io"
	"log"
	"log/slog"
)

// SlogLogger adapts *slog.Logger to Logger.
type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// Discard returns a logger that drops everything.
func Discard() *SlogLogger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *SlogLogger) log(ctx context.Context, lvl slog.Level, msg string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.l.Log(ctx, lvl, msg, args...)
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelDebug, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelInfo, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelWarn, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelError, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}

// StdLogger bridges packages that only accept a *log.Logger, such as
// http.Server.ErrorLog. Every line is emitted at lvl.
func (s *SlogLogger) StdLogger(lvl slog.Level) *log.Logger {
	return slog.NewLogLogger(s.l.Handler(), lvl)
}

// StdLogger returns l's *log.Logger bridge, or nil when l has none.
func StdLogger(l Logger, lvl slog.Level) *log.Logger {
	if b, ok := l.(interface{ StdLogger(slog.Level) *log.Logger }); ok {
		return b.StdLogger(lvl)
	}
	return nil
}
