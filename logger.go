package lloyd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// Logger wraps slog.Logger with clustering-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger

	progress *rate.Sometimes
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return newLogger(slog.New(handler))
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return newLogger(slog.New(handler))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return newLogger(slog.New(handler))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return newLogger(slog.New(handler))
}

func newLogger(l *slog.Logger) *Logger {
	return &Logger{
		Logger:   l,
		progress: &rate.Sometimes{Interval: time.Second},
	}
}

func (l *Logger) with(args ...any) *Logger {
	return &Logger{
		Logger:   l.Logger.With(args...),
		progress: l.progress,
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return l.with("k", k)
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return l.with("dimension", dim)
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return l.with("count", count)
}

// LogLoad logs loading the input points.
func (l *Logger) LogLoad(ctx context.Context, count int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "points loaded",
			"points", count,
			"elapsed", elapsed,
		)
	}
}

// LogRound logs a finished round at debug level, and at info level at most
// once per second.
func (l *Logger) LogRound(ctx context.Context, round int, change float64) {
	l.DebugContext(ctx, "round",
		"round", round,
		"change", change,
	)
	if l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	l.progress.Do(func() {
		l.InfoContext(ctx, "round",
			"round", round,
			"change", change,
		)
	})
}

// LogConverged logs the end of the iteration.
func (l *Logger) LogConverged(ctx context.Context, rounds int, change float64, converged bool) {
	if converged {
		l.InfoContext(ctx, "converged",
			"rounds", rounds,
			"change", change,
		)
	} else {
		l.WarnContext(ctx, "round limit reached before convergence",
			"rounds", rounds,
			"change", change,
		)
	}
}

// LogWrite logs writing an output.
func (l *Logger) LogWrite(ctx context.Context, output string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "write failed",
			"output", output,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "write completed",
			"output", output,
		)
	}
}
