package logger

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel determines which log levels to send to Sentry (e.g., slog.LevelWarn for warnings+errors)
	MinLevel slog.Level
}

// NewWithSentry creates a logger that writes JSON to w and forwards warnings
// and errors to Sentry. An empty DSN yields a plain JSON logger.
// Context extractors are applied to logs sent to both destinations.
func NewWithSentry(cfg SentryConfig, w io.Writer, level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	local := jsonHandler(w, level)

	if cfg.DSN == "" {
		return slog.New(NewLogHandlerDecorator(local, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(local, extractors...))
	}

	eventLevel := []slog.Level{slog.LevelError}
	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	remote := sentryslog.Option{
		EventLevel: eventLevel,
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	return slog.New(NewLogHandlerDecorator(fanout{local, remote}, extractors...))
}

// FlushSentry waits up to timeout for buffered Sentry events to be sent.
// It is a no-op when Sentry was never initialized.
func FlushSentry(ctx context.Context, timeout time.Duration) error {
	if sentry.CurrentHub().Client() == nil {
		return nil
	}
	if !sentry.Flush(timeout) {
		return context.DeadlineExceeded
	}
	return ctx.Err()
}
