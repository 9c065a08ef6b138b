// Package logger provides structured JSON logging with context extraction
// and optional Sentry integration.
//
// Context extractors inject request-scoped values such as the request ID
// into every record:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "callback completed", slog.String("provider", "github"))
//	// {"level":"INFO","msg":"callback completed","provider":"github","request_id":"01J..."}
//
// Attributes named after credentials (token, access_token, client_secret,
// code, state, csrf) are always written as [Redacted].
//
// # Sentry Integration
//
// NewWithSentry fans out warnings and errors to Sentry when a DSN is set,
// and falls back to plain JSON output otherwise:
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//	}, os.Stdout, slog.LevelInfo, extractors...)
//	defer logger.FlushSentry(ctx, 2*time.Second)
//
// NewNope returns a logger that discards everything, for tests and defaults.
package logger
