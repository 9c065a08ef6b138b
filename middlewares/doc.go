// Package middlewares provides HTTP middleware for oauthgate applications.
//
// # Request ID
//
// RequestID assigns an ID to each request. A well-formed ID from an
// upstream X-Request-ID header is kept; otherwise a ULID is generated. Pair
// it with RequestIDExtractor so every log line carries request_id:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	app := oauthgate.New(
//	    oauthgate.WithLogger(log),
//	    oauthgate.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover turns a panic into a *PanicError, which reports status 500 to the
// app's ErrorHandler.
//
// # Access Log
//
// AccessLog writes one record per request with method, path, status and
// duration. The query string is left out.
//
// Recommended order:
//
//	oauthgate.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.AccessLog(),
//	    middlewares.Recover(),
//	)
package middlewares
