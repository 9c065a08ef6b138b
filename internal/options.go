package internal

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/oauthgate/pkg/cookie"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithMount attaches a plain http.Handler, such as a metrics endpoint.
func WithMount(pattern string, h http.Handler) Option {
	return func(a *App) {
		if h == nil || pattern == "" {
			return
		}
		if !strings.HasPrefix(pattern, "/") {
			pattern = "/" + pattern
		}
		a.mounts = append(a.mounts, mount{pattern: pattern, handler: h})
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
// Without one, errors produce a plain-text status response.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithHealthChecks enables health check endpoints with optional configuration.
//
// Example:
//
//	oauthgate.WithHealthChecks(
//	    oauthgate.WithReadinessCheck("providers", providersConfigured),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger sets the application logger.
// Nil keeps the default no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCookieOptions configures the cookie manager.
//
// Example:
//
//	oauthgate.WithCookieOptions(cookie.ForSite(siteURL))
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(a *App) {
		a.cookieManager = cookie.New(opts...)
	}
}
