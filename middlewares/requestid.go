package middlewares

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/oauthgate/internal"
	"github.com/dmitrymomot/oauthgate/pkg/id"
	"github.com/dmitrymomot/oauthgate/pkg/logger"
)

type requestIDKey struct{}

// MaxRequestIDLength bounds request IDs accepted from upstream headers.
const MaxRequestIDLength = 128

const requestIDHeader = "X-Request-ID"

type requestIDConfig struct {
	generate       func() string
	inbound        []string
	responseHeader string
}

// RequestIDOption configures the RequestID middleware.
type RequestIDOption func(*requestIDConfig)

// WithRequestIDHeaders sets the inbound headers trusted for an upstream ID,
// checked in order.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.inbound = headers
	}
}

// WithRequestIDGenerator replaces the ULID generator.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		if gen != nil {
			cfg.generate = gen
		}
	}
}

// WithRequestIDResponseHeader sets the response header carrying the ID.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		if header != "" {
			cfg.responseHeader = header
		}
	}
}

// RequestID tags each request with an ID, stores it in the request context
// and echoes it in a response header. An upstream ID is kept only when it is
// printable ASCII without spaces and at most MaxRequestIDLength bytes.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &requestIDConfig{
		generate:       id.NewULID,
		inbound:        []string{requestIDHeader, "X-Correlation-ID"},
		responseHeader: requestIDHeader,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			reqID := ""
			for _, h := range cfg.inbound {
				if v := c.Header(h); validRequestID(v) {
					reqID = v
					break
				}
			}
			if reqID == "" {
				reqID = cfg.generate()
			}

			c.Set(requestIDKey{}, reqID)
			c.SetHeader(cfg.responseHeader, reqID)
			return next(c)
		}
	}
}

func validRequestID(v string) bool {
	if v == "" || len(v) > MaxRequestIDLength {
		return false
	}
	for i := range len(v) {
		if v[i] < 0x21 || v[i] > 0x7e {
			return false
		}
	}
	return true
}

// RequestIDFromContext returns the request ID, or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}

// GetRequestID returns the ID assigned to the current request.
func GetRequestID(c internal.Context) string {
	return RequestIDFromContext(c)
}

// RequestIDExtractor adds request_id to every record logged with a request context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := RequestIDFromContext(ctx); v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
