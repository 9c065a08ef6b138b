package middlewares

import (
	"log/slog"
	"runtime"

	"github.com/dmitrymomot/oauthgate/internal"
)

// DefaultStackSize caps the captured stack trace, in bytes.
const DefaultStackSize = 4 << 10

type recoverConfig struct {
	stackSize int
	withStack bool
}

// RecoverOption configures the Recover middleware.
type RecoverOption func(*recoverConfig)

// WithRecoverStackSize caps the captured stack trace at size bytes.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *recoverConfig) {
		if size > 0 {
			cfg.stackSize = size
		}
	}
}

// WithRecoverDisablePrintStack skips stack capture entirely.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *recoverConfig) {
		cfg.withStack = false
	}
}

// Recover turns a panic in a downstream handler into a *PanicError, which
// the error handler answers with a 500. The panic is logged once here.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &recoverConfig{stackSize: DefaultStackSize, withStack: true}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				pe := &PanicError{Value: r}
				attrs := []any{
					slog.Any("panic", r),
					slog.String("path", c.Request().URL.Path),
				}
				if cfg.withStack {
					buf := make([]byte, cfg.stackSize)
					pe.Stack = buf[:runtime.Stack(buf, false)]
					attrs = append(attrs, slog.String("stack", string(pe.Stack)))
				}
				c.LogError("panic recovered", attrs...)
				err = pe
			}()

			return next(c)
		}
	}
}
