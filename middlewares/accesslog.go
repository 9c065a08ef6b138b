package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/oauthgate/internal"
)

// AccessLog returns middleware that logs one line per request with the
// method, path, final status, body size and duration. Query strings are never logged:
// on the callback they carry the authorization code.
func AccessLog() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status, size := 0, int64(0)
			if rw, ok := c.Response().(*internal.ResponseWriter); ok && rw.Written() {
				status, size = rw.Status(), rw.Size()
			}
			if err != nil {
				status = internal.StatusCode(err)
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int64("bytes", size),
				slog.Duration("duration", time.Since(start)),
			}
			if status >= 500 {
				c.LogError("request completed", attrs...)
			} else {
				c.LogInfo("request completed", attrs...)
			}
			return err
		}
	}
}
