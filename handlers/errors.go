package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/oauthgate/internal"
	"github.com/dmitrymomot/oauthgate/middlewares"
	"github.com/dmitrymomot/oauthgate/pkg/oauth"
)

var (
	// ErrNotAuthorized is returned for a callback invoked without any query parameters.
	ErrNotAuthorized = errors.New("handlers: not authorized")

	// ErrInvalidCSRF is returned when the csrf cookie is absent or differs from the state.
	ErrInvalidCSRF = errors.New("handlers: missing or invalid csrf token")

	// ErrUnstorableToken is returned when an access token holds bytes a cookie value cannot carry.
	ErrUnstorableToken = errors.New("handlers: token not representable as cookie value")

	// ErrNoSession is returned when the session cookies are absent.
	ErrNoSession = errors.New("handlers: no session")
)

// EntryValidationError rejects a malformed invocation of the callback.
type EntryValidationError struct{}

func (*EntryValidationError) Error() string   { return "Not authorized" }
func (*EntryValidationError) Unwrap() error   { return ErrNotAuthorized }
func (*EntryValidationError) StatusCode() int { return http.StatusUnauthorized }

// CsrfValidationError rejects a callback whose state does not carry the
// csrf value issued to this browser.
type CsrfValidationError struct {
	// CookiePresent records whether the browser sent a csrf cookie at all.
	CookiePresent bool
}

func (*CsrfValidationError) Error() string { return "Missing or invalid CSRF token." }
func (*CsrfValidationError) Unwrap() error { return ErrInvalidCSRF }

// ErrorHandler renders any handler error as {"error": "<message>"} with the
// error's status, or 500 when it carries none. Panics never expose their value.
func ErrorHandler(c internal.Context, err error) error {
	status := internal.StatusCode(err)
	if middlewares.IsPanicError(err) {
		// Recover has already logged the panic.
		return c.JSON(status, map[string]string{"error": http.StatusText(http.StatusInternalServerError)})
	}

	attrs := []any{
		slog.Int("status", status),
		slog.String("class", errorClass(err)),
		slog.String("error", err.Error()),
	}
	if status >= http.StatusInternalServerError {
		c.LogError("request failed", attrs...)
	} else {
		c.LogWarn("request failed", attrs...)
	}

	return c.JSON(status, map[string]string{"error": err.Error()})
}

func errorClass(err error) string {
	var (
		entry    *EntryValidationError
		csrf     *CsrfValidationError
		config   *oauth.ConfigError
		exchange *oauth.TokenExchangeError
	)
	switch {
	case errors.As(err, &entry):
		return "entry_validation"
	case errors.As(err, &csrf):
		return "csrf_validation"
	case errors.As(err, &config):
		return "config"
	case errors.As(err, &exchange):
		return "token_exchange"
	case internal.IsHTTPError(err):
		return "http"
	}
	return "internal"
}
