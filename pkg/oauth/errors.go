package oauth

import (
	"errors"
	"net/http"
)

var (
	// ErrUnsupportedProvider is returned when a provider identifier is not one of the known providers.
	ErrUnsupportedProvider = errors.New("oauth: unsupported provider")

	// ErrMissingCredentials is returned when required client credentials are not configured.
	ErrMissingCredentials = errors.New("oauth: missing required credentials")

	// ErrTokenExchange is returned when the provider rejects or fails the code exchange.
	ErrTokenExchange = errors.New("oauth: token exchange failed")

	// ErrMissingToken is returned when no access token is available.
	ErrMissingToken = errors.New("oauth: missing authorization token")

	// ErrUserNotFound is returned when the provider returns no user record.
	ErrUserNotFound = errors.New("oauth: user not found")

	// ErrNilResponse is returned when the OAuth provider returns a nil response.
	ErrNilResponse = errors.New("oauth: nil response from provider")

	// ErrFetchFailed is returned when fetching data from the OAuth provider fails.
	ErrFetchFailed = errors.New("oauth: failed to fetch from provider")

	// ErrRequestFailed is returned when the OAuth provider returns a non-OK status.
	ErrRequestFailed = errors.New("oauth: request returned non-OK status")

	// ErrDecodeFailed is returned when decoding the OAuth provider response fails.
	ErrDecodeFailed = errors.New("oauth: failed to decode response")
)

// ConfigError reports a deployment misconfiguration: an unknown provider
// or a provider whose credentials are absent from the environment.
// Message is safe to show to the browser.
type ConfigError struct {
	Err     error
	Message string
	// Missing lists the environment variables that were empty.
	Missing []string
}

func (e *ConfigError) Error() string {
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TokenExchangeError reports a failed authorization code exchange.
// Status is the provider's HTTP status, zero when the request never got an answer.
type TokenExchangeError struct {
	Err      error
	Provider ProviderID
	Message  string
	Status   int
}

func (e *TokenExchangeError) Error() string {
	return e.Message
}

func (e *TokenExchangeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTokenExchange}
	}
	return []error{ErrTokenExchange, e.Err}
}

// StatusCode returns the provider's error status, or 500 when the provider
// did not answer with an error status of its own.
func (e *TokenExchangeError) StatusCode() int {
	if e.Status >= http.StatusBadRequest {
		return e.Status
	}
	return http.StatusInternalServerError
}
