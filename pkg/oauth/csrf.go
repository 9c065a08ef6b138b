package oauth

import (
	"crypto/subtle"

	"github.com/google/uuid"
)

// NewCSRFToken returns a random v4 UUID suitable for the csrf state field.
func NewCSRFToken() string {
	return uuid.NewString()
}

// CSRFMatches reports whether the cookie value equals the state value.
// An empty cookie never matches.
func CSRFMatches(cookieValue, stateValue string) bool {
	if cookieValue == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieValue), []byte(stateValue)) == 1
}
