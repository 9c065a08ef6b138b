package oauth

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultSiteURL is the site origin used when none is configured.
	DefaultSiteURL = "http://localhost:8888"

	// DefaultCallbackPath is appended to the site URL to form the redirect URI.
	DefaultCallbackPath = "/.netlify/functions/auth-callback"

	// SessionExpiration is the lifetime of the session cookies.
	SessionExpiration = 8 * time.Hour
)

const unsupportedProviderMessage = "Invalid provider passed to OAuth. Currently only `netlify`, `github`, `gitlab`, `slack`, `linkedin` or `stackexchange` are supported."

// Settings is the configuration snapshot taken at startup.
// Secrets maps environment variable names to values.
type Settings struct {
	SiteURL      string
	CallbackPath string
	Secrets      map[string]string
}

// RedirectURI is the absolute callback URL registered with every provider.
func (s Settings) RedirectURI() string {
	site := s.SiteURL
	if site == "" {
		site = DefaultSiteURL
	}
	path := s.CallbackPath
	if path == "" {
		path = DefaultCallbackPath
	}
	return strings.TrimSuffix(site, "/") + path
}

// ProviderConfig is the resolved configuration for one provider.
// A fresh value is built for every request and never mutated afterwards.
type ProviderConfig struct {
	Provider          ProviderID
	Endpoints         Endpoints
	ClientID          string
	ClientSecret      string
	QuotaKey          string
	RedirectURI       string
	SessionExpiration time.Duration
}

// MaxAge returns the session lifetime in whole seconds.
func (c *ProviderConfig) MaxAge() int {
	return int(c.SessionExpiration / time.Second)
}

// Variant returns the exchange variant of the provider.
func (c *ProviderConfig) Variant() Variant {
	return c.Endpoints.Variant
}

// Codec returns the token codec of the provider's variant.
func (c *ProviderConfig) Codec() TokenCodec {
	return c.Endpoints.Variant.Codec()
}

// Resolver builds provider configurations from a Settings snapshot.
type Resolver struct {
	settings Settings
}

// NewResolver creates a resolver over the given settings.
func NewResolver(settings Settings) *Resolver {
	return &Resolver{settings: settings}
}

// Settings returns the snapshot the resolver reads from.
func (r *Resolver) Settings() Settings {
	return r.settings
}

// Resolve returns the configuration for the named provider.
// Errors are *ConfigError wrapping ErrUnsupportedProvider or ErrMissingCredentials.
func (r *Resolver) Resolve(provider string) (*ProviderConfig, error) {
	return buildProviderConfig(r.settings, provider)
}

func buildProviderConfig(s Settings, provider string) (*ProviderConfig, error) {
	id, err := ParseProviderID(provider)
	if err != nil {
		return nil, &ConfigError{Err: err, Message: unsupportedProviderMessage}
	}
	endpoints, ok := EndpointsFor(id)
	if !ok {
		return nil, &ConfigError{
			Err:     errors.Join(ErrUnsupportedProvider, fmt.Errorf("no endpoints for %s", id)),
			Message: unsupportedProviderMessage,
		}
	}

	keys := endpoints.RequiredKeys()
	var missing []string
	for _, key := range keys {
		if s.Secrets[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &ConfigError{
			Err:     ErrMissingCredentials,
			Message: fmt.Sprintf("MISSING REQUIRED ENV VARS. %s are required.", joinKeys(keys)),
			Missing: missing,
		}
	}

	cfg := &ProviderConfig{
		Provider:          id,
		Endpoints:         endpoints,
		ClientID:          s.Secrets[endpoints.ClientIDKey],
		ClientSecret:      s.Secrets[endpoints.ClientSecretKey],
		RedirectURI:       s.RedirectURI(),
		SessionExpiration: SessionExpiration,
	}
	if endpoints.QuotaKeyKey != "" {
		cfg.QuotaKey = s.Secrets[endpoints.QuotaKeyKey]
	}
	return cfg, nil
}

// joinKeys renders "A and B" or "A, B and C".
func joinKeys(keys []string) string {
	switch len(keys) {
	case 0:
		return ""
	case 1:
		return keys[0]
	}
	return strings.Join(keys[:len(keys)-1], ", ") + " and " + keys[len(keys)-1]
}
