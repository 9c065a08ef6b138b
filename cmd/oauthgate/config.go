package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/oauthgate/handlers"
	"github.com/dmitrymomot/oauthgate/pkg/logger"
	"github.com/dmitrymomot/oauthgate/pkg/oauth"
)

// Config is the process configuration, read once at startup.
type Config struct {
	SiteURL         string        `env:"URL" envDefault:"http://localhost:8888"`
	Address         string        `env:"ADDRESS" envDefault:":8888"`
	CallbackPath    string        `env:"OAUTH_CALLBACK_PATH" envDefault:"/.netlify/functions/auth-callback"`
	UserPath        string        `env:"OAUTH_USER_PATH" envDefault:"/.netlify/functions/auth-user"`
	ExchangeTimeout time.Duration `env:"OAUTH_EXCHANGE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	MetricsPath     string        `env:"METRICS_PATH" envDefault:"/metrics"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	Sentry          logger.SentryConfig
}

// loadConfig parses environ into a Config and snapshots the provider
// secrets into oauth.Settings.
func loadConfig(environ []string) (Config, oauth.Settings, error) {
	vars := env.ToMap(environ)

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, oauth.Settings{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ExchangeTimeout <= 0 {
		return Config{}, oauth.Settings{}, fmt.Errorf("parse env: OAUTH_EXCHANGE_TIMEOUT must be positive, got %s", cfg.ExchangeTimeout)
	}
	if cfg.CallbackPath == "" {
		cfg.CallbackPath = oauth.DefaultCallbackPath
	}
	if cfg.UserPath == "" {
		cfg.UserPath = handlers.DefaultUserPath
	}
	if cfg.UserPath == cfg.CallbackPath {
		return Config{}, oauth.Settings{}, fmt.Errorf("parse env: OAUTH_USER_PATH and OAUTH_CALLBACK_PATH must differ")
	}

	settings := oauth.Settings{
		SiteURL:      cfg.SiteURL,
		CallbackPath: cfg.CallbackPath,
		Secrets:      providerSecrets(vars),
	}
	return cfg, settings, nil
}

// providerSecrets keeps only the variables some provider reads.
func providerSecrets(vars map[string]string) map[string]string {
	secrets := make(map[string]string)
	for _, p := range oauth.Providers() {
		endpoints, ok := oauth.EndpointsFor(p)
		if !ok {
			continue
		}
		for _, key := range endpoints.RequiredKeys() {
			if v, ok := vars[key]; ok {
				secrets[key] = v
			}
		}
	}
	return secrets
}
