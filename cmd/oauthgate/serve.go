package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/oauthgate"
	"github.com/dmitrymomot/oauthgate/handlers"
	"github.com/dmitrymomot/oauthgate/middlewares"
	"github.com/dmitrymomot/oauthgate/pkg/cookie"
	"github.com/dmitrymomot/oauthgate/pkg/logger"
	"github.com/dmitrymomot/oauthgate/pkg/metrics"
	"github.com/dmitrymomot/oauthgate/pkg/oauth"
)

const sentryFlushTimeout = 2 * time.Second

// errNoProviders fails readiness until at least one provider has credentials.
var errNoProviders = errors.New("no provider has credentials configured")

func newServeCmd(environ func() []string) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the callback server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, settings, err := loadConfig(environ())
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}

			log := logger.NewWithSentry(cfg.Sentry, os.Stdout, logger.ParseLevel(cfg.LogLevel), middlewares.RequestIDExtractor())

			app, err := newApp(cfg, settings, log, prometheus.NewRegistry())
			if err != nil {
				return err
			}

			return app.Run(cfg.Address,
				oauthgate.Logger(log),
				oauthgate.WithContext(cmd.Context()),
				oauthgate.ShutdownTimeout(cfg.ShutdownTimeout),
				oauthgate.ShutdownHook(func(ctx context.Context) error {
					return logger.FlushSentry(ctx, sentryFlushTimeout)
				}),
				oauthgate.OnReady(func(addr net.Addr) {
					log.Info("oauthgate ready",
						slog.String("address", addr.String()),
						slog.String("site_url", cfg.SiteURL),
						slog.Any("providers", configuredProviders(oauth.NewResolver(settings))),
					)
				}),
			)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "listen address, overrides ADDRESS")
	return cmd
}

// newApp wires the callback service.
func newApp(cfg Config, settings oauth.Settings, log *slog.Logger, reg *prometheus.Registry) (*oauthgate.App, error) {
	m, err := metrics.New(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	resolver := oauth.NewResolver(settings)
	opts := []handlers.Option{
		handlers.WithHTTPClient(&http.Client{Timeout: cfg.ExchangeTimeout}),
		handlers.WithRecorder(m),
		handlers.WithUserPath(cfg.UserPath),
	}

	return oauthgate.New(
		oauthgate.WithLogger(log),
		oauthgate.WithCookieOptions(cookie.ForSite(cfg.SiteURL)),
		oauthgate.WithMiddleware(
			middlewares.RequestID(),
			middlewares.AccessLog(),
			middlewares.Recover(),
		),
		oauthgate.WithErrorHandler(handlers.ErrorHandler),
		oauthgate.WithHealthChecks(
			oauthgate.WithReadinessCheck("providers", func(context.Context) error {
				if len(configuredProviders(resolver)) == 0 {
					return errNoProviders
				}
				return nil
			}),
		),
		oauthgate.WithMount(cfg.MetricsPath, m.Handler()),
		oauthgate.WithHandlers(
			handlers.NewCallbackHandler(resolver, opts...),
			handlers.NewUserHandler(resolver, opts...),
		),
	), nil
}

// configuredProviders lists the providers whose credentials resolve.
func configuredProviders(resolver *oauth.Resolver) []string {
	var out []string
	for _, p := range oauth.Providers() {
		if _, err := resolver.Resolve(p.String()); err == nil {
			out = append(out, p.String())
		}
	}
	return out
}
