// Package metrics records callback outcomes and token exchange latency.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/oauthgate/pkg/oauth"
)

// Callback outcomes.
const (
	OutcomeSuccess      = "success"
	OutcomeUnauthorized = "unauthorized"
	OutcomeCSRF         = "csrf"
	OutcomeConfig       = "config"
	OutcomeExchange     = "exchange"
)

// Recorder is implemented by *Metrics and by Nop.
type Recorder interface {
	ObserveCallback(provider, outcome string)
	ObserveExchange(provider string, d time.Duration, err error)
}

// Metrics holds the service collectors.
type Metrics struct {
	callbacks *prometheus.CounterVec
	exchanges *prometheus.HistogramVec
	gatherer  prometheus.Gatherer
}

// New creates the collectors and registers them with reg.
// A nil reg uses a fresh private registry.
func New(reg *prometheus.Registry) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		callbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "oauthgate",
			Name:      "callbacks_total",
			Help:      "OAuth callbacks handled, by provider and outcome.",
		}, []string{"provider", "outcome"}),
		exchanges: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "oauthgate",
			Name:      "token_exchange_duration_seconds",
			Help:      "Latency of the outbound token exchange.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider", "result"}),
		gatherer: reg,
	}

	var err error
	if m.callbacks, err = register(reg, m.callbacks); err != nil {
		return nil, err
	}
	if m.exchanges, err = register(reg, m.exchanges); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg, reusing the collector already registered under
// the same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// UnknownProvider labels observations without a recognised provider.
const UnknownProvider = "unknown"

// ObserveCallback counts one finished callback.
// Providers outside oauth.Providers are recorded as UnknownProvider.
func (m *Metrics) ObserveCallback(provider, outcome string) {
	m.callbacks.WithLabelValues(knownProvider(provider), outcome).Inc()
}

func knownProvider(provider string) string {
	if _, err := oauth.ParseProviderID(provider); err != nil {
		return UnknownProvider
	}
	return provider
}

// ObserveExchange records the duration of one token exchange.
func (m *Metrics) ObserveExchange(provider string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.exchanges.WithLabelValues(knownProvider(provider), result).Observe(d.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Nop discards all observations.
type Nop struct{}

// ObserveCallback does nothing.
func (Nop) ObserveCallback(string, string) {}

// ObserveExchange does nothing.
func (Nop) ObserveExchange(string, time.Duration, error) {}
