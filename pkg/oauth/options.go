package oauth

import "net/http"

// Option configures outbound provider calls.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient sets the client for token and user requests.
// Its Timeout bounds each call; there are no retries.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

func newOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// client returns the configured client or http.DefaultClient.
func (o options) client() *http.Client {
	if o.httpClient != nil {
		return o.httpClient
	}
	return http.DefaultClient
}

// noRedirects returns a shallow copy of c that hands 3xx responses back
// to the caller instead of following them.
func noRedirects(c *http.Client) *http.Client {
	cp := *c
	cp.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &cp
}
