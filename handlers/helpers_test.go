package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/oauthgate/handlers"
	"github.com/dmitrymomot/oauthgate/internal"
	"github.com/dmitrymomot/oauthgate/pkg/oauth"
)

const (
	siteURL     = "https://example.com"
	callbackURL = "/.netlify/functions/auth-callback"
	csrfToken   = "2f1c7a56-9d1e-4a4b-8d57-6c3e0d2f9b11"
)

// rewriteTransport routes every outbound request to a local handler
// and counts how many were made.
type rewriteTransport struct {
	handler http.Handler
	calls   atomic.Int32
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.calls.Add(1)
	recorder := httptest.NewRecorder()
	t.handler.ServeHTTP(recorder, req)
	return recorder.Result(), nil
}

func newRewriteClient(h http.HandlerFunc) (*http.Client, *rewriteTransport) {
	rt := &rewriteTransport{handler: h}
	return &http.Client{Transport: rt}, rt
}

// recorder captures metric observations.
type recorder struct {
	mu        sync.Mutex
	outcomes  []string
	exchanges int
}

func (r *recorder) ObserveCallback(provider, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, provider+":"+outcome)
}

func (r *recorder) ObserveExchange(string, time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exchanges++
}

func (r *recorder) Outcomes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.outcomes...)
}

func secrets() map[string]string {
	return map[string]string{
		"GITHUB_OAUTH_CLIENT_ID":            "gh-id",
		"GITHUB_OAUTH_CLIENT_SECRET":        "gh-secret",
		"GITLAB_OAUTH_CLIENT_ID":            "gl-id",
		"STACKEXCHANGE_OAUTH_CLIENT_ID":     "se-id",
		"STACKEXCHANGE_OAUTH_CLIENT_SECRET": "se-secret",
		"STACKEXCHANGE_OAUTH_KEY":           "se-quota",
	}
}

func newApp(client *http.Client, rec *recorder) *internal.App {
	resolver := oauth.NewResolver(oauth.Settings{SiteURL: siteURL, Secrets: secrets()})
	opts := []handlers.Option{handlers.WithHTTPClient(client)}
	if rec != nil {
		opts = append(opts, handlers.WithRecorder(rec))
	}
	return internal.New(
		internal.WithErrorHandler(handlers.ErrorHandler),
		internal.WithHandlers(
			handlers.NewCallbackHandler(resolver, opts...),
			handlers.NewUserHandler(resolver, opts...),
		),
	)
}

func encodeState(csrf, provider, target string) string {
	return url.Values{"csrf": {csrf}, "provider": {provider}, "url": {target}}.Encode()
}

func callbackRequest(code, state, csrfCookie string) *http.Request {
	target := callbackURL + "?" + url.Values{"code": {code}, "state": {state}}.Encode()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if csrfCookie != "" {
		req.AddCookie(&http.Cookie{Name: handlers.CSRFCookie, Value: csrfCookie})
	}
	return req
}

func serve(app http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func cookiesByName(w *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie)
	for _, c := range w.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func unreachable() (*http.Client, *rewriteTransport) {
	return newRewriteClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}
