package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/oauthgate/internal"
	"github.com/dmitrymomot/oauthgate/pkg/cookie"
	"github.com/dmitrymomot/oauthgate/pkg/metrics"
	"github.com/dmitrymomot/oauthgate/pkg/oauth"
)

// Session cookie names shared with the static site.
const (
	TokenCookie    = "_11ty_oauth_token"
	ProviderCookie = "_11ty_oauth_provider"
	CSRFCookie     = "_11ty_oauth_csrf"
)

// Option configures the callback and user handlers.
type Option func(*options)

type options struct {
	recorder  metrics.Recorder
	oauthOpts []oauth.Option
	userPath  string
}

// WithHTTPClient sets the client used for calls to the provider.
// Its Timeout bounds the token exchange.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.oauthOpts = append(o.oauthOpts, oauth.WithHTTPClient(client))
	}
}

// WithRecorder records callback outcomes and exchange latency.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithUserPath sets the route of UserHandler.
func WithUserPath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.userPath = path
		}
	}
}

// DefaultUserPath is the default route of UserHandler.
const DefaultUserPath = "/.netlify/functions/auth-user"

func newOptions(opts ...Option) options {
	o := options{recorder: metrics.Nop{}, userPath: DefaultUserPath}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// CallbackHandler completes the login flow at the provider's redirect URI.
type CallbackHandler struct {
	resolver *oauth.Resolver
	opts     options
}

// NewCallbackHandler creates a callback handler over the resolver's settings.
func NewCallbackHandler(resolver *oauth.Resolver, opts ...Option) *CallbackHandler {
	return &CallbackHandler{resolver: resolver, opts: newOptions(opts...)}
}

// Path is the route the handler is registered on.
func (h *CallbackHandler) Path() string {
	if p := h.resolver.Settings().CallbackPath; p != "" {
		return p
	}
	return oauth.DefaultCallbackPath
}

// Routes implements oauthgate.Handler.
func (h *CallbackHandler) Routes(r internal.Router) {
	r.GET(h.Path(), h.callback)
}

func (h *CallbackHandler) callback(c internal.Context) error {
	query := c.QueryParams()
	if len(query) == 0 {
		h.opts.recorder.ObserveCallback("", metrics.OutcomeUnauthorized)
		return &EntryValidationError{}
	}

	rawState := query.Get("state")
	state := ParseState(rawState)
	label := providerLabel(state.Provider)

	csrfCookie, err := c.Cookie(CSRFCookie)
	if !oauth.CSRFMatches(csrfCookie, state.CSRF) {
		h.opts.recorder.ObserveCallback(label, metrics.OutcomeCSRF)
		return &CsrfValidationError{CookiePresent: err == nil}
	}

	cfg, err := h.resolver.Resolve(state.Provider)
	if err != nil {
		h.opts.recorder.ObserveCallback(label, metrics.OutcomeConfig)
		return err
	}
	exchanger, err := oauth.NewExchanger(cfg, h.opts.oauthOpts...)
	if err != nil {
		h.opts.recorder.ObserveCallback(label, metrics.OutcomeConfig)
		return err
	}

	start := time.Now()
	token, err := exchanger.Exchange(c.Context(), query.Get("code"), rawState)
	h.opts.recorder.ObserveExchange(cfg.Provider.String(), time.Since(start), err)
	if err != nil {
		h.opts.recorder.ObserveCallback(cfg.Provider.String(), metrics.OutcomeExchange)
		return err
	}

	encoded := exchanger.Codec().Encode(token)
	if !cookie.ValidValue(encoded) {
		h.opts.recorder.ObserveCallback(cfg.Provider.String(), metrics.OutcomeExchange)
		return &oauth.TokenExchangeError{
			Err:      ErrUnstorableToken,
			Provider: cfg.Provider,
			Message:  "Access token cannot be stored in a cookie.",
		}
	}

	c.SetCookie(TokenCookie, encoded, cfg.MaxAge())
	c.SetCookie(ProviderCookie, cfg.Provider.String(), cfg.MaxAge())
	c.DeleteCookie(CSRFCookie)
	c.SetHeader("Cache-Control", "no-cache")

	h.opts.recorder.ObserveCallback(cfg.Provider.String(), metrics.OutcomeSuccess)
	c.LogInfo("oauth callback completed", slog.String("provider", cfg.Provider.String()))

	return c.Redirect(http.StatusFound, state.RedirectTarget())
}

// providerLabel bounds metric labels to the known providers.
func providerLabel(provider string) string {
	id, err := oauth.ParseProviderID(provider)
	if err != nil {
		return metrics.UnknownProvider
	}
	return id.String()
}
