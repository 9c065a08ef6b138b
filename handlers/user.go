package handlers

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/oauthgate/internal"
	"github.com/dmitrymomot/oauthgate/pkg/oauth"
)

// UserHandler returns the provider profile of the signed-in browser.
type UserHandler struct {
	resolver *oauth.Resolver
	opts     options
}

// NewUserHandler creates a user handler over the resolver's settings.
func NewUserHandler(resolver *oauth.Resolver, opts ...Option) *UserHandler {
	return &UserHandler{resolver: resolver, opts: newOptions(opts...)}
}

// Path is the route the handler is registered on.
func (h *UserHandler) Path() string {
	return h.opts.userPath
}

// Routes implements oauthgate.Handler.
func (h *UserHandler) Routes(r internal.Router) {
	r.GET(h.Path(), h.user)
}

func (h *UserHandler) user(c internal.Context) error {
	provider, perr := c.Cookie(ProviderCookie)
	encoded, terr := c.Cookie(TokenCookie)
	if perr != nil || terr != nil || provider == "" || encoded == "" {
		return internal.ErrUnauthorized("Not authorized", internal.WithError(ErrNoSession))
	}

	cfg, err := h.resolver.Resolve(provider)
	if err != nil {
		return err
	}
	token, err := cfg.Codec().Decode(encoded)
	if err != nil {
		return internal.ErrUnauthorized("Not authorized", internal.WithError(errors.Join(ErrNoSession, err)))
	}

	user, err := oauth.FetchUser(c.Context(), cfg, token, h.opts.oauthOpts...)
	if err != nil {
		return internal.NewHTTPError(http.StatusBadGateway, "Unable to fetch user", internal.WithError(err))
	}

	c.SetHeader("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, user)
}
