package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/oauthgate/handlers"
	"github.com/dmitrymomot/oauthgate/internal"
	"github.com/dmitrymomot/oauthgate/middlewares"
	"github.com/dmitrymomot/oauthgate/pkg/oauth"
)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"entry validation", &handlers.EntryValidationError{}, http.StatusUnauthorized, `{"error":"Not authorized"}`},
		{"csrf", &handlers.CsrfValidationError{}, http.StatusInternalServerError, `{"error":"Missing or invalid CSRF token."}`},
		{"exchange", &oauth.TokenExchangeError{Message: "Forbidden", Status: http.StatusForbidden}, http.StatusForbidden, `{"error":"Forbidden"}`},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, `{"error":"boom"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := internal.New(
				internal.WithErrorHandler(handlers.ErrorHandler),
				internal.WithHandlers(routes(func(r internal.Router) {
					r.GET("/", func(internal.Context) error { return tt.err })
				})),
			)
			w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
			require.Equal(t, tt.status, w.Code)
			require.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestErrorHandler_HidesPanicValue(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithMiddleware(middlewares.Recover()),
		internal.WithErrorHandler(handlers.ErrorHandler),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", func(internal.Context) error { panic("client_secret=hunter2") })
		})),
	)

	w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}

func TestErrorSentinels(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, &handlers.EntryValidationError{}, handlers.ErrNotAuthorized)
	require.ErrorIs(t, &handlers.CsrfValidationError{}, handlers.ErrInvalidCSRF)
}
