package handlers_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/oauthgate/handlers"
)

func userRequest(provider, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, handlers.DefaultUserPath, nil)
	if provider != "" {
		req.AddCookie(&http.Cookie{Name: handlers.ProviderCookie, Value: provider})
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: handlers.TokenCookie, Value: token})
	}
	return req
}

func TestUserHandler(t *testing.T) {
	t.Parallel()

	t.Run("github decodes token cookie", func(t *testing.T) {
		t.Parallel()

		client, rt := newRewriteClient(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "api.github.com", r.URL.Host)
			require.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"login":"octocat","id":1}`))
		})

		token := base64.StdEncoding.EncodeToString([]byte("tok123"))
		w := serve(newApp(client, nil), userRequest("github", token))

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"login":"octocat","id":1}`, w.Body.String())
		require.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		require.EqualValues(t, 1, rt.calls.Load())
	})

	t.Run("stackexchange sends plain token and quota key", func(t *testing.T) {
		t.Parallel()

		client, _ := newRewriteClient(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "se-tok", r.URL.Query().Get("access_token"))
			require.Equal(t, "se-quota", r.URL.Query().Get("key"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"items":[{"display_name":"jane"}]}`))
		})

		w := serve(newApp(client, nil), userRequest("stackexchange", "se-tok"))
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"display_name":"jane"}`, w.Body.String())
	})

	t.Run("missing cookies", func(t *testing.T) {
		t.Parallel()

		client, rt := unreachable()
		w := serve(newApp(client, nil), userRequest("github", ""))
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.JSONEq(t, `{"error":"Not authorized"}`, w.Body.String())
		require.Zero(t, rt.calls.Load())
	})

	t.Run("undecodable token", func(t *testing.T) {
		t.Parallel()

		client, rt := unreachable()
		w := serve(newApp(client, nil), userRequest("github", "***"))
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Zero(t, rt.calls.Load())
	})

	t.Run("provider failure", func(t *testing.T) {
		t.Parallel()

		client, _ := newRewriteClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
		})
		token := base64.StdEncoding.EncodeToString([]byte("revoked"))
		w := serve(newApp(client, nil), userRequest("github", token))
		require.Equal(t, http.StatusBadGateway, w.Code)
		require.JSONEq(t, `{"error":"Unable to fetch user"}`, w.Body.String())
	})
}
