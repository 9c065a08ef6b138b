package oauth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/oauthgate/pkg/oauth"
)

func TestFetchUser(t *testing.T) {
	t.Parallel()

	t.Run("bearer token for standard providers", func(t *testing.T) {
		t.Parallel()

		client, _ := newRewriteClient(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "https://api.github.com/user", r.URL.String())
			require.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"login":"octocat","id":1}`))
		})

		user, err := oauth.FetchUser(context.Background(), resolve(t, "github"), "tok123", oauth.WithHTTPClient(client))
		require.NoError(t, err)
		require.Equal(t, "octocat", user["login"])
	})

	t.Run("query token for stackexchange", func(t *testing.T) {
		t.Parallel()

		client, _ := newRewriteClient(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "api.stackexchange.com", r.URL.Host)
			require.Equal(t, "/2.3/me", r.URL.Path)
			q := r.URL.Query()
			require.Equal(t, "stackoverflow", q.Get("site"))
			require.Equal(t, "se-token", q.Get("access_token"))
			require.Equal(t, "se-quota", q.Get("key"))
			require.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"items":[{"display_name":"jon"},{"display_name":"other"}]}`))
		})

		user, err := oauth.FetchUser(context.Background(), resolve(t, "stackexchange"), "se-token", oauth.WithHTTPClient(client))
		require.NoError(t, err)
		require.Equal(t, "jon", user["display_name"])
	})

	t.Run("empty items", func(t *testing.T) {
		t.Parallel()

		client, _ := newRewriteClient(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"items":[]}`))
		})

		_, err := oauth.FetchUser(context.Background(), resolve(t, "stackexchange"), "se-token", oauth.WithHTTPClient(client))
		require.ErrorIs(t, err, oauth.ErrUserNotFound)
	})

	t.Run("non-200 includes body", func(t *testing.T) {
		t.Parallel()

		client, _ := newRewriteClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`Bad credentials`))
		})

		_, err := oauth.FetchUser(context.Background(), resolve(t, "gitlab"), "tok", oauth.WithHTTPClient(client))
		require.ErrorIs(t, err, oauth.ErrRequestFailed)
		require.ErrorContains(t, err, "Bad credentials")
	})

	t.Run("missing token makes no call", func(t *testing.T) {
		t.Parallel()

		client, rt := newRewriteClient(func(w http.ResponseWriter, r *http.Request) {})
		_, err := oauth.FetchUser(context.Background(), resolve(t, "github"), "", oauth.WithHTTPClient(client))
		require.ErrorIs(t, err, oauth.ErrMissingToken)
		require.Zero(t, rt.calls.Load())
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()

		client, _ := newRewriteClient(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		})
		_, err := oauth.FetchUser(context.Background(), resolve(t, "netlify"), "tok", oauth.WithHTTPClient(client))
		require.ErrorIs(t, err, oauth.ErrDecodeFailed)
	})
}
