package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// User is the provider's user record, passed through as decoded JSON.
type User map[string]any

// FetchUser loads the signed-in user from the provider's user API.
// For form-post providers the token and quota key travel in the query
// and the first element of "items" is returned.
func FetchUser(ctx context.Context, cfg *ProviderConfig, token string, opts ...Option) (User, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if cfg.Endpoints.UserAPI == "" {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("no user api for %s", cfg.Provider))
	}
	client := newOptions(opts...).client()

	req, err := newUserRequest(ctx, cfg, token)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("fetch user: %w", err))
	}
	if resp == nil {
		return nil, errors.Join(ErrNilResponse, fmt.Errorf("unexpected nil response from %s user endpoint", cfg.Provider))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, errors.Join(ErrRequestFailed, fmt.Errorf("user request failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	if cfg.Variant() == FormPost {
		var envelope struct {
			Items []User `json:"items"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return nil, errors.Join(ErrDecodeFailed, fmt.Errorf("decode user: %w", err))
		}
		if len(envelope.Items) == 0 {
			return nil, ErrUserNotFound
		}
		return envelope.Items[0], nil
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, errors.Join(ErrDecodeFailed, fmt.Errorf("decode user: %w", err))
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func newUserRequest(ctx context.Context, cfg *ProviderConfig, token string) (*http.Request, error) {
	if cfg.Variant() == FormPost {
		u, err := url.Parse(cfg.Endpoints.UserAPI)
		if err != nil {
			return nil, fmt.Errorf("parse user api: %w", err)
		}
		q := u.Query()
		q.Set("access_token", token)
		q.Set("key", cfg.QuotaKey)
		u.RawQuery = q.Encode()
		return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Endpoints.UserAPI, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
