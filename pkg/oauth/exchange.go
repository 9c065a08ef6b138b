package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

// Exchanger trades an authorization code for an access token.
// rawState is the state value exactly as the provider sent it back.
type Exchanger interface {
	Exchange(ctx context.Context, code, rawState string) (string, error)
	Codec() TokenCodec
}

// NewExchanger returns the exchanger for the provider's variant.
func NewExchanger(cfg *ProviderConfig, opts ...Option) (Exchanger, error) {
	tokenURL, err := cfg.Endpoints.TokenURL()
	if err != nil {
		return nil, err
	}
	o := newOptions(opts...)

	switch cfg.Variant() {
	case FormPost:
		return &formPostExchanger{cfg: cfg, tokenURL: tokenURL, client: noRedirects(o.client())}, nil
	case CodeGrant:
		authURL, err := cfg.Endpoints.AuthURL()
		if err != nil {
			return nil, err
		}
		return &standardExchanger{
			provider: cfg.Provider,
			config: &oauth2.Config{
				ClientID:     cfg.ClientID,
				ClientSecret: cfg.ClientSecret,
				RedirectURL:  cfg.RedirectURI,
				Endpoint: oauth2.Endpoint{
					AuthURL:  authURL,
					TokenURL: tokenURL,
					// Credentials go in the body so the exchange is a single request.
					AuthStyle: oauth2.AuthStyleInParams,
				},
			},
			httpClient: o.httpClient,
		}, nil
	}
	return nil, fmt.Errorf("oauth: unknown variant %q for %s", cfg.Variant(), cfg.Provider)
}

type standardExchanger struct {
	provider   ProviderID
	config     *oauth2.Config
	httpClient *http.Client
}

func (e *standardExchanger) Codec() TokenCodec {
	return Base64Codec{}
}

func (e *standardExchanger) Exchange(ctx context.Context, code, _ string) (string, error) {
	if e.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)
	}

	token, err := e.config.Exchange(ctx, code)
	if err != nil {
		return "", e.exchangeError(err)
	}
	if token.AccessToken == "" {
		return "", &TokenExchangeError{Err: ErrMissingToken, Provider: e.provider, Message: ErrMissingToken.Error()}
	}
	return token.AccessToken, nil
}

func (e *standardExchanger) exchangeError(err error) *TokenExchangeError {
	xerr := &TokenExchangeError{Err: err, Provider: e.provider, Message: err.Error()}

	var rerr *oauth2.RetrieveError
	if !errors.As(err, &rerr) {
		return xerr
	}
	if rerr.Response != nil {
		xerr.Status = rerr.Response.StatusCode
	}
	switch {
	case rerr.ErrorDescription != "":
		xerr.Message = rerr.ErrorDescription
	case rerr.ErrorCode != "":
		xerr.Message = rerr.ErrorCode
	case xerr.Status != 0:
		xerr.Message = statusText(rerr.Response)
	}
	return xerr
}

type formPostExchanger struct {
	cfg      *ProviderConfig
	tokenURL string
	client   *http.Client
}

func (e *formPostExchanger) Codec() TokenCodec {
	return PlainCodec{}
}

func (e *formPostExchanger) Exchange(ctx context.Context, code, rawState string) (string, error) {
	form := url.Values{
		"code":          {code},
		"redirect_uri":  {e.cfg.RedirectURI},
		"client_id":     {e.cfg.ClientID},
		"client_secret": {e.cfg.ClientSecret},
		"state":         {rawState},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", e.fail(0, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", e.fail(0, errors.Join(ErrFetchFailed, err))
	}
	if resp == nil {
		return "", e.fail(0, ErrNilResponse)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &TokenExchangeError{
			Err:      fmt.Errorf("%w: status=%d", ErrRequestFailed, resp.StatusCode),
			Provider: e.cfg.Provider,
			Message:  statusText(resp),
			Status:   resp.StatusCode,
		}
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", e.fail(resp.StatusCode, errors.Join(ErrDecodeFailed, fmt.Errorf("decode token: %w", err)))
	}
	if body.AccessToken == "" {
		return "", e.fail(resp.StatusCode, ErrMissingToken)
	}
	return body.AccessToken, nil
}

func (e *formPostExchanger) fail(status int, err error) *TokenExchangeError {
	return &TokenExchangeError{Err: err, Provider: e.cfg.Provider, Message: err.Error(), Status: status}
}

// statusText returns the reason phrase of the response, e.g. "Bad Request".
func statusText(resp *http.Response) string {
	if resp == nil {
		return ""
	}
	if _, text, ok := strings.Cut(resp.Status, " "); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
