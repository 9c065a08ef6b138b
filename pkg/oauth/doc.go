// Package oauth resolves provider configuration and performs the authorization
// code exchange for the callback leg of a "sign in with provider" flow.
//
// Six providers are supported: netlify, github, gitlab, slack, linkedin and
// stackexchange. Their endpoints live in an embedded table (providers.yaml);
// client credentials come from a Settings snapshot taken once at startup.
//
// # Variants
//
// Every provider follows one of two exchange variants:
//
//   - CodeGrant: the standard authorization code grant, performed with
//     golang.org/x/oauth2. The access token is stored base64-encoded.
//   - FormPost: a form-encoded POST that replays the raw state value the
//     provider issued. The access token is stored as-is.
//
// The variant decides both the Exchanger and the TokenCodec, so a token is
// always decoded the same way it was encoded.
//
// # Usage
//
//	resolver := oauth.NewResolver(oauth.Settings{
//		SiteURL: "https://example.com",
//		Secrets: env.ToMap(os.Environ()),
//	})
//
//	cfg, err := resolver.Resolve("github")
//	if err != nil {
//		// *oauth.ConfigError
//	}
//
//	ex, err := oauth.NewExchanger(cfg, oauth.WithHTTPClient(client))
//	if err != nil {
//		return err
//	}
//	token, err := ex.Exchange(ctx, code, rawState)
//	if err != nil {
//		// *oauth.TokenExchangeError
//	}
//	cookieValue := ex.Codec().Encode(token)
//
// # Error Handling
//
// Resolve returns *ConfigError wrapping ErrUnsupportedProvider or
// ErrMissingCredentials. Exchange returns *TokenExchangeError, which always
// matches ErrTokenExchange and exposes StatusCode() for the HTTP response.
// No call is ever retried: authorization codes are single-use.
package oauth
