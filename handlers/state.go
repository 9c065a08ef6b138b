package handlers

import "net/url"

// CallbackState is the nested query string the login-start leg packs into
// the OAuth state parameter.
type CallbackState struct {
	CSRF     string
	Provider string
	URL      string
}

// ParseState decodes raw as a query string. Malformed pairs are skipped and
// missing fields stay empty, so a broken state always fails the csrf check
// rather than the parser.
func ParseState(raw string) CallbackState {
	values, _ := url.ParseQuery(raw)
	return CallbackState{
		CSRF:     values.Get("csrf"),
		Provider: values.Get("provider"),
		URL:      values.Get("url"),
	}
}

// RedirectTarget is the page the browser returns to after login.
// The noop query keeps the host from re-appending the callback query.
func (s CallbackState) RedirectTarget() string {
	if s.URL == "" {
		return "/?noop"
	}
	return s.URL + "?noop"
}
