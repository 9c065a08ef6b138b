package oauth_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
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

func testSecrets() map[string]string {
	return map[string]string{
		"NETLIFY_OAUTH_CLIENT_ID":           "netlify-id",
		"NETLIFY_OAUTH_CLIENT_SECRET":       "netlify-secret",
		"GITHUB_OAUTH_CLIENT_ID":            "gh-id",
		"GITHUB_OAUTH_CLIENT_SECRET":        "gh-secret",
		"GITLAB_OAUTH_CLIENT_ID":            "gl-id",
		"GITLAB_OAUTH_CLIENT_SECRET":        "gl-secret",
		"SLACK_OAUTH_CLIENT_ID":             "slack-id",
		"SLACK_OAUTH_CLIENT_SECRET":         "slack-secret",
		"LINKEDIN_OAUTH_CLIENT_ID":          "li-id",
		"LINKEDIN_OAUTH_CLIENT_SECRET":      "li-secret",
		"STACKEXCHANGE_OAUTH_CLIENT_ID":     "se-id",
		"STACKEXCHANGE_OAUTH_CLIENT_SECRET": "se-secret",
		"STACKEXCHANGE_OAUTH_KEY":           "se-quota",
	}
}
