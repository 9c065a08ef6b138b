package middlewares_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrymomot/oauthgate/internal"
	"github.com/dmitrymomot/oauthgate/pkg/logger"
)

// testContext is a minimal internal.Context for exercising middleware in isolation.
type testContext struct {
	response http.ResponseWriter
	request  *http.Request
	logger   *slog.Logger
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{response: w, request: r, logger: logger.NewNope()}
}

func (c *testContext) Request() *http.Request {
	return c.request
}

func (c *testContext) Response() http.ResponseWriter {
	return c.response
}

func (c *testContext) Context() context.Context {
	return c.request.Context()
}

func (c *testContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *testContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *testContext) Err() error {
	return c.request.Context().Err()
}

func (c *testContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *testContext) Param(string) string {
	return ""
}

func (c *testContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *testContext) QueryParams() url.Values {
	return c.request.URL.Query()
}

func (c *testContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *testContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *testContext) JSON(code int, v any) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *testContext) String(code int, s string) error {
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *testContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *testContext) Redirect(code int, url string) error {
	c.response.Header().Set("Location", url)
	c.response.WriteHeader(code)
	return nil
}

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func (c *testContext) Written() bool {
	return false
}

func (c *testContext) Logger() *slog.Logger {
	return c.logger
}

func (c *testContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.Context(), msg, attrs...)
}

func (c *testContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.Context(), msg, attrs...)
}

func (c *testContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.Context(), msg, attrs...)
}

func (c *testContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.Context(), msg, attrs...)
}

func (c *testContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *testContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *testContext) Cookie(name string) (string, error) {
	ck, err := c.request.Cookie(name)
	if err != nil {
		return "", err
	}
	return ck.Value, nil
}

func (c *testContext) SetCookie(name, value string, maxAge int) {
	http.SetCookie(c.response, &http.Cookie{Name: name, Value: value, MaxAge: maxAge})
}

func (c *testContext) DeleteCookie(name string) {
	http.SetCookie(c.response, &http.Cookie{Name: name, MaxAge: -1})
}

var _ internal.Context = (*testContext)(nil)
