package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/oauthgate/internal"
	"github.com/dmitrymomot/oauthgate/middlewares"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates new request ID when not present", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.RequestID()
		handler := mw(func(c internal.Context) error {
			return nil
		})

		err := handler(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("uses existing request ID from header", func(t *testing.T) {
		t.Parallel()

		existingID := "existing-request-id-123"
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", existingID)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.RequestID()
		handler := mw(func(c internal.Context) error {
			return nil
		})

		err := handler(ctx)
		require.NoError(t, err)
		require.Equal(t, existingID, rec.Header().Get("X-Request-ID"))
	})

	t.Run("GetRequestID returns stored ID", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		var capturedID string
		mw := middlewares.RequestID()
		handler := mw(func(c internal.Context) error {
			capturedID = middlewares.GetRequestID(ctx)
			return nil
		})

		err := handler(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, capturedID)
		require.Equal(t, capturedID, rec.Header().Get("X-Request-ID"))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	t.Run("returns attribute when request ID present", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.RequestID()
		handler := mw(func(c internal.Context) error {
			return nil
		})

		err := handler(ctx)
		require.NoError(t, err)

		extractor := middlewares.RequestIDExtractor()
		attr, ok := extractor(ctx.Context())
		require.True(t, ok)
		require.Equal(t, "request_id", attr.Key)
		require.NotEmpty(t, attr.Value.String())
	})
}

func TestRequestID_RejectsUnsafeHeader(t *testing.T) {
	t.Parallel()

	for _, bad := range []string{
		strings.Repeat("a", middlewares.MaxRequestIDLength+1),
		"has space",
		"line\nbreak",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", bad)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		err := middlewares.RequestID()(func(c internal.Context) error { return nil })(ctx)
		require.NoError(t, err)

		got := rec.Header().Get("X-Request-ID")
		require.NotEqual(t, bad, got)
		require.Len(t, got, 26)
	}
}

func TestRequestID_CustomGenerator(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := newTestContext(rec, req)

	mw := middlewares.RequestID(
		middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
		middlewares.WithRequestIDResponseHeader("X-Trace"),
	)
	require.NoError(t, mw(func(c internal.Context) error { return nil })(ctx))
	require.Equal(t, "fixed", rec.Header().Get("X-Trace"))
	require.Equal(t, "fixed", middlewares.GetRequestID(ctx))
}

func TestRequestID_CorrelationHeaderAndContext(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "corr-1")
	rec := httptest.NewRecorder()

	var seen string
	err := middlewares.RequestID()(func(c internal.Context) error {
		seen = middlewares.RequestIDFromContext(c.Request().Context())
		return nil
	})(newTestContext(rec, req))

	require.NoError(t, err)
	require.Equal(t, "corr-1", seen)
	require.Equal(t, "corr-1", rec.Header().Get("X-Request-ID"))
	require.Empty(t, middlewares.RequestIDFromContext(req.Context()))
}
