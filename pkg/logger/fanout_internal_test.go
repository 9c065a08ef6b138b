package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }

func TestFanout_DeliversPastFailingHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := fanout{failingHandler{slog.DiscardHandler}, jsonHandler(&buf, slog.LevelInfo)}

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0))
	require.EqualError(t, err, "sink down")
	require.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestFanout_Enabled(t *testing.T) {
	t.Parallel()

	h := fanout{jsonHandler(&bytes.Buffer{}, slog.LevelError), jsonHandler(&bytes.Buffer{}, slog.LevelWarn)}
	require.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	require.False(t, h.Enabled(context.Background(), slog.LevelInfo))

	grouped := h.WithGroup("req").WithAttrs([]slog.Attr{slog.String("id", "1")})
	require.IsType(t, fanout{}, grouped)
}
