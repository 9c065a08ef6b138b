package logger

import (
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// Redacted replaces the value of sensitive attributes.
const Redacted = "[REDACTED]"

// sensitiveKeys never reach a log sink with their real value.
var sensitiveKeys = []string{"token", "access_token", "client_secret", "code", "state", "csrf"}

// New creates a JSON-formatted logger writing to stdout with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewWriter(os.Stdout, slog.LevelInfo, extractors...)
}

// NewWriter creates a JSON-formatted logger writing to w at the given level.
func NewWriter(w io.Writer, level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(jsonHandler(w, level), extractors...))
}

// NewNope returns a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func jsonHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redact,
	})
}

// redact masks attributes whose key names a credential.
func redact(_ []string, a slog.Attr) slog.Attr {
	if slices.Contains(sensitiveKeys, strings.ToLower(a.Key)) {
		return slog.String(a.Key, Redacted)
	}
	return a
}

// ParseLevel maps "debug", "info", "warn" and "error" to a slog level.
// Unknown values yield info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
