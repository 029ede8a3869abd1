package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"postavki/internal/config"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, config.LogConfig{Level: "debug", Format: "json"})

	ctx := WithContext(context.Background(), l.With("request_id", "r-1"))
	FromContext(ctx).Debug("hello")

	assert.Contains(t, buf.String(), `"request_id":"r-1"`)
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestFromContext_Default(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("whatever"))
}
