package xlog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.yamlctor.dev/yamlctor/xlog"
)

func TestGetLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"WARN":  slog.LevelWarn,
	}

	for s, want := range tcs {
		got, err := xlog.GetLevel(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := xlog.GetLevel("trace")
	require.ErrorIs(t, err, xlog.ErrUnknownLogLevel)
}

func TestGetFormat(t *testing.T) {
	t.Parallel()

	got, err := xlog.GetFormat("json")
	require.NoError(t, err)
	assert.Equal(t, xlog.FormatJSON, got)

	_, err = xlog.GetFormat("yaml")
	require.ErrorIs(t, err, xlog.ErrUnknownLogFormat)
}

func TestNewHandlerFromStringsWritesJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	h, err := xlog.NewHandlerFromStrings(&buf, "info", "json")
	require.NoError(t, err)

	logger := slog.New(h)
	logger.Info("hello", "key", "value")

	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"key":"value"`)
}

func TestNewHandlerFromStringsInvalidLevel(t *testing.T) {
	t.Parallel()

	_, err := xlog.NewHandlerFromStrings(&bytes.Buffer{}, "bogus", "json")
	require.ErrorIs(t, err, xlog.ErrInvalidArgument)
}
