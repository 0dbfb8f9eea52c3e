package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo).With("component", "test")

	logger.Info("tool call finished", "tool", "search_players", "error", errors.New("boom"))
	logger.Debug("filtered out")

	var line map[string]any
	require.NoError(t, sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	require.Equal(t, "tool call finished", line["msg"])
	require.Equal(t, "INFO", line["level"])
	require.Equal(t, "search_players", line["tool"])
	require.Equal(t, "test", line["component"])
	require.Equal(t, "boom", line["error"])
}

func TestLogger_OddArgsAndNilReceiver(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelDebug)
	logger.Warn("dangling", "key")
	require.Contains(t, buf.String(), `"key":null`)

	var nilLogger *Logger
	require.NotPanics(t, func() { nilLogger.Info("falls back to default") })
}
