package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/quickexplain/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "DEBUG", want: slog.LevelDebug},
		{level: "info", want: slog.LevelInfo},
		{level: "warn", want: slog.LevelWarn},
		{level: "warning", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
		{level: "", want: slog.LevelInfo},
		{level: "verbose", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.level))
		})
	}
}

func TestNew(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(config.LogConfig{Level: "info", Format: "json"}, &buf)

		logger.Info("request completed", "status", 200)

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "INFO", record["level"])
		assert.Equal(t, "request completed", record["msg"])
		assert.EqualValues(t, 200, record["status"])
	})

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(config.LogConfig{Level: "info", Format: "text"}, &buf)

		logger.Warn("upstream returned no choices", "response", `{"error":"x"}`)

		out := buf.String()
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, `msg="upstream returned no choices"`)
		assert.Contains(t, out, "response=")
	})

	t.Run("level filters records", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(config.LogConfig{Level: "warn", Format: "text"}, &buf)

		logger.Info("hidden")
		assert.Empty(t, buf.String())
		assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
		assert.True(t, logger.Enabled(context.Background(), slog.LevelError))
	})

	t.Run("debug payloads enable debug records", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(config.LogConfig{Level: "info", Format: "text", DebugPayloads: true}, &buf)

		logger.Debug("openrouter raw response", "body", `{"choices":[]}`)
		assert.Contains(t, buf.String(), "openrouter raw response")
	})
}
