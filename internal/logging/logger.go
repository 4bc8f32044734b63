// Package logging builds the slog logger used across the relay.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/quickexplain/internal/config"
)

var levelColors = map[slog.Level]*color.Color{
	slog.LevelDebug: color.New(color.FgCyan),
	slog.LevelInfo:  color.New(color.FgGreen),
	slog.LevelWarn:  color.New(color.FgYellow),
	slog.LevelError: color.New(color.FgRed, color.Bold),
}

// New returns a logger writing to w in the configured format and level.
// DebugPayloads lowers the level to debug, where raw upstream bodies are logged.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	level := ParseLevel(cfg.Level)
	if cfg.DebugPayloads && level > slog.LevelDebug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		opts.ReplaceAttr = colorizeLevel
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// colorizeLevel paints the level value; fatih/color leaves it plain when
// the output is not a terminal.
func colorizeLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.LevelKey {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	c, ok := levelColors[level]
	if !ok {
		return a
	}
	return slog.String(slog.LevelKey, c.Sprint(level.String()))
}
