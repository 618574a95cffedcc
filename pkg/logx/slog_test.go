package logx_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"card_tracker/pkg/logx"
)

func TestParseLevel(t *testing.T) {
	rq := require.New(t)

	rq.Equal(slog.LevelDebug, logx.ParseLevel("debug"))
	rq.Equal(slog.LevelWarn, logx.ParseLevel("WARN"))
	rq.Equal(slog.LevelInfo, logx.ParseLevel("nonsense"))
	rq.Equal(slog.LevelInfo, logx.ParseLevel(""))
}

func TestNewJSON(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer

	logger := logx.New(&buf, "json", "warn")

	logger.Info("hidden")
	logger.Warn("shown", slog.String(logx.FieldCardID, "42"))

	rq.NotContains(buf.String(), "hidden")
	rq.Contains(buf.String(), `"card-id":"42"`)
	rq.False(logger.Enabled(context.Background(), slog.LevelInfo))
}
