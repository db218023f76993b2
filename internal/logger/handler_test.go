package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func newTestLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	color.NoColor = true
	buf := &bytes.Buffer{}
	return slog.New(NewPrettyHandler(buf, &slog.HandlerOptions{Level: level})), buf
}

func TestPrettyHandler(t *testing.T) {
	t.Run("writes level badge, message and attrs", func(t *testing.T) {
		log, buf := newTestLogger(slog.LevelInfo)

		log.Info("fetched commits", "commits_count", 3, "sha", "3a82cb1")

		assert.Equal(t, "[INFO]  fetched commits commits_count=3 sha=3a82cb1\n", buf.String())
	})

	t.Run("filters records below the configured level", func(t *testing.T) {
		log, buf := newTestLogger(slog.LevelWarn)

		log.Info("hidden")
		log.Debug("hidden too")

		assert.Empty(t, buf.String())
	})

	t.Run("prefixes grouped keys", func(t *testing.T) {
		log, buf := newTestLogger(slog.LevelInfo)

		log.WithGroup("openai").Warn("slow response", "duration_ms", 1200)

		assert.Contains(t, buf.String(), "openai.duration_ms=1200")
	})

	t.Run("keeps attrs added with With", func(t *testing.T) {
		log, buf := newTestLogger(slog.LevelInfo)

		log.With("model", "gpt-4o").Error("request failed", "error", errors.New("boom"))

		assert.Contains(t, buf.String(), "[ERROR] request failed")
		assert.Contains(t, buf.String(), "error=boom")
		assert.Contains(t, buf.String(), "model=gpt-4o")
	})
}

func TestContextLogger(t *testing.T) {
	log, buf := newTestLogger(slog.LevelDebug)
	ctx := WithLogger(context.Background(), log)
	ctx = With(ctx, "provider", "github")

	Debug(ctx, "listing page", "pages", 2)
	Error(ctx, "listing failed", errors.New("rate limited"))

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] listing page pages=2 provider=github")
	assert.Contains(t, out, "error=rate limited")
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}
