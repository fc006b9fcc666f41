package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiHandler_FansOut(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h1 := slog.NewTextHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelInfo})
	h2 := slog.NewTextHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelInfo})

	logger := slog.New(NewMultiHandler(h1, h2))
	logger.Info("fanned out")

	assert.Contains(t, buf1.String(), "fanned out")
	assert.Contains(t, buf2.String(), "fanned out")
}

func TestMultiHandler_FiltersNilHandlers(t *testing.T) {
	var buf bytes.Buffer
	multi := NewMultiHandler(nil, slog.NewTextHandler(&buf, nil), nil)
	require.Len(t, multi.sinks, 1)

	slog.New(multi).Info("works")
	assert.Contains(t, buf.String(), "works")
}

func TestMultiHandler_Enabled(t *testing.T) {
	infoHandler := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo})
	debugHandler := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug})

	infoOnly := NewMultiHandler(infoHandler)
	assert.False(t, infoOnly.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, infoOnly.Enabled(context.Background(), slog.LevelInfo))

	both := NewMultiHandler(infoHandler, debugHandler)
	assert.True(t, both.Enabled(context.Background(), slog.LevelDebug))

	assert.False(t, NewMultiHandler().Enabled(context.Background(), slog.LevelInfo))
}

func TestMultiHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	multi := NewMultiHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	slog.New(multi.WithAttrs([]slog.Attr{slog.String("component", "worker")})).Info("with attrs")
	assert.Contains(t, buf.String(), "component=worker")

	slog.New(multi.WithGroup("scene")).Info("grouped", "name", "Rondo")
	assert.Contains(t, buf.String(), "scene.name=Rondo")

	assert.Equal(t, multi, multi.WithGroup(""), "empty group name should return same handler")
}

// errorHandler is a slog.Handler that always returns an error from Handle.
type errorHandler struct {
	slog.Handler
}

func (h *errorHandler) Handle(_ context.Context, _ slog.Record) error {
	return errors.New("handler error")
}

func (h *errorHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func TestMultiHandler_HandleError(t *testing.T) {
	var buf bytes.Buffer
	spy := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	// First sink errors, the second should still receive the record.
	multi := NewMultiHandler(&errorHandler{}, spy)
	slog.New(multi).Info("should reach spy")
	assert.Contains(t, buf.String(), "should reach spy")

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "direct", 0)
	err := multi.Handle(context.Background(), r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler error")
	assert.Contains(t, buf.String(), "direct")
}

func TestContextHandler(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	h := NewContextHandler(slog.NewTextHandler(&buf, nil), func() []slog.Attr {
		calls++
		return []slog.Attr{slog.Int("call", calls)}
	})

	logger := slog.New(h)
	logger.Info("one")
	logger.Info("two")
	assert.Contains(t, buf.String(), "call=1")
	assert.Contains(t, buf.String(), "call=2")

	slog.New(h.WithGroup("g").WithAttrs([]slog.Attr{slog.Bool("x", true)})).Info("three")
	assert.Contains(t, buf.String(), "g.x=true")
}

func TestContextHandler_Scene(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewContextHandler(slog.NewTextHandler(&buf, nil), nil))

	logger.InfoContext(WithScene(context.Background(), "Rondo"), "tagged")
	assert.Contains(t, buf.String(), "msg=tagged scene=Rondo")

	buf.Reset()
	logger.InfoContext(context.Background(), "untagged")
	assert.NotContains(t, buf.String(), "scene=")
}

func TestSceneFrom(t *testing.T) {
	name, ok := SceneFrom(WithScene(context.Background(), "Wall Passes"))
	assert.True(t, ok)
	assert.Equal(t, "Wall Passes", name)

	_, ok = SceneFrom(context.Background())
	assert.False(t, ok)
}
