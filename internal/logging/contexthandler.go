package logging

import (
	"context"
	"log/slog"
)

// ContextProvider returns attributes stamped on every record, such as the
// build version of the CLI.
type ContextProvider func() []slog.Attr

type sceneKey struct{}

// WithScene tags ctx with a scene name. Records logged with the *Context
// methods of a Setup logger then carry it as the "scene" attribute.
func WithScene(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, sceneKey{}, name)
}

// SceneFrom returns the scene name stored by WithScene.
func SceneFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	name, ok := ctx.Value(sceneKey{}).(string)
	return name, ok
}

// ContextHandler adds the provider's attributes and the scene of the
// record's context before passing it on.
type ContextHandler struct {
	inner    slog.Handler
	provider ContextProvider
}

func NewContextHandler(inner slog.Handler, provider ContextProvider) *ContextHandler {
	return &ContextHandler{inner: inner, provider: provider}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.provider != nil {
		r.AddAttrs(h.provider()...)
	}
	if scene, ok := SceneFrom(ctx); ok {
		r.AddAttrs(slog.String("scene", scene))
	}
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs), provider: h.provider}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &ContextHandler{inner: h.inner.WithGroup(name), provider: h.provider}
}
