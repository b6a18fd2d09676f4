package conversation

import (
	"context"
	"log/slog"
)

// levelHandler drops records below a level it reads on every call, so a
// Client can change verbosity without touching the handler it was given.
type levelHandler struct {
	level   slog.Leveler
	handler slog.Handler
}

func newLevelHandler(level slog.Leveler, h slog.Handler) *levelHandler {
	return &levelHandler{level: level, handler: h}
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level() && h.handler.Enabled(ctx, level)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.handler.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{level: h.level, handler: h.handler.WithAttrs(attrs)}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{level: h.level, handler: h.handler.WithGroup(name)}
}

func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelInfo
	}
	return slog.LevelWarn
}
