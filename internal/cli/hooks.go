package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports pipeline, cache and interaction events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLoadStart(_ context.Context, path string) {
	h.logger.Debug("load", "path", path)
}

func (h *logHooks) OnLoadComplete(_ context.Context, path string, rows int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "path", path, "error", err)
		return
	}
	h.logger.Debug("loaded", "path", path, "rows", rows, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnUpdateStart(_ context.Context, kind string, rows int) {
	h.logger.Debug("update", "kind", kind, "rows", rows)
}

func (h *logHooks) OnUpdateComplete(_ context.Context, kind string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("update failed", "kind", kind, "error", err)
		return
	}
	h.logger.Debug("updated", "kind", kind, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("encode", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("encode failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("encoded", "formats", formats, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnEvent(_ context.Context, source, kind string) {
	h.logger.Debug("event", "source", source, "kind", kind)
}
