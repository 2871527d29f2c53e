package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports engine and store events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnCommandStart(kind, id string) {
	h.logger.Debug("command", "kind", kind, "id", id)
}

func (h logHooks) OnCommandComplete(kind string, items int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("command failed", "kind", kind, "err", err)
		return
	}
	h.logger.Debug("command done", "kind", kind, "items", items, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnCompact(compactor string, items int, d time.Duration) {
	h.logger.Debug("compacted", "compactor", compactor, "items", items, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnLoad(_ context.Context, backend, key string) {
	h.logger.Debug("store hit", "backend", backend, "key", key)
}

func (h logHooks) OnMiss(_ context.Context, backend, key string) {
	h.logger.Debug("store miss", "backend", backend, "key", key)
}

func (h logHooks) OnSave(_ context.Context, backend, key string, items int) {
	h.logger.Debug("store save", "backend", backend, "key", key, "items", items)
}
