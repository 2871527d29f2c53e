// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about engine commands and layout store operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the engine and stores
// stay free of any metrics framework.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Engine().OnCommandStart("move", "a")
//	// ... run command ...
//	observability.Engine().OnCommandComplete("move", len(layout), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from layout engine commands. Engine commands
// never block, so these hooks carry no context.
type EngineHooks interface {
	// OnCommandStart fires before a command runs. id is empty for commands
	// that do not target one item.
	OnCommandStart(kind, id string)

	// OnCommandComplete fires after a command commits or fails.
	OnCommandComplete(kind string, items int, duration time.Duration, err error)

	// OnCompact records a full compaction pass.
	OnCompact(compactor string, items int, duration time.Duration)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from layout snapshot stores.
type StoreHooks interface {
	// OnLoad records a successful snapshot read.
	OnLoad(ctx context.Context, backend, key string)

	// OnMiss records a read for a key that does not exist.
	OnMiss(ctx context.Context, backend, key string)

	// OnSave records a snapshot write of items grid items.
	OnSave(ctx context.Context, backend, key string, items int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnCommandStart(string, string)                       {}
func (NoopEngineHooks) OnCommandComplete(string, int, time.Duration, error) {}
func (NoopEngineHooks) OnCompact(string, int, time.Duration)                {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnLoad(context.Context, string, string)      {}
func (NoopStoreHooks) OnMiss(context.Context, string, string)      {}
func (NoopStoreHooks) OnSave(context.Context, string, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at application startup before any engine is created.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	storeHooks = NoopStoreHooks{}
}
