// Package observability lets an application watch sheet generation without
// the libraries depending on a metrics or tracing backend.
//
// Hooks are registered once at startup and default to no-ops:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// The pipeline reports each stage of a sheet:
//
//	observability.Pipeline().OnProbeStart(ctx, path)
//	// ... probe ...
//	observability.Pipeline().OnProbeComplete(ctx, path, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events for each stage of one sheet.
type PipelineHooks interface {
	// Probe events
	OnProbeStart(ctx context.Context, path string)
	OnProbeComplete(ctx context.Context, path string, duration time.Duration, err error)

	// Sample events
	OnSampleStart(ctx context.Context, path string, frames int)
	OnSampleComplete(ctx context.Context, path string, duration time.Duration, err error)

	// Assemble events, including encoding and writing the sheet
	OnAssembleStart(ctx context.Context, path string, width, height int)
	OnAssembleComplete(ctx context.Context, path string, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnProbeStart(context.Context, string)                             {}
func (NoopPipelineHooks) OnProbeComplete(context.Context, string, time.Duration, error)    {}
func (NoopPipelineHooks) OnSampleStart(context.Context, string, int)                       {}
func (NoopPipelineHooks) OnSampleComplete(context.Context, string, time.Duration, error)   {}
func (NoopPipelineHooks) OnAssembleStart(context.Context, string, int, int)                {}
func (NoopPipelineHooks) OnAssembleComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
