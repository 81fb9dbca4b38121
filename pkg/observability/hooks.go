// Package observability lets the CLI and the API server observe compiles
// without the core packages depending on any logging or metrics backend.
//
// Hooks are registered once at startup; library code only calls the
// accessors:
//
//	observability.SetPipelineHooks(myHooks)
//
//	observability.Pipeline().OnCompileStart(ctx, "query", query)
//	out, err := compile()
//	observability.Pipeline().OnCompileComplete(ctx, "query", n, time.Since(start), err)
//
// Every hook set defaults to a no-op implementation.
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives compile events.
type PipelineHooks interface {
	// OnCompileStart is called before compiling. input is the query, the
	// layout name or "<cols>x<rows>", depending on mode.
	OnCompileStart(ctx context.Context, mode, input string)
	OnCompileComplete(ctx context.Context, mode string, selectors int, duration time.Duration, err error)
	// OnVerify is called after the output was re-parsed and checked.
	OnVerify(ctx context.Context, err error)
}

// CacheHooks receives cache events. keyType names what was cached.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, status int, duration time.Duration)
}

// NoopPipelineHooks ignores all events.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnCompileStart(context.Context, string, string) {}
func (NoopPipelineHooks) OnCompileComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnVerify(context.Context, error) {}

// NoopCacheHooks ignores all events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores all events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

var (
	hooksMu       sync.RWMutex
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
)

// SetPipelineHooks registers h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
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

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the no-op hooks. Tests use it to undo registrations.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
