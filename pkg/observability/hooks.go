// Package observability provides hooks for metrics, tracing and logging.
//
// Libraries emit events through the registered hooks; the hooks default to
// no-ops, so instrumentation costs nothing until a binary registers an
// implementation at startup:
//
//	hooks := observability.NewLogHooks(logger)
//	observability.SetPipelineHooks(hooks)
//	observability.SetCacheHooks(hooks)
//
// Libraries call hooks around the work they do:
//
//	observability.Pipeline().OnParseStart(ctx, source, len(raw))
//	// ... parse and repair ...
//	observability.Pipeline().OnParseComplete(ctx, source, drawings, problems, elapsed)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from diagram parsing.
type PipelineHooks interface {
	// OnParseStart is called before a document of size bytes is parsed.
	// source names the document (a path, "stdin" or "api").
	OnParseStart(ctx context.Context, source string, size int)

	// OnParseComplete is called after parsing and repair. problems is the
	// length of the error list.
	OnParseComplete(ctx context.Context, source string, drawings, problems int, duration time.Duration)
}

// CacheHooks receives events from the pipeline's result cache. keyType is
// the kind of entry ("parse").
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	// OnCacheSet reports an entry of size bytes being stored.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP API server.
type HTTPHooks interface {
	// OnRequest records an incoming request before routing.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response written for a request. route is the
	// matched pattern, or the raw path when nothing matched.
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// NoopPipelineHooks ignores every pipeline event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, string, int)                        {}
func (NoopPipelineHooks) OnParseComplete(context.Context, string, int, int, time.Duration) {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every HTTP event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// hookSet is one consistent set of registered hooks. Setters swap in a
// modified copy so readers never observe a partial update.
type hookSet struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var (
	current atomic.Pointer[hookSet]
	swapMu  sync.Mutex
)

func init() { Reset() }

func update(fn func(*hookSet)) {
	swapMu.Lock()
	defer swapMu.Unlock()
	next := *current.Load()
	fn(&next)
	current.Store(&next)
}

// SetPipelineHooks registers custom pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(s *hookSet) { s.pipeline = h })
	}
}

// SetCacheHooks registers custom cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(s *hookSet) { s.cache = h })
	}
}

// SetHTTPHooks registers custom HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(s *hookSet) { s.http = h })
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current.Load().http }

// Reset restores all hooks to their no-op defaults.
func Reset() {
	swapMu.Lock()
	defer swapMu.Unlock()
	current.Store(&hookSet{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		http:     NoopHTTPHooks{},
	})
}
