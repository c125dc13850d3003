// Package observability provides hooks for metrics and tracing.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends to the core packages.
// Components receive a [Hooks] value at construction and call it at the
// points described on each interface.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Pass the chosen implementation explicitly to each component
//
// There is no package-level registry. main builds one Hooks value, usually
// with [NewPrometheus], and hands it to the editor, the stores and the HTTP
// server.
//
// # Usage
//
//	reg := prometheus.NewRegistry()
//	hooks := observability.NewPrometheus(reg).Hooks()
//	ed := editor.New(editor.WithHooks(hooks))
//
// Components emit events through the hooks they were given:
//
//	h.Layout.OnLayoutStart(ctx, "hybrid", g.Len())
//	// ... run layout ...
//	h.Layout.OnLayoutComplete(ctx, "hybrid", stats, time.Since(start), nil)
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutStats summarizes a finished layout run.
type LayoutStats struct {
	Nodes         int
	Iterations    int
	OverlapPasses int
	MaxLevel      int
}

// LayoutHooks receives events from layout runs.
type LayoutHooks interface {
	OnLayoutStart(ctx context.Context, algorithm string, nodeCount int)
	OnLayoutComplete(ctx context.Context, algorithm string, stats LayoutStats, duration time.Duration, err error)
}

// =============================================================================
// Interaction Hooks
// =============================================================================

// Gesture names reported to InteractionHooks.
const (
	GestureDrag  = "drag"
	GestureLink  = "link"
	GestureClick = "click"
)

// InteractionHooks receives events from the pointer state machine. The
// machine is synchronous and has no context; neither do these hooks.
type InteractionHooks interface {
	// OnGestureStart records entry into a gesture state.
	OnGestureStart(gesture, nodeID string)

	// OnGestureComplete records a gesture that changed the model.
	OnGestureComplete(gesture, nodeID string)

	// OnGestureDiscard records a gesture that ended without a change.
	OnGestureDiscard(gesture, reason string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from topology store backends.
type StoreHooks interface {
	OnStoreOp(ctx context.Context, backend, op string, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API server.
type HTTPHooks interface {
	// OnRequest records a handled request. route is the matched pattern,
	// not the raw path.
	OnRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// Hook Bundle
// =============================================================================

// Hooks bundles one implementation per event category. Nil fields are
// replaced by no-ops in [Hooks.WithDefaults].
type Hooks struct {
	Layout      LayoutHooks
	Interaction InteractionHooks
	Cache       CacheHooks
	Store       StoreHooks
	HTTP        HTTPHooks
}

// Noop returns hooks that discard every event.
func Noop() Hooks {
	return Hooks{
		Layout:      NoopLayoutHooks{},
		Interaction: NoopInteractionHooks{},
		Cache:       NoopCacheHooks{},
		Store:       NoopStoreHooks{},
		HTTP:        NoopHTTPHooks{},
	}
}

// WithDefaults returns h with every nil field set to its no-op.
func (h Hooks) WithDefaults() Hooks {
	n := Noop()
	if h.Layout == nil {
		h.Layout = n.Layout
	}
	if h.Interaction == nil {
		h.Interaction = n.Interaction
	}
	if h.Cache == nil {
		h.Cache = n.Cache
	}
	if h.Store == nil {
		h.Store = n.Store
	}
	if h.HTTP == nil {
		h.HTTP = n.HTTP
	}
	return h
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, string, int) {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, string, LayoutStats, time.Duration, error) {
}

// NoopInteractionHooks is a no-op implementation of InteractionHooks.
type NoopInteractionHooks struct{}

func (NoopInteractionHooks) OnGestureStart(string, string)    {}
func (NoopInteractionHooks) OnGestureComplete(string, string) {}
func (NoopInteractionHooks) OnGestureDiscard(string, string)  {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreOp(context.Context, string, string, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, int, time.Duration) {}
