package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()
	h := Noop()

	h.Layout.OnLayoutStart(ctx, "hybrid", 100)
	h.Layout.OnLayoutComplete(ctx, "hybrid", LayoutStats{Nodes: 100}, time.Second, nil)

	h.Interaction.OnGestureStart(GestureDrag, "core-1")
	h.Interaction.OnGestureComplete(GestureDrag, "core-1")
	h.Interaction.OnGestureDiscard(GestureLink, "self-link")

	h.Cache.OnCacheHit(ctx, "layout")
	h.Cache.OnCacheMiss(ctx, "layout")
	h.Cache.OnCacheSet(ctx, "layout", 1024)

	h.Store.OnStoreOp(ctx, "file", "get", time.Millisecond, nil)
	h.HTTP.OnRequest(ctx, "GET", "/api/topology", 200, time.Millisecond)
}

func TestWithDefaultsFillsNil(t *testing.T) {
	custom := &testLayoutHooks{}
	h := Hooks{Layout: custom}.WithDefaults()

	if h.Layout != custom {
		t.Error("WithDefaults should keep explicit hooks")
	}
	if _, ok := h.Interaction.(NoopInteractionHooks); !ok {
		t.Error("Interaction should default to NoopInteractionHooks")
	}
	if _, ok := h.Cache.(NoopCacheHooks); !ok {
		t.Error("Cache should default to NoopCacheHooks")
	}
	if _, ok := h.Store.(NoopStoreHooks); !ok {
		t.Error("Store should default to NoopStoreHooks")
	}
	if _, ok := h.HTTP.(NoopHTTPHooks); !ok {
		t.Error("HTTP should default to NoopHTTPHooks")
	}
}

func TestPrometheusHooks(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)
	h := p.Hooks()

	h.Layout.OnLayoutStart(ctx, "hybrid", 12)
	h.Layout.OnLayoutComplete(ctx, "hybrid", LayoutStats{OverlapPasses: 3}, time.Millisecond, nil)
	h.Layout.OnLayoutComplete(ctx, "grid", LayoutStats{}, time.Millisecond, errors.New("boom"))

	h.Interaction.OnGestureStart(GestureLink, "a")
	h.Interaction.OnGestureDiscard(GestureLink, "self-link")
	h.Interaction.OnGestureComplete(GestureDrag, "a")

	h.Cache.OnCacheHit(ctx, "layout")
	h.Cache.OnCacheMiss(ctx, "layout")
	h.Cache.OnCacheMiss(ctx, "layout")
	h.Cache.OnCacheSet(ctx, "layout", 512)

	h.Store.OnStoreOp(ctx, "redis", "save", time.Millisecond, nil)
	h.HTTP.OnRequest(ctx, "PUT", "/api/topology", 204, time.Millisecond)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"layout ok", testutil.ToFloat64(p.layoutRuns.WithLabelValues("hybrid", "ok")), 1},
		{"layout error", testutil.ToFloat64(p.layoutRuns.WithLabelValues("grid", "error")), 1},
		{"gesture started", testutil.ToFloat64(p.gesturesStarted.WithLabelValues(GestureLink)), 1},
		{"gesture discarded", testutil.ToFloat64(p.gesturesDropped.WithLabelValues(GestureLink, "self-link")), 1},
		{"gesture completed", testutil.ToFloat64(p.gesturesDone.WithLabelValues(GestureDrag)), 1},
		{"cache hit", testutil.ToFloat64(p.cacheRequests.WithLabelValues("layout", "hit")), 1},
		{"cache miss", testutil.ToFloat64(p.cacheRequests.WithLabelValues("layout", "miss")), 2},
		{"cache bytes", testutil.ToFloat64(p.cacheBytes), 512},
		{"store op", testutil.ToFloat64(p.storeOps.WithLabelValues("redis", "save", "ok")), 1},
		{"http", testutil.ToFloat64(p.httpRequests.WithLabelValues("PUT", "/api/topology", "204")), 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestNewPrometheusRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheus(reg)

	defer func() {
		if recover() == nil {
			t.Error("registering twice on one registry should panic")
		}
	}()
	NewPrometheus(reg)
}

type testLayoutHooks struct{ NoopLayoutHooks }
