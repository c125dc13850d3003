package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus implements every hook interface with Prometheus collectors.
// Create it with NewPrometheus; the zero value is not usable.
type Prometheus struct {
	layoutRuns      *prometheus.CounterVec
	layoutDuration  *prometheus.HistogramVec
	layoutNodes     prometheus.Histogram
	layoutPasses    prometheus.Histogram
	gesturesStarted *prometheus.CounterVec
	gesturesDone    *prometheus.CounterVec
	gesturesDropped *prometheus.CounterVec
	cacheRequests   *prometheus.CounterVec
	cacheBytes      prometheus.Counter
	storeOps        *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewPrometheus registers netmap's collectors with reg and returns hooks
// that feed them.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		layoutRuns: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netmap_layout_runs_total",
				Help: "Total number of layout runs",
			},
			[]string{"algorithm", "status"},
		),
		layoutDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "netmap_layout_duration_seconds",
				Help:    "Layout run duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"algorithm"},
		),
		layoutNodes: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "netmap_layout_nodes",
				Help:    "Number of nodes per layout run",
				Buckets: prometheus.ExponentialBuckets(10, 2, 8),
			},
		),
		layoutPasses: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "netmap_layout_overlap_passes",
				Help:    "Overlap resolution passes per hybrid layout run",
				Buckets: []float64{1, 2, 5, 10, 15, 20, 25},
			},
		),
		gesturesStarted: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netmap_gestures_started_total",
				Help: "Pointer gestures started",
			},
			[]string{"gesture"},
		),
		gesturesDone: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netmap_gestures_completed_total",
				Help: "Pointer gestures that changed the model",
			},
			[]string{"gesture"},
		),
		gesturesDropped: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netmap_gestures_discarded_total",
				Help: "Pointer gestures that ended without a change",
			},
			[]string{"gesture", "reason"},
		),
		cacheRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netmap_cache_requests_total",
				Help: "Layout cache lookups",
			},
			[]string{"key_type", "result"},
		),
		cacheBytes: f.NewCounter(
			prometheus.CounterOpts{
				Name: "netmap_cache_written_bytes_total",
				Help: "Bytes written to the layout cache",
			},
		),
		storeOps: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netmap_store_operations_total",
				Help: "Topology store operations",
			},
			[]string{"backend", "operation", "status"},
		),
		storeDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "netmap_store_operation_duration_seconds",
				Help:    "Topology store operation duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"backend", "operation"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netmap_http_requests_total",
				Help: "HTTP API requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "netmap_http_request_duration_seconds",
				Help:    "HTTP API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Hooks returns p as a bundle for every category.
func (p *Prometheus) Hooks() Hooks {
	return Hooks{Layout: p, Interaction: p, Cache: p, Store: p, HTTP: p}
}

func (p *Prometheus) OnLayoutStart(_ context.Context, _ string, nodeCount int) {
	p.layoutNodes.Observe(float64(nodeCount))
}

func (p *Prometheus) OnLayoutComplete(_ context.Context, algorithm string, stats LayoutStats, d time.Duration, err error) {
	p.layoutRuns.WithLabelValues(algorithm, status(err)).Inc()
	p.layoutDuration.WithLabelValues(algorithm).Observe(d.Seconds())
	if stats.OverlapPasses > 0 {
		p.layoutPasses.Observe(float64(stats.OverlapPasses))
	}
}

func (p *Prometheus) OnGestureStart(gesture, _ string) {
	p.gesturesStarted.WithLabelValues(gesture).Inc()
}

func (p *Prometheus) OnGestureComplete(gesture, _ string) {
	p.gesturesDone.WithLabelValues(gesture).Inc()
}

func (p *Prometheus) OnGestureDiscard(gesture, reason string) {
	p.gesturesDropped.WithLabelValues(gesture, reason).Inc()
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, _ string, size int) {
	p.cacheBytes.Add(float64(size))
}

func (p *Prometheus) OnStoreOp(_ context.Context, backend, op string, d time.Duration, err error) {
	p.storeOps.WithLabelValues(backend, op, status(err)).Inc()
	p.storeDuration.WithLabelValues(backend, op).Observe(d.Seconds())
}

func (p *Prometheus) OnRequest(_ context.Context, method, route string, code int, d time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
