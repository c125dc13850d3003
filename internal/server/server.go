// Package server exposes an editor over HTTP.
//
// One [editor.Editor] backs the whole server. Every request that reads or
// mutates it takes the same mutex, so the model sees one logical actor at a
// time. Named topologies are persisted through a [store.Store], and an
// optional file watcher reloads a dataset from disk when it changes.
//
// # Routes
//
//	GET    /api/topology                  current dataset
//	PUT    /api/topology                  replace the dataset
//	POST   /api/topology/beautify         hybrid layout
//	POST   /api/topology/arrange/{alg}    named layout
//	POST   /api/nodes                     add a node
//	DELETE /api/nodes/{id}                delete a node and its links
//	POST   /api/links                     add a link
//	DELETE /api/links?source=&target=     delete a link
//	POST   /api/events                    pointer events -> effects
//	POST   /api/viewport/{fit,reset,zoom} viewport transitions
//	/api/topologies[/{id}[/load]]         saved topologies
//	GET    /healthz, /metrics
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/netmap/pkg/editor"
	"github.com/matzehuels/netmap/pkg/observability"
	"github.com/matzehuels/netmap/pkg/store"
)

// Default timeouts.
const (
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// Config holds listener settings.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// WatchPath, when set, is a dataset file reloaded into the editor on
	// every change.
	WatchPath string
}

// Server serves one editor and one topology store.
//
// The zero value is not usable - use New to create a valid Server.
type Server struct {
	cfg Config

	mu     sync.Mutex
	editor *editor.Editor

	store    store.Store
	logger   *log.Logger
	hooks    observability.Hooks
	gatherer prometheus.Gatherer

	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithHooks sets the observability hooks used for request metrics.
func WithHooks(h observability.Hooks) Option {
	return func(s *Server) { s.hooks = h }
}

// WithMetrics serves g on /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// New creates a server around ed and st. st may be nil, in which case the
// saved-topology routes answer 501.
func New(cfg Config, ed *editor.Editor, st store.Store, opts ...Option) *Server {
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	s := &Server{cfg: cfg, editor: ed, store: st}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.hooks = s.hooks.WithDefaults()
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/topology", func(r chi.Router) {
			r.Get("/", s.handleGetTopology)
			r.Put("/", s.handlePutTopology)
			r.Post("/beautify", s.handleBeautify)
			r.Post("/arrange/{algorithm}", s.handleArrange)
		})
		r.Post("/nodes", s.handleAddNode)
		r.Delete("/nodes/{id}", s.handleDeleteNode)
		r.Post("/links", s.handleAddLink)
		r.Delete("/links", s.handleDeleteLink)
		r.Post("/events", s.handleEvents)
		r.Route("/viewport", func(r chi.Router) {
			r.Post("/fit", s.handleFit)
			r.Post("/reset", s.handleReset)
			r.Post("/zoom", s.handleZoom)
		})
		r.Route("/topologies", func(r chi.Router) {
			r.Get("/", s.handleListTopologies)
			r.Post("/", s.handleCreateTopology)
			r.Get("/{id}", s.handleGetSaved)
			r.Put("/{id}", s.handleUpdateSaved)
			r.Delete("/{id}", s.handleDeleteSaved)
			r.Post("/{id}/load", s.handleLoadSaved)
		})
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully. The file
// watcher, when configured, runs alongside the listener; the first error
// from either stops both.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(sctx)
	})
	if s.cfg.WatchPath != "" {
		g.Go(func() error { return s.Watch(ctx, s.cfg.WatchPath) })
	}
	return g.Wait()
}
