package store

import (
	"context"
	"time"

	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/observability"
)

// Store operation names reported to hooks.
const (
	OpCreate = "create"
	OpGet    = "get"
	OpUpdate = "update"
	OpDelete = "delete"
	OpList   = "list"
	OpLatest = "latest"
)

type instrumented struct {
	inner   Store
	backend string
	hooks   observability.StoreHooks
}

// Instrument wraps s so every operation is reported to hooks under the
// given backend name. A nil hooks value returns s unchanged.
func Instrument(s Store, backend string, hooks observability.StoreHooks) Store {
	if hooks == nil {
		return s
	}
	return &instrumented{inner: s, backend: backend, hooks: hooks}
}

func (s *instrumented) observe(ctx context.Context, op string, start time.Time, err error) {
	s.hooks.OnStoreOp(ctx, s.backend, op, time.Since(start), err)
}

func (s *instrumented) Create(ctx context.Context, name string, ds graph.Dataset) (*Record, error) {
	start := time.Now()
	rec, err := s.inner.Create(ctx, name, ds)
	s.observe(ctx, OpCreate, start, err)
	return rec, err
}

func (s *instrumented) Get(ctx context.Context, id string) (*Record, error) {
	start := time.Now()
	rec, err := s.inner.Get(ctx, id)
	s.observe(ctx, OpGet, start, err)
	return rec, err
}

func (s *instrumented) Update(ctx context.Context, id, name string, ds graph.Dataset) (*Record, error) {
	start := time.Now()
	rec, err := s.inner.Update(ctx, id, name, ds)
	s.observe(ctx, OpUpdate, start, err)
	return rec, err
}

func (s *instrumented) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.inner.Delete(ctx, id)
	s.observe(ctx, OpDelete, start, err)
	return err
}

func (s *instrumented) List(ctx context.Context) ([]Summary, error) {
	start := time.Now()
	list, err := s.inner.List(ctx)
	s.observe(ctx, OpList, start, err)
	return list, err
}

func (s *instrumented) Latest(ctx context.Context) (*Record, error) {
	start := time.Now()
	rec, err := s.inner.Latest(ctx)
	s.observe(ctx, OpLatest, start, err)
	return rec, err
}

func (s *instrumented) Close() error { return s.inner.Close() }
