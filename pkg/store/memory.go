package store

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/netmap/pkg/graph"
)

// MemoryStore keeps records in a map. Records are copied in and out so
// callers cannot mutate stored state.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record), now: time.Now}
}

func (s *MemoryStore) Create(_ context.Context, name string, ds graph.Dataset) (*Record, error) {
	if err := validateName(name, true); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := newRecord(name, ds, s.now())
	s.records[rec.ID] = clone(rec)
	return rec, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(rec), nil
}

func (s *MemoryStore) Update(_ context.Context, id, name string, ds graph.Dataset) (*Record, error) {
	if err := validateName(name, false); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	apply(rec, name, cloneDataset(ds), s.now())
	return clone(rec), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}

func (s *MemoryStore) List(context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec.Summary())
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) Latest(ctx context.Context) (*Record, error) {
	list, _ := s.List(ctx)
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, list[0].ID)
}

func (s *MemoryStore) Close() error { return nil }

func clone(r *Record) *Record {
	c := *r
	c.Dataset = cloneDataset(r.Dataset)
	return &c
}

func cloneDataset(ds graph.Dataset) graph.Dataset {
	out := graph.Dataset{
		Nodes: make([]graph.Node, len(ds.Nodes)),
		Links: append([]graph.Link(nil), ds.Links...),
	}
	for i, n := range ds.Nodes {
		if n.X != nil {
			n.X = graph.Float(*n.X)
		}
		if n.Y != nil {
			n.Y = graph.Float(*n.Y)
		}
		out.Nodes[i] = n
	}
	return out
}

var _ Store = (*MemoryStore)(nil)
