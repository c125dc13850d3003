// Package store persists named topologies.
//
// A [Record] is one saved dataset with a generated id, a human name and
// timestamps. The [Store] interface has four backends:
//   - memory: in-process map for tests and ephemeral servers
//   - file: one JSON file per record, for CLI use
//   - redis: a hash per record plus a sorted index by creation time
//   - mongo: one document per record in a collection
//
// Backends are wrapped with [Instrument] to report operation timings to
// observability hooks.
//
// # Usage
//
//	s, err := store.Open(ctx, store.Config{Backend: "file", Path: dir})
//	rec, err := s.Create(ctx, "office", ds)
//	latest, err := s.Latest(ctx)
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	nmerrors "github.com/matzehuels/netmap/pkg/errors"
	"github.com/matzehuels/netmap/pkg/graph"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no record has the requested id or name.
	ErrNotFound = errors.New("topology not found")

	// ErrInvalidName is returned for names that fail validation.
	ErrInvalidName = errors.New("invalid topology name")
)

// Record is a saved topology.
type Record struct {
	ID        string        `json:"id" bson:"_id"`
	Name      string        `json:"name" bson:"name"`
	Dataset   graph.Dataset `json:"dataset" bson:"dataset"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updated_at"`
}

// Summary is the listing form of a record.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Nodes     int       `json:"nodes"`
	Links     int       `json:"links"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary returns the listing form of r.
func (r *Record) Summary() Summary {
	return Summary{
		ID:        r.ID,
		Name:      r.Name,
		Nodes:     r.Dataset.NodeCount(),
		Links:     r.Dataset.LinkCount(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Store is the topology persistence interface.
type Store interface {
	// Create saves ds under name and returns the new record.
	Create(ctx context.Context, name string, ds graph.Dataset) (*Record, error)

	// Get returns the record with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// Update replaces the dataset of an existing record. A non-empty name
	// renames it.
	Update(ctx context.Context, id, name string, ds graph.Dataset) (*Record, error)

	// Delete removes a record. Deleting a missing id returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List returns all records, newest first.
	List(ctx context.Context) ([]Summary, error)

	// Latest returns the most recently created record, or ErrNotFound.
	Latest(ctx context.Context) (*Record, error)

	// Close releases backend resources.
	Close() error
}

// Resolve finds a record by id or, failing that, by name. When several
// records share a name the newest wins.
func Resolve(ctx context.Context, s Store, ref string) (*Record, error) {
	if _, err := uuid.Parse(ref); err == nil {
		rec, err := s.Get(ctx, ref)
		if !errors.Is(err, ErrNotFound) {
			return rec, err
		}
	}
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, sum := range list {
		if sum.Name == ref {
			return s.Get(ctx, sum.ID)
		}
	}
	return nil, ErrNotFound
}

// =============================================================================
// Shared helpers
// =============================================================================

// newRecord builds a record with a fresh id and timestamps.
func newRecord(name string, ds graph.Dataset, now time.Time) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Dataset:   ds,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// apply updates rec in place.
func apply(rec *Record, name string, ds graph.Dataset, now time.Time) {
	if name = strings.TrimSpace(name); name != "" {
		rec.Name = name
	}
	rec.Dataset = ds
	rec.UpdatedAt = now
}

// sortNewestFirst orders summaries by creation time, newest first, with
// the id as a tie break.
func sortNewestFirst(list []Summary) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}

// validateName checks a name supplied to Create or Update.
func validateName(name string, required bool) error {
	if name == "" && !required {
		return nil
	}
	if err := nmerrors.ValidateTopologyName(name); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidName, nmerrors.UserMessage(err))
	}
	return nil
}
