package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/netmap/pkg/graph"
)

// FileStore is a file-based topology store for CLI applications.
// Each record is stored as <id>.json in the base directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
	now     func() time.Time
}

// NewFileStore creates a new file-based store.
// If baseDir is empty, defaults to the netmap directory under the user's
// data home.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{baseDir: baseDir, now: time.Now}, nil
}

// DefaultDir returns $XDG_DATA_HOME/netmap/topologies, falling back to
// ~/.local/share/netmap/topologies.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "netmap", "topologies"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "netmap", "topologies"), nil
}

// recordPath returns the file for id. Ids that are not UUIDs cannot name a
// stored record and never reach the filesystem.
func (s *FileStore) recordPath(id string) (string, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return filepath.Join(s.baseDir, id+".json"), true
}

func (s *FileStore) read(id string) (*Record, error) {
	path, ok := s.recordPath(id)
	if !ok {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read record file: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse record %s: %w", id, err)
	}
	rec.Dataset = graph.Normalize(rec.Dataset)
	return &rec, nil
}

func (s *FileStore) write(rec *Record) error {
	path, ok := s.recordPath(rec.ID)
	if !ok {
		return fmt.Errorf("invalid record id %q", rec.ID)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write record file: %w", err)
	}
	return os.Rename(tmp, path)
}

func (s *FileStore) Create(_ context.Context, name string, ds graph.Dataset) (*Record, error) {
	if err := validateName(name, true); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := newRecord(name, ds, s.now())
	if err := s.write(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *FileStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(id)
}

func (s *FileStore) Update(_ context.Context, id, name string, ds graph.Dataset) (*Record, error) {
	if err := validateName(name, false); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read(id)
	if err != nil {
		return nil, err
	}
	apply(rec, name, ds, s.now())
	if err := s.write(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, ok := s.recordPath(id)
	if !ok {
		return ErrNotFound
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("remove record file: %w", err)
	}
	return nil
}

func (s *FileStore) List(context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}

	out := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		rec, err := s.read(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}
		out = append(out, rec.Summary())
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *FileStore) Latest(ctx context.Context) (*Record, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, list[0].ID)
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for record files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
