package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/netmap/pkg/graph"
)

// watchDebounce collapses the burst of events editors emit on save.
const watchDebounce = 200 * time.Millisecond

// Watch reloads the dataset at path into the editor whenever the file is
// written, created or renamed into place. It watches the parent directory
// so replace-by-rename saves are seen. Watch blocks until ctx is done.
//
// A file that fails to parse is logged and skipped; the editor keeps its
// current topology.
func (s *Server) Watch(ctx context.Context, path string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	s.logger.Info("watching dataset", "path", path)

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watch error", "err", err)
		case <-timer.C:
			s.reload(path)
		}
	}
}

// reload reads path and loads it into the editor.
func (s *Server) reload(path string) {
	ds, err := graph.ReadDatasetFile(path)
	if err != nil {
		s.logger.Warn("reload failed", "path", path, "err", err)
		return
	}
	s.mu.Lock()
	report := s.editor.Load(ds)
	s.mu.Unlock()
	s.logger.Info("reloaded dataset",
		"path", path,
		"nodes", report.Nodes,
		"links", report.Links)
}
