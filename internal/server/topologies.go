package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	nmerrors "github.com/matzehuels/netmap/pkg/errors"
	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/store"
)

// TopologyRequest saves or updates a named topology. A nil dataset means
// the editor's current one.
type TopologyRequest struct {
	Name    string         `json:"name" validate:"max=256"`
	Dataset *graph.Dataset `json:"dataset"`
}

// storeError tags backend failures that carry no sentinel as storage
// errors.
func storeError(err error) error {
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidName) {
		return err
	}
	return nmerrors.Wrap(nmerrors.ErrCodeStorage, err, "topology store: %v", err)
}

// requireStore answers 501 when no store is configured.
func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		s.respondError(w, nmerrors.New(nmerrors.ErrCodeUnsupported, "no topology store configured"))
		return false
	}
	return true
}

// datasetOrCurrent returns *ds, or a snapshot of the editor when ds is nil.
func (s *Server) datasetOrCurrent(ds *graph.Dataset) graph.Dataset {
	if ds != nil {
		return *ds
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Data()
}

func (s *Server) handleListTopologies(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	list, err := s.store.List(r.Context())
	if err != nil {
		s.respondError(w, storeError(err))
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	s.respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateTopology(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	var req TopologyRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	rec, err := s.store.Create(r.Context(), req.Name, s.datasetOrCurrent(req.Dataset))
	if err != nil {
		s.respondError(w, storeError(err))
		return
	}
	s.logger.Info("saved topology", "id", rec.ID, "name", rec.Name)
	s.respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetSaved(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, storeError(err))
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateSaved(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	var req TopologyRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	rec, err := s.store.Update(r.Context(), id, req.Name, s.datasetOrCurrent(req.Dataset))
	if err != nil {
		s.respondError(w, storeError(err))
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteSaved(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, storeError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleLoadSaved replaces the editor's topology with a saved one. The id
// may also be a record name.
func (s *Server) handleLoadSaved(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	rec, err := store.Resolve(r.Context(), s.store, chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, storeError(err))
		return
	}
	s.mu.Lock()
	report := s.editor.Load(rec.Dataset)
	s.mu.Unlock()
	s.logger.Info("loaded topology", "id", rec.ID, "name", rec.Name)
	s.respondJSON(w, http.StatusOK, loadResponse(report))
}
