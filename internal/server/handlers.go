package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/netmap/pkg/buildinfo"
	nmerrors "github.com/matzehuels/netmap/pkg/errors"
	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/interact"
	"github.com/matzehuels/netmap/pkg/topology"
)

// =============================================================================
// Request and response bodies
// =============================================================================

// NodeRequest adds a node. An empty ID gets a generated one; missing
// coordinates get a random position near the canvas centre.
type NodeRequest struct {
	ID     string   `json:"id" validate:"max=256"`
	Type   string   `json:"type" validate:"omitempty,oneof=pc laptop server router switch firewall printer unknown"`
	Label  string   `json:"label" validate:"max=256"`
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Status string   `json:"status" validate:"omitempty,oneof=online offline"`
}

// LinkRequest adds a link.
type LinkRequest struct {
	Source string `json:"source" validate:"required,max=256"`
	Target string `json:"target" validate:"required,max=256,nefield=Source"`
}

// EventsRequest is a batch of pointer events. Screen marks coordinates as
// screen space, converted through the current viewport.
type EventsRequest struct {
	Events []interact.Event `json:"events" validate:"required,min=1"`
	Screen bool             `json:"screen"`
}

// ZoomRequest sets the viewport scale.
type ZoomRequest struct {
	Scale float64 `json:"scale" validate:"gt=0"`
}

// LoadResponse reports what a dataset load kept and dropped.
type LoadResponse struct {
	Nodes        int `json:"nodes"`
	Links        int `json:"links"`
	DroppedNodes int `json:"droppedNodes"`
	DroppedLinks int `json:"droppedLinks"`
	Placed       int `json:"placed"`
}

// NodeResponse is a node as stored in the model.
type NodeResponse struct {
	ID     string           `json:"id"`
	Type   graph.DeviceType `json:"type"`
	Label  string           `json:"label"`
	X      float64          `json:"x"`
	Y      float64          `json:"y"`
	Status graph.Status     `json:"status"`
}

// LinkResponse is a link by node ids.
type LinkResponse struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// EventsResponse lists the effects of each event, in order, and the state
// the machine ended in.
type EventsResponse struct {
	Effects [][]interact.Encoded `json:"effects"`
	State   interact.State       `json:"state"`
}

// HealthResponse is the /healthz body.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Nodes   int    `json:"nodes"`
	Links   int    `json:"links"`
}

func loadResponse(r topology.LoadReport) LoadResponse {
	return LoadResponse{
		Nodes:        r.Nodes,
		Links:        r.Links,
		DroppedNodes: r.DroppedNodes,
		DroppedLinks: r.DroppedLinks,
		Placed:       r.Placed,
	}
}

func nodeResponse(n topology.Node) NodeResponse {
	return NodeResponse{ID: n.ID, Type: n.Type, Label: n.Label, X: n.X, Y: n.Y, Status: n.Status}
}

// =============================================================================
// Health
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	info := buildinfo.Get()
	s.mu.Lock()
	g := s.editor.Graph()
	resp := HealthResponse{
		Status:  "ok",
		Version: info.Version,
		Commit:  info.Commit,
		Nodes:   g.Len(),
		Links:   g.LinkCount(),
	}
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Topology
// =============================================================================

func (s *Server) handleGetTopology(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ds := s.editor.Data()
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, ds)
}

func (s *Server) handlePutTopology(w http.ResponseWriter, r *http.Request) {
	var ds graph.Dataset
	if err := decode(r, &ds); err != nil {
		s.respondError(w, err)
		return
	}
	s.mu.Lock()
	report := s.editor.Load(ds)
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, loadResponse(report))
}

func (s *Server) handleBeautify(w http.ResponseWriter, r *http.Request) {
	s.arrange(w, r, graph.AlgorithmHybrid)
}

func (s *Server) handleArrange(w http.ResponseWriter, r *http.Request) {
	s.arrange(w, r, chi.URLParam(r, "algorithm"))
}

// arrange runs a layout and answers with the exported layout: positions,
// node hierarchy and max level, plus the laid-out dataset.
func (s *Server) arrange(w http.ResponseWriter, r *http.Request, algorithm string) {
	s.mu.Lock()
	res, err := s.editor.Arrange(r.Context(), algorithm)
	var out graph.Layout
	if err == nil {
		out = res.Export(s.editor.LayoutOptions(), s.editor.Data())
	}
	s.mu.Unlock()
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, out)
}

// =============================================================================
// Nodes and links
// =============================================================================

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	var req NodeRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if req.ID != "" {
		if err := nmerrors.ValidateNodeID(req.ID); err != nil {
			s.respondError(w, err)
			return
		}
	}

	s.mu.Lock()
	n, ok := s.editor.AddNode(graph.Node{
		ID:     req.ID,
		Type:   graph.ParseDeviceType(req.Type),
		Label:  req.Label,
		X:      req.X,
		Y:      req.Y,
		Status: graph.ParseStatus(req.Status),
	})
	s.mu.Unlock()
	if !ok {
		s.respondError(w, nmerrors.New(nmerrors.ErrCodeConflict, "node %q already exists", req.ID))
		return
	}
	s.respondJSON(w, http.StatusCreated, nodeResponse(n))
}

func (s *Server) handleDeleteNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	ok := s.editor.DeleteNode(id)
	s.mu.Unlock()
	if !ok {
		s.respondError(w, nmerrors.New(nmerrors.ErrCodeNotFound, "node %q not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddLink(w http.ResponseWriter, r *http.Request) {
	var req LinkRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	s.mu.Lock()
	g := s.editor.Graph()
	missing := ""
	switch {
	case !g.Has(req.Source):
		missing = req.Source
	case !g.Has(req.Target):
		missing = req.Target
	}
	var (
		l  topology.StoredLink
		ok bool
	)
	if missing == "" {
		l, ok = s.editor.AddLink(req.Source, req.Target)
	}
	s.mu.Unlock()

	switch {
	case missing != "":
		s.respondError(w, nmerrors.New(nmerrors.ErrCodeNotFound, "node %q not found", missing))
	case !ok:
		s.respondError(w, nmerrors.New(nmerrors.ErrCodeConflict, "%s and %s are already linked", req.Source, req.Target))
	default:
		s.respondJSON(w, http.StatusCreated, LinkResponse{Source: l.Source, Target: l.Target})
	}
}

func (s *Server) handleDeleteLink(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	source, target := q.Get("source"), q.Get("target")
	if source == "" || target == "" {
		s.respondError(w, nmerrors.New(nmerrors.ErrCodeInvalidInput, "source and target are required"))
		return
	}
	s.mu.Lock()
	ok := s.editor.DeleteLink(source, target)
	s.mu.Unlock()
	if !ok {
		s.respondError(w, nmerrors.New(nmerrors.ErrCodeNotFound, "no link from %q to %q", source, target))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Interaction and viewport
// =============================================================================

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	var req EventsRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	resp := EventsResponse{Effects: make([][]interact.Encoded, len(req.Events))}
	s.mu.Lock()
	for i, ev := range req.Events {
		var effects []interact.Effect
		if req.Screen {
			effects = s.editor.HandleScreen(ev)
		} else {
			effects = s.editor.Handle(ev)
		}
		resp.Effects[i] = interact.Encode(effects)
	}
	resp.State = s.editor.State()
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tr, ok := s.editor.FitView()
	s.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.respondJSON(w, http.StatusOK, tr)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tr := s.editor.ResetZoom()
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, tr)
}

func (s *Server) handleZoom(w http.ResponseWriter, r *http.Request) {
	var req ZoomRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	s.mu.Lock()
	tr := s.editor.ZoomTo(req.Scale)
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, tr)
}
