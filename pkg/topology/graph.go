package topology

import (
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/netmap/pkg/graph"
)

// DefaultCanvas is the canvas used when none is configured.
var DefaultCanvas = Canvas{Width: 800, Height: 600}

// addJitter is the half-width of the square around the canvas centre in which
// AddNode places nodes that arrive without a position.
const addJitter = 50

// Canvas is the drawing area the model places unpositioned nodes on.
type Canvas struct {
	Width  float64
	Height float64
}

// Center returns the midpoint of the canvas.
func (c Canvas) Center() graph.Point { return graph.Point{X: c.Width / 2, Y: c.Height / 2} }

// LoadReport summarizes a [Graph.Load]. Dropped items are not errors; they
// are counted so callers can log them.
type LoadReport struct {
	Nodes        int
	Links        int
	DroppedNodes int // empty or duplicate ids
	DroppedLinks int // links naming an unknown node
	Placed       int // nodes that received a generated position
}

// Graph is the topology model: an arena of node records keyed by id and the
// links between them. It is the single source of truth that layout and
// interaction code mutate.
//
// The zero value is not usable - use New to create a valid Graph.
// Graph is not safe for concurrent use; it assumes one logical actor at a
// time.
type Graph struct {
	canvas    Canvas
	nodes     []*Node
	index     map[string]int
	links     []ResolvedLink
	selected  string
	callbacks Callbacks
	rng       *rand.Rand
	newID     func() string
}

// Option configures a Graph.
type Option func(*Graph)

// WithCanvas sets the canvas used for initial placement.
func WithCanvas(c Canvas) Option {
	return func(g *Graph) {
		if c.Width > 0 && c.Height > 0 {
			g.canvas = c
		}
	}
}

// WithCallbacks registers host notifications.
func WithCallbacks(cb Callbacks) Option {
	return func(g *Graph) { g.callbacks = cb }
}

// WithRand sets the random source used for AddNode jitter.
func WithRand(r *rand.Rand) Option {
	return func(g *Graph) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithIDGenerator sets the function that names nodes added without an id.
func WithIDGenerator(fn func() string) Option {
	return func(g *Graph) {
		if fn != nil {
			g.newID = fn
		}
	}
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		canvas: DefaultCanvas,
		index:  make(map[string]int),
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetCallbacks replaces the registered host notifications.
func (g *Graph) SetCallbacks(cb Callbacks) { g.callbacks = cb }

// Canvas returns the canvas used for initial placement.
func (g *Graph) Canvas() Canvas { return g.canvas }

// =============================================================================
// Mutations
// =============================================================================

// Load replaces all state with ds.
//
// Nodes without x or y are placed on a circle of radius min(W, H)/3 around
// the canvas centre, at angle 2π·i/n for input index i of n nodes. Nodes with
// an empty or repeated id are dropped. Links whose source or target is not a
// loaded node are dropped silently. A previous selection is cleared and
// reported through OnSelectionChanged.
func (g *Graph) Load(ds graph.Dataset) LoadReport {
	var report LoadReport

	hadSelection := g.selected != ""
	g.nodes = make([]*Node, 0, len(ds.Nodes))
	g.index = make(map[string]int, len(ds.Nodes))
	g.selected = ""

	center := g.canvas.Center()
	radius := math.Min(g.canvas.Width, g.canvas.Height) / 3
	count := float64(len(ds.Nodes))

	for i, wn := range ds.Nodes {
		if wn.ID == "" {
			report.DroppedNodes++
			continue
		}
		if _, dup := g.index[wn.ID]; dup {
			report.DroppedNodes++
			continue
		}

		n := &Node{
			ID:     wn.ID,
			Type:   graph.ParseDeviceType(string(wn.Type)),
			Label:  wn.Label,
			Status: graph.ParseStatus(string(wn.Status)),
		}
		angle := float64(i) / count * 2 * math.Pi
		if wn.X != nil {
			n.X = *wn.X
		} else {
			n.X = center.X + radius*math.Cos(angle)
		}
		if wn.Y != nil {
			n.Y = *wn.Y
		} else {
			n.Y = center.Y + radius*math.Sin(angle)
		}
		if !wn.HasPosition() {
			report.Placed++
		}

		g.index[n.ID] = len(g.nodes)
		g.nodes = append(g.nodes, n)
	}

	stored := make([]StoredLink, len(ds.Links))
	for i, l := range ds.Links {
		stored[i] = StoredLink{Source: l.Source, Target: l.Target}
	}
	g.links, report.DroppedLinks = Resolve(stored, g.lookup)

	report.Nodes = len(g.nodes)
	report.Links = len(g.links)
	if hadSelection {
		g.callbacks.selectionChanged("")
	}
	g.callbacks.changed()
	return report
}

// AddNode inserts a node and returns a copy of the stored record.
//
// A node without a position is placed near the canvas centre with a random
// offset of up to ±50 on each axis. A node without an id receives a generated
// one. AddNode returns false, and changes nothing, if the id is taken.
// It requests a re-render, never a re-layout.
func (g *Graph) AddNode(wn graph.Node) (Node, bool) {
	if wn.ID == "" {
		wn.ID = g.newID()
	}
	if _, exists := g.index[wn.ID]; exists {
		return Node{}, false
	}

	center := g.canvas.Center()
	n := &Node{
		ID:     wn.ID,
		Type:   graph.ParseDeviceType(string(wn.Type)),
		Label:  wn.Label,
		Status: graph.ParseStatus(string(wn.Status)),
	}
	if wn.X != nil {
		n.X = *wn.X
	} else {
		n.X = center.X + (g.rng.Float64()-0.5)*2*addJitter
	}
	if wn.Y != nil {
		n.Y = *wn.Y
	} else {
		n.Y = center.Y + (g.rng.Float64()-0.5)*2*addJitter
	}

	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	g.callbacks.changed()
	return *n, true
}

// DeleteNode removes the node and every link that touches it. It returns
// false if id is unknown.
func (g *Graph) DeleteNode(id string) bool {
	i, ok := g.index[id]
	if !ok {
		return false
	}

	g.nodes = slices.Delete(g.nodes, i, i+1)
	g.reindex()
	g.links = slices.DeleteFunc(g.links, func(l ResolvedLink) bool {
		return l.Stored().Touches(id)
	})

	g.callbacks.nodeDeleted(id)
	if g.selected == id {
		g.selected = ""
		g.callbacks.selectionChanged("")
	}
	g.callbacks.changed()
	return true
}

// AddLink connects source to target and returns the stored link.
//
// It is a no-op returning false when either endpoint is unknown, when
// source equals target, or when any link already joins the same unordered
// pair: A→B and B→A count as the same edge.
func (g *Graph) AddLink(sourceID, targetID string) (StoredLink, bool) {
	if sourceID == targetID {
		return StoredLink{}, false
	}
	for _, l := range g.links {
		if l.Stored().SamePair(sourceID, targetID) {
			return StoredLink{}, false
		}
	}
	src, ok := g.lookup(sourceID)
	if !ok {
		return StoredLink{}, false
	}
	tgt, ok := g.lookup(targetID)
	if !ok {
		return StoredLink{}, false
	}

	link := ResolvedLink{Source: src, Target: tgt}
	g.links = append(g.links, link)
	g.callbacks.linkCreated(link.Stored())
	g.callbacks.changed()
	return link.Stored(), true
}

// DeleteLink removes the first link going exactly from source to target.
// Unlike AddLink's duplicate check, direction matters here: deleting B→A
// does not remove a stored A→B.
func (g *Graph) DeleteLink(sourceID, targetID string) bool {
	i := slices.IndexFunc(g.links, func(l ResolvedLink) bool {
		return l.Source.ID == sourceID && l.Target.ID == targetID
	})
	if i < 0 {
		return false
	}

	g.links = slices.Delete(g.links, i, i+1)
	g.callbacks.linkDeleted(StoredLink{Source: sourceID, Target: targetID})
	g.callbacks.changed()
	return true
}

// MoveNode sets the node's position. A pinned node keeps its pin at the new
// position.
func (g *Graph) MoveNode(id string, x, y float64) bool {
	n, ok := g.lookup(id)
	if !ok {
		return false
	}
	n.X, n.Y = x, y
	if n.Pinned {
		n.FX, n.FY = x, y
	}
	return true
}

// SetPositions writes positions for the listed nodes. When pin is true the
// positions are also recorded as the settled pin values. Unknown ids are
// ignored.
func (g *Graph) SetPositions(positions map[string]graph.Point, pin bool) {
	for id, p := range positions {
		n, ok := g.lookup(id)
		if !ok {
			continue
		}
		n.X, n.Y = p.X, p.Y
		if pin {
			n.Pinned = true
			n.FX, n.FY = p.X, p.Y
		}
	}
	g.callbacks.changed()
}

// =============================================================================
// Selection
// =============================================================================

// Select makes id the only selected node. It reports whether the selection
// changed; unknown ids leave the selection untouched.
func (g *Graph) Select(id string) bool {
	target, ok := g.lookup(id)
	if !ok {
		return false
	}
	for _, n := range g.nodes {
		n.Selected = false
	}
	target.Selected = true
	if g.selected == id {
		return false
	}
	g.selected = id
	g.callbacks.selectionChanged(id)
	return true
}

// ClearSelection deselects every node and reports whether anything was
// selected.
func (g *Graph) ClearSelection() bool {
	for _, n := range g.nodes {
		n.Selected = false
	}
	if g.selected == "" {
		return false
	}
	g.selected = ""
	g.callbacks.selectionChanged("")
	return true
}

// Selected returns the selected node, if any.
func (g *Graph) Selected() (Node, bool) {
	if g.selected == "" {
		return Node{}, false
	}
	return g.Node(g.selected)
}

// =============================================================================
// Notifications
// =============================================================================

// Click selects the node and notifies the host. It reports whether id
// names a node.
func (g *Graph) Click(id string) bool {
	n, ok := g.lookup(id)
	if !ok {
		return false
	}
	g.Select(id)
	g.callbacks.nodeClick(*n)
	g.callbacks.changed()
	return true
}

// DoubleClick notifies the host without mutating the model.
func (g *Graph) DoubleClick(id string) bool {
	n, ok := g.lookup(id)
	if ok {
		g.callbacks.nodeDoubleClick(*n)
	}
	return ok
}

// ContextMenu notifies the host without mutating the model.
func (g *Graph) ContextMenu(id string) bool {
	n, ok := g.lookup(id)
	if ok {
		g.callbacks.nodeContextMenu(*n)
	}
	return ok
}

// =============================================================================
// Queries
// =============================================================================

// Data returns a plain snapshot of the model. Nodes carry only id, type,
// label, position and status; links carry only ids.
func (g *Graph) Data() graph.Dataset {
	ds := graph.Dataset{
		Nodes: make([]graph.Node, len(g.nodes)),
		Links: make([]graph.Link, len(g.links)),
	}
	for i, n := range g.nodes {
		ds.Nodes[i] = n.wire()
	}
	for i, l := range g.links {
		ds.Links[i] = graph.Link{Source: l.Source.ID, Target: l.Target.ID}
	}
	return ds
}

// Node returns a copy of the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.lookup(id)
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Has reports whether id names a node.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Nodes returns copies of all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = *n
	}
	return out
}

// IDs returns all node ids in insertion order.
func (g *Graph) IDs() []string {
	out := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.ID
	}
	return out
}

// Positions returns the live position of every node.
func (g *Graph) Positions() map[string]graph.Point {
	out := make(map[string]graph.Point, len(g.nodes))
	for _, n := range g.nodes {
		out[n.ID] = n.Position()
	}
	return out
}

// Links returns all links in insertion order, by id.
func (g *Graph) Links() []StoredLink {
	out := make([]StoredLink, len(g.links))
	for i, l := range g.links {
		out[i] = l.Stored()
	}
	return out
}

// Segments returns the current geometry of every link touching id.
func (g *Graph) Segments(id string) []Segment {
	var out []Segment
	for _, l := range g.links {
		if l.Source.ID != id && l.Target.ID != id {
			continue
		}
		out = append(out, Segment{
			Source: l.Source.ID,
			Target: l.Target.ID,
			From:   l.Source.Position(),
			To:     l.Target.Position(),
		})
	}
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// LinkCount returns the number of links.
func (g *Graph) LinkCount() int { return len(g.links) }

// Bounds returns the bounding box of all node centres. ok is false for an
// empty graph.
func (g *Graph) Bounds() (lo, hi graph.Point, ok bool) {
	if len(g.nodes) == 0 {
		return graph.Point{}, graph.Point{}, false
	}
	lo = graph.Point{X: math.Inf(1), Y: math.Inf(1)}
	hi = graph.Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, n := range g.nodes {
		lo.X, lo.Y = math.Min(lo.X, n.X), math.Min(lo.Y, n.Y)
		hi.X, hi.Y = math.Max(hi.X, n.X), math.Max(hi.Y, n.Y)
	}
	return lo, hi, true
}

// =============================================================================
// Internal Implementation
// =============================================================================

func (g *Graph) lookup(id string) (*Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

func (g *Graph) reindex() {
	g.index = make(map[string]int, len(g.nodes))
	for i, n := range g.nodes {
		g.index[n.ID] = i
	}
}
