package topology

import (
	"github.com/matzehuels/netmap/pkg/graph"
)

// Node is a device record owned by the [Graph] arena. Layout and interaction
// code mutate only the position, pin and selection fields.
//
// Callers always receive copies; the arena's records are never handed out.
type Node struct {
	ID     string
	Type   graph.DeviceType
	Label  string
	X, Y   float64
	Status graph.Status

	// Selected is transient UI state and never serialized.
	Selected bool

	// Pinned marks a settled position written by a layout run. A drag
	// moves an existing pin but never creates one.
	// FX and FY hold the pinned coordinates.
	Pinned bool
	FX, FY float64
}

// Position returns the node's live position.
func (n Node) Position() graph.Point { return graph.Point{X: n.X, Y: n.Y} }

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// wire strips transient and derived fields.
func (n Node) wire() graph.Node {
	return graph.Node{
		ID:     n.ID,
		Type:   n.Type,
		Label:  n.Label,
		X:      graph.Float(n.X),
		Y:      graph.Float(n.Y),
		Status: n.Status,
	}
}

// StoredLink is the persisted form of a link: an ordered pair of node ids.
type StoredLink struct {
	Source string
	Target string
}

// SamePair reports whether l connects the same unordered pair of nodes as
// (a, b). Direction is ignored.
func (l StoredLink) SamePair(a, b string) bool {
	return (l.Source == a && l.Target == b) || (l.Source == b && l.Target == a)
}

// Touches reports whether id is either endpoint of l.
func (l StoredLink) Touches(id string) bool { return l.Source == id || l.Target == id }

// ResolvedLink is the in-memory form of a link holding handles to both
// endpoint records. It only exists inside the arena that resolved it.
type ResolvedLink struct {
	Source *Node
	Target *Node
}

// Stored returns the id form of the link.
func (l ResolvedLink) Stored() StoredLink {
	return StoredLink{Source: l.Source.ID, Target: l.Target.ID}
}

// Segment is the drawable geometry of a link: both endpoint ids and the
// current centres of the endpoint nodes.
type Segment struct {
	Source string      `json:"source"`
	Target string      `json:"target,omitempty"`
	From   graph.Point `json:"from"`
	To     graph.Point `json:"to"`
}

// Lookup resolves a node id to its record.
type Lookup func(id string) (*Node, bool)

// Resolve converts stored links into resolved links. Links naming an id the
// lookup does not know are dropped; the number of dropped links is returned.
// Resolve has no side effects beyond calling lookup.
func Resolve(links []StoredLink, lookup Lookup) ([]ResolvedLink, int) {
	resolved := make([]ResolvedLink, 0, len(links))
	dropped := 0
	for _, l := range links {
		src, ok := lookup(l.Source)
		if !ok {
			dropped++
			continue
		}
		tgt, ok := lookup(l.Target)
		if !ok {
			dropped++
			continue
		}
		resolved = append(resolved, ResolvedLink{Source: src, Target: tgt})
	}
	return resolved, dropped
}
