package interact

import (
	"github.com/matzehuels/netmap/pkg/graph"
)

// State is the gesture the machine is currently in.
type State int

const (
	Idle State = iota
	NodeDragging
	DrawingLink
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case NodeDragging:
		return "node-dragging"
	case DrawingLink:
		return "drawing-link"
	}
	return "unknown"
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Anchor is one of the four fixed link attachment points on a node.
type Anchor string

const (
	Top    Anchor = "top"
	Right  Anchor = "right"
	Bottom Anchor = "bottom"
	Left   Anchor = "left"
)

// Anchors lists the anchors in clockwise order starting at the top.
var Anchors = []Anchor{Top, Right, Bottom, Left}

// DefaultAnchorRadius is the distance of each anchor from the node centre.
const DefaultAnchorRadius = 30

// AnchorOffset returns the position of a relative to the node centre. An
// unrecognized anchor sits on the centre.
func AnchorOffset(a Anchor, radius float64) graph.Point {
	switch a {
	case Top:
		return graph.Point{X: 0, Y: -radius}
	case Right:
		return graph.Point{X: radius, Y: 0}
	case Bottom:
		return graph.Point{X: 0, Y: radius}
	case Left:
		return graph.Point{X: -radius, Y: 0}
	}
	return graph.Point{}
}

// TargetKind says what a pointer event landed on.
type TargetKind string

const (
	Canvas     TargetKind = "canvas"
	NodeBody   TargetKind = "node"
	NodeAnchor TargetKind = "anchor"
)

// Target is the hit-test result attached to an event. NodeID is set for
// NodeBody and NodeAnchor; Anchor only for NodeAnchor.
type Target struct {
	Kind   TargetKind `json:"kind"`
	NodeID string     `json:"nodeId,omitempty"`
	Anchor Anchor     `json:"anchor,omitempty"`
}

// OnNode reports whether the target is a node or one of its anchors.
func (t Target) OnNode() bool {
	return (t.Kind == NodeBody || t.Kind == NodeAnchor) && t.NodeID != ""
}

// EventKind names a pointer event.
type EventKind string

const (
	PointerDown  EventKind = "pointerdown"
	PointerMove  EventKind = "pointermove"
	PointerUp    EventKind = "pointerup"
	DoubleClick  EventKind = "dblclick"
	ContextMenu  EventKind = "contextmenu"
	PointerEnter EventKind = "pointerenter"
	PointerLeave EventKind = "pointerleave"
)

// Event is one pointer event in world coordinates.
type Event struct {
	Kind   EventKind `json:"kind"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Target Target    `json:"target"`
}

// Point returns the pointer position.
func (e Event) Point() graph.Point { return graph.Point{X: e.X, Y: e.Y} }
