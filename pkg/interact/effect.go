package interact

import (
	"encoding/json"

	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/topology"
)

// Effect is a UI side effect produced by a transition. The host applies
// effects in order; the machine never touches the display itself.
type Effect interface {
	Kind() string
}

// SuppressTextSelection is emitted on entering NodeDragging or DrawingLink.
type SuppressTextSelection struct{}

// RestoreTextSelection is emitted on leaving NodeDragging or DrawingLink.
type RestoreTextSelection struct{}

// ShowGuideLine shows the pending link from the source anchor to the pointer.
type ShowGuideLine struct {
	From graph.Point `json:"from"`
	To   graph.Point `json:"to"`
}

// MoveGuideLine moves the free end of the guide line.
type MoveGuideLine struct {
	To graph.Point `json:"to"`
}

// HideGuideLine removes the guide line.
type HideGuideLine struct{}

// NodeMoved reports a dragged node's new position together with the
// recomputed geometry of every link attached to it.
type NodeMoved struct {
	ID    string             `json:"id"`
	X     float64            `json:"x"`
	Y     float64            `json:"y"`
	Links []topology.Segment `json:"links"`
}

// ShowAnchors reveals the anchors of the hovered node.
type ShowAnchors struct {
	ID string `json:"id"`
}

// HideAnchors hides the anchors of a node the pointer left.
type HideAnchors struct {
	ID string `json:"id"`
}

// Render asks the host to redraw from the model.
type Render struct{}

func (SuppressTextSelection) Kind() string { return "suppress-text-selection" }
func (RestoreTextSelection) Kind() string  { return "restore-text-selection" }
func (ShowGuideLine) Kind() string         { return "show-guide-line" }
func (MoveGuideLine) Kind() string         { return "move-guide-line" }
func (HideGuideLine) Kind() string         { return "hide-guide-line" }
func (NodeMoved) Kind() string             { return "node-moved" }
func (ShowAnchors) Kind() string           { return "show-anchors" }
func (HideAnchors) Kind() string           { return "hide-anchors" }
func (Render) Kind() string                { return "render" }

// Encoded is the wire form of an effect: its kind plus its payload.
type Encoded struct {
	Kind string `json:"kind"`
	Data Effect `json:"data,omitempty"`
}

// Encode converts effects to their wire form. Effects without a payload
// carry no data.
func Encode(effects []Effect) []Encoded {
	out := make([]Encoded, len(effects))
	for i, e := range effects {
		out[i] = Encoded{Kind: e.Kind()}
		switch e.(type) {
		case SuppressTextSelection, RestoreTextSelection, HideGuideLine, Render:
		default:
			out[i].Data = e
		}
	}
	return out
}

// MarshalEffects encodes effects as a JSON array.
func MarshalEffects(effects []Effect) ([]byte, error) {
	return json.Marshal(Encode(effects))
}
