package interact

import (
	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/observability"
	"github.com/matzehuels/netmap/pkg/topology"
)

// Discard reasons reported to InteractionHooks.
const (
	reasonSelfLink  = "self-link"
	reasonRejected  = "rejected"
	reasonNoTarget  = "no-target"
	reasonCancelled = "cancelled"
)

// Machine turns pointer events into model changes and UI effects.
//
// It has three states. A pointer-down on a node body starts NodeDragging;
// on a node anchor it starts DrawingLink. Every gesture ends on pointer-up
// and returns to Idle. Events a state has no transition for are ignored.
//
// The zero value is not usable - use New to create a valid Machine.
// A Machine is not safe for concurrent use.
type Machine struct {
	g            *topology.Graph
	hooks        observability.InteractionHooks
	anchorRadius float64

	state State

	// NodeDragging
	dragID string
	moved  bool

	// DrawingLink
	source topology.Segment
}

// Option configures a Machine.
type Option func(*Machine)

// WithAnchorRadius sets the distance of anchors from node centres.
func WithAnchorRadius(r float64) Option {
	return func(m *Machine) {
		if r > 0 {
			m.anchorRadius = r
		}
	}
}

// WithHooks sets the hooks that receive gesture events.
func WithHooks(h observability.InteractionHooks) Option {
	return func(m *Machine) {
		if h != nil {
			m.hooks = h
		}
	}
}

// New creates a machine in the Idle state driving g.
func New(g *topology.Graph, opts ...Option) *Machine {
	m := &Machine{
		g:            g,
		hooks:        observability.NoopInteractionHooks{},
		anchorRadius: DefaultAnchorRadius,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// GuideLine returns the pending link while in DrawingLink: the source id,
// the source anchor position and the pointer position.
func (m *Machine) GuideLine() (topology.Segment, bool) {
	if m.state != DrawingLink {
		return topology.Segment{}, false
	}
	return m.source, true
}

// DraggedNode returns the id of the node being dragged.
func (m *Machine) DraggedNode() (string, bool) {
	if m.state != NodeDragging {
		return "", false
	}
	return m.dragID, true
}

// Handle processes one event to completion and returns the effects the host
// must apply, in order.
func (m *Machine) Handle(ev Event) []Effect {
	switch ev.Kind {
	case PointerEnter:
		if ev.Target.OnNode() && m.g.Has(ev.Target.NodeID) {
			return []Effect{ShowAnchors{ID: ev.Target.NodeID}}
		}
		return nil
	case PointerLeave:
		if ev.Target.OnNode() {
			return []Effect{HideAnchors{ID: ev.Target.NodeID}}
		}
		return nil
	}

	switch m.state {
	case Idle:
		return m.handleIdle(ev)
	case NodeDragging:
		return m.handleDragging(ev)
	case DrawingLink:
		return m.handleDrawing(ev)
	}
	return nil
}

// Cancel abandons the current gesture without touching the model and
// returns the exit effects of the state left. It is a no-op in Idle.
func (m *Machine) Cancel() []Effect {
	switch m.state {
	case NodeDragging:
		m.hooks.OnGestureDiscard(observability.GestureDrag, reasonCancelled)
		return m.exitDragging()
	case DrawingLink:
		m.hooks.OnGestureDiscard(observability.GestureLink, reasonCancelled)
		return m.exitDrawing()
	}
	return nil
}

// =============================================================================
// Idle
// =============================================================================

func (m *Machine) handleIdle(ev Event) []Effect {
	switch ev.Kind {
	case PointerDown:
		switch ev.Target.Kind {
		case NodeBody:
			return m.enterDragging(ev.Target.NodeID)
		case NodeAnchor:
			return m.enterDrawing(ev)
		}
	case PointerUp:
		if ev.Target.Kind == Canvas && m.g.ClearSelection() {
			return []Effect{Render{}}
		}
	case DoubleClick:
		if ev.Target.OnNode() {
			m.g.DoubleClick(ev.Target.NodeID)
		}
	case ContextMenu:
		if ev.Target.OnNode() {
			m.g.ContextMenu(ev.Target.NodeID)
		}
	}
	return nil
}

// =============================================================================
// NodeDragging
// =============================================================================

func (m *Machine) enterDragging(id string) []Effect {
	if !m.g.Has(id) {
		return nil
	}
	m.state = NodeDragging
	m.dragID = id
	m.moved = false
	m.hooks.OnGestureStart(observability.GestureDrag, id)
	return []Effect{SuppressTextSelection{}}
}

func (m *Machine) handleDragging(ev Event) []Effect {
	switch ev.Kind {
	case PointerMove:
		if !m.g.MoveNode(m.dragID, ev.X, ev.Y) {
			return nil
		}
		m.moved = true
		return []Effect{NodeMoved{
			ID:    m.dragID,
			X:     ev.X,
			Y:     ev.Y,
			Links: m.g.Segments(m.dragID),
		}}

	case PointerUp:
		id, moved := m.dragID, m.moved
		effects := m.exitDragging()
		if moved {
			m.hooks.OnGestureComplete(observability.GestureDrag, id)
			return effects
		}
		// Down and up without a move is a click.
		if m.g.Click(id) {
			m.hooks.OnGestureComplete(observability.GestureClick, id)
			effects = append(effects, Render{})
		}
		return effects
	}
	return nil
}

func (m *Machine) exitDragging() []Effect {
	m.state = Idle
	m.dragID = ""
	m.moved = false
	return []Effect{RestoreTextSelection{}}
}

// =============================================================================
// DrawingLink
// =============================================================================

func (m *Machine) enterDrawing(ev Event) []Effect {
	n, ok := m.g.Node(ev.Target.NodeID)
	if !ok {
		return nil
	}
	off := AnchorOffset(ev.Target.Anchor, m.anchorRadius)
	from := graph.Point{X: n.X + off.X, Y: n.Y + off.Y}

	m.state = DrawingLink
	m.source = topology.Segment{Source: n.ID, From: from, To: ev.Point()}
	m.hooks.OnGestureStart(observability.GestureLink, n.ID)
	return []Effect{
		SuppressTextSelection{},
		ShowGuideLine{From: from, To: ev.Point()},
	}
}

func (m *Machine) handleDrawing(ev Event) []Effect {
	switch ev.Kind {
	case PointerMove:
		m.source.To = ev.Point()
		return []Effect{MoveGuideLine{To: ev.Point()}}

	case PointerUp:
		src := m.source.Source
		effects := m.exitDrawing()

		if ev.Target.Kind != NodeAnchor || ev.Target.NodeID == "" {
			m.hooks.OnGestureDiscard(observability.GestureLink, reasonNoTarget)
			return effects
		}
		if ev.Target.NodeID == src {
			m.hooks.OnGestureDiscard(observability.GestureLink, reasonSelfLink)
			return effects
		}
		if _, ok := m.g.AddLink(src, ev.Target.NodeID); !ok {
			m.hooks.OnGestureDiscard(observability.GestureLink, reasonRejected)
			return effects
		}
		m.hooks.OnGestureComplete(observability.GestureLink, src)
		return append(effects, Render{})
	}
	return nil
}

func (m *Machine) exitDrawing() []Effect {
	m.state = Idle
	m.source = topology.Segment{}
	return []Effect{HideGuideLine{}, RestoreTextSelection{}}
}
