// Package interact implements the pointer state machine of the topology
// editor.
//
// A [Machine] consumes [Event] values (already hit-tested into a [Target]
// and expressed in world coordinates) and mutates the topology graph
// directly: dragging moves nodes, drawing from one anchor to another adds a
// link, and plain clicks change the selection. Every call to
// [Machine.Handle] returns the [Effect] values the host must apply, such as
// suppressing text selection while a gesture is active or moving the guide
// line of a pending link.
//
// # States
//
//	Idle ──down on body──▶ NodeDragging ──up──▶ Idle
//	Idle ──down on anchor─▶ DrawingLink ──up──▶ Idle
//
// Only one gesture runs at a time; an event that makes no sense for the
// current state is ignored rather than queued.
package interact
