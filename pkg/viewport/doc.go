// Package viewport maintains the pan and zoom transform of the topology
// canvas.
//
// A [Controller] holds one [Transform] (translate plus uniform scale,
// clamped to an [Extent]). FitView frames a set of node centres,
// ResetZoom returns to [Identity] and ZoomTo scales about the canvas
// centre. Each returns a [Transition] the host can animate; the controller
// itself switches to the target immediately.
//
// The controller is read-only with respect to the graph: it is handed node
// positions and never changes them.
package viewport
