// Package layout computes node positions for a topology graph.
//
// The main algorithm is [Hybrid], the "beautify" operation: a layered force
// simulation seeded by [hierarchy.Detect], followed by [ResolveOverlaps].
// Nodes cluster in rows by level, linked nodes pull together and all pairs
// repel. The overlap pass then treats every node as an ellipse sized from its
// [Footprint] and pushes overlapping pairs apart, sideways more than
// vertically, so levels stay readable.
//
// [Circular], [Grid] and [Radial] are simpler arrangements sharing the same
// write-back rules. [Apply] selects an algorithm by name.
//
// # Write-back
//
// Every algorithm writes its final positions into the graph as both the live
// position and the pinned value, marking the layout as settled. Intermediate
// simulation state lives in an index-keyed arena and is discarded when the
// call returns.
//
// # Determinism
//
// Layouts are deterministic for a given graph: there is no randomness and
// the simulation runs a fixed number of steps. Runs block until done and are
// not cancellable.
package layout
