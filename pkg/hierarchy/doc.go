// Package hierarchy infers a directed layering from a network's links.
//
// Link direction defines parent and child: a link from A to B makes B a
// child of A. [Detect] assigns every node a level, 0 at the roots, using a
// breadth-first traversal from all roots at once. Cyclic graphs fall back to
// synthetic roots chosen by out-degree, and disconnected nodes are placed on
// level 0, so every node always ends up with a level.
//
// The result is recomputed from scratch on every call; it carries no state
// between layout runs.
package hierarchy
