// Package topology holds the in-memory network graph model.
//
// A [Graph] is an arena of [Node] records keyed by id plus the links between
// them. Links are stored resolved: each [ResolvedLink] holds handles to both
// endpoint records, so moving a node moves every attached link with it.
// Outside the arena links are exchanged in id form as [StoredLink].
//
// # Invariants
//
//   - Every link references two live nodes. [Graph.Load] drops dangling
//     links and [Graph.DeleteNode] cascades to the links it touches.
//   - [Graph.AddLink] never creates a self link, nor a second link between
//     the same unordered pair.
//   - At most one node is selected.
//
// [Graph.DeleteLink] matches direction exactly; it does not share the
// unordered comparison used by AddLink.
//
// # Notifications
//
// Mutations fire the matching [Callbacks] synchronously. OnChanged asks the
// host to re-render and never triggers a layout run.
//
// # Concurrency
//
// A Graph is owned by one actor. Hosts that share it across goroutines (the
// HTTP server, for example) serialize access themselves.
package topology
