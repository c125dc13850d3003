package hierarchy

import (
	"github.com/matzehuels/netmap/pkg/topology"
)

// Unvisited is the level of a node before traversal reaches it.
const Unvisited = -1

// Info is the derived hierarchy record of one node.
type Info struct {
	Level     int
	InDegree  int
	OutDegree int
	Children  []string
	Parents   []string
}

// Result is the output of [Detect]. It is derived data: recompute it rather
// than update it.
type Result struct {
	Info     map[string]*Info
	MaxLevel int
	Roots    []string

	order []string
}

// Detect infers a layering from the directed links between ids.
//
// Roots are the nodes without inbound links. When every node has an inbound
// link (the graph is one or more cycles), the nodes with the highest
// out-degree become roots; ties all qualify. A breadth-first traversal from
// all roots at once assigns each node the level at which it is first
// reached. Nodes the traversal never reaches are placed at level 0.
//
// Links naming an id outside ids are ignored. The order of ids decides the
// root order and therefore which of several equally short paths wins.
func Detect(ids []string, links []topology.StoredLink) Result {
	res := Result{
		Info:  make(map[string]*Info, len(ids)),
		order: make([]string, 0, len(ids)),
	}
	for _, id := range ids {
		if _, dup := res.Info[id]; dup {
			continue
		}
		res.Info[id] = &Info{Level: Unvisited}
		res.order = append(res.order, id)
	}
	if len(res.order) == 0 {
		return res
	}

	for _, l := range links {
		src, ok := res.Info[l.Source]
		if !ok {
			continue
		}
		tgt, ok := res.Info[l.Target]
		if !ok {
			continue
		}
		src.Children = append(src.Children, l.Target)
		src.OutDegree++
		tgt.Parents = append(tgt.Parents, l.Source)
		tgt.InDegree++
	}

	res.Roots = findRoots(res.order, res.Info)

	queue := make([]string, 0, len(res.order))
	for _, id := range res.Roots {
		res.Info[id].Level = 0
		queue = append(queue, id)
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		info := res.Info[id]
		for _, child := range info.Children {
			ci := res.Info[child]
			if ci.Level != Unvisited {
				continue
			}
			ci.Level = info.Level + 1
			queue = append(queue, child)
		}
	}

	for _, id := range res.order {
		info := res.Info[id]
		if info.Level == Unvisited {
			info.Level = 0
		}
		res.MaxLevel = max(res.MaxLevel, info.Level)
	}
	return res
}

func findRoots(order []string, info map[string]*Info) []string {
	var roots []string
	for _, id := range order {
		if info[id].InDegree == 0 {
			roots = append(roots, id)
		}
	}
	if len(roots) > 0 {
		return roots
	}

	best := 0
	for _, id := range order {
		best = max(best, info[id].OutDegree)
	}
	for _, id := range order {
		if info[id].OutDegree == best {
			roots = append(roots, id)
		}
	}
	return roots
}

// LevelOf returns the level of id, or [Unvisited] for an unknown id.
func (r Result) LevelOf(id string) int {
	if info, ok := r.Info[id]; ok {
		return info.Level
	}
	return Unvisited
}

// Groups returns the ids on each level, indexed by level, each group in
// input order.
func (r Result) Groups() [][]string {
	if len(r.order) == 0 {
		return nil
	}
	groups := make([][]string, r.MaxLevel+1)
	for _, id := range r.order {
		lvl := r.Info[id].Level
		groups[lvl] = append(groups[lvl], id)
	}
	return groups
}

// IDs returns the detected ids in input order with duplicates removed.
func (r Result) IDs() []string { return append([]string(nil), r.order...) }

// Len returns the number of nodes in the result.
func (r Result) Len() int { return len(r.order) }
