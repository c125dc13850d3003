package layout

import (
	"math"

	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/hierarchy"
	"github.com/matzehuels/netmap/pkg/topology"
)

// Hybrid arranges g with a layered force simulation followed by overlap
// resolution, then writes the positions back as pinned values.
//
// Nodes start in rows by hierarchy level, centred horizontally per row.
// Every step each node is pushed away from all others (inverse square,
// distance floored at the minimum pairwise distance), pulled toward its
// children, and pulled toward the y coordinate of its level. Velocities are
// damped and scaled by a temperature that falls linearly across the run.
//
// An empty graph is left untouched and yields a zero Result.
func Hybrid(g *topology.Graph, opts Options) Result {
	opts = opts.withDefaults()
	if g.Len() == 0 {
		return Result{Algorithm: graph.AlgorithmHybrid}
	}

	ids := g.IDs()
	h := hierarchy.Detect(ids, g.Links())
	fp := NewFootprint(opts.NodeRadius)
	sp := fp.Spacing()
	params := ParamsFor(len(ids), opts.LargeGraphThreshold)

	sim := newSimulation(ids, h, opts, sp)
	sim.run(params, sp)

	passes, _ := resolve(sim.pos, fp)

	positions := sim.positions()
	g.SetPositions(positions, true)

	return Result{
		Algorithm:     graph.AlgorithmHybrid,
		Positions:     positions,
		Hierarchy:     h,
		MaxLevel:      h.MaxLevel,
		Iterations:    params.Iterations,
		OverlapPasses: passes,
		Footprint:     fp,
	}
}

// simulation is the working state of one Hybrid run, indexed by node
// position in ids. It is discarded when the run ends.
type simulation struct {
	ids      []string
	pos      []graph.Point
	vel      []graph.Point
	targetY  []float64
	children [][]int
}

func newSimulation(ids []string, h hierarchy.Result, opts Options, sp Spacing) *simulation {
	n := len(ids)
	s := &simulation{
		ids:      ids,
		pos:      make([]graph.Point, n),
		vel:      make([]graph.Point, n),
		targetY:  make([]float64, n),
		children: make([][]int, n),
	}

	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}

	for lvl, group := range h.Groups() {
		y := float64(lvl)*sp.LevelHeight + topMargin
		count := float64(len(group))
		for col, id := range group {
			i := index[id]
			s.pos[i] = graph.Point{
				X: opts.Width/2 + (float64(col)-count/2)*sp.NodeSpacing,
				Y: y,
			}
			s.targetY[i] = y
		}
	}

	for i, id := range ids {
		for _, child := range h.Info[id].Children {
			if j, ok := index[child]; ok {
				s.children[i] = append(s.children[i], j)
			}
		}
	}
	return s
}

// run advances the simulation. Positions are updated in place node by node,
// so later nodes in a step see the moves of earlier ones.
func (s *simulation) run(p Params, sp Spacing) {
	for iter := 0; iter < p.Iterations; iter++ {
		temperature := 1 - float64(iter)/float64(p.Iterations)

		for i := range s.pos {
			var fx, fy float64
			pi := s.pos[i]

			for j := range s.pos {
				if i == j {
					continue
				}
				dx := pi.X - s.pos[j].X
				dy := pi.Y - s.pos[j].Y
				d := math.Max(math.Hypot(dx, dy), sp.MinDistance)
				force := p.Repulsion / (d * d)
				fx += dx / d * force
				fy += dy / d * force
			}

			for _, j := range s.children[i] {
				dx := s.pos[j].X - pi.X
				dy := s.pos[j].Y - pi.Y
				d := math.Hypot(dx, dy)
				if d == 0 {
					continue
				}
				force := d * p.Attraction
				fx += dx / d * force
				fy += dy / d * force
			}

			fy += (s.targetY[i] - pi.Y) * p.LevelConstraint

			s.vel[i].X = (s.vel[i].X + fx) * p.Damping
			s.vel[i].Y = (s.vel[i].Y + fy) * p.Damping
			s.pos[i].X += s.vel[i].X * temperature
			s.pos[i].Y += s.vel[i].Y * temperature
		}
	}
}

func (s *simulation) positions() map[string]graph.Point {
	out := make(map[string]graph.Point, len(s.ids))
	for i, id := range s.ids {
		out[id] = s.pos[i]
	}
	return out
}
