package layout

import (
	"math"

	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/hierarchy"
	"github.com/matzehuels/netmap/pkg/topology"
)

// canvasMargin is kept clear between the outermost ring and the canvas edge.
const canvasMargin = 100

// Circular places every node evenly on one circle around the canvas centre.
func Circular(g *topology.Graph, opts Options) Result {
	opts = opts.withDefaults()
	res := Result{Algorithm: graph.AlgorithmCircular, Footprint: NewFootprint(opts.NodeRadius)}
	ids := g.IDs()
	if len(ids) == 0 {
		return res
	}

	radius := math.Min(opts.Width, opts.Height)/2 - canvasMargin
	step := 2 * math.Pi / float64(len(ids))
	res.Positions = make(map[string]graph.Point, len(ids))
	for i, id := range ids {
		angle := float64(i) * step
		res.Positions[id] = graph.Point{
			X: opts.Width/2 + radius*math.Cos(angle),
			Y: opts.Height/2 + radius*math.Sin(angle),
		}
	}
	g.SetPositions(res.Positions, true)
	return res
}

// Grid places nodes row by row on a square grid.
func Grid(g *topology.Graph, opts Options) Result {
	opts = opts.withDefaults()
	res := Result{Algorithm: graph.AlgorithmGrid, Footprint: NewFootprint(opts.NodeRadius)}
	ids := g.IDs()
	if len(ids) == 0 {
		return res
	}

	cols := int(math.Ceil(math.Sqrt(float64(len(ids)))))
	spacing := math.Min(opts.Width/float64(cols), opts.Height/float64(cols)) * 0.8
	res.Positions = make(map[string]graph.Point, len(ids))
	for i, id := range ids {
		col, row := i%cols, i/cols
		res.Positions[id] = graph.Point{
			X: float64(col+1)*spacing + 50,
			Y: float64(row+1)*spacing + 50,
		}
	}
	g.SetPositions(res.Positions, true)
	return res
}

// Radial places each hierarchy level on its own ring around the canvas
// centre. Level 0 sits at the centre.
func Radial(g *topology.Graph, opts Options) Result {
	opts = opts.withDefaults()
	res := Result{Algorithm: graph.AlgorithmRadial, Footprint: NewFootprint(opts.NodeRadius)}
	ids := g.IDs()
	if len(ids) == 0 {
		return res
	}

	h := hierarchy.Detect(ids, g.Links())
	res.Hierarchy = h
	res.MaxLevel = h.MaxLevel

	cx, cy := opts.Width/2, opts.Height/2
	maxRadius := math.Min(opts.Width, opts.Height)/2 - canvasMargin
	res.Positions = make(map[string]graph.Point, len(ids))
	for lvl, group := range h.Groups() {
		if len(group) == 0 {
			continue
		}
		radius := float64(lvl) / float64(h.MaxLevel+1) * maxRadius
		step := 2 * math.Pi / float64(len(group))
		for i, id := range group {
			angle := float64(i) * step
			res.Positions[id] = graph.Point{
				X: cx + radius*math.Cos(angle),
				Y: cy + radius*math.Sin(angle),
			}
		}
	}
	g.SetPositions(res.Positions, true)
	return res
}
