package layout

import "math"

// Label box estimate used for every node regardless of type.
const (
	labelHeight = 30
	labelWidth  = 120
)

// topMargin is the y coordinate of level 0.
const topMargin = 100

// Footprint is the on-screen box a node occupies: its icon plus an estimated
// label below it.
type Footprint struct {
	Width  float64
	Height float64
}

// NewFootprint derives the footprint of a node drawn with an icon of the
// given radius.
func NewFootprint(radius float64) Footprint {
	icon := radius * 2
	return Footprint{
		Width:  math.Max(icon, labelWidth),
		Height: icon + labelHeight,
	}
}

// Spacing holds the distances derived from a footprint.
type Spacing struct {
	LevelHeight float64 // vertical distance between levels
	NodeSpacing float64 // horizontal distance between nodes of one level
	MinDistance float64 // floor applied to pairwise distances in the simulation
}

// Spacing derives layer separation, horizontal spacing and the minimum
// pairwise distance from f.
func (f Footprint) Spacing() Spacing {
	return Spacing{
		LevelHeight: math.Max(f.Height+50, 150),
		NodeSpacing: math.Max(f.Width+60, 160),
		MinDistance: math.Max(f.Width*1.1, 130),
	}
}

// Options configures a layout run.
type Options struct {
	Width      float64
	Height     float64
	NodeRadius float64

	// LargeGraphThreshold is the node count above which the simulation
	// switches to the large-graph parameters.
	LargeGraphThreshold int
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Width:               800,
		Height:              600,
		NodeRadius:          30,
		LargeGraphThreshold: 100,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.NodeRadius <= 0 {
		o.NodeRadius = d.NodeRadius
	}
	if o.LargeGraphThreshold <= 0 {
		o.LargeGraphThreshold = d.LargeGraphThreshold
	}
	return o
}

// Params are the force simulation constants.
type Params struct {
	Iterations      int
	Repulsion       float64
	Attraction      float64
	Damping         float64
	LevelConstraint float64
}

// ParamsFor returns the simulation constants for a graph of n nodes. Graphs
// above the threshold get more iterations and stronger repulsion.
func ParamsFor(n, threshold int) Params {
	p := Params{
		Iterations:      150,
		Repulsion:       4000,
		Attraction:      0.01,
		Damping:         0.85,
		LevelConstraint: 0.15,
	}
	if n > threshold {
		p.Iterations = 200
		p.Repulsion = 6000
	}
	return p
}
