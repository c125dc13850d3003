package layout

import (
	"errors"
	"fmt"

	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/hierarchy"
	"github.com/matzehuels/netmap/pkg/topology"
)

// ErrUnknownAlgorithm is returned by Apply for a name outside graph.Algorithms.
var ErrUnknownAlgorithm = errors.New("unknown layout algorithm")

// Result describes a finished layout run. Positions are the values written
// back to the graph.
type Result struct {
	Algorithm     string
	Positions     map[string]graph.Point
	Hierarchy     hierarchy.Result // zero for algorithms that ignore levels
	MaxLevel      int
	Iterations    int
	OverlapPasses int
	Footprint     Footprint
}

// Func is the signature shared by all layout algorithms.
type Func func(g *topology.Graph, opts Options) Result

var algorithms = map[string]Func{
	graph.AlgorithmHybrid:   Hybrid,
	graph.AlgorithmCircular: Circular,
	graph.AlgorithmGrid:     Grid,
	graph.AlgorithmRadial:   Radial,
}

// Lookup returns the layout function registered under name.
func Lookup(name string) (Func, error) {
	if name == "" {
		name = graph.AlgorithmHybrid
	}
	fn, ok := algorithms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return fn, nil
}

// Apply runs the named algorithm on g. An empty name selects hybrid.
func Apply(name string, g *topology.Graph, opts Options) (Result, error) {
	fn, err := Lookup(name)
	if err != nil {
		return Result{}, err
	}
	return fn(g, opts), nil
}

// Export converts r into its serialized form. ds is the laid-out dataset,
// usually g.Data() taken right after the run.
func (r Result) Export(opts Options, ds graph.Dataset) graph.Layout {
	opts = opts.withDefaults()
	out := graph.Layout{
		Algorithm: r.Algorithm,
		Width:     opts.Width,
		Height:    opts.Height,
		Positions: r.Positions,
		MaxLevel:  r.MaxLevel,
		Dataset:   ds,
	}
	if out.Positions == nil {
		out.Positions = map[string]graph.Point{}
	}
	if len(r.Hierarchy.Info) > 0 {
		out.NodeHierarchy = make(map[string]graph.Level, len(r.Hierarchy.Info))
		for id, info := range r.Hierarchy.Info {
			out.NodeHierarchy[id] = graph.Level{
				Level:     info.Level,
				InDegree:  info.InDegree,
				OutDegree: info.OutDegree,
				Children:  info.Children,
				Parents:   info.Parents,
			}
		}
	}
	return out
}
