package pipeline

import (
	"context"

	"github.com/matzehuels/netmap/pkg/editor"
	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/observability"
	"github.com/matzehuels/netmap/pkg/topology"
)

// ComputeLayout loads ds into a fresh editor sized to the options and runs
// the requested algorithm. The returned layout carries the laid-out dataset
// with every position filled in.
func ComputeLayout(ctx context.Context, ds graph.Dataset, opts Options, hooks observability.Hooks) (graph.Layout, topology.LoadReport, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, topology.LoadReport{}, err
	}
	lopts := opts.LayoutOptions()

	ed := editor.New(
		editor.WithCanvas(opts.Width, opts.Height),
		editor.WithLayoutOptions(lopts),
		editor.WithLogger(opts.Logger),
		editor.WithHooks(hooks),
	)
	report := ed.Load(ds)

	res, err := ed.Arrange(ctx, opts.Algorithm)
	if err != nil {
		return graph.Layout{}, report, err
	}
	return res.Export(lopts, ed.Data()), report, nil
}
