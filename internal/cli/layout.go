package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/pipeline"
)

// layoutCommand creates the layout command for computing topology layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		opts    pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "layout [dataset]",
		Short: "Compute a layout for a topology",
		Long: `Compute a layout for a topology.

The layout command reads a dataset (JSON or YAML), arranges it with the chosen
algorithm and writes a layout.json holding positions, the detected node
hierarchy and the laid-out dataset. Render it with 'netmap render'.

Algorithms:
  hybrid    level bands from link direction plus a force simulation (default)
  circular  nodes evenly on one circle
  grid      row-major square grid
  radial    concentric rings by level

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			applyLayoutFlags(cmd, &opts, c.layoutDefaults())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// addLayoutFlags registers the layout flags shared by layout and render.
// Defaults shown are the built-in ones; the config file applies to flags
// left unset.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", graph.AlgorithmHybrid, "layout algorithm: hybrid, circular, grid, radial")
	cmd.Flags().Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "canvas height")
	cmd.Flags().Float64Var(&opts.NodeRadius, "node-radius", pipeline.DefaultNodeRadius, "node radius")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	_ = cmd.RegisterFlagCompletionFunc("algorithm", completeAlgorithms)
}

// applyLayoutFlags fills opts from defaults for every flag the user did not
// set explicitly.
func applyLayoutFlags(cmd *cobra.Command, opts *pipeline.Options, defaults pipeline.Options) {
	f := cmd.Flags()
	if !f.Changed("algorithm") {
		opts.Algorithm = defaults.Algorithm
	}
	if !f.Changed("width") {
		opts.Width = defaults.Width
	}
	if !f.Changed("height") {
		opts.Height = defaults.Height
	}
	if !f.Changed("node-radius") {
		opts.NodeRadius = defaults.NodeRadius
	}
	opts.LargeGraphThreshold = defaults.LargeGraphThreshold
}

// runLayout loads the dataset, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	ds, err := graph.ReadDatasetFile(input)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", input, err)
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Algorithm))
	spinner.Start()

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, ds, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "" {
		output = outputPath(input, "layout.json")
	}
	if err := graph.WriteLayoutFile(l, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(l.Dataset.NodeCount(), l.Dataset.LinkCount(), cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+output)

	return nil
}
