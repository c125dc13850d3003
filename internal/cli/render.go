package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/pipeline"
)

// layoutSuffix marks files written by the layout command.
const layoutSuffix = ".layout.json"

// renderCommand creates the render command for DOT and SVG output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		formats  string
		beautify bool
		noCache  bool
		opts     pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "render [dataset|layout.json]",
		Short: "Render a topology to SVG or Graphviz DOT",
		Long: `Render a topology to SVG or Graphviz DOT.

The input is either a dataset, drawn at its stored positions, or a
*.layout.json written by 'netmap layout'. With --beautify a dataset is laid
out first. Node positions are pinned in the DOT output, so Graphviz only
draws them.

The format follows the -o extension, or --format when -o is not given.`,
		Args: cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			applyLayoutFlags(cmd, &opts, c.layoutDefaults())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formats)
			if output != "" {
				if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
					opts.Formats = []string{ext}
				}
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], output, beautify, noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "comma-separated formats: svg (default), dot, json")
	cmd.Flags().BoolVar(&beautify, "beautify", false, "lay out the dataset before rendering")
	cmd.Flags().BoolVar(&opts.Labels, "labels", true, "draw node labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLayoutFlags(cmd, &opts)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// runRender loads or computes the layout and writes each requested format.
func (c *CLI) runRender(ctx context.Context, input, output string, beautify, noCache bool, opts pipeline.Options) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	l, cacheHit, err := c.loadLayout(ctx, runner, input, beautify, opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	base := strings.TrimSuffix(input, layoutSuffix)
	printSuccess("Rendered")
	for _, format := range opts.Formats {
		path := output
		if path == "" {
			path = outputPath(base, format)
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(l.Dataset.NodeCount(), l.Dataset.LinkCount(), cacheHit || renderHit)
	return nil
}

// loadLayout returns the layout to render. Layout files are used as-is; a
// dataset is either beautified through the runner or wrapped at its stored
// positions, with unplaced nodes given one by the editor.
func (c *CLI) loadLayout(ctx context.Context, runner *pipeline.Runner, input string, beautify bool, opts pipeline.Options) (graph.Layout, bool, error) {
	if strings.HasSuffix(input, layoutSuffix) {
		l, err := graph.ReadLayoutFile(input)
		if err != nil {
			return graph.Layout{}, false, fmt.Errorf("load layout %s: %w", input, err)
		}
		return l, false, nil
	}

	ds, err := graph.ReadDatasetFile(input)
	if err != nil {
		return graph.Layout{}, false, fmt.Errorf("load dataset %s: %w", input, err)
	}
	if beautify {
		return runner.LayoutWithCacheInfo(ctx, ds, opts)
	}

	ed := c.newEditor()
	printLoadReport(ed.Load(ds))
	return graph.Layout{
		Width:     opts.Width,
		Height:    opts.Height,
		Positions: ed.Graph().Positions(),
		Dataset:   ed.Data(),
	}, false, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
