package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	nopts := nodelink.Options{Labels: opts.Labels, Radius: opts.NodeRadius}
	var dot string
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		case FormatDOT:
			if dot == "" {
				dot = nodelink.ToDOT(l, nopts)
			}
			data = []byte(dot)
		case FormatSVG:
			if dot == "" {
				dot = nodelink.ToDOT(l, nopts)
			}
			data, err = nodelink.RenderSVG(ctx, dot)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
