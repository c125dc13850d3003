// Package pipeline provides the batch layout → render pipeline used by the
// CLI and the HTTP server.
//
// A run loads a dataset into a fresh editor, arranges it with one of the
// layout algorithms and renders the result to one or more artifact formats.
// Both stages are cached by content: the layout by dataset hash plus the
// options that influence it, the artifacts by layout hash plus format.
//
// # Usage
//
//	runner := pipeline.NewRunner(fileCache, nil, logger, hooks)
//	res, err := runner.Execute(ctx, ds, pipeline.Options{
//	    Algorithm: "hybrid",
//	    Formats:   []string{"svg"},
//	})
//	svg := res.Artifacts["svg"]
//
// Run individual stages:
//
//	l, err := runner.Layout(ctx, ds, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netmap/pkg/cache"
	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/layout"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600.0

	// DefaultNodeRadius is the default node radius in pixels.
	DefaultNodeRadius = 30.0

	// DefaultThreshold is the node count above which the large-graph
	// simulation parameters apply.
	DefaultThreshold = 100
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Algorithm           string  `json:"algorithm,omitempty"`
	Width               float64 `json:"width,omitempty"`
	Height              float64 `json:"height,omitempty"`
	NodeRadius          float64 `json:"node_radius,omitempty"`
	LargeGraphThreshold int     `json:"large_graph_threshold,omitempty"`
	Refresh             bool    `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Labels  bool     `json:"labels,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DatasetHash is the content hash of the input dataset.
	DatasetHash string

	// Layout is the serialized layout, including the laid-out dataset.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LinkCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAlgorithm checks that an algorithm name is known.
func ValidateAlgorithm(name string) error {
	if !slices.Contains(graph.Algorithms, name) {
		return fmt.Errorf("invalid algorithm: %q (must be one of: hybrid, circular, grid, radial)", name)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Algorithm == "" {
		o.Algorithm = graph.AlgorithmHybrid
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.NodeRadius <= 0 {
		o.NodeRadius = DefaultNodeRadius
	}
	if o.LargeGraphThreshold <= 0 {
		o.LargeGraphThreshold = DefaultThreshold
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return ValidateAlgorithm(o.Algorithm)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.NodeRadius <= 0 {
		o.NodeRadius = DefaultNodeRadius
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutOptions converts o into layout engine options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Width:               o.Width,
		Height:              o.Height,
		NodeRadius:          o.NodeRadius,
		LargeGraphThreshold: o.LargeGraphThreshold,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Algorithm:  o.Algorithm,
		Width:      o.Width,
		Height:     o.Height,
		NodeRadius: o.NodeRadius,
		Threshold:  o.LargeGraphThreshold,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	key := format
	if o.Labels {
		key += "+labels"
	}
	return cache.ArtifactKeyOpts{Format: key}
}
