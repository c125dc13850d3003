package editor

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/interact"
	"github.com/matzehuels/netmap/pkg/layout"
	"github.com/matzehuels/netmap/pkg/observability"
	"github.com/matzehuels/netmap/pkg/topology"
	"github.com/matzehuels/netmap/pkg/viewport"
)

// Editor is the owned controller of one topology canvas. It binds the graph
// model, the pointer state machine, the viewport and the layout engine, and
// is the only handle hosts need.
//
// The zero value is not usable - use New to create a valid Editor.
// An Editor is not safe for concurrent use; hosts that serve it from
// several goroutines serialize calls themselves.
type Editor struct {
	graph   *topology.Graph
	machine *interact.Machine
	view    *viewport.Controller

	layoutOpts layout.Options
	logger     *log.Logger
	hooks      observability.Hooks
}

type config struct {
	canvas       topology.Canvas
	layoutOpts   layout.Options
	viewOpts     viewport.Options
	anchorRadius float64
	logger       *log.Logger
	hooks        observability.Hooks
	callbacks    topology.Callbacks
	rng          *rand.Rand
}

// Option configures an Editor.
type Option func(*config)

// WithCanvas sets the canvas size shared by placement, layout and viewport.
func WithCanvas(width, height float64) Option {
	return func(c *config) {
		c.canvas = topology.Canvas{Width: width, Height: height}
	}
}

// WithLayoutOptions overrides the layout options. Width and height left at
// zero follow the canvas.
func WithLayoutOptions(opts layout.Options) Option {
	return func(c *config) { c.layoutOpts = opts }
}

// WithViewportOptions overrides the viewport options. Width and height left
// at zero follow the canvas.
func WithViewportOptions(opts viewport.Options) Option {
	return func(c *config) { c.viewOpts = opts }
}

// WithAnchorRadius sets the anchor distance from node centres.
func WithAnchorRadius(r float64) Option {
	return func(c *config) { c.anchorRadius = r }
}

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithHooks sets the observability hooks.
func WithHooks(h observability.Hooks) Option {
	return func(c *config) { c.hooks = h }
}

// WithCallbacks registers host notifications.
func WithCallbacks(cb topology.Callbacks) Option {
	return func(c *config) { c.callbacks = cb }
}

// WithRand sets the random source used for placing added nodes.
func WithRand(r *rand.Rand) Option {
	return func(c *config) { c.rng = r }
}

// New creates an editor with an empty graph.
func New(opts ...Option) *Editor {
	cfg := config{
		canvas:       topology.DefaultCanvas,
		layoutOpts:   layout.DefaultOptions(),
		viewOpts:     viewport.DefaultOptions(),
		anchorRadius: interact.DefaultAnchorRadius,
	}
	// Size comes from the canvas unless an options override sets one.
	cfg.layoutOpts.Width, cfg.layoutOpts.Height = 0, 0
	cfg.viewOpts.Width, cfg.viewOpts.Height = 0, 0
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.Default()
	}
	cfg.hooks = cfg.hooks.WithDefaults()

	if cfg.layoutOpts.Width <= 0 || cfg.layoutOpts.Height <= 0 {
		cfg.layoutOpts.Width, cfg.layoutOpts.Height = cfg.canvas.Width, cfg.canvas.Height
	}
	if cfg.viewOpts.Width <= 0 || cfg.viewOpts.Height <= 0 {
		cfg.viewOpts.Width, cfg.viewOpts.Height = cfg.canvas.Width, cfg.canvas.Height
	}

	gopts := []topology.Option{
		topology.WithCanvas(cfg.canvas),
		topology.WithCallbacks(cfg.callbacks),
	}
	if cfg.rng != nil {
		gopts = append(gopts, topology.WithRand(cfg.rng))
	}
	g := topology.New(gopts...)

	return &Editor{
		graph: g,
		machine: interact.New(g,
			interact.WithAnchorRadius(cfg.anchorRadius),
			interact.WithHooks(cfg.hooks.Interaction),
		),
		view:       viewport.New(cfg.viewOpts),
		layoutOpts: cfg.layoutOpts,
		logger:     cfg.logger,
		hooks:      cfg.hooks,
	}
}

// On replaces the registered host notifications.
func (e *Editor) On(cb topology.Callbacks) { e.graph.SetCallbacks(cb) }

// Graph returns the underlying model for read access.
func (e *Editor) Graph() *topology.Graph { return e.graph }

// Viewport returns the viewport controller.
func (e *Editor) Viewport() *viewport.Controller { return e.view }

// State returns the interaction state.
func (e *Editor) State() interact.State { return e.machine.State() }

// LayoutOptions returns the options used by Beautify and Arrange.
func (e *Editor) LayoutOptions() layout.Options { return e.layoutOpts }

// =============================================================================
// Model
// =============================================================================

// Load replaces the topology. Any gesture in progress is abandoned first.
func (e *Editor) Load(ds graph.Dataset) topology.LoadReport {
	e.machine.Cancel()
	report := e.graph.Load(ds)
	if report.DroppedNodes > 0 || report.DroppedLinks > 0 {
		e.logger.Warn("dropped inconsistent records",
			"nodes", report.DroppedNodes,
			"links", report.DroppedLinks)
	}
	e.logger.Debug("loaded topology",
		"nodes", report.Nodes,
		"links", report.Links,
		"placed", report.Placed)
	return report
}

// Data returns the serializable snapshot of the model.
func (e *Editor) Data() graph.Dataset { return e.graph.Data() }

// AddNode inserts a node. See topology.Graph.AddNode.
func (e *Editor) AddNode(n graph.Node) (topology.Node, bool) {
	return e.graph.AddNode(n)
}

// DeleteNode removes a node and its links. A gesture involving the node is
// abandoned first.
func (e *Editor) DeleteNode(id string) bool {
	if !e.graph.Has(id) {
		return false
	}
	if dragged, ok := e.machine.DraggedNode(); ok && dragged == id {
		e.machine.Cancel()
	}
	if line, ok := e.machine.GuideLine(); ok && line.Source == id {
		e.machine.Cancel()
	}
	return e.graph.DeleteNode(id)
}

// DeleteSelected deletes the selected node and returns its id.
func (e *Editor) DeleteSelected() (string, bool) {
	n, ok := e.graph.Selected()
	if !ok {
		return "", false
	}
	return n.ID, e.DeleteNode(n.ID)
}

// AddLink connects two nodes. See topology.Graph.AddLink.
func (e *Editor) AddLink(source, target string) (topology.StoredLink, bool) {
	return e.graph.AddLink(source, target)
}

// DeleteLink removes the link going exactly from source to target.
func (e *Editor) DeleteLink(source, target string) bool {
	return e.graph.DeleteLink(source, target)
}

// =============================================================================
// Layout
// =============================================================================

// Beautify runs the hybrid layout on the current graph.
func (e *Editor) Beautify(ctx context.Context) layout.Result {
	res, _ := e.Arrange(ctx, graph.AlgorithmHybrid)
	return res
}

// Arrange runs the named layout algorithm on the current graph.
func (e *Editor) Arrange(ctx context.Context, algorithm string) (layout.Result, error) {
	if algorithm == "" {
		algorithm = graph.AlgorithmHybrid
	}
	fn, err := layout.Lookup(algorithm)
	if err != nil {
		return layout.Result{}, err
	}

	n := e.graph.Len()
	e.hooks.Layout.OnLayoutStart(ctx, algorithm, n)
	start := time.Now()

	res := fn(e.graph, e.layoutOpts)

	elapsed := time.Since(start)
	e.hooks.Layout.OnLayoutComplete(ctx, res.Algorithm, observability.LayoutStats{
		Nodes:         n,
		Iterations:    res.Iterations,
		OverlapPasses: res.OverlapPasses,
		MaxLevel:      res.MaxLevel,
	}, elapsed, nil)

	e.logger.Debug("computed layout",
		"algorithm", res.Algorithm,
		"nodes", n,
		"levels", res.MaxLevel+1,
		"overlap_passes", res.OverlapPasses,
		"duration", elapsed)
	return res, nil
}

// =============================================================================
// Interaction
// =============================================================================

// Handle feeds one pointer event in world coordinates to the state machine.
func (e *Editor) Handle(ev interact.Event) []interact.Effect {
	return e.machine.Handle(ev)
}

// HandleScreen feeds one pointer event in screen coordinates, converting it
// through the current viewport transform.
func (e *Editor) HandleScreen(ev interact.Event) []interact.Effect {
	p := e.view.Transform().Invert(ev.Point())
	ev.X, ev.Y = p.X, p.Y
	return e.machine.Handle(ev)
}

// Cancel abandons the gesture in progress.
func (e *Editor) Cancel() []interact.Effect { return e.machine.Cancel() }

// =============================================================================
// Viewport
// =============================================================================

// FitView frames all node centres. It reports false for an empty graph.
func (e *Editor) FitView() (viewport.Transition, bool) {
	positions := e.graph.Positions()
	points := make([]graph.Point, 0, len(positions))
	for _, id := range e.graph.IDs() {
		points = append(points, positions[id])
	}
	return e.view.FitView(points)
}

// ResetZoom returns the viewport to the identity transform.
func (e *Editor) ResetZoom() viewport.Transition { return e.view.ResetZoom() }

// ZoomTo scales the viewport about the canvas centre.
func (e *Editor) ZoomTo(k float64) viewport.Transition { return e.view.ZoomTo(k) }
