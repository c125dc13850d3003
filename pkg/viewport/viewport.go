package viewport

import (
	"math"
	"time"

	"github.com/matzehuels/netmap/pkg/graph"
)

// Defaults match the editor's canvas behaviour.
const (
	DefaultMinScale = 0.1
	DefaultMaxScale = 4
	DefaultDuration = 750 * time.Millisecond
	DefaultPadding  = 50
)

// Transform is a translate-then-uniform-scale mapping from world to screen
// coordinates: screen = world·K + (X, Y).
type Transform struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// Identity is the transform that leaves coordinates unchanged.
var Identity = Transform{K: 1}

// Apply maps a world point to the screen.
func (t Transform) Apply(p graph.Point) graph.Point {
	return graph.Point{X: p.X*t.K + t.X, Y: p.Y*t.K + t.Y}
}

// Invert maps a screen point back to world coordinates.
func (t Transform) Invert(p graph.Point) graph.Point {
	return graph.Point{X: (p.X - t.X) / t.K, Y: (p.Y - t.Y) / t.K}
}

// Extent is the allowed scale range.
type Extent struct {
	Min float64
	Max float64
}

// Clamp limits k to the extent.
func (e Extent) Clamp(k float64) float64 { return math.Max(e.Min, math.Min(e.Max, k)) }

// Options configures a Controller.
type Options struct {
	Width    float64
	Height   float64
	Extent   Extent
	Duration time.Duration
	Padding  float64
}

// DefaultOptions returns a controller configuration for an 800x600 canvas.
func DefaultOptions() Options {
	return Options{
		Width:    800,
		Height:   600,
		Extent:   Extent{Min: DefaultMinScale, Max: DefaultMaxScale},
		Duration: DefaultDuration,
		Padding:  DefaultPadding,
	}
}

// Controller owns the pan/zoom transform of one canvas. It reads node
// positions handed to it and never writes them.
//
// The zero value is not usable - use New to create a valid Controller.
type Controller struct {
	opts Options
	cur  Transform
}

// New creates a controller at the identity transform. Zero option fields
// take their defaults.
func New(opts Options) *Controller {
	d := DefaultOptions()
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = d.Width, d.Height
	}
	if opts.Extent.Min <= 0 || opts.Extent.Max < opts.Extent.Min {
		opts.Extent = d.Extent
	}
	if opts.Duration <= 0 {
		opts.Duration = d.Duration
	}
	if opts.Padding <= 0 {
		opts.Padding = d.Padding
	}
	return &Controller{opts: opts, cur: Identity}
}

// Transform returns the current transform.
func (c *Controller) Transform() Transform { return c.cur }

// Options returns the controller configuration.
func (c *Controller) Options() Options { return c.opts }

// Resize changes the canvas size used by later fits.
func (c *Controller) Resize(width, height float64) {
	if width > 0 && height > 0 {
		c.opts.Width, c.opts.Height = width, height
	}
}

// Set replaces the current transform immediately, clamping its scale. It is
// how hosts report user pans and wheel zooms.
func (c *Controller) Set(t Transform) {
	t.K = c.opts.Extent.Clamp(t.K)
	c.cur = t
}

// Pan shifts the view by (dx, dy) screen units.
func (c *Controller) Pan(dx, dy float64) {
	c.cur.X += dx
	c.cur.Y += dy
}

// ZoomTo scales the view about the canvas centre to k.
func (c *Controller) ZoomTo(k float64) Transition {
	return c.ZoomAt(k, graph.Point{X: c.opts.Width / 2, Y: c.opts.Height / 2})
}

// ZoomAt scales the view to k keeping the screen point p fixed.
func (c *Controller) ZoomAt(k float64, p graph.Point) Transition {
	k = c.opts.Extent.Clamp(k)
	world := c.cur.Invert(p)
	to := Transform{X: p.X - world.X*k, Y: p.Y - world.Y*k, K: k}
	return c.transition(to)
}

// FitView centres the bounding box of points in the canvas, with padding,
// never scaling above 1. It returns false and changes nothing when points is
// empty.
func (c *Controller) FitView(points []graph.Point) (Transition, bool) {
	if len(points) == 0 {
		return Transition{}, false
	}

	lo := graph.Point{X: math.Inf(1), Y: math.Inf(1)}
	hi := graph.Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range points {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	lo.X -= c.opts.Padding
	lo.Y -= c.opts.Padding
	hi.X += c.opts.Padding
	hi.Y += c.opts.Padding

	w, h := hi.X-lo.X, hi.Y-lo.Y
	k := math.Min(math.Min(c.opts.Width/w, c.opts.Height/h), 1)
	k = c.opts.Extent.Clamp(k)

	cx, cy := (lo.X+hi.X)/2, (lo.Y+hi.Y)/2
	to := Transform{
		X: c.opts.Width/2 - cx*k,
		Y: c.opts.Height/2 - cy*k,
		K: k,
	}
	return c.transition(to), true
}

// ResetZoom returns to the identity transform.
func (c *Controller) ResetZoom() Transition { return c.transition(Identity) }

func (c *Controller) transition(to Transform) Transition {
	tr := Transition{From: c.cur, To: to, Duration: c.opts.Duration}
	c.cur = to
	return tr
}
