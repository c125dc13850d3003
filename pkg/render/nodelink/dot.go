package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/netmap/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Labels draws the device label under each node. When false only the
	// node shape is drawn.
	Labels bool

	// Radius is the node radius in points. Zero means 30.
	Radius float64
}

// Colors used for node fills and link strokes.
const (
	fillOnline  = "#B5D6FB"
	fillOffline = "#f0f0f0"
	linkColor   = "#afafaf"
)

var typeStroke = map[graph.DeviceType]string{
	graph.DeviceSwitch:   "#2196F3",
	graph.DeviceRouter:   "#4CAF50",
	graph.DeviceServer:   "#FF9800",
	graph.DeviceFirewall: "#F44336",
	graph.DevicePC:       "#9C27B0",
}

const defaultStroke = "#9E9E9E"

var typeShape = map[graph.DeviceType]string{
	graph.DeviceSwitch:   "box",
	graph.DeviceRouter:   "diamond",
	graph.DeviceFirewall: "octagon",
	graph.DeviceServer:   "box3d",
}

// ToDOT converts a laid-out topology to Graphviz DOT. Every node is pinned
// at its layout position (pos="x,y!") and the graph uses the neato engine,
// so Graphviz draws the computed layout instead of running its own.
//
// Layout coordinates grow downward; DOT coordinates grow upward. ToDOT
// flips the y axis about the layout's bounding box.
func ToDOT(l graph.Layout, opts Options) string {
	if opts.Radius <= 0 {
		opts.Radius = 30
	}
	pos := positions(l)
	_, maxY := yRange(pos)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  notranslate=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, width=%s, fontsize=10, fontname=\"Helvetica\"];\n",
		fmtFloat(2*opts.Radius/72))
	fmt.Fprintf(&buf, "  edge [color=%q, penwidth=1.5];\n", linkColor)
	buf.WriteString("\n")

	for _, n := range l.Dataset.Nodes {
		p, ok := pos[n.ID]
		if !ok {
			continue
		}
		attrs := fmtAttrs(n, opts.Labels)
		attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(p.X), fmtFloat(maxY-p.Y)))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Dataset.Links {
		if _, ok := pos[e.Source]; !ok {
			continue
		}
		if _, ok := pos[e.Target]; !ok {
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// positions prefers the layout's position map and falls back to the
// coordinates carried on the dataset nodes.
func positions(l graph.Layout) map[string]graph.Point {
	out := make(map[string]graph.Point, len(l.Dataset.Nodes))
	for _, n := range l.Dataset.Nodes {
		if p, ok := l.Positions[n.ID]; ok {
			out[n.ID] = p
		} else if n.HasPosition() {
			out[n.ID] = graph.Point{X: *n.X, Y: *n.Y}
		}
	}
	return out
}

func yRange(pos map[string]graph.Point) (lo, hi float64) {
	if len(pos) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range pos {
		lo = math.Min(lo, p.Y)
		hi = math.Max(hi, p.Y)
	}
	return lo, hi
}

func fmtAttrs(n graph.Node, labels bool) []string {
	fill := fillOnline
	if n.Status == graph.StatusOffline {
		fill = fillOffline
	}
	stroke, ok := typeStroke[n.Type]
	if !ok {
		stroke = defaultStroke
	}
	attrs := []string{
		`label=""`,
		fmt.Sprintf("fillcolor=%q", fill),
		fmt.Sprintf("color=%q", stroke),
	}
	if labels {
		attrs = append(attrs, fmt.Sprintf("xlabel=%q", n.DisplayLabel()))
	}
	if shape, ok := typeShape[n.Type]; ok {
		attrs = append(attrs, "shape="+shape)
	}
	if n.Status == graph.StatusOffline {
		attrs = append(attrs, `style="filled,dashed"`)
	}
	return attrs
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's fixed-size svg header with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
