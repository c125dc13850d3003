// Package nodelink renders laid-out network topologies as node-link
// diagrams through Graphviz.
//
// # Overview
//
// The layout engine decides where every device goes; Graphviz only draws.
// [ToDOT] emits each node with a pinned position (pos="x,y!") and selects
// the neato engine, which honours pinned positions instead of computing its
// own placement.
//
// # Usage
//
//	res := ed.Beautify(ctx)
//	dot := nodelink.ToDOT(res.Export(opts, ed.Data()), nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Node fill reflects device status (offline devices are grey and dashed).
// Outline colour and shape reflect the device type.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is required.
package nodelink
