// Package pkg provides the core libraries for netmap, an interactive
// network topology editor.
//
// # Overview
//
// netmap keeps a topology of network devices and the links between them,
// arranges it on a canvas, and turns pointer events into edits. The pkg
// directory is organized into these areas:
//
//  1. Model: [graph] (wire types and files), [topology] (the editable
//     arena), [hierarchy] (level detection)
//  2. Layout: [layout] (hybrid, circular, grid and radial arrangement)
//  3. Interaction: [interact] (pointer state machine), [viewport]
//     (zoom and pan), [editor] (the facade tying them together)
//  4. Infrastructure: [cache], [store], [pipeline], [observability],
//     [config], [errors]
//  5. Output: [render] (Graphviz DOT and SVG), [generate] (synthetic data)
//
// # Architecture
//
// The typical data flow:
//
//	dataset file or API request
//	         ↓
//	    [editor] Load (missing positions placed on the canvas)
//	         ↓
//	    [interact] pointer events → model edits + effects
//	         ↓
//	    [layout] Beautify or Arrange
//	         ↓
//	    [store] save, or [render] DOT/SVG
//
// # Quick Start
//
//	ds, _ := graph.ReadDatasetFile("office.json")
//
//	ed := editor.New(editor.WithCanvas(1200, 800))
//	ed.Load(ds)
//	res := ed.Beautify(ctx)
//
//	dot := nodelink.ToDOT(res.Export(ed.LayoutOptions(), ed.Data()), nodelink.Options{Labels: true})
//
// [graph]: github.com/matzehuels/netmap/pkg/graph
// [topology]: github.com/matzehuels/netmap/pkg/topology
// [hierarchy]: github.com/matzehuels/netmap/pkg/hierarchy
// [layout]: github.com/matzehuels/netmap/pkg/layout
// [interact]: github.com/matzehuels/netmap/pkg/interact
// [viewport]: github.com/matzehuels/netmap/pkg/viewport
// [editor]: github.com/matzehuels/netmap/pkg/editor
// [cache]: github.com/matzehuels/netmap/pkg/cache
// [store]: github.com/matzehuels/netmap/pkg/store
// [pipeline]: github.com/matzehuels/netmap/pkg/pipeline
// [observability]: github.com/matzehuels/netmap/pkg/observability
// [config]: github.com/matzehuels/netmap/pkg/config
// [errors]: github.com/matzehuels/netmap/pkg/errors
// [render]: github.com/matzehuels/netmap/pkg/render
// [generate]: github.com/matzehuels/netmap/pkg/generate
package pkg
