// Package editor wires the topology model, layout engine, pointer state
// machine and viewport into one explicitly constructed controller.
//
// Hosts create an [Editor] with New, load a dataset, and then drive it with
// pointer events and commands:
//
//	ed := editor.New(editor.WithCanvas(1200, 800), editor.WithLogger(logger))
//	ed.Load(ds)
//	ed.Beautify(ctx)
//	effects := ed.HandleScreen(ev)
//
// The editor holds no package-level state; two editors never share
// anything.
package editor
