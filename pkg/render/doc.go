// Package render turns laid-out topologies into static artifacts.
//
// The [nodelink] subpackage produces Graphviz DOT with pinned positions and
// renders it to SVG. Interactive rendering stays with the host UI, which
// consumes the effects emitted by the interaction machine.
//
// [nodelink]: github.com/matzehuels/netmap/pkg/render/nodelink
package render
