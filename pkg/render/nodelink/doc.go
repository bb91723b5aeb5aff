// Package nodelink draws dependency graphs and compatibility matrices as
// node-link diagrams.
//
// [GraphDOT] and [MatrixDOT] produce Graphviz DOT source. The source can be
// written out as-is for external tooling, or rendered in-process with
// [RenderSVG] and [RenderPNG]:
//
//	dot := nodelink.GraphDOT(v.Graph(), nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Dependency graphs flow top to bottom (rankdir=TB), dependents above the
// components they depend on. Names that appear only as edge targets are
// drawn dashed.
//
// Rendering uses [github.com/goccy/go-graphviz], a WebAssembly build of
// Graphviz, so no system installation is required.
package nodelink
