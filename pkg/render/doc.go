// Package render groups the visual output formats of versionforge.
//
// The [nodelink] subpackage renders dependency graphs and compatibility
// matrices as Graphviz diagrams (DOT, SVG, PNG).
//
// [nodelink]: github.com/matzehuels/versionforge/pkg/render/nodelink
package render
