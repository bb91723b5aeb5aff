package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/versionforge/pkg/compat"
	"github.com/matzehuels/versionforge/pkg/dag"
)

// Options configures dependency graph rendering.
type Options struct {
	// Detailed adds the effective minimum version to node labels.
	Detailed bool
	// Highlight lists node IDs drawn with a filled accent, e.g. the targets
	// of an upgrade plan.
	Highlight []string
}

const header = `  bgcolor="transparent";
  node [shape=box, style="rounded,filled", fillcolor=white, fontname="Helvetica", fontsize=14, margin="0.2,0.1"];
  edge [fontname="Helvetica", fontsize=11];
  ranksep=0.5;
  nodesep=0.3;
`

// GraphDOT converts a dependency graph to Graphviz DOT. Edges point from
// dependent to dependency. Nodes whose "registered" metadata is false are
// drawn dashed; a "version" entry is shown under the node name.
func GraphDOT(g *dag.DAG, opts Options) string {
	highlight := make(map[string]bool, len(opts.Highlight))
	for _, id := range opts.Highlight {
		highlight[id] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString(header)
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(*n, opts.Detailed))}
		switch {
		case n.Meta["registered"] == false:
			attrs = append(attrs, `style="rounded,filled,dashed"`, "fillcolor=lightgrey")
		case highlight[n.ID]:
			attrs = append(attrs, "fillcolor=lightblue")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n dag.Node, detailed bool) string {
	label := n.ID
	if v, ok := n.Meta["version"].(string); ok && v != "" {
		label += "\nv" + v
	}
	if detailed {
		if m, ok := n.Meta["min_version"].(string); ok && m != "" {
			label += "\nmin " + m
		}
	}
	return label
}

// MatrixDOT converts a compatibility matrix to an undirected DOT graph.
// Each pair of components with at least one registered pair is joined by
// one edge labeled with the number of compatible version pairs.
func MatrixDOT(m *compat.Matrix) string {
	names := m.Components()

	var buf bytes.Buffer
	buf.WriteString("graph M {\n")
	buf.WriteString("  layout=circo;\n")
	buf.WriteString(header)
	buf.WriteString("\n")

	for _, name := range names {
		label := name
		if vs := m.Versions(name); len(vs) > 0 {
			label += "\n" + strings.Join(vs, ", ")
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", name, label)
	}

	buf.WriteString("\n")
	for i, a := range names {
		for _, b := range names[i+1:] {
			if n := m.PairCount(a, b); n > 0 {
				fmt.Fprintf(&buf, "  %q -- %q [label=\"%d\"];\n", a, b, n)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG using the embedded Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from its
// viewBox instead of Graphviz's point-based width and height.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
