package transform

import "github.com/matzehuels/versionforge/pkg/dag"

// BreakCycles removes back edges until the graph is acyclic and returns the
// removed edges in discovery order.
//
// Roots are visited in node insertion order, so the edge that closes a loop
// (the one pointing back at an in-progress node) is the one dropped. It is
// meant for presentation only: upgrade planning must refuse cyclic graphs
// rather than silently break them.
func BreakCycles(g *dag.DAG) []dag.Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	var backEdges []dag.Edge

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, dag.Edge{From: node, To: child})
			}
		}
		color[node] = black
	}

	for _, id := range g.NodeIDs() {
		if color[id] == white {
			dfs(id)
		}
	}

	for _, e := range backEdges {
		g.RemoveEdge(e.From, e.To)
	}
	return backEdges
}
