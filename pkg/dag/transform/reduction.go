package transform

import "github.com/matzehuels/versionforge/pkg/dag"

// TransitiveReduction removes redundant edges from the graph.
//
// An edge (u, v) is redundant when v is also reachable from u through some
// other child of u: if app → api → core and app → core both exist,
// app → core is implied and removed. Rendered dependency graphs stay
// readable and upgrade ordering is unaffected, since reachability is
// preserved.
//
// Reachability is computed once for every node with a DFS over the
// adjacency lists, so the cost is O(V·(V+E)). The graph should be acyclic;
// run [BreakCycles] first otherwise.
func TransitiveReduction(g *dag.DAG) {
	ids := g.NodeIDs()
	if len(ids) == 0 {
		return
	}

	nodeIndex := make(map[string]int, len(ids))
	for i, id := range ids {
		nodeIndex[id] = i
	}
	adjacency := make([][]int, len(ids))
	for _, e := range g.Edges() {
		adjacency[nodeIndex[e.From]] = append(adjacency[nodeIndex[e.From]], nodeIndex[e.To])
	}

	reachability := computeReachability(adjacency)

	for _, e := range g.Edges() {
		src, dst := nodeIndex[e.From], nodeIndex[e.To]
		for _, intermediate := range adjacency[src] {
			if intermediate != dst && reachability[intermediate][dst] {
				g.RemoveEdge(e.From, e.To)
				break
			}
		}
	}
}

func computeReachability(adjacency [][]int) [][]bool {
	n := len(adjacency)
	reachable := make([][]bool, n)
	for i := range reachable {
		reachable[i] = make([]bool, n)
	}

	var dfs func(source, current int)
	dfs = func(source, current int) {
		if reachable[source][current] {
			return
		}
		reachable[source][current] = true
		for _, next := range adjacency[current] {
			dfs(source, next)
		}
	}

	for i := range reachable {
		dfs(i, i)
	}
	return reachable
}
