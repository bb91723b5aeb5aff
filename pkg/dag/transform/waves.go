package transform

import "github.com/matzehuels/versionforge/pkg/dag"

// Waves groups the nodes of an acyclic graph into upgrade waves.
//
// Wave 0 holds components without dependencies. Every other component is
// placed one wave after the latest wave of any of its dependencies, so all
// members of a wave can be upgraded in parallel once the earlier waves are
// done. Within a wave, nodes keep insertion order.
//
// Waves uses Kahn's algorithm over outgoing edges. Nodes on a cycle never
// become ready and are returned separately as stuck, in insertion order.
func Waves(g *dag.DAG) (waves [][]string, stuck []string) {
	ids := g.NodeIDs()
	remaining := make(map[string]int, len(ids))
	wave := make(map[string]int, len(ids))
	var ready []string

	for _, id := range ids {
		remaining[id] = g.OutDegree(id)
		if remaining[id] == 0 {
			ready = append(ready, id)
		}
	}

	placed := make(map[string]bool, len(ids))
	for len(ready) > 0 {
		curr := ready[0]
		ready = ready[1:]
		placed[curr] = true

		for _, parent := range g.Parents(curr) {
			if w := wave[curr] + 1; w > wave[parent] {
				wave[parent] = w
			}
			remaining[parent]--
			if remaining[parent] == 0 {
				ready = append(ready, parent)
			}
		}
	}

	for _, id := range ids {
		if !placed[id] {
			stuck = append(stuck, id)
			continue
		}
		for len(waves) <= wave[id] {
			waves = append(waves, nil)
		}
		waves[wave[id]] = append(waves[wave[id]], id)
	}
	return waves, stuck
}
