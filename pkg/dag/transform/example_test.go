package transform_test

import (
	"fmt"

	"github.com/matzehuels/versionforge/pkg/dag"
	"github.com/matzehuels/versionforge/pkg/dag/transform"
)

func ExampleTransitiveReduction() {
	// app depends on core both directly and through api
	g := dag.New(nil)
	_ = g.AddEdge("app", "api")
	_ = g.AddEdge("api", "core")
	_ = g.AddEdge("app", "core")

	fmt.Println("Edges before:", g.EdgeCount())
	transform.TransitiveReduction(g)
	fmt.Println("Edges after:", g.EdgeCount())
	fmt.Println("app -> core:", g.HasEdge("app", "core"))
	// Output:
	// Edges before: 3
	// Edges after: 2
	// app -> core: false
}

func ExampleBreakCycles() {
	// Create a graph with a cycle (which shouldn't happen in deps, but might)
	g := dag.New(nil)
	_ = g.AddEdge("A", "B")
	_ = g.AddEdge("B", "C")
	_ = g.AddEdge("C", "A") // Creates cycle

	fmt.Println("Edges before:", g.EdgeCount())
	removed := transform.BreakCycles(g)
	fmt.Println("Edges after:", g.EdgeCount())
	fmt.Printf("Removed: %s -> %s\n", removed[0].From, removed[0].To)
	// Output:
	// Edges before: 3
	// Edges after: 2
	// Removed: C -> A
}

func ExampleWaves() {
	g := dag.New(nil)
	_ = g.AddEdge("ui", "api")
	_ = g.AddEdge("api", "core")
	_ = g.AddEdge("worker", "core")
	_ = g.AddNode(dag.Node{ID: "docs"})

	waves, _ := transform.Waves(g)
	for i, w := range waves {
		fmt.Println(i, w)
	}
	// Output:
	// 0 [core docs]
	// 1 [api worker]
	// 2 [ui]
}
