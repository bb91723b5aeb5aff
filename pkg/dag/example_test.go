package dag_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/versionforge/pkg/dag"
)

func ExampleDAG_basic() {
	// Create a simple dependency graph: app → lib → core
	g := dag.New(nil)
	_ = g.AddEdge("app", "lib")
	_ = g.AddEdge("lib", "core")

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	// Output:
	// Nodes: 3
	// Edges: 2
}

func ExampleDAG_traversal() {
	// Build a graph with fan-out: app depends on auth and cache
	g := dag.New(nil)
	_ = g.AddEdge("app", "auth")
	_ = g.AddEdge("app", "cache")

	// Query relationships
	fmt.Println("Children of app:", g.Children("app"))
	fmt.Println("Parents of auth:", g.Parents("auth"))
	fmt.Println("Out-degree of app:", g.OutDegree("app"))
	// Output:
	// Children of app: [auth cache]
	// Parents of auth: [app]
	// Out-degree of app: 2
}

func ExampleDAG_TopoSort() {
	g := dag.New(nil)
	_ = g.AddEdge("api", "core")
	_ = g.AddEdge("ui", "api")
	_ = g.AddNode(dag.Node{ID: "docs"})

	order, err := g.TopoSort()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(order)
	// Output:
	// [core api ui docs]
}

func ExampleCycleError() {
	g := dag.New(nil)
	_ = g.AddEdge("a", "b")
	_ = g.AddEdge("b", "c")
	_ = g.AddEdge("c", "a")

	_, err := g.TopoSort()
	fmt.Println(err)
	fmt.Println(errors.Is(err, dag.ErrGraphHasCycle))
	// Output:
	// circular dependency detected involving a (a -> b -> c -> a)
	// true
}
