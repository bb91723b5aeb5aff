// Package dag provides the insertion-ordered directed graph behind
// dependency validation and upgrade planning.
//
// # Overview
//
// Edges point from a dependent to its dependency: an edge app → lib means
// "app depends on lib". Dependencies therefore sit downstream of the
// components that need them, and a topological order that visits children
// first yields the order in which upgrades can be applied safely.
//
// # Basic Usage
//
// Create a new graph with [New], add nodes with [DAG.AddNode], and edges with
// [DAG.AddEdge]. Edges create missing endpoints implicitly, and repeating an
// edge is a no-op:
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "app"})
//	g.AddEdge("app", "lib")
//	g.AddEdge("lib", "core")
//
//	order, err := g.TopoSort() // [core lib app]
//
// Query the graph structure with [DAG.Children], [DAG.Parents],
// [DAG.Sources], [DAG.Sinks] and related methods.
//
// # Ordering
//
// Unlike a map-backed graph, every enumeration follows insertion order.
// [DAG.TopoSort] starts from nodes in the order they were added and
// explores children in the order their edges were added, so the same
// sequence of registrations always produces the same plan.
//
// # Cycles
//
// Cycles are allowed to exist in the graph; they are detected, not
// prevented. [DAG.TopoSort] and [DAG.Validate] return a [*CycleError]
// naming the node that was re-encountered while still in progress, along
// with the path that closes the loop. Cycle errors match
// [ErrGraphHasCycle] through errors.Is.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Callers must synchronize access
// if multiple goroutines read or modify the same graph.
//
// # Related Packages
//
// The [transform] subpackage provides graph transformations used for
// presentation: transitive reduction, cycle breaking and upgrade waves.
//
// [transform]: github.com/matzehuels/versionforge/pkg/dag/transform
package dag
