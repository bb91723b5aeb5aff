package dag

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] and [DAG.AddEdge] when
	// a node ID is empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrGraphHasCycle is matched (via errors.Is) by every [*CycleError].
	// Cycles are detected using depth-first search with white/gray/black
	// coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// CycleError reports a directed cycle found during a traversal.
//
// Node is the node that was re-encountered while still in progress. Path
// lists the traversal path from Node back to itself, so the first and last
// elements are both Node.
type CycleError struct {
	Node string
	Path []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("circular dependency detected involving %s", e.Node)
	}
	return fmt.Sprintf("circular dependency detected involving %s (%s)", e.Node, strings.Join(e.Path, " -> "))
}

// Is makes errors.Is(err, ErrGraphHasCycle) true for cycle errors.
func (e *CycleError) Is(target error) bool { return target == ErrGraphHasCycle }

// Metadata stores arbitrary key-value pairs attached to nodes or the graph.
// It is commonly used to store component metadata (version, minimum
// version) for rendering. Metadata maps are never nil - they are
// automatically initialized to empty maps when needed.
type Metadata map[string]any

// Node represents a vertex in the dependency graph.
//
// The zero value is not usable - ID must be set before adding to a DAG.
type Node struct {
	ID   string   // Unique identifier (also used as display label)
	Meta Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// Edge represents a directed connection from a dependent (From) to one of
// its dependencies (To).
type Edge struct {
	From string // Dependent node ID
	To   string // Dependency node ID
}

// DAG is a directed graph of dependent -> dependency edges that is expected
// to be acyclic. Cycles are not prevented at insertion time; they are
// reported by [DAG.TopoSort] and [DAG.Validate].
//
// All enumeration methods return results in insertion order, which makes
// topological orders and error listings deterministic.
//
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    map[string]*Node
	order    []string // node IDs in insertion order
	edges    []Edge
	outgoing map[string][]string // nodeID -> children IDs (dependencies)
	incoming map[string][]string // nodeID -> parent IDs (dependents)
	meta     Metadata
}

// New creates an empty DAG with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *DAG {
	if meta == nil {
		meta = Metadata{}
	}
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
// The returned map is never nil and can be safely modified.
func (d *DAG) Meta() Metadata { return d.meta }

// AddNode adds a node to the graph. Adding an ID that already exists is not
// an error: the new metadata entries are merged into the existing node.
// Returns ErrInvalidNodeID if the node ID is empty.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if existing, ok := d.nodes[n.ID]; ok {
		for k, v := range n.Meta {
			existing.Meta[k] = v
		}
		return nil
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	d.nodes[node.ID] = node
	d.order = append(d.order, node.ID)
	return nil
}

// AddEdge adds a directed edge from -> to. Missing endpoints are created
// with empty metadata. Duplicate edges are ignored, so the children of a
// node behave as an insertion-ordered set.
// Returns ErrInvalidNodeID if either endpoint is empty.
func (d *DAG) AddEdge(from, to string) error {
	if from == "" || to == "" {
		return ErrInvalidNodeID
	}
	if d.HasEdge(from, to) {
		return nil
	}
	_ = d.AddNode(Node{ID: from})
	_ = d.AddNode(Node{ID: to})
	d.edges = append(d.edges, Edge{From: from, To: to})
	d.outgoing[from] = append(d.outgoing[from], to)
	d.incoming[to] = append(d.incoming[to], from)
	return nil
}

// RemoveEdge removes the edge from→to if it exists.
// No error is returned if the edge does not exist.
func (d *DAG) RemoveEdge(from, to string) {
	d.edges = slices.DeleteFunc(d.edges, func(e Edge) bool { return e.From == from && e.To == to })
	d.outgoing[from] = slices.DeleteFunc(d.outgoing[from], func(s string) bool { return s == to })
	d.incoming[to] = slices.DeleteFunc(d.incoming[to], func(s string) bool { return s == from })
}

// HasNode reports whether a node with the given ID exists.
func (d *DAG) HasNode(id string) bool {
	_, ok := d.nodes[id]
	return ok
}

// HasEdge reports whether the edge from→to exists.
func (d *DAG) HasEdge(from, to string) bool { return slices.Contains(d.outgoing[from], to) }

// Node returns the node with the given ID and true, or nil and false if not found.
// The returned node pointer refers to the actual node in the graph, so
// metadata modifications affect the graph.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The returned slice contains
// pointers to the actual node structs.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, len(d.order))
	for i, id := range d.order {
		nodes[i] = d.nodes[id]
	}
	return nodes
}

// NodeIDs returns all node IDs in insertion order.
func (d *DAG) NodeIDs() []string { return slices.Clone(d.order) }

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the IDs of nodes that this node has edges to (dependencies).
// Returns nil if the node has no children or doesn't exist. The returned slice
// should not be modified - use it as a read-only view.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs of nodes that have edges to this node (dependents).
// Returns nil if the node has no parents or doesn't exist. The returned slice
// should not be modified - use it as a read-only view.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// Sources returns nodes with no incoming edges, in insertion order.
// These are components nothing else depends on.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, id := range d.order {
		if len(d.incoming[id]) == 0 {
			sources = append(sources, d.nodes[id])
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges, in insertion order.
// These are components without dependencies.
func (d *DAG) Sinks() []*Node {
	var sinks []*Node
	for _, id := range d.order {
		if len(d.outgoing[id]) == 0 {
			sinks = append(sinks, d.nodes[id])
		}
	}
	return sinks
}

// Clone returns a deep copy of the graph structure. Metadata maps are
// copied one level deep.
func (d *DAG) Clone() *DAG {
	meta := make(Metadata, len(d.meta))
	for k, v := range d.meta {
		meta[k] = v
	}
	c := New(meta)
	for _, id := range d.order {
		n := d.nodes[id]
		m := make(Metadata, len(n.Meta))
		for k, v := range n.Meta {
			m[k] = v
		}
		_ = c.AddNode(Node{ID: id, Meta: m})
	}
	for _, e := range d.edges {
		_ = c.AddEdge(e.From, e.To)
	}
	return c
}

// Validate returns nil if the graph is acyclic and a [*CycleError]
// otherwise.
func (d *DAG) Validate() error {
	_, err := d.TopoSort()
	return err
}

// TopoSort returns every node in dependency-first order: each node appears
// after all nodes reachable through its outgoing edges.
//
// Roots are visited in node insertion order and children in edge insertion
// order; the result is the DFS postorder. A node reached again while it is
// still on the traversal stack aborts the sort with a [*CycleError] naming
// that node. No partial order is returned on failure.
//
// The traversal uses an explicit stack, so deep graphs cannot exhaust the
// goroutine stack. It runs in O(N+E) time.
func (d *DAG) TopoSort() ([]string, error) {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	order := make([]string, 0, len(d.nodes))
	var stack []dfsFrame

	for _, root := range d.order {
		if color[root] != white {
			continue
		}
		color[root] = gray
		stack = append(stack[:0], dfsFrame{id: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := d.outgoing[top.id]
			if top.next == len(children) {
				color[top.id] = black
				order = append(order, top.id)
				stack = stack[:len(stack)-1]
				continue
			}

			child := children[top.next]
			top.next++
			switch color[child] {
			case white:
				color[child] = gray
				stack = append(stack, dfsFrame{id: child})
			case gray:
				return nil, &CycleError{Node: child, Path: cyclePath(stack, child)}
			}
		}
	}
	return order, nil
}

type dfsFrame struct {
	id   string
	next int // index of the next child to visit
}

// cyclePath extracts the portion of the DFS stack from node to the top and
// closes it back on node.
func cyclePath(stack []dfsFrame, node string) []string {
	start := 0
	for i, f := range stack {
		if f.id == node {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		path = append(path, f.id)
	}
	return append(path, node)
}
