package graph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Digraph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Digraph.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Digraph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Digraph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Edge is a directed edge carrying typed attributes.
type Edge[E any] struct {
	From string
	To   string
	Attr E
}

// Weighted is implemented by edge attributes that carry a flow weight.
type Weighted interface {
	FlowWeight() float64
}

// Digraph is a directed multigraph with typed node and edge attributes.
// Nodes and edges are returned in insertion order. Multiple edges between
// the same pair of nodes and self-loops are allowed.
//
// The zero value is not usable; use [NewDigraph]. A Digraph is not safe for
// concurrent mutation, but is safe for concurrent reads once built.
type Digraph[N, E any] struct {
	order    []string
	nodes    map[string]N
	edges    []Edge[E]
	outgoing map[string][]int // nodeID -> edge indices
	incoming map[string][]int
}

// NewDigraph creates an empty graph.
func NewDigraph[N, E any]() *Digraph[N, E] {
	return &Digraph[N, E]{
		nodes:    make(map[string]N),
		outgoing: make(map[string][]int),
		incoming: make(map[string][]int),
	}
}

// AddNode adds a node. Returns ErrInvalidNodeID for an empty id and
// ErrDuplicateNodeID if id is already present.
func (g *Digraph[N, E]) AddNode(id string, attr N) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[id]; exists {
		return ErrDuplicateNodeID
	}
	g.nodes[id] = attr
	g.order = append(g.order, id)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
func (g *Digraph[N, E]) AddEdge(from, to string, attr E) error {
	if _, ok := g.nodes[from]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[to]; !ok {
		return ErrUnknownTargetNode
	}
	idx := len(g.edges)
	g.edges = append(g.edges, Edge[E]{From: from, To: to, Attr: attr})
	g.outgoing[from] = append(g.outgoing[from], idx)
	g.incoming[to] = append(g.incoming[to], idx)
	return nil
}

// HasNode reports whether id is in the graph.
func (g *Digraph[N, E]) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns the attributes of a node.
func (g *Digraph[N, E]) Node(id string) (N, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeIDs returns node IDs in insertion order.
func (g *Digraph[N, E]) NodeIDs() []string { return slices.Clone(g.order) }

// Edges returns all edges in insertion order.
func (g *Digraph[N, E]) Edges() []Edge[E] { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Digraph[N, E]) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges, counting parallel edges separately.
func (g *Digraph[N, E]) EdgeCount() int { return len(g.edges) }

// Out returns the edges leaving id in insertion order.
func (g *Digraph[N, E]) Out(id string) []Edge[E] { return g.collect(g.outgoing[id]) }

// In returns the edges entering id in insertion order.
func (g *Digraph[N, E]) In(id string) []Edge[E] { return g.collect(g.incoming[id]) }

// Neighbors returns the distinct nodes adjacent to id in either direction,
// in first-seen order.
func (g *Digraph[N, E]) Neighbors(id string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(n string) {
		if n != id && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, i := range g.outgoing[id] {
		add(g.edges[i].To)
	}
	for _, i := range g.incoming[id] {
		add(g.edges[i].From)
	}
	return out
}

func (g *Digraph[N, E]) collect(idx []int) []Edge[E] {
	if len(idx) == 0 {
		return nil
	}
	out := make([]Edge[E], len(idx))
	for i, j := range idx {
		out[i] = g.edges[j]
	}
	return out
}

// MaxWeight returns the largest edge weight in g, or 0 for a graph without
// edges.
func MaxWeight[N any, E Weighted](g *Digraph[N, E]) float64 {
	var m float64
	for i, e := range g.edges {
		if w := e.Attr.FlowWeight(); i == 0 || w > m {
			m = w
		}
	}
	return m
}
