package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// =============================================================================
// Node-Link Serialization
// =============================================================================

// Graph is the node-link JSON form of either graph.
type Graph struct {
	Nodes []Node     `json:"nodes"`
	Edges []LinkEdge `json:"edges"`
}

// Node is a serialized node.
type Node struct {
	ID   string         `json:"id"`
	Meta map[string]any `json:"meta,omitempty"`
}

// LinkEdge is a serialized edge.
type LinkEdge struct {
	From string         `json:"from"`
	To   string         `json:"to"`
	Meta map[string]any `json:"meta,omitempty"`
}

// FromSystemGraph converts a system graph to node-link form. Nodes and edges
// keep insertion order.
func FromSystemGraph(g *SystemGraph) Graph {
	out := Graph{Nodes: make([]Node, 0, g.NodeCount()), Edges: make([]LinkEdge, 0, g.EdgeCount())}
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		meta := map[string]any{"role": string(n.Role), "color": n.Color}
		if n.Category != "" {
			meta["category"] = n.Category
		}
		if !n.Known {
			meta["unknown"] = true
		}
		out.Nodes = append(out.Nodes, Node{ID: id, Meta: meta})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, LinkEdge{
			From: e.From,
			To:   e.To,
			Meta: map[string]any{"weight": e.Attr.Weight, "direction": e.Attr.Direction},
		})
	}
	return out
}

// FromTableGraph converts a table graph to node-link form.
func FromTableGraph(g *TableGraph) Graph {
	out := Graph{Nodes: make([]Node, 0, g.NodeCount()), Edges: make([]LinkEdge, 0, g.EdgeCount())}
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		out.Nodes = append(out.Nodes, Node{ID: id, Meta: map[string]any{"system": n.System}})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, LinkEdge{
			From: e.From,
			To:   e.To,
			Meta: map[string]any{
				"weight":         e.Attr.Weight,
				"transformation": e.Attr.Transformation,
				"direction":      e.Attr.Direction,
				"source_system":  e.Attr.SourceSystem,
				"target_system":  e.Attr.TargetSystem,
			},
		})
	}
	return out
}

// MarshalSystemGraph converts a system graph to indented JSON bytes.
func MarshalSystemGraph(g *SystemGraph) ([]byte, error) {
	return marshal(FromSystemGraph(g))
}

// MarshalTableGraph converts a table graph to indented JSON bytes.
func MarshalTableGraph(g *TableGraph) ([]byte, error) {
	return marshal(FromTableGraph(g))
}

// WriteJSON writes v as indented JSON to w.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
