// Package graph builds the directed multigraphs shown by the dashboard.
//
// Two graphs are derived from the loaded [dataset.Dataset]:
//
//   - [SystemGraph]: one node per system, one edge per system flow record.
//     Node colors come from a [ColorAssignment] over the system categories.
//   - [TableGraph]: the table-level lineage around one selected system.
//
// Both are instances of the generic [Digraph], which keeps nodes and edges
// in insertion order. Parallel edges and self-loops are kept, so every input
// record maps to exactly one edge and layouts are reproducible for a given
// seed.
//
// # Building
//
//	g, colors, err := graph.BuildSystemGraph(ds.Systems, ds.SystemFlows)
//	tg, err := graph.BuildTableGraph(ds.TableFlows, "Nexus")
//
// A record with an empty node name is skipped and reported in the returned
// error. The graph is usable either way.
//
// # Serialization
//
// Graphs export to a node-link JSON format:
//
//	{
//	  "nodes": [{"id": "CRM", "meta": {"category": "Source"}}],
//	  "edges": [{"from": "CRM", "to": "Nexus", "meta": {"weight": 10}}]
//	}
//
// Use [MarshalSystemGraph], [MarshalTableGraph] or [WriteJSON].
//
// [dataset.Dataset]: github.com/matzehuels/warehousemap/pkg/dataset.Dataset
package graph
