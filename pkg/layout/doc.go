// Package layout positions graph nodes in the plane.
//
// An [Engine] maps node IDs and directed edges to 2D [Positions]. Three
// engines are provided:
//
//   - [Spring]: Fruchterman-Reingold force-directed placement, seeded
//   - [Circular]: nodes evenly spaced on the unit circle
//   - [Static]: fixed positions, mainly for tests
//
// Engines never mutate their inputs and are safe for concurrent use.
// [Compute] is a convenience that runs an engine over a [graph.Digraph].
//
// [graph.Digraph]: github.com/matzehuels/warehousemap/pkg/graph.Digraph
package layout
