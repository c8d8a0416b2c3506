// Package visual turns graphs and layouts into drawable geometry.
//
// The encoder is pure: given a graph from [graph] and positions from
// [layout] it computes, per edge, the segment endpoints, midpoint, line
// thickness, arrow angle and hover text, and per node the position, color,
// marker size and hover text. No drawing library is involved; the
// [figure] package turns the geometry into a Plotly scene.
//
// # Thickness
//
// Line thickness scales linearly with flow weight over the current scope:
//
//	thickness = 2 + 8 * weight / maxWeight
//
// so the heaviest edge is drawn at 10 and a zero-weight edge at 2. When
// maxWeight is not positive every edge is drawn at 2.
//
// [graph]: github.com/matzehuels/warehousemap/pkg/graph
// [layout]: github.com/matzehuels/warehousemap/pkg/layout
// [figure]: github.com/matzehuels/warehousemap/pkg/render/figure
package visual
