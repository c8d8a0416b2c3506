// Package figure assembles Plotly scene descriptions.
//
// A [Figure] is the JSON document Plotly.js accepts in Plotly.react: a list
// of traces plus a layout. Figures are built from the geometry computed by
// the visual package:
//
//	fig := figure.Assemble(figure.SystemTitle("Nexus Data Warehouse"), edges, nodes)
//
// Trace order is fixed. Trace 0 draws every edge as one batched polyline
// and carries the edge hover text, trace 1 draws the nodes, and each
// following trace draws one weighted edge with a direction marker at its
// midpoint.
package figure
