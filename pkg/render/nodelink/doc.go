// Package nodelink renders the system and table graphs as Graphviz
// node-link diagrams for offline export.
//
// The dashboard draws graphs with Plotly in the browser; this package is the
// static counterpart used by the export command. Graphs are converted to DOT
// and rendered to SVG with the embedded Graphviz engine:
//
//	dot := nodelink.SystemDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Node fill colors match the dashboard: category colors for systems, and
// green or purple for tables depending on whether they belong to the
// selected system. Edge pen widths follow the same weight scaling as the
// dashboard's line thickness.
package nodelink
