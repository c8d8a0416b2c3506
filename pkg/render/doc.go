// Package render groups the rendering stages for warehouse flow graphs.
//
// # Overview
//
// Rendering is split into three subpackages:
//
//   - [visual]: Maps weights, roles and ownership to line thickness, arrow
//     angles, node sizes, colors and hover text
//   - [figure]: Assembles encoded geometry into Plotly figure JSON for the
//     dashboard
//   - [nodelink]: Writes Graphviz DOT and renders it to SVG for export
//
// # Interactive Figures
//
//	pos := layout.Compute(engine, g)
//	edges := visual.EncodeSystemEdges(g, pos)
//	nodes := visual.EncodeSystemNodes(g, pos, images)
//	fig := figure.Assemble(figure.SystemTitle(title), edges, nodes)
//
// # Static Export
//
//	dot := nodelink.SystemDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [visual]: github.com/matzehuels/warehousemap/pkg/render/visual
// [figure]: github.com/matzehuels/warehousemap/pkg/render/figure
// [nodelink]: github.com/matzehuels/warehousemap/pkg/render/nodelink
package render
