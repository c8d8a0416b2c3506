package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/warehousemap/pkg/graph"
	"github.com/matzehuels/warehousemap/pkg/render/visual"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds category and role (systems) or owning system (tables)
	// to node labels, and weights to edge labels.
	Detailed bool
	// RankDir is the Graphviz rank direction. Defaults to "LR".
	RankDir string
}

func header(buf *bytes.Buffer, opts Options) {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "LR"
	}
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fontcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [color=\"#646464\", arrowsize=0.8];\n")
	buf.WriteString("\n")
}

// SystemDOT converts a system graph to Graphviz DOT.
func SystemDOT(g *graph.SystemGraph, opts Options) string {
	var buf bytes.Buffer
	header(&buf, opts)

	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		label := id
		if opts.Detailed {
			label = fmt.Sprintf("%s\n%s (%s)", id, categoryLabel(n), n.Role)
		}
		attrs := []string{
			fmt.Sprintf("label=%q", label),
			fmt.Sprintf("fillcolor=%q", n.Color),
			fmt.Sprintf("width=%.2f", float64(visual.SizeForRole(n.Role))/20),
		}
		if !n.Known {
			attrs = append(attrs, "style=\"filled,dashed\"", "fontcolor=black")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	maxW := graph.MaxWeight(g)
	for _, e := range g.Edges() {
		writeEdge(&buf, e.From, e.To, e.Attr.Weight, maxW, e.Attr.Direction, opts)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// TableDOT converts a table graph to Graphviz DOT. selected is the system the
// graph was built for.
func TableDOT(g *graph.TableGraph, selected string, opts Options) string {
	var buf bytes.Buffer
	header(&buf, opts)

	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		label := id
		if opts.Detailed {
			label = fmt.Sprintf("%s\n%s", id, n.System)
		}
		fmt.Fprintf(&buf, "  %q [label=%q, shape=box, fillcolor=%q];\n",
			id, label, visual.TableColor(n.System, selected))
	}

	buf.WriteString("\n")
	maxW := graph.MaxWeight(g)
	for _, e := range g.Edges() {
		writeEdge(&buf, e.From, e.To, e.Attr.Weight, maxW, e.Attr.Transformation, opts)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func writeEdge(buf *bytes.Buffer, from, to string, w, maxW float64, note string, opts Options) {
	attrs := []string{fmt.Sprintf("penwidth=%.2f", visual.Thickness(w, maxW)/2)}
	if opts.Detailed {
		attrs = append(attrs, fmt.Sprintf("label=%q", visual.FormatWeight(w)+" "+note))
	}
	fmt.Fprintf(buf, "  %q -> %q [%s];\n", from, to, strings.Join(attrs, ", "))
}

func categoryLabel(n graph.SystemNode) string {
	if !n.Known {
		return "unknown"
	}
	return n.Category
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz svg tag with one sized to its
// viewBox so the output scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
