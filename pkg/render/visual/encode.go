package visual

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/warehousemap/pkg/dataset"
	"github.com/matzehuels/warehousemap/pkg/graph"
	"github.com/matzehuels/warehousemap/pkg/layout"
)

// Thickness bounds and node sizes.
const (
	MinThickness = 2.0
	MaxThickness = 10.0

	SizePrimary = 30
	SizeOther   = 20
	SizeTable   = 15
)

// Table node colors.
const (
	ColorOwnTable     = "green"
	ColorForeignTable = "purple"
)

// EdgeGeometry is the drawable form of one edge.
type EdgeGeometry struct {
	From, To  string
	X0, Y0    float64
	X1, Y1    float64
	Mid       layout.Point
	Thickness float64
	Angle     float64 // degrees, counter-clockwise from the positive x axis
	Hover     string
}

// NodeGeometry is the drawable form of one node.
type NodeGeometry struct {
	ID    string
	X, Y  float64
	Color string
	Size  int
	Hover string
}

// Thickness maps a weight to a line width in [MinThickness, MaxThickness].
func Thickness(weight, maxWeight float64) float64 {
	if maxWeight <= 0 {
		return MinThickness
	}
	return MinThickness + (MaxThickness-MinThickness)*weight/maxWeight
}

// ArrowAngle returns the direction of (dx, dy) in degrees in (-180, 180].
func ArrowAngle(dx, dy float64) float64 {
	return math.Atan2(dy, dx) * 180 / math.Pi
}

// SizeForRole returns the system node marker size.
func SizeForRole(r dataset.Role) int {
	if r == dataset.RolePrimary {
		return SizePrimary
	}
	return SizeOther
}

// TableColor colors a table node by whether its owner is the selected system.
func TableColor(owner, selected string) string {
	if owner == selected {
		return ColorOwnTable
	}
	return ColorForeignTable
}

// =============================================================================
// Edges
// =============================================================================

// EncodeSystemEdges encodes every edge of g in insertion order.
func EncodeSystemEdges(g *graph.SystemGraph, pos layout.Positions) []EdgeGeometry {
	maxW := graph.MaxWeight(g)
	edges := g.Edges()
	out := make([]EdgeGeometry, len(edges))
	for i, e := range edges {
		out[i] = segment(e.From, e.To, pos)
		out[i].Thickness = Thickness(e.Attr.Weight, maxW)
		out[i].Hover = SystemEdgeHover(e.From, e.To, e.Attr)
	}
	return out
}

// EncodeTableEdges encodes every edge of g in insertion order.
func EncodeTableEdges(g *graph.TableGraph, pos layout.Positions) []EdgeGeometry {
	maxW := graph.MaxWeight(g)
	edges := g.Edges()
	out := make([]EdgeGeometry, len(edges))
	for i, e := range edges {
		out[i] = segment(e.From, e.To, pos)
		out[i].Thickness = Thickness(e.Attr.Weight, maxW)
		out[i].Hover = TableEdgeHover(e.From, e.To, e.Attr)
	}
	return out
}

func segment(from, to string, pos layout.Positions) EdgeGeometry {
	p0, p1 := pos[from], pos[to]
	return EdgeGeometry{
		From:  from,
		To:    to,
		X0:    p0.X,
		Y0:    p0.Y,
		X1:    p1.X,
		Y1:    p1.Y,
		Mid:   layout.Point{X: (p0.X + p1.X) / 2, Y: (p0.Y + p1.Y) / 2},
		Angle: ArrowAngle(p1.X-p0.X, p1.Y-p0.Y),
	}
}

// SystemEdgeHover formats the hover text of a system flow.
func SystemEdgeHover(from, to string, e graph.SystemFlowEdge) string {
	return fmt.Sprintf("Source: %s<br>Target: %s<br>Flow Weight: %s<br>Direction: %s",
		from, to, FormatWeight(e.Weight), e.Direction)
}

// TableEdgeHover formats the hover text of a table flow.
func TableEdgeHover(from, to string, e graph.TableFlowEdge) string {
	return fmt.Sprintf("Source: %s<br>Target: %s<br>Weight: %s<br>Transformation: %s<br>Direction: %s",
		from, to, FormatWeight(e.Weight), e.Transformation, e.Direction)
}

// FormatWeight prints a weight without trailing zeros ("10", "2.5").
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// =============================================================================
// Nodes
// =============================================================================

// EncodeSystemNodes encodes every node of g in insertion order. Systems with
// an image get it embedded in their hover text.
func EncodeSystemNodes(g *graph.SystemGraph, pos layout.Positions, images dataset.ImageSet) []NodeGeometry {
	ids := g.NodeIDs()
	out := make([]NodeGeometry, len(ids))
	for i, id := range ids {
		n, _ := g.Node(id)
		p := pos[id]
		out[i] = NodeGeometry{
			ID:    id,
			X:     p.X,
			Y:     p.Y,
			Color: n.Color,
			Size:  SizeForRole(n.Role),
			Hover: SystemNodeHover(n, images),
		}
	}
	return out
}

// SystemNodeHover formats the hover text of a system node.
func SystemNodeHover(n graph.SystemNode, images dataset.ImageSet) string {
	category := n.Category
	if !n.Known {
		category = "Unknown"
	}
	s := fmt.Sprintf("System: %s<br>Type: %s<br>Role: %s", n.Name, category, n.Role)
	if uri := images.DataURI(n.Name); uri != "" {
		s += fmt.Sprintf("<br><img src='%s' width='100' height='100'>", uri)
	}
	return s
}

// EncodeTableNodes encodes every node of g in insertion order.
func EncodeTableNodes(g *graph.TableGraph, pos layout.Positions, selected string) []NodeGeometry {
	ids := g.NodeIDs()
	out := make([]NodeGeometry, len(ids))
	for i, id := range ids {
		n, _ := g.Node(id)
		p := pos[id]
		out[i] = NodeGeometry{
			ID:    id,
			X:     p.X,
			Y:     p.Y,
			Color: TableColor(n.System, selected),
			Size:  SizeTable,
			Hover: fmt.Sprintf("Table: %s<br>System: %s", n.Name, n.System),
		}
	}
	return out
}

// =============================================================================
// Batching
// =============================================================================

// Batch holds many segments as one polyline. A nil coordinate separates
// consecutive segments.
type Batch struct {
	X    []*float64
	Y    []*float64
	Text []string
}

// Segments batches edges into a single polyline: start, end, break.
func Segments(edges []EdgeGeometry) Batch {
	b := Batch{
		X:    make([]*float64, 0, 3*len(edges)),
		Y:    make([]*float64, 0, 3*len(edges)),
		Text: make([]string, 0, 3*len(edges)),
	}
	for _, e := range edges {
		b.X = append(b.X, ptr(e.X0), ptr(e.X1), nil)
		b.Y = append(b.Y, ptr(e.Y0), ptr(e.Y1), nil)
		b.Text = append(b.Text, e.Hover, e.Hover, "")
	}
	return b
}

func ptr(v float64) *float64 { return &v }
