package figure

import (
	"fmt"

	"github.com/matzehuels/warehousemap/pkg/render/visual"
)

// Styling constants shared by every figure.
const (
	EdgeColor     = "rgba(100,100,100,0.5)"
	ArrowSymbol   = "triangle-right"
	ArrowSize     = 12
	NodeLineColor = "white"
	NodeLineWidth = 2

	NoConnectionsText = "No table connections found"
)

// Figure is a Plotly figure.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a Plotly scatter trace.
type Trace struct {
	Type         string     `json:"type"`
	Mode         string     `json:"mode"`
	X            []*float64 `json:"x"`
	Y            []*float64 `json:"y"`
	Text         []string   `json:"text,omitempty"`
	HoverText    []string   `json:"hovertext,omitempty"`
	HoverInfo    string     `json:"hoverinfo,omitempty"`
	TextPosition string     `json:"textposition,omitempty"`
	Line         *Line      `json:"line,omitempty"`
	Marker       *Marker    `json:"marker,omitempty"`
}

// Line styles a trace's lines or a marker outline.
type Line struct {
	Width float64 `json:"width"`
	Color string  `json:"color,omitempty"`
}

// Marker styles trace markers. Size and Color hold one entry per point.
type Marker struct {
	Size   []float64 `json:"size,omitempty"`
	Color  []string  `json:"color,omitempty"`
	Symbol string    `json:"symbol,omitempty"`
	Angle  float64   `json:"angle"`
	Line   *Line     `json:"line,omitempty"`
}

// Layout is the Plotly layout object.
type Layout struct {
	Title       Title        `json:"title"`
	ShowLegend  bool         `json:"showlegend"`
	HoverMode   string       `json:"hovermode"`
	Margin      Margin       `json:"margin"`
	XAxis       Axis         `json:"xaxis"`
	YAxis       Axis         `json:"yaxis"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Title is a layout title.
type Title struct {
	Text string `json:"text"`
}

// Margin holds plot margins in pixels.
type Margin struct {
	B int `json:"b"`
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
}

// Axis configures an axis.
type Axis struct {
	ShowGrid       bool `json:"showgrid"`
	ZeroLine       bool `json:"zeroline"`
	ShowTickLabels bool `json:"showticklabels"`
}

// Annotation is a text annotation.
type Annotation struct {
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	ShowArrow bool    `json:"showarrow"`
}

// SystemTitle is the system figure title for a dashboard named name.
func SystemTitle(name string) string { return fmt.Sprintf("%s - System Network", name) }

// TableTitle is the table figure title for a selected system.
func TableTitle(system string) string { return fmt.Sprintf("Table Network for %s", system) }

// Assemble builds a figure from encoded edges and nodes.
func Assemble(title string, edges []visual.EdgeGeometry, nodes []visual.NodeGeometry) Figure {
	data := make([]Trace, 0, 2+len(edges))
	data = append(data, edgeTrace(edges), nodeTrace(nodes))
	for _, e := range edges {
		data = append(data, arrowTrace(e))
	}
	return Figure{Data: data, Layout: baseLayout(title)}
}

// NoConnections is the placeholder shown when a system has no table flows.
func NoConnections(system string) Figure {
	l := baseLayout(fmt.Sprintf("No Table Network for %s", system))
	l.Annotations = []Annotation{{
		Text: NoConnectionsText,
		X:    0.5,
		Y:    0.5,
		XRef: "paper",
		YRef: "paper",
	}}
	return Figure{Data: []Trace{}, Layout: l}
}

// Blank is an empty figure, shown before any system is selected.
func Blank() Figure {
	return Figure{Data: []Trace{}, Layout: baseLayout("")}
}

func baseLayout(title string) Layout {
	return Layout{
		Title:     Title{Text: title},
		HoverMode: "closest",
		Margin:    Margin{B: 0, L: 0, R: 0, T: 40},
	}
}

func edgeTrace(edges []visual.EdgeGeometry) Trace {
	b := visual.Segments(edges)
	return Trace{
		Type:      "scatter",
		Mode:      "lines",
		X:         b.X,
		Y:         b.Y,
		HoverText: b.Text,
		HoverInfo: "text",
		Line:      &Line{Width: 1, Color: EdgeColor},
	}
}

func nodeTrace(nodes []visual.NodeGeometry) Trace {
	t := Trace{
		Type:         "scatter",
		Mode:         "markers+text",
		X:            make([]*float64, len(nodes)),
		Y:            make([]*float64, len(nodes)),
		Text:         make([]string, len(nodes)),
		HoverText:    make([]string, len(nodes)),
		HoverInfo:    "text",
		TextPosition: "top center",
		Marker: &Marker{
			Size:  make([]float64, len(nodes)),
			Color: make([]string, len(nodes)),
			Line:  &Line{Width: NodeLineWidth, Color: NodeLineColor},
		},
	}
	for i, n := range nodes {
		t.X[i], t.Y[i] = ptr(n.X), ptr(n.Y)
		t.Text[i] = n.ID
		t.HoverText[i] = n.Hover
		t.Marker.Size[i] = float64(n.Size)
		t.Marker.Color[i] = n.Color
	}
	return t
}

// arrowTrace draws one edge at its own thickness. Plotly rotates markers
// clockwise, so the marker angle is the negated edge angle.
func arrowTrace(e visual.EdgeGeometry) Trace {
	return Trace{
		Type:      "scatter",
		Mode:      "lines+markers",
		X:         []*float64{ptr(e.X0), ptr(e.Mid.X), ptr(e.X1)},
		Y:         []*float64{ptr(e.Y0), ptr(e.Mid.Y), ptr(e.Y1)},
		HoverInfo: "skip",
		Line:      &Line{Width: e.Thickness, Color: EdgeColor},
		Marker: &Marker{
			Size:   []float64{0, ArrowSize, 0},
			Color:  []string{EdgeColor, EdgeColor, EdgeColor},
			Symbol: ArrowSymbol,
			Angle:  -e.Angle,
		},
	}
}

func ptr(v float64) *float64 { return &v }
