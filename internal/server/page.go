package server

import (
	"embed"
	"html/template"

	"github.com/matzehuels/warehousemap/pkg/graph"
)

// PlotlyURL is the Plotly.js bundle loaded by the dashboard page.
const PlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

//go:embed templates/*.html
var templateFS embed.FS

type pageData struct {
	Title     string
	Legend    []graph.LegendEntry
	Systems   []string
	PlotlyURL string
}

func parsePage() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/dashboard.html")
}
