// Package pipeline turns the loaded dataset into dashboard views.
//
// This package implements the build → layout → encode → assemble chain shared
// by the HTTP dashboard and the CLI. Keeping it in one place guarantees that
// the browser, the export command and the details command agree on every
// graph, color and message.
//
// # Architecture
//
// Each view goes through four stages:
//
//  1. Build: derive a graph from the dataset (package graph)
//  2. Layout: position the nodes (package layout)
//  3. Encode: compute thickness, angles, colors and hover text (package visual)
//  4. Assemble: produce a Plotly figure (package figure)
//
// The system view is computed once at startup. Table views are recomputed on
// every selection and never cached.
//
// # Usage
//
//	runner := pipeline.NewRunner(ds, layout.NewSpring(), logger, pipeline.Options{})
//	sys, err := runner.SystemView(ctx)
//	fig, details := runner.Recompute(ctx, "Nexus")
package pipeline

import (
	"fmt"
	"slices"

	werrors "github.com/matzehuels/warehousemap/pkg/errors"
	"github.com/matzehuels/warehousemap/pkg/graph"
	"github.com/matzehuels/warehousemap/pkg/layout"
	"github.com/matzehuels/warehousemap/pkg/render/figure"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultTitle is the default dashboard title.
const DefaultTitle = "Nexus Data Warehouse"

// DefaultLayout is the default layout engine name.
const DefaultLayout = layout.EngineSpring

// Placeholder messages shown in the details panel.
const (
	MessageSelectSystem = "Select a system to view table details"
	messageNoDetails    = "No details available for %s"
)

// Export scopes.
const (
	ScopeSystem = "system"
	ScopeTable  = "table"
)

// Export formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats lists the supported export formats.
var ValidFormats = []string{FormatDOT, FormatSVG, FormatJSON}

// ValidScopes lists the supported export scopes.
var ValidScopes = []string{ScopeSystem, ScopeTable}

// ValidateFormat checks that an export format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return werrors.New(werrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: dot, svg, json)", format)
	}
	return nil
}

// ValidateScope checks that an export scope is supported.
func ValidateScope(scope string) error {
	if !slices.Contains(ValidScopes, scope) {
		return werrors.New(werrors.ErrCodeInvalidScope, "invalid scope: %q (must be one of: system, table)", scope)
	}
	return nil
}

// NoDetailsMessage is the details placeholder for a system without table flows.
func NoDetailsMessage(system string) string {
	return fmt.Sprintf(messageNoDetails, system)
}

// DetailsHeading is the details panel heading for a selected system.
func DetailsHeading(system string) string {
	return fmt.Sprintf("Flow Details for %s", system)
}

// =============================================================================
// Options
// =============================================================================

// Options configures a Runner.
type Options struct {
	// Title is the dashboard name used in the system figure title.
	Title string `json:"title,omitempty"`
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
}

// =============================================================================
// Views
// =============================================================================

// SystemView is the system-level part of the dashboard.
type SystemView struct {
	Graph     *graph.SystemGraph  `json:"-"`
	Positions layout.Positions    `json:"-"`
	Figure    figure.Figure       `json:"figure"`
	Legend    []graph.LegendEntry `json:"legend"`
	Systems   []string            `json:"systems"`
}

// DetailRow is one table flow shown in the details panel.
type DetailRow struct {
	SourceTable    string  `json:"source_table"`
	TargetTable    string  `json:"target_table"`
	SourceSystem   string  `json:"source_system"`
	TargetSystem   string  `json:"target_system"`
	Weight         float64 `json:"weight"`
	Transformation string  `json:"transformation"`
	Direction      string  `json:"direction"`
}

// DetailsView is the details panel for a selection. Exactly one of Message
// and Rows is set.
type DetailsView struct {
	Heading string      `json:"heading,omitempty"`
	Message string      `json:"message,omitempty"`
	Rows    []DetailRow `json:"rows,omitempty"`
}

// Columns returns the details table column headers.
func Columns() []string {
	return []string{"Source Table", "Target Table", "Source System", "Target System", "Weight", "Transformation", "Direction"}
}
