// Package pkg provides the libraries behind warehousemap.
//
// # Overview
//
// warehousemap turns three tables (systems, system flows and table flows)
// into an interactive dashboard of how data moves through a warehouse. The
// pkg directory is organized by pipeline stage:
//
//  1. [dataset] - Load and validate the input tables and system images
//  2. [graph] - Directed multigraphs of systems and of tables, category colors
//  3. [layout] - 2-D node placement (spring and circular engines)
//  4. [render] - Visual encoding, Plotly figures, DOT/SVG export
//  5. [pipeline] - Orchestration (load → build → layout → encode → figure)
//
// Supporting packages:
//
//   - [errors] - Coded errors shared by the CLI and the dashboard server
//   - [observability] - Hooks for metrics on builds, layouts and requests
//   - [buildinfo] - Version information injected at build time
//
// # Data Flow
//
//	systems.csv, system_flows.csv, table_flows.csv
//	         ↓
//	    [dataset] Load
//	         ↓
//	    [graph] BuildSystemGraph / BuildTableGraph
//	         ↓
//	    [layout] Compute
//	         ↓
//	    [render/visual] encode edges and nodes
//	         ↓
//	    [render/figure] Assemble → Plotly figure JSON
//
// # Quick Start
//
//	ds, err := dataset.Load(ctx, dataset.Paths{}, logger)
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(ds, layout.NewSpring(), logger, pipeline.Options{})
//	view, err := runner.SystemView(ctx)
//	fig, details := runner.Recompute(ctx, "CRM")
//
// [dataset]: github.com/matzehuels/warehousemap/pkg/dataset
// [graph]: github.com/matzehuels/warehousemap/pkg/graph
// [layout]: github.com/matzehuels/warehousemap/pkg/layout
// [render]: github.com/matzehuels/warehousemap/pkg/render
// [render/visual]: github.com/matzehuels/warehousemap/pkg/render/visual
// [render/figure]: github.com/matzehuels/warehousemap/pkg/render/figure
// [pipeline]: github.com/matzehuels/warehousemap/pkg/pipeline
// [errors]: github.com/matzehuels/warehousemap/pkg/errors
// [observability]: github.com/matzehuels/warehousemap/pkg/observability
// [buildinfo]: github.com/matzehuels/warehousemap/pkg/buildinfo
package pkg
