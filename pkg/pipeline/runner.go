package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/warehousemap/pkg/dataset"
	werrors "github.com/matzehuels/warehousemap/pkg/errors"
	"github.com/matzehuels/warehousemap/pkg/graph"
	"github.com/matzehuels/warehousemap/pkg/layout"
	"github.com/matzehuels/warehousemap/pkg/observability"
	"github.com/matzehuels/warehousemap/pkg/render/figure"
	"github.com/matzehuels/warehousemap/pkg/render/visual"
)

// Runner computes dashboard views over an immutable dataset.
//
// The Runner holds no per-request state, so one Runner can serve many
// goroutines as long as its Engine is safe for concurrent use (all engines
// in package layout are).
type Runner struct {
	Data    *dataset.Dataset
	Engine  layout.Engine
	Logger  *log.Logger
	Options Options
}

// NewRunner creates a runner. A nil engine selects a clock-seeded spring
// layout and a nil logger selects log.Default().
func NewRunner(data *dataset.Dataset, engine layout.Engine, logger *log.Logger, opts Options) *Runner {
	if engine == nil {
		engine = layout.NewSpring()
	}
	if logger == nil {
		logger = log.Default()
	}
	if data == nil {
		data = &dataset.Dataset{}
	}
	opts.SetDefaults()
	return &Runner{
		Data:    data,
		Engine:  engine,
		Logger:  logger,
		Options: opts,
	}
}

// SystemGraph builds the system graph. On error the graph still holds every
// record that could be added.
func (r *Runner) SystemGraph(ctx context.Context) (*graph.SystemGraph, graph.ColorAssignment, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, observability.ScopeSystem)
	start := time.Now()

	g, colors, err := graph.BuildSystemGraph(r.Data.Systems, r.Data.SystemFlows)

	hooks.OnBuildComplete(ctx, observability.ScopeSystem, g.NodeCount(), g.EdgeCount(), time.Since(start), err)
	if err != nil {
		return g, colors, werrors.Wrap(werrors.ErrCodeInvalidInput, err, "build system graph")
	}
	return g, colors, nil
}

// TableGraph builds the table graph around system. On error the graph still
// holds every record that could be added.
func (r *Runner) TableGraph(ctx context.Context, system string) (*graph.TableGraph, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, observability.ScopeTable)
	start := time.Now()

	g, err := graph.BuildTableGraph(r.Data.TableFlows, system)

	hooks.OnBuildComplete(ctx, observability.ScopeTable, g.NodeCount(), g.EdgeCount(), time.Since(start), err)
	if err != nil {
		return g, werrors.Wrap(werrors.ErrCodeInvalidInput, err, "build table graph for %s", system)
	}
	return g, nil
}

// SystemView builds the system-level view: graph, layout, figure and legend.
// The dashboard computes it once at startup.
func (r *Runner) SystemView(ctx context.Context) (*SystemView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	g, colors, err := r.SystemGraph(ctx)
	if err != nil {
		return nil, err
	}
	pos := r.layout(ctx, g.NodeCount(), func() layout.Positions { return layout.Compute(r.Engine, g) })

	edges := visual.EncodeSystemEdges(g, pos)
	nodes := visual.EncodeSystemNodes(g, pos, r.Data.Images)
	fig := figure.Assemble(figure.SystemTitle(r.Options.Title), edges, nodes)

	r.Logger.Debug("built system view",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"categories", len(colors.Categories()),
		"duration", time.Since(start))

	return &SystemView{
		Graph:     g,
		Positions: pos,
		Figure:    fig,
		Legend:    colors.Legend(),
		Systems:   r.Data.SystemNames(),
	}, nil
}

// Recompute derives the table figure and details panel for a selection.
//
// An empty selection yields a blank figure and a prompt. A system without
// table flows yields the no-connections placeholder and a no-details
// message. Records the table graph cannot hold are logged and left out of
// the figure. Nothing is cached between calls.
func (r *Runner) Recompute(ctx context.Context, selection string) (figure.Figure, DetailsView) {
	start := time.Now()
	hooks := observability.Pipeline()

	if selection == "" {
		hooks.OnRecompute(ctx, selection, observability.OutcomeBlank, time.Since(start))
		return figure.Blank(), DetailsView{Message: MessageSelectSystem}
	}

	g, err := r.TableGraph(ctx, selection)
	if err != nil {
		r.Logger.Warn("incomplete table graph", "system", selection, "err", err)
	}
	if g.NodeCount() == 0 {
		hooks.OnRecompute(ctx, selection, observability.OutcomeEmpty, time.Since(start))
		r.Logger.Debug("no table flows", "system", selection)
		return figure.NoConnections(selection), DetailsView{Message: NoDetailsMessage(selection)}
	}

	pos := r.layout(ctx, g.NodeCount(), func() layout.Positions { return layout.Compute(r.Engine, g) })
	edges := visual.EncodeTableEdges(g, pos)
	nodes := visual.EncodeTableNodes(g, pos, selection)
	fig := figure.Assemble(figure.TableTitle(selection), edges, nodes)

	details := DetailsView{
		Heading: DetailsHeading(selection),
		Rows:    r.Details(selection),
	}

	hooks.OnRecompute(ctx, selection, observability.OutcomeOK, time.Since(start))
	r.Logger.Debug("recomputed table view",
		"system", selection,
		"tables", g.NodeCount(),
		"flows", g.EdgeCount(),
		"duration", time.Since(start))
	return fig, details
}

// Details returns one row per table flow touching system, in file order.
func (r *Runner) Details(system string) []DetailRow {
	flows := r.Data.TableFlowsFor(system)
	if len(flows) == 0 {
		return nil
	}
	rows := make([]DetailRow, len(flows))
	for i, f := range flows {
		rows[i] = DetailRow{
			SourceTable:    f.SourceTable,
			TargetTable:    f.TargetTable,
			SourceSystem:   f.SourceSystem,
			TargetSystem:   f.TargetSystem,
			Weight:         f.Weight,
			Transformation: f.TransformationLabel(),
			Direction:      f.Direction,
		}
	}
	return rows
}

func (r *Runner) layout(ctx context.Context, nodeCount int, run func() layout.Positions) layout.Positions {
	name := layout.Name(r.Engine)
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, name, nodeCount)
	start := time.Now()
	pos := run()
	hooks.OnLayoutComplete(ctx, name, time.Since(start))
	return pos
}
