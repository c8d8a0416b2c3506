package pipeline

import (
	"context"

	werrors "github.com/matzehuels/warehousemap/pkg/errors"
	"github.com/matzehuels/warehousemap/pkg/graph"
	"github.com/matzehuels/warehousemap/pkg/render/nodelink"
)

// ExportOptions selects what Export renders.
type ExportOptions struct {
	Scope    string // ScopeSystem or ScopeTable
	System   string // required for ScopeTable
	Format   string // FormatDOT, FormatSVG or FormatJSON
	Detailed bool   // richer DOT labels
}

// Export renders the system graph or one table graph in the requested
// format. Table exports require a system that is defined or has table flows.
func (r *Runner) Export(ctx context.Context, opts ExportOptions) ([]byte, error) {
	if opts.Scope == "" {
		opts.Scope = ScopeSystem
	}
	if opts.Format == "" {
		opts.Format = FormatSVG
	}
	if err := ValidateScope(opts.Scope); err != nil {
		return nil, err
	}
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, err
	}

	dotOpts := nodelink.Options{Detailed: opts.Detailed}

	var dot string
	switch opts.Scope {
	case ScopeSystem:
		g, _, err := r.SystemGraph(ctx)
		if err != nil {
			return nil, err
		}
		if opts.Format == FormatJSON {
			return graph.MarshalSystemGraph(g)
		}
		dot = nodelink.SystemDOT(g, dotOpts)
	case ScopeTable:
		if opts.System == "" {
			return nil, werrors.New(werrors.ErrCodeInvalidInput, "table scope requires a system")
		}
		if !r.Data.HasSystem(opts.System) && len(r.Data.TableFlowsFor(opts.System)) == 0 {
			return nil, werrors.New(werrors.ErrCodeNotFound, "unknown system %q", opts.System)
		}
		g, err := r.TableGraph(ctx, opts.System)
		if err != nil {
			return nil, err
		}
		if opts.Format == FormatJSON {
			return graph.MarshalTableGraph(g)
		}
		dot = nodelink.TableDOT(g, opts.System, dotOpts)
	}

	if opts.Format == FormatDOT {
		return []byte(dot), nil
	}
	data, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, werrors.Wrap(werrors.ErrCodeInternal, err, "render svg")
	}
	r.Logger.Debug("rendered export", "scope", opts.Scope, "system", opts.System, "bytes", len(data))
	return data, nil
}
