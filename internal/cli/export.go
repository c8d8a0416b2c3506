package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	werrors "github.com/matzehuels/warehousemap/pkg/errors"
	"github.com/matzehuels/warehousemap/pkg/pipeline"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	scope    string // "system" or "table"
	system   string // selected system for table scope
	format   string // "dot", "svg" or "json"
	output   string // output file; empty writes to stdout
	detailed bool   // richer DOT labels
}

// isTerminal reports whether f is attached to a terminal.
var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{
		scope:  pipeline.ScopeSystem,
		format: pipeline.FormatSVG,
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the system graph or a table graph as DOT, SVG or JSON",
		Example: `  warehousemap export -o systems.svg
  warehousemap export --scope table --system CRM --format dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runExport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.scope, "scope", opts.scope, "graph to export: system, table")
	cmd.Flags().StringVar(&opts.system, "system", "", "system whose table flows to export (table scope)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, dot, json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include categories and roles in node labels")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, opts exportOpts) error {
	if err := pipeline.ValidateScope(opts.scope); err != nil {
		return err
	}
	if err := pipeline.ValidateFormat(opts.format); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}

	if opts.format == pipeline.FormatSVG && isTerminal(os.Stderr) {
		spin := newSpinner(ctx, os.Stderr, "Rendering SVG...")
		spin.Start()
		defer spin.Stop()
	}

	data, err := runner.Export(ctx, pipeline.ExportOptions{
		Scope:    opts.scope,
		System:   opts.system,
		Format:   opts.format,
		Detailed: opts.detailed,
	})
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := c.Out.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return werrors.Wrap(werrors.ErrCodeInternal, err, "write %s", opts.output)
	}
	printSuccess(c.Out, "Exported %s graph as %s", opts.scope, opts.format)
	printFile(c.Out, opts.output)
	return nil
}
