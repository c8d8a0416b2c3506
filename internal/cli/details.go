package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	werrors "github.com/matzehuels/warehousemap/pkg/errors"
	"github.com/matzehuels/warehousemap/pkg/pipeline"
	"github.com/matzehuels/warehousemap/pkg/render/visual"
)

func (c *CLI) detailsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "details [system]",
		Short: "Print the table flows of a system",
		Long: `Print every table flow whose source or target system is the given system.
Without an argument an interactive picker is shown when running in a terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var system string
			if len(args) == 1 {
				system = args[0]
			}
			return c.runDetails(cmd.Context(), system)
		},
	}
}

func (c *CLI) runDetails(ctx context.Context, system string) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}

	if system == "" {
		if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
			return werrors.New(werrors.ErrCodeInvalidInput, "a system argument is required when not running in a terminal")
		}
		system, err = pickSystem(runner)
		if err != nil {
			return err
		}
		if system == "" {
			return nil
		}
	}

	rows := runner.Details(system)
	if len(rows) == 0 {
		printInfo(c.Out, "%s", pipeline.NoDetailsMessage(system))
		return nil
	}
	fmt.Fprintln(c.Out, StyleTitle.Render(pipeline.DetailsHeading(system)))
	fmt.Fprintln(c.Out, renderDetailsTable(rows))
	return nil
}

// renderDetailsTable formats rows as a bordered terminal table.
func renderDetailsTable(rows []pipeline.DetailRow) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{
			r.SourceTable,
			r.TargetTable,
			r.SourceSystem,
			r.TargetSystem,
			visual.FormatWeight(r.Weight),
			r.Transformation,
			r.Direction,
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(pipeline.Columns()...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			if col == 4 {
				return lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return strings.TrimRight(t.Render(), "\n")
}
