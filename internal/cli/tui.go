package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/warehousemap/pkg/dataset"
	"github.com/matzehuels/warehousemap/pkg/pipeline"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// SystemPickerModel - Interactive system selection
// =============================================================================

// PickerItem is one selectable system.
type PickerItem struct {
	Name       string
	Type       string
	Role       dataset.Role
	TableFlows int
}

// SystemPickerModel is the bubbletea model for interactive system selection.
// Selected stays empty when the user quits without choosing.
type SystemPickerModel struct {
	Items    []PickerItem
	Cursor   int
	Offset   int
	Height   int
	Selected string
}

// NewSystemPickerModel creates a picker over the systems of ds.
func NewSystemPickerModel(ds *dataset.Dataset) SystemPickerModel {
	items := make([]PickerItem, 0, len(ds.Systems))
	seen := make(map[string]bool, len(ds.Systems))
	for _, s := range ds.Systems {
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		items = append(items, PickerItem{
			Name:       s.Name,
			Type:       s.SourceType,
			Role:       s.SourceRole,
			TableFlows: len(ds.TableFlowsFor(s.Name)),
		})
	}
	return SystemPickerModel{Items: items, Height: 15}
}

func (m SystemPickerModel) Init() tea.Cmd {
	return nil
}

func (m SystemPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Items) == 0 {
				return m, tea.Quit
			}
			m.Selected = m.Items[m.Cursor].Name
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m SystemPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select System"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Items))
	var rows [][]string
	for i := m.Offset; i < end; i++ {
		it := m.Items[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, it.Name, it.Type, string(it.Role), strconv.Itoa(it.TableFlows)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "System", "Type", "Role", "Table flows").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Items) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if m.Items[idx].TableFlows == 0 {
				base = base.Foreground(colorDim)
			} else if col == 1 {
				base = base.Foreground(colorGreen)
			}
			if idx == m.Cursor {
				base = base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Items)), len(m.Items))))
	return b.String()
}

// pickSystem runs the picker and returns the chosen system, or "" if the
// user quit.
func pickSystem(runner *pipeline.Runner) (string, error) {
	final, err := tea.NewProgram(NewSystemPickerModel(runner.Data)).Run()
	if err != nil {
		return "", fmt.Errorf("system picker: %w", err)
	}
	return final.(SystemPickerModel).Selected, nil
}
