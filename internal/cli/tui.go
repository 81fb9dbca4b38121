package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/gridgen/pkg/grid"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// LayoutPickerModel - Interactive layout selection
// =============================================================================

// LayoutPickerModel is the bubbletea model for picking a named layout.
type LayoutPickerModel struct {
	Layouts  []grid.Layout
	Cursor   int
	Selected *grid.Layout
	Height   int
	Offset   int
}

// NewLayoutPickerModel creates a picker over layouts.
func NewLayoutPickerModel(layouts []grid.Layout) LayoutPickerModel {
	return LayoutPickerModel{Layouts: layouts, Height: 10}
}

func (m LayoutPickerModel) Init() tea.Cmd {
	return nil
}

func (m LayoutPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Layouts)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Layouts) == 0 {
				return m, nil
			}
			l := m.Layouts[m.Cursor]
			m.Selected = &l
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 3)
	}
	return m, nil
}

func (m LayoutPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Layout"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Layouts))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, append([]string{cursor}, layoutRow(m.Layouts[i])...))
	}

	t := layoutTable(rows).
		Headers(append([]string{""}, layoutHeaders...)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return layoutHeaderStyle
			case m.Offset+row == m.Cursor:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case col == len(layoutHeaders):
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Layouts))))

	return b.String()
}
