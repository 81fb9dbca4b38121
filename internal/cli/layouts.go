package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matzehuels/gridgen/pkg/grid"
)

var (
	layoutHeaders     = []string{"Name", "Title", "Shape", "Description"}
	layoutHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	titleCaser        = cases.Title(language.English)
)

// layoutsCommand creates the layouts command.
func (c *CLI) layoutsCommand() *cobra.Command {
	var (
		pick   bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "List the named layouts",
		Long: `List the built-in layouts and the ones defined in the config file.

With --pick an interactive picker opens and the chosen layout is generated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cat, err := cfg.Catalogue()
			if err != nil {
				return err
			}
			layouts := cat.List()

			switch {
			case pick:
				return c.pickLayout(cmd.Context(), cmd.OutOrStdout(), layouts)
			case asJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(layouts)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderLayoutTable(layouts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "choose a layout interactively and generate it")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layouts as JSON")
	cmd.MarkFlagsMutuallyExclusive("pick", "json")

	return cmd
}

// pickLayout runs the picker and generates the chosen layout.
func (c *CLI) pickLayout(ctx context.Context, w io.Writer, layouts []grid.Layout) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return fmt.Errorf("--pick needs an interactive terminal")
	}

	final, err := tea.NewProgram(NewLayoutPickerModel(layouts), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("layout picker: %w", err)
	}
	m, ok := final.(LayoutPickerModel)
	if !ok || m.Selected == nil {
		return nil
	}

	l := m.Selected
	return c.runGenerate(ctx, w, generateFlags{template: l.Name})
}

// layoutTitle turns a layout name into a display title: "holy-grail"
// becomes "Holy Grail".
func layoutTitle(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "-", " "))
}

// layoutShape describes the grid a layout produces.
func layoutShape(l grid.Layout) string {
	if l.IsQuery() {
		return fmt.Sprintf("query %q", l.Query)
	}
	return fmt.Sprintf("%d x %d", l.Columns, l.Rows)
}

// layoutRow is the table row for l, in layoutHeaders order.
func layoutRow(l grid.Layout) []string {
	return []string{l.Name, layoutTitle(l.Name), layoutShape(l), l.Description}
}

func layoutTable(rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...)
}

// renderLayoutTable renders the static layout listing.
func renderLayoutTable(layouts []grid.Layout) string {
	rows := make([][]string, len(layouts))
	for i, l := range layouts {
		rows[i] = layoutRow(l)
	}
	return layoutTable(rows).
		Headers(layoutHeaders...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return layoutHeaderStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col == len(layoutHeaders)-1:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
