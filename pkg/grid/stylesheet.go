package grid

import (
	"fmt"
	"strings"
)

// Theme holds the values of the optional declarations.
type Theme struct {
	Padding    string `json:"padding" toml:"padding" yaml:"padding"`
	Gap        string `json:"gap" toml:"gap" yaml:"gap"`
	Background string `json:"background" toml:"highlight" yaml:"highlight"`
}

// Theme defaults.
const (
	DefaultGap        = "1em"
	DefaultBackground = "#eaeaea"
)

// DefaultTheme returns the stock padding, gap and highlight values.
func DefaultTheme() Theme {
	return Theme{
		Padding:    DefaultPadding,
		Gap:        DefaultGap,
		Background: DefaultBackground,
	}
}

// WithDefaults fills empty fields from DefaultTheme.
func (t Theme) WithDefaults() Theme {
	d := DefaultTheme()
	if t.Padding == "" {
		t.Padding = d.Padding
	}
	if t.Gap == "" {
		t.Gap = d.Gap
	}
	if t.Background == "" {
		t.Background = d.Background
	}
	return t
}

// Decor selects the optional declarations of emitted rules.
type Decor struct {
	Spacing   bool // padding on cells, gap on the container
	Highlight bool // background on cells
	Theme     Theme
}

// EmitStylesheet renders one rule per selector in first-seen order. The
// selector text is used verbatim as the rule's selector. Rules are
// separated by a blank line.
func EmitStylesheet(p *Placements, d Decor) string {
	theme := d.Theme.WithDefaults()
	rules := make([]string, 0, p.Len())
	for _, sel := range p.order {
		pl := p.index[sel]
		decls := []string{
			fmt.Sprintf("grid-column: %d / %d", pl.ColumnStart, pl.ColumnEnd),
			fmt.Sprintf("grid-row: %d / %d", pl.RowStart, pl.RowEnd),
		}
		if d.Spacing {
			padding := pl.Padding
			if padding == "" {
				padding = theme.Padding
			}
			decls = append(decls, "padding: "+padding)
		}
		if d.Highlight {
			decls = append(decls, "background: "+theme.Background)
		}
		rules = append(rules, rule(sel, decls))
	}
	return strings.Join(rules, "\n")
}

// ContainerRule renders the grid container rule. rows is the value of
// grid-template-rows, see ListTracks and RepeatTracks.
func ContainerRule(container, rows string, columns int, d Decor) string {
	decls := []string{
		"display: grid",
		"grid-template-rows: " + rows,
		"grid-template-columns: " + RepeatTracks(columns),
	}
	if d.Spacing {
		decls = append(decls, "grid-gap: "+d.Theme.WithDefaults().Gap)
	}
	return rule(container, decls)
}

// ListTracks spells out n equal tracks: "1fr 1fr 1fr".
func ListTracks(n int) string {
	return strings.TrimSuffix(strings.Repeat("1fr ", n), " ")
}

// RepeatTracks writes n equal tracks with repeat(): "repeat(3, 1fr)".
func RepeatTracks(n int) string {
	return fmt.Sprintf("repeat(%d, 1fr)", n)
}

func rule(sel string, decls []string) string {
	var b strings.Builder
	b.WriteString(sel)
	b.WriteString(" {\n")
	for _, d := range decls {
		b.WriteString("  ")
		b.WriteString(d)
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}
