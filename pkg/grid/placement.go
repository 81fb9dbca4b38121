package grid

import (
	"github.com/matzehuels/gridgen/pkg/errors"
)

// DefaultPadding is the padding declared for each cell when spacing is on.
const DefaultPadding = "1.5rem"

// Placement is the rectangle one selector occupies, in CSS grid line numbers.
type Placement struct {
	Selector    string `json:"selector" msgpack:"selector"`
	ColumnStart int    `json:"column_start" msgpack:"column_start"`
	ColumnEnd   int    `json:"column_end" msgpack:"column_end"`
	RowStart    int    `json:"row_start" msgpack:"row_start"`
	RowEnd      int    `json:"row_end" msgpack:"row_end"`
	Padding     string `json:"padding,omitempty" msgpack:"padding,omitempty"`
}

// Placements holds one Placement per distinct selector in first-seen order.
// It is read-only once returned by Resolve.
type Placements struct {
	order   []string
	index   map[string]*Placement
	rows    int
	columns int
}

// Len returns the number of distinct selectors.
func (p *Placements) Len() int { return len(p.order) }

// Rows returns the row count of the grid the placements were resolved on.
func (p *Placements) Rows() int { return p.rows }

// Columns returns the column count of the grid the placements were resolved on.
func (p *Placements) Columns() int { return p.columns }

// Get returns the placement of selector.
func (p *Placements) Get(selector string) (Placement, bool) {
	pl, ok := p.index[selector]
	if !ok {
		return Placement{}, false
	}
	return *pl, true
}

// Selectors returns the distinct selectors in first-seen order.
func (p *Placements) Selectors() []string {
	return append([]string(nil), p.order...)
}

// List returns copies of all placements in first-seen order.
func (p *Placements) List() []Placement {
	out := make([]Placement, len(p.order))
	for i, sel := range p.order {
		out[i] = *p.index[sel]
	}
	return out
}

type resolveConfig struct {
	padding string
}

// ResolveOption configures Resolve.
type ResolveOption func(*resolveConfig)

// WithPadding sets the padding recorded on every placement.
func WithPadding(padding string) ResolveOption {
	return func(c *resolveConfig) {
		if padding != "" {
			c.padding = padding
		}
	}
}

// Resolve infers the placement of every selector in g.
//
// Cells are scanned in row-major order. The first occurrence of a selector
// fixes its start lines. When a new selector follows another one on the same
// row, it closes the previous selector's column span. Any later occurrence
// of a known selector extends it: its end lines are set past the current
// cell, overwriting earlier values without checking that the cells touch.
// Spans left open run to the bottom of their start row and to the right
// edge of the grid.
//
// Repeat markers are not compiled; Resolve returns an UNSUPPORTED error for
// the first one it meets.
func Resolve(g Grid, opts ...ResolveOption) (*Placements, error) {
	cfg := resolveConfig{padding: DefaultPadding}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Placements{
		index:   make(map[string]*Placement),
		rows:    g.NumRows,
		columns: g.NumCols,
	}

	prevSelector, prevRow := "", -1
	for _, cell := range g.Cells() {
		tok := cell.Token
		if tok.Kind == Repeat {
			return nil, errors.New(errors.ErrCodeUnsupported,
				"row %d, column %d: repeat marker %q is not supported, write the rows out instead", tok.Row, tok.Column, tok.String())
		}

		if pl, seen := p.index[tok.Name]; seen {
			pl.RowEnd = cell.Row + 1
			pl.ColumnEnd = cell.Column + 2
		} else {
			pl := &Placement{
				Selector:    tok.Name,
				ColumnStart: cell.Column + 1,
				RowStart:    cell.Row + 1,
				Padding:     cfg.padding,
			}
			p.index[tok.Name] = pl
			p.order = append(p.order, tok.Name)
			if prevRow == cell.Row {
				p.index[prevSelector].ColumnEnd = pl.ColumnStart
			}
		}
		prevSelector, prevRow = tok.Name, cell.Row
	}

	p.finalize()
	return p, nil
}

// finalize closes spans the scan left open. Zero means unset: every line
// number assigned during the scan is at least 1.
func (p *Placements) finalize() {
	for _, sel := range p.order {
		pl := p.index[sel]
		if pl.RowEnd == 0 {
			pl.RowEnd = pl.RowStart
		}
		if pl.ColumnEnd == 0 {
			pl.ColumnEnd = p.columns + 1
		}
	}
}
