package grid

import (
	"strconv"
	"strings"

	"github.com/matzehuels/gridgen/pkg/errors"
)

// Delimiters of the query grammar.
const (
	RowSeparator    = "/"
	ColumnSeparator = ","
	RepeatMarker    = "*"
)

// TokenKind distinguishes plain selectors from repeat markers.
type TokenKind int

const (
	// Literal is a selector cell.
	Literal TokenKind = iota
	// Repeat is a "name*N" marker asking for N repeated rows.
	Repeat
)

// String returns the kind name.
func (k TokenKind) String() string {
	if k == Repeat {
		return "repeat"
	}
	return "literal"
}

// Token is one cell of a query.
type Token struct {
	Kind   TokenKind
	Name   string // selector text
	Count  int    // number of rows, Repeat only
	Row    int    // 1-based row segment in the query
	Column int    // 1-based position within the row
}

// String renders the token as it appears in a query.
func (t Token) String() string {
	if t.Kind == Repeat {
		return t.Name + RepeatMarker + strconv.Itoa(t.Count)
	}
	return t.Name
}

// Grid is a tokenized query.
type Grid struct {
	Rows    [][]Token
	NumRows int // rows after repeat accounting
	NumCols int // length of the longest row
}

// Cell is a token together with its 0-based grid coordinates.
type Cell struct {
	Row    int
	Column int
	Token  Token
}

// Cells flattens the grid into row-major order.
func (g Grid) Cells() []Cell {
	var cells []Cell
	for r, row := range g.Rows {
		for c, tok := range row {
			cells = append(cells, Cell{Row: r, Column: c, Token: tok})
		}
	}
	return cells
}

// Tokenize splits query into rows and cells and computes the grid size.
//
// Every grammar violation in the query is reported; the returned error
// aggregates one GRAMMAR_ERROR per problem.
func Tokenize(query string) (Grid, error) {
	if strings.TrimSpace(query) == "" {
		return Grid{}, errors.New(errors.ErrCodeGrammar, "query is empty")
	}

	var (
		g    Grid
		errs []error
	)
	for r, segment := range strings.Split(query, RowSeparator) {
		if strings.TrimSpace(segment) == "" {
			errs = append(errs, errors.New(errors.ErrCodeGrammar, "row %d is empty", r+1))
			continue
		}

		fields := strings.Split(segment, ColumnSeparator)
		row := make([]Token, 0, len(fields))
		height, repeats := 1, 0
		for c, field := range fields {
			tok, err := parseToken(strings.TrimSpace(field), r+1, c+1)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if tok.Kind == Repeat {
				repeats++
				height = tok.Count
			}
			row = append(row, tok)
		}
		if repeats > 1 {
			errs = append(errs, errors.New(errors.ErrCodeGrammar, "row %d has %d repeat markers, at most one is allowed", r+1, repeats))
		}

		g.Rows = append(g.Rows, row)
		g.NumCols = max(g.NumCols, len(fields))
		g.NumRows += height
	}

	if err := errors.Combine(errs...); err != nil {
		return Grid{}, err
	}
	return g, nil
}

// parseToken classifies one trimmed cell.
func parseToken(text string, row, col int) (Token, error) {
	tok := Token{Kind: Literal, Name: text, Row: row, Column: col}
	if text == "" {
		return tok, errors.New(errors.ErrCodeGrammar, "row %d, column %d: empty selector", row, col)
	}
	if !strings.Contains(text, RepeatMarker) {
		return tok, nil
	}

	parts := strings.Split(text, RepeatMarker)
	if len(parts) != 2 {
		return tok, errors.New(errors.ErrCodeGrammar, "row %d, column %d: %q has more than one %q", row, col, text, RepeatMarker)
	}
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return tok, errors.New(errors.ErrCodeGrammar, "row %d, column %d: repeat marker %q has no selector", row, col, text)
	}
	count, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || count < 1 {
		return tok, errors.New(errors.ErrCodeGrammar, "row %d, column %d: repeat count in %q must be a positive integer", row, col, text)
	}

	tok.Kind = Repeat
	tok.Name = name
	tok.Count = count
	return tok, nil
}
