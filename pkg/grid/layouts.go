package grid

import (
	"sort"
	"strings"

	"github.com/matzehuels/gridgen/pkg/errors"
)

// HolyGrailQuery is the query behind the holy-grail layout.
const HolyGrailQuery = "header/aside.left-sidebar,article,article,aside.right-sidebar/footer"

// Layout is a named, pre-built grid. It is either a query or a
// columns x rows dimension pair.
type Layout struct {
	Name        string `json:"name" toml:"name" yaml:"name"`
	Description string `json:"description,omitempty" toml:"description" yaml:"description"`
	Query       string `json:"query,omitempty" toml:"query" yaml:"query"`
	Columns     int    `json:"columns,omitempty" toml:"columns" yaml:"columns"`
	Rows        int    `json:"rows,omitempty" toml:"rows" yaml:"rows"`
	Spacing     bool   `json:"spacing" toml:"spacing" yaml:"spacing"`
	Highlight   bool   `json:"highlight" toml:"highlight" yaml:"highlight"`
}

// IsQuery reports whether the layout is compiled from a query.
func (l Layout) IsQuery() bool { return l.Query != "" }

// Validate checks that the layout is either a query or a dimension pair.
func (l Layout) Validate() error {
	if err := errors.ValidateLayoutName(l.Name); err != nil {
		return err
	}
	hasDims := l.Columns != 0 || l.Rows != 0
	switch {
	case l.IsQuery() && hasDims:
		return errors.New(errors.ErrCodeInvalidConfig, "layout %q sets both a query and dimensions", l.Name)
	case l.IsQuery():
		if _, err := Tokenize(l.Query); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout %q", l.Name)
		}
	default:
		if err := errors.ValidateDimensions(l.Columns, l.Rows); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout %q", l.Name)
		}
	}
	return nil
}

// builtinLayouts is the stock catalogue in display order.
var builtinLayouts = []Layout{
	{Name: "2-col", Description: "Two equal columns", Columns: 2, Rows: 1, Spacing: true},
	{Name: "3-col", Description: "Three equal columns", Columns: 3, Rows: 1, Spacing: true},
	{Name: "4-col", Description: "Four equal columns", Columns: 4, Rows: 1, Spacing: true},
	{Name: "2-row", Description: "Two stacked rows", Columns: 1, Rows: 2, Spacing: true},
	{Name: "3-row", Description: "Three stacked rows", Columns: 1, Rows: 3, Spacing: true},
	{Name: "4-row", Description: "Four stacked rows", Columns: 1, Rows: 4, Spacing: true},
	{
		Name:        "holy-grail",
		Description: "Header, footer, two sidebars and a wide article",
		Query:       HolyGrailQuery,
		Spacing:     true,
		Highlight:   true,
	},
}

// Catalogue is an immutable set of named layouts.
type Catalogue struct {
	order   []string
	layouts map[string]Layout
}

// DefaultCatalogue returns the built-in layouts.
func DefaultCatalogue() *Catalogue {
	c, _ := NewCatalogue(builtinLayouts...)
	return c
}

// NewCatalogue builds a catalogue, validating every layout. A later layout
// with the same name replaces an earlier one.
func NewCatalogue(layouts ...Layout) (*Catalogue, error) {
	c := &Catalogue{layouts: make(map[string]Layout, len(layouts))}
	return c.add(layouts)
}

// With returns a copy of c extended with layouts.
func (c *Catalogue) With(layouts ...Layout) (*Catalogue, error) {
	next := &Catalogue{
		order:   append([]string(nil), c.order...),
		layouts: make(map[string]Layout, len(c.layouts)+len(layouts)),
	}
	for k, v := range c.layouts {
		next.layouts[k] = v
	}
	return next.add(layouts)
}

func (c *Catalogue) add(layouts []Layout) (*Catalogue, error) {
	var errs []error
	for _, l := range layouts {
		if err := l.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, exists := c.layouts[l.Name]; !exists {
			c.order = append(c.order, l.Name)
		}
		c.layouts[l.Name] = l
	}
	if err := errors.Combine(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

// Lookup returns the layout called name.
func (c *Catalogue) Lookup(name string) (Layout, bool) {
	l, ok := c.layouts[name]
	return l, ok
}

// List returns all layouts in insertion order.
func (c *Catalogue) List() []Layout {
	out := make([]Layout, len(c.order))
	for i, name := range c.order {
		out[i] = c.layouts[name]
	}
	return out
}

// Names returns the layout names sorted alphabetically.
func (c *Catalogue) Names() []string {
	names := append([]string(nil), c.order...)
	sort.Strings(names)
	return names
}

func (c *Catalogue) unknown(name string) error {
	return errors.New(errors.ErrCodeUnknownLayout, "unknown layout %q (available: %s)", name, strings.Join(c.Names(), ", "))
}
