package grid

import (
	"github.com/matzehuels/gridgen/pkg/errors"
	"github.com/matzehuels/gridgen/pkg/selector"
)

// DefaultContainer is the container selector used when none is given.
const DefaultContainer = ".grid-container"

// Output is the result of one compilation.
type Output struct {
	Markup     string      `json:"markup" msgpack:"markup"`
	Stylesheet string      `json:"stylesheet" msgpack:"stylesheet"`
	Rows       int         `json:"rows" msgpack:"rows"`
	Columns    int         `json:"columns" msgpack:"columns"`
	Placements []Placement `json:"placements,omitempty" msgpack:"placements,omitempty"`
}

// Compiler compiles queries, dimension pairs and named layouts.
// A Compiler is safe for concurrent use as long as its Resolver is.
type Compiler struct {
	Resolver  selector.Resolver
	Theme     Theme
	Catalogue *Catalogue
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithResolver replaces the selector resolver.
func WithResolver(r selector.Resolver) Option {
	return func(c *Compiler) {
		if r != nil {
			c.Resolver = r
		}
	}
}

// WithTheme sets the padding, gap and highlight values. Empty fields keep
// their defaults.
func WithTheme(t Theme) Option {
	return func(c *Compiler) { c.Theme = t.WithDefaults() }
}

// WithCatalogue replaces the named-layout catalogue.
func WithCatalogue(cat *Catalogue) Option {
	return func(c *Compiler) {
		if cat != nil {
			c.Catalogue = cat
		}
	}
}

// NewCompiler creates a compiler with the default resolver, theme and
// catalogue, then applies opts.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		Resolver:  selector.Default,
		Theme:     DefaultTheme(),
		Catalogue: DefaultCatalogue(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCompiler = NewCompiler()

// DefaultCompiler returns the shared compiler used by the package-level
// functions.
func DefaultCompiler() *Compiler { return defaultCompiler }

// CompileFromDimensions compiles a cols x rows grid of numbered cells.
func CompileFromDimensions(cols, rows int, container string) (Output, error) {
	return defaultCompiler.FromDimensions(cols, rows, container)
}

// CompileFromQuery compiles a query. See Compiler.FromQuery.
func CompileFromQuery(query, container string, spacing, highlight bool) (Output, error) {
	return defaultCompiler.FromQuery(query, container, spacing, highlight)
}

// CompileFromNamedLayout compiles a built-in layout.
func CompileFromNamedLayout(name, container string) (Output, error) {
	return defaultCompiler.FromLayout(name, container)
}

// FromDimensions compiles a cols x rows grid. The markup holds cols*rows
// cells numbered from 1; the container rule always declares the gap.
func (c *Compiler) FromDimensions(cols, rows int, container string) (Output, error) {
	return c.dimensions(cols, rows, container, true)
}

func (c *Compiler) dimensions(cols, rows int, container string, spacing bool) (Output, error) {
	if err := errors.ValidateDimensions(cols, rows); err != nil {
		return Output{}, err
	}
	if err := errors.ValidateContainer(container); err != nil {
		return Output{}, err
	}

	inner, err := numberedCells(cols*rows, c.Resolver)
	if err != nil {
		return Output{}, err
	}
	markup, err := WrapContainer(container, inner, c.Resolver)
	if err != nil {
		return Output{}, err
	}

	d := Decor{Spacing: spacing, Theme: c.Theme}
	return Output{
		Markup:     markup,
		Stylesheet: ContainerRule(container, RepeatTracks(rows), cols, d),
		Rows:       rows,
		Columns:    cols,
	}, nil
}

// FromQuery compiles query into markup and stylesheet. spacing adds cell
// padding and the container gap; highlight adds a cell background and
// writes each selector's name into its element.
func (c *Compiler) FromQuery(query, container string, spacing, highlight bool) (Output, error) {
	if err := errors.ValidateContainer(container); err != nil {
		return Output{}, err
	}

	g, err := Tokenize(query)
	if err != nil {
		return Output{}, err
	}
	p, err := Resolve(g, WithPadding(c.Theme.Padding))
	if err != nil {
		return Output{}, err
	}

	inner, err := EmitMarkup(p, c.Resolver, highlight)
	if err != nil {
		return Output{}, err
	}
	markup, err := WrapContainer(container, inner, c.Resolver)
	if err != nil {
		return Output{}, err
	}

	d := Decor{Spacing: spacing, Highlight: highlight, Theme: c.Theme}
	stylesheet := ContainerRule(container, ListTracks(g.NumRows), g.NumCols, d) + "\n" + EmitStylesheet(p, d)

	return Output{
		Markup:     markup,
		Stylesheet: stylesheet,
		Rows:       g.NumRows,
		Columns:    g.NumCols,
		Placements: p.List(),
	}, nil
}

// FromLayout compiles the catalogue layout called name.
func (c *Compiler) FromLayout(name, container string) (Output, error) {
	if err := errors.ValidateLayoutName(name); err != nil {
		return Output{}, err
	}
	l, ok := c.Catalogue.Lookup(name)
	if !ok {
		return Output{}, c.Catalogue.unknown(name)
	}
	if l.IsQuery() {
		return c.FromQuery(l.Query, container, l.Spacing, l.Highlight)
	}
	return c.dimensions(l.Columns, l.Rows, container, l.Spacing)
}
