// Package pipeline is the single entry point the CLI, the batch runner and
// the API server use to compile grids.
//
// A run validates [Options], looks the result up in the cache, compiles on
// a miss, optionally re-parses the output to verify it, and stores it back:
//
//	runner := pipeline.NewRunner(c, nil, compiler, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Query:     "header/nav,main/footer",
//	    Spacing:   true,
//	    Highlight: true,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(res.Output.Markup)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridgen/pkg/errors"
	"github.com/matzehuels/gridgen/pkg/grid"
)

// Compile modes.
const (
	ModeQuery      = "query"
	ModeLayout     = "layout"
	ModeDimensions = "dimensions"
)

// ValidModes is the set of supported modes.
var ValidModes = map[string]bool{
	ModeQuery:      true,
	ModeLayout:     true,
	ModeDimensions: true,
}

// ValidateMode checks that mode is supported.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid mode: %q (must be one of: query, layout, dimensions)", mode)
	}
	return nil
}

// Options describes one compile. It doubles as the API request body.
type Options struct {
	// Mode selects the input. When empty it is inferred: a query wins over
	// a layout name, which wins over dimensions.
	Mode    string `json:"mode,omitempty" yaml:"mode"`
	Query   string `json:"query,omitempty" yaml:"query"`
	Layout  string `json:"layout,omitempty" yaml:"layout"`
	Columns int    `json:"columns,omitempty" yaml:"columns"`
	Rows    int    `json:"rows,omitempty" yaml:"rows"`

	Container string `json:"container,omitempty" yaml:"container"`
	Spacing   bool   `json:"spacing,omitempty" yaml:"spacing"`
	Highlight bool   `json:"highlight,omitempty" yaml:"highlight"`

	// Output selection; at most one may be set.
	OnlyMarkup     bool `json:"only_markup,omitempty" yaml:"only_markup"`
	OnlyStylesheet bool `json:"only_stylesheet,omitempty" yaml:"only_stylesheet"`

	Verify  bool `json:"verify,omitempty" yaml:"verify"`
	Refresh bool `json:"refresh,omitempty" yaml:"refresh"`

	Logger *log.Logger `json:"-" yaml:"-"`

	validated bool
}

// Result is the outcome of a run.
type Result struct {
	ID        string      `json:"id"`
	Mode      string      `json:"mode"`
	Output    grid.Output `json:"output"`
	Stats     Stats       `json:"stats"`
	CacheInfo CacheInfo   `json:"cache"`
}

// Stats describes the compiled grid.
type Stats struct {
	// Selectors is the number of distinct cells: placements in query mode,
	// numbered cells otherwise.
	Selectors   int           `json:"selectors"`
	Rows        int           `json:"rows"`
	Columns     int           `json:"columns"`
	CompileTime time.Duration `json:"compile_time_ns"`
}

// CacheInfo reports whether the output came from the cache.
type CacheInfo struct {
	Hit bool `json:"hit"`
}

// ValidateAndSetDefaults infers the mode, applies defaults and validates
// the inputs of that mode. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Mode == "" {
		o.Mode = o.inferMode()
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if o.Container == "" {
		o.Container = grid.DefaultContainer
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	var errs []error
	switch o.Mode {
	case ModeQuery:
		errs = append(errs, errors.ValidateQuery(o.Query))
	case ModeLayout:
		errs = append(errs, errors.ValidateLayoutName(o.Layout))
	case ModeDimensions:
		errs = append(errs, errors.ValidateDimensions(o.Columns, o.Rows))
	}
	errs = append(errs, errors.ValidateContainer(o.Container))
	if o.OnlyMarkup && o.OnlyStylesheet {
		errs = append(errs, errors.New(errors.ErrCodeInvalidInput, "only_markup and only_stylesheet are mutually exclusive"))
	}
	if err := errors.Combine(errs...); err != nil {
		return err
	}

	o.validated = true
	return nil
}

func (o *Options) inferMode() string {
	switch {
	case o.Query != "":
		return ModeQuery
	case o.Layout != "":
		return ModeLayout
	case o.Columns != 0 || o.Rows != 0:
		return ModeDimensions
	}
	// Nothing given: report it as an empty query.
	return ModeQuery
}

// Input returns the text that identifies the compiled grid: the query,
// the layout name or "<cols>x<rows>".
func (o *Options) Input() string {
	switch o.Mode {
	case ModeLayout:
		return o.Layout
	case ModeDimensions:
		return fmt.Sprintf("%dx%d", o.Columns, o.Rows)
	}
	return o.Query
}
