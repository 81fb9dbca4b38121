package lint

import (
	"fmt"
	"strings"

	"github.com/matzehuels/gridgen/pkg/errors"
	"github.com/matzehuels/gridgen/pkg/grid"
	"github.com/matzehuels/gridgen/pkg/selector"
)

// Check re-parses out and verifies that it matches its own placements:
//   - the markup is balanced, with one container holding one element per
//     placement (or Rows*Columns numbered cells in dimension mode)
//   - the stylesheet starts with a grid container rule for container
//   - every placement has exactly one rule with matching coordinates
//
// All problems are reported together as INTERNAL_ERROR.
func Check(out grid.Output, container string) error {
	var errs []error
	errs = append(errs, checkStylesheet(out, container)...)
	errs = append(errs, checkMarkup(out, container)...)
	return errors.Combine(errs...)
}

func checkStylesheet(out grid.Output, container string) []error {
	rules, err := ParseStylesheet(out.Stylesheet)
	if err != nil {
		return []error{err}
	}
	if len(rules) == 0 {
		return []error{inconsistent("stylesheet has no rules")}
	}

	var errs []error
	head := rules[0]
	if head.Selector != container {
		errs = append(errs, inconsistent("first rule is %q, want container %q", head.Selector, container))
	}
	if v, _ := head.Get("display"); v != "grid" {
		errs = append(errs, inconsistent("container display is %q, want grid", v))
	}
	if v, _ := head.Get("grid-template-columns"); !sameValue(v, grid.RepeatTracks(out.Columns)) {
		errs = append(errs, inconsistent("grid-template-columns is %q, want %q", v, grid.RepeatTracks(out.Columns)))
	}

	bySelector := make(map[string][]Rule)
	for _, r := range rules[1:] {
		bySelector[r.Selector] = append(bySelector[r.Selector], r)
	}
	for _, p := range out.Placements {
		found := bySelector[p.Selector]
		if len(found) != 1 {
			errs = append(errs, inconsistent("%d rules for %q, want 1", len(found), p.Selector))
			continue
		}
		want := map[string]string{
			"grid-column": fmt.Sprintf("%d / %d", p.ColumnStart, p.ColumnEnd),
			"grid-row":    fmt.Sprintf("%d / %d", p.RowStart, p.RowEnd),
		}
		for prop, v := range want {
			if got, _ := found[0].Get(prop); !sameValue(got, v) {
				errs = append(errs, inconsistent("%s %s is %q, want %q", p.Selector, prop, got, v))
			}
		}
	}
	if extra := len(rules) - 1 - len(out.Placements); extra > 0 {
		errs = append(errs, inconsistent("%d rules without a placement", extra))
	}
	return errs
}

func checkMarkup(out grid.Output, container string) []error {
	elements, err := ParseMarkup(out.Markup)
	if err != nil {
		return []error{err}
	}

	var (
		errs     []error
		topLevel int
		cells    []Element
	)
	for _, el := range elements {
		switch el.Depth {
		case 0:
			topLevel++
		case 1:
			cells = append(cells, el)
		default:
			errs = append(errs, inconsistent("<%s> is nested %d levels deep", el.Name, el.Depth))
		}
	}
	if topLevel != 1 {
		errs = append(errs, inconsistent("%d top-level elements, want 1 container", topLevel))
	}
	if s, err := selector.Parse(container); err == nil && len(elements) > 0 {
		if want := strings.ToLower(s.Name()); elements[0].Name != want {
			errs = append(errs, inconsistent("container element is <%s>, want <%s>", elements[0].Name, want))
		}
	}

	want := len(out.Placements)
	if want == 0 {
		want = out.Rows * out.Columns
	}
	if len(cells) != want {
		errs = append(errs, inconsistent("%d cells, want %d", len(cells), want))
	}
	return errs
}

func inconsistent(format string, args ...any) error {
	return errors.New(errors.ErrCodeInternal, "generated output is inconsistent: "+format, args...)
}

// sameValue compares declaration values ignoring whitespace.
func sameValue(a, b string) bool {
	return strings.Join(strings.Fields(a), "") == strings.Join(strings.Fields(b), "")
}
