package grid

import (
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/gridgen/pkg/errors"
	"github.com/matzehuels/gridgen/pkg/selector"
)

// Indent prefixes every cell element inside the container.
const Indent = "\t"

// EmitMarkup renders one element per selector, in first-seen order, one per
// line. With showLabel the selector text becomes the element's content.
//
// Errors from r are returned unchanged when they carry an error code;
// uncoded errors are wrapped as INVALID_SELECTOR.
func EmitMarkup(p *Placements, r selector.Resolver, showLabel bool) (string, error) {
	var b strings.Builder
	for _, sel := range p.order {
		tag, err := resolveTag(r, sel)
		if err != nil {
			return "", err
		}
		label := ""
		if showLabel {
			label = html.EscapeString(sel)
		}
		writeElement(&b, tag, label)
	}
	return b.String(), nil
}

// WrapContainer places inner between the container's own tags.
func WrapContainer(container, inner string, r selector.Resolver) (string, error) {
	tag, err := resolveTag(r, container)
	if err != nil {
		return "", err
	}
	return tag.Open + "\n" + inner + tag.Close + "\n", nil
}

// numberedCells renders n anonymous cells labelled 1..n.
func numberedCells(n int, r selector.Resolver) (string, error) {
	tag, err := resolveTag(r, selector.DefaultElement)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i := 1; i <= n; i++ {
		writeElement(&b, tag, fmt.Sprint(i))
	}
	return b.String(), nil
}

func writeElement(b *strings.Builder, tag selector.Tag, content string) {
	b.WriteString(Indent)
	b.WriteString(tag.Open)
	b.WriteString(content)
	b.WriteString(tag.Close)
	b.WriteByte('\n')
}

func resolveTag(r selector.Resolver, sel string) (selector.Tag, error) {
	if r == nil {
		r = selector.Default
	}
	tag, err := r.Resolve(sel)
	if err != nil {
		if errors.GetCode(err) != "" {
			return selector.Tag{}, err
		}
		return selector.Tag{}, errors.Wrap(errors.ErrCodeInvalidSelector, err, "resolve %q", sel)
	}
	return tag, nil
}
