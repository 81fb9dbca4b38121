// Package selector turns one-level CSS-like selectors into HTML tag pairs.
//
// A selector is a bare element name, a class (.name), an id (#name) or a
// concatenation of an element name with an id and classes:
//
//	aside             <aside></aside>
//	.content          <div class="content"></div>
//	#main             <div id="main"></div>
//	aside.left        <aside class="left"></aside>
//	section#app.wide  <section id="app" class="wide"></section>
//
// Selectors without an element name resolve to a div. The package has no
// state; a [Resolver] may be shared between goroutines.
package selector

import (
	"html"
	"regexp"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/matzehuels/gridgen/pkg/errors"
)

// DefaultElement is the element used when a selector names no element.
const DefaultElement = "div"

// Tag is a resolved opening/closing tag pair.
type Tag struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Resolver maps a selector string to a tag pair.
type Resolver interface {
	Resolve(selector string) (Tag, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(selector string) (Tag, error)

// Resolve calls f(selector).
func (f ResolverFunc) Resolve(selector string) (Tag, error) { return f(selector) }

// Default is the standard HTML resolver.
var Default Resolver = HTML{}

// HTML resolves selectors into HTML elements following the usual
// tag/class/id conventions.
type HTML struct{}

// Resolve parses selector and renders its tag pair.
func (HTML) Resolve(selector string) (Tag, error) {
	s, err := Parse(selector)
	if err != nil {
		return Tag{}, err
	}
	return s.Tag(), nil
}

// Selector is the parsed form of a selector string.
type Selector struct {
	Element string   // Element name; empty when the selector starts with . or #
	ID      string   // Value of the id attribute, if any
	Classes []string // Class names in source order
}

var (
	elementRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)
	nameRegex    = regexp.MustCompile(`^-?[A-Za-z_][A-Za-z0-9_-]*$`)
)

// Parse splits selector into element, id and classes.
// Malformed selectors return an INVALID_SELECTOR error.
func Parse(selector string) (Selector, error) {
	var s Selector
	if selector == "" {
		return s, errors.New(errors.ErrCodeInvalidSelector, "selector cannot be empty")
	}

	end := strings.IndexAny(selector, ".#")
	if end < 0 {
		end = len(selector)
	}
	if end > 0 {
		s.Element = selector[:end]
		if !elementRegex.MatchString(s.Element) {
			return s, errors.New(errors.ErrCodeInvalidSelector, "invalid element name %q in selector %q", s.Element, selector)
		}
	}

	rest := selector[end:]
	for rest != "" {
		marker := rest[0]
		rest = rest[1:]
		next := strings.IndexAny(rest, ".#")
		if next < 0 {
			next = len(rest)
		}
		name := rest[:next]
		rest = rest[next:]

		if !nameRegex.MatchString(name) {
			return s, errors.New(errors.ErrCodeInvalidSelector, "invalid name %q after %q in selector %q", name, string(marker), selector)
		}
		switch marker {
		case '#':
			if s.ID != "" {
				return s, errors.New(errors.ErrCodeInvalidSelector, "selector %q has more than one id", selector)
			}
			s.ID = name
		case '.':
			s.Classes = append(s.Classes, name)
		}
	}

	return s, nil
}

// Name returns the element name, falling back to DefaultElement.
func (s Selector) Name() string {
	if s.Element == "" {
		return DefaultElement
	}
	return s.Element
}

// Tag renders the opening and closing tags. The id attribute precedes class.
func (s Selector) Tag() Tag {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(s.Name())
	if s.ID != "" {
		b.WriteString(` id="`)
		b.WriteString(html.EscapeString(s.ID))
		b.WriteByte('"')
	}
	if len(s.Classes) > 0 {
		b.WriteString(` class="`)
		b.WriteString(html.EscapeString(strings.Join(s.Classes, " ")))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	return Tag{Open: b.String(), Close: "</" + s.Name() + ">"}
}

// IsCustomElement reports whether name looks like a custom element
// (it contains a hyphen).
func IsCustomElement(name string) bool {
	return strings.Contains(name, "-")
}

// IsKnownElement reports whether name is a name known to the HTML
// tokenizer. The atom table also holds attribute names, so this is a typo
// heuristic, not a validator.
func IsKnownElement(name string) bool {
	return atom.Lookup([]byte(strings.ToLower(name))) != 0
}
