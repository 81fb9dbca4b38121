package lint

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/matzehuels/gridgen/pkg/errors"
)

// Element is a start tag found in markup.
type Element struct {
	Name    string
	ID      string
	Classes []string
	Text    string // direct text content, trimmed
	Depth   int    // 0 for top-level elements
}

// ParseMarkup tokenizes src and returns its elements in document order.
// Every start tag must be closed by a matching end tag.
func ParseMarkup(src string) ([]Element, error) {
	z := html.NewTokenizer(strings.NewReader(src))

	var (
		elements []Element
		open     []int // indexes into elements
		errs     []error
	)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return elements, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse markup")
			}
			for _, i := range open {
				errs = append(errs, errors.New(errors.ErrCodeInvalidFormat, "<%s> is never closed", elements[i].Name))
			}
			return elements, errors.Combine(errs...)

		case html.StartTagToken:
			tok := z.Token()
			el := Element{Name: tok.Data, Depth: len(open)}
			for _, a := range tok.Attr {
				switch a.Key {
				case "id":
					el.ID = a.Val
				case "class":
					el.Classes = strings.Fields(a.Val)
				}
			}
			elements = append(elements, el)
			open = append(open, len(elements)-1)

		case html.EndTagToken:
			tok := z.Token()
			if len(open) == 0 {
				errs = append(errs, errors.New(errors.ErrCodeInvalidFormat, "unexpected </%s>", tok.Data))
				continue
			}
			top := open[len(open)-1]
			if elements[top].Name != tok.Data {
				errs = append(errs, errors.New(errors.ErrCodeInvalidFormat, "</%s> closes <%s>", tok.Data, elements[top].Name))
			}
			open = open[:len(open)-1]

		case html.TextToken:
			if len(open) == 0 {
				continue
			}
			top := open[len(open)-1]
			elements[top].Text += strings.TrimSpace(string(z.Text()))
		}
	}
}
