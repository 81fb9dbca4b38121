package lint

import (
	"bytes"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/matzehuels/gridgen/pkg/errors"
)

// Declaration is one property: value pair.
type Declaration struct {
	Property string
	Value    string
}

// Rule is a parsed ruleset.
type Rule struct {
	Selector     string
	Declarations []Declaration
}

// Get returns the value of property, if declared.
func (r Rule) Get(property string) (string, bool) {
	for _, d := range r.Declarations {
		if d.Property == property {
			return d.Value, true
		}
	}
	return "", false
}

// ParseStylesheet parses src into rulesets in source order.
// At-rules are skipped.
func ParseStylesheet(src string) ([]Rule, error) {
	p := css.NewParser(parse.NewInput(bytes.NewReader([]byte(src))), false)

	var (
		rules   []Rule
		current *Rule
		depth   int
	)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && err != io.EOF {
				return rules, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse stylesheet")
			}
			if current != nil {
				return rules, errors.New(errors.ErrCodeInvalidFormat, "unterminated rule %q", current.Selector)
			}
			return rules, nil

		case css.BeginAtRuleGrammar:
			depth++
		case css.EndAtRuleGrammar:
			depth--

		case css.BeginRulesetGrammar:
			if depth > 0 {
				continue
			}
			current = &Rule{Selector: joinTokens(p.Values())}

		case css.DeclarationGrammar:
			if current == nil {
				continue
			}
			current.Declarations = append(current.Declarations, Declaration{
				Property: strings.ToLower(string(data)),
				Value:    joinTokens(p.Values()),
			})

		case css.EndRulesetGrammar:
			if current != nil {
				rules = append(rules, *current)
				current = nil
			}
		}
	}
}

func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}
