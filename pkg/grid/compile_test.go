package grid

import (
	"strings"
	"testing"

	"github.com/matzehuels/gridgen/pkg/errors"
	"github.com/matzehuels/gridgen/pkg/selector"
)

func TestCompileFromQuery(t *testing.T) {
	out, err := CompileFromQuery("header/nav,main", ".page", true, false)
	if err != nil {
		t.Fatal(err)
	}

	wantMarkup := "<div class=\"page\">\n" +
		"\t<header></header>\n" +
		"\t<nav></nav>\n" +
		"\t<main></main>\n" +
		"</div>\n"
	if out.Markup != wantMarkup {
		t.Errorf("Markup =\n%s\nwant\n%s", out.Markup, wantMarkup)
	}

	wantStyle := ".page {\n" +
		"  display: grid;\n" +
		"  grid-template-rows: 1fr 1fr;\n" +
		"  grid-template-columns: repeat(2, 1fr);\n" +
		"  grid-gap: 1em;\n" +
		"}\n" +
		"\n" +
		"header {\n  grid-column: 1 / 3;\n  grid-row: 1 / 1;\n  padding: 1.5rem;\n}\n" +
		"\n" +
		"nav {\n  grid-column: 1 / 2;\n  grid-row: 2 / 2;\n  padding: 1.5rem;\n}\n" +
		"\n" +
		"main {\n  grid-column: 2 / 3;\n  grid-row: 2 / 2;\n  padding: 1.5rem;\n}\n"
	if out.Stylesheet != wantStyle {
		t.Errorf("Stylesheet =\n%s\nwant\n%s", out.Stylesheet, wantStyle)
	}

	if out.Rows != 2 || out.Columns != 2 {
		t.Errorf("size = %dx%d, want 2x2", out.Columns, out.Rows)
	}
	if len(out.Placements) != 3 {
		t.Errorf("len(Placements) = %d, want 3", len(out.Placements))
	}
}

func TestCompileFromQueryNoDecor(t *testing.T) {
	out, err := CompileFromQuery("header/aside,.content,.content,.content/footer", DefaultContainer, false, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, banned := range []string{"padding", "background", "grid-gap"} {
		if strings.Contains(out.Stylesheet, banned) {
			t.Errorf("stylesheet contains %q:\n%s", banned, out.Stylesheet)
		}
	}
	if !strings.Contains(out.Stylesheet, ".content {\n  grid-column: 2 / 5;\n  grid-row: 2 / 2;\n}") {
		t.Errorf("unexpected .content rule:\n%s", out.Stylesheet)
	}
	if strings.Contains(out.Markup, ">header<") {
		t.Errorf("labels emitted without highlight:\n%s", out.Markup)
	}
}

func TestCompileIdempotent(t *testing.T) {
	queries := []string{
		"body/aside,article,article/footer",
		HolyGrailQuery,
		"a,b,c/d,d,d/e",
	}
	for _, q := range queries {
		for _, flags := range [][2]bool{{false, false}, {true, false}, {false, true}, {true, true}} {
			a, err := CompileFromQuery(q, DefaultContainer, flags[0], flags[1])
			if err != nil {
				t.Fatal(err)
			}
			b, err := CompileFromQuery(q, DefaultContainer, flags[0], flags[1])
			if err != nil {
				t.Fatal(err)
			}
			if a.Markup != b.Markup || a.Stylesheet != b.Stylesheet {
				t.Errorf("%q %v: output differs between runs", q, flags)
			}
		}
	}
}

// Every distinct selector shows up as exactly one rule and one element.
func TestCompileCoverage(t *testing.T) {
	queries := []string{
		"body/aside,article,article/footer",
		"header/aside,.content,.content,.content/footer",
		"x-card,x-card/x-card.wide#hero",
	}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			out, err := CompileFromQuery(q, DefaultContainer, false, false)
			if err != nil {
				t.Fatal(err)
			}
			g, _ := Tokenize(q)
			seen := map[string]bool{}
			for _, cell := range g.Cells() {
				sel := cell.Token.Name
				if seen[sel] {
					continue
				}
				seen[sel] = true

				if n := strings.Count(out.Stylesheet, "\n"+sel+" {\n"); n != 1 {
					t.Errorf("%s: %d rules, want 1", sel, n)
				}
				tag, err := selector.Default.Resolve(sel)
				if err != nil {
					t.Fatal(err)
				}
				if n := strings.Count(out.Markup, "\t"+tag.Open+tag.Close+"\n"); n != 1 {
					t.Errorf("%s: %d elements, want 1", sel, n)
				}
			}
		})
	}
}

func TestCompileFromDimensions(t *testing.T) {
	out, err := CompileFromDimensions(2, 2, DefaultContainer)
	if err != nil {
		t.Fatal(err)
	}

	wantMarkup := "<div class=\"grid-container\">\n" +
		"\t<div>1</div>\n" +
		"\t<div>2</div>\n" +
		"\t<div>3</div>\n" +
		"\t<div>4</div>\n" +
		"</div>\n"
	if out.Markup != wantMarkup {
		t.Errorf("Markup =\n%s\nwant\n%s", out.Markup, wantMarkup)
	}
	for _, decl := range []string{
		"grid-template-columns: repeat(2, 1fr);",
		"grid-template-rows: repeat(2, 1fr);",
		"grid-gap: 1em;",
	} {
		if !strings.Contains(out.Stylesheet, decl) {
			t.Errorf("stylesheet missing %q:\n%s", decl, out.Stylesheet)
		}
	}
}

func TestCompileFromNamedLayout(t *testing.T) {
	t.Run("holy-grail", func(t *testing.T) {
		out, err := CompileFromNamedLayout("holy-grail", DefaultContainer)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"header", "aside.left-sidebar", "article", "aside.right-sidebar", "footer"}
		if len(out.Placements) != len(want) {
			t.Fatalf("len(Placements) = %d, want %d", len(out.Placements), len(want))
		}
		for i, sel := range want {
			if out.Placements[i].Selector != sel {
				t.Errorf("Placements[%d] = %q, want %q", i, out.Placements[i].Selector, sel)
			}
		}
		article := out.Placements[2]
		if article.ColumnEnd-article.ColumnStart != 2 || article.RowStart != 2 {
			t.Errorf("article = %+v, want two columns in row 2", article)
		}
		if !strings.Contains(out.Markup, "<header>header</header>") {
			t.Errorf("holy-grail should label cells:\n%s", out.Markup)
		}
		if !strings.Contains(out.Stylesheet, "background: #eaeaea;") || !strings.Contains(out.Stylesheet, "padding: 1.5rem;") {
			t.Errorf("holy-grail should enable spacing and highlight:\n%s", out.Stylesheet)
		}
	})

	dims := map[string][2]int{
		"2-col": {2, 1}, "3-col": {3, 1}, "4-col": {4, 1},
		"2-row": {1, 2}, "3-row": {1, 3}, "4-row": {1, 4},
	}
	for name, d := range dims {
		t.Run(name, func(t *testing.T) {
			out, err := CompileFromNamedLayout(name, DefaultContainer)
			if err != nil {
				t.Fatal(err)
			}
			if out.Columns != d[0] || out.Rows != d[1] {
				t.Errorf("size = %dx%d, want %dx%d", out.Columns, out.Rows, d[0], d[1])
			}
			if got := strings.Count(out.Markup, "<div>"); got != d[0]*d[1] {
				t.Errorf("%d cells, want %d", got, d[0]*d[1])
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		run  func() error
		code errors.Code
	}{
		{"empty query", func() error {
			_, err := CompileFromQuery("", DefaultContainer, false, false)
			return err
		}, errors.ErrCodeGrammar},
		{"empty segment", func() error {
			_, err := CompileFromQuery("a//b", DefaultContainer, false, false)
			return err
		}, errors.ErrCodeGrammar},
		{"repeat marker", func() error {
			_, err := CompileFromQuery("header/main*2", DefaultContainer, false, false)
			return err
		}, errors.ErrCodeUnsupported},
		{"bad selector", func() error {
			_, err := CompileFromQuery("header/a..b", DefaultContainer, false, false)
			return err
		}, errors.ErrCodeInvalidSelector},
		{"bad container", func() error {
			_, err := CompileFromQuery("a", "has space", false, false)
			return err
		}, errors.ErrCodeInvalidSelector},
		{"zero columns", func() error {
			_, err := CompileFromDimensions(0, 2, DefaultContainer)
			return err
		}, errors.ErrCodeInvalidDimensions},
		{"unknown layout", func() error {
			_, err := CompileFromNamedLayout("5-col", DefaultContainer)
			return err
		}, errors.ErrCodeUnknownLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestCompilerOptions(t *testing.T) {
	upper := selector.ResolverFunc(func(sel string) (selector.Tag, error) {
		return selector.Tag{Open: "<" + sel + ">", Close: "</" + sel + ">"}, nil
	})
	cat, err := DefaultCatalogue().With(Layout{Name: "sidebar", Query: "nav,main", Spacing: true})
	if err != nil {
		t.Fatal(err)
	}
	c := NewCompiler(WithResolver(upper), WithTheme(Theme{Gap: "4px"}), WithCatalogue(cat))

	out, err := c.FromLayout("sidebar", "wrap")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.Markup, "<wrap>\n\t<nav></nav>") {
		t.Errorf("custom resolver not used:\n%s", out.Markup)
	}
	if !strings.Contains(out.Stylesheet, "grid-gap: 4px;") {
		t.Errorf("custom gap not used:\n%s", out.Stylesheet)
	}
	if !strings.Contains(out.Stylesheet, "padding: 1.5rem;") {
		t.Errorf("default padding lost:\n%s", out.Stylesheet)
	}
}
