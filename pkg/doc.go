// Package pkg holds the gridgen libraries.
//
// # Overview
//
// Gridgen compiles a compact grid description into HTML markup and a CSS
// grid stylesheet. The packages are layered:
//
//  1. [selector] - parses cell selectors and maps them to HTML tags
//  2. [grid] - tokenizes queries, resolves placements, emits markup and CSS
//  3. [lint] - re-parses emitted output and checks it against the placements
//  4. [pipeline] - validation, caching and verification around [grid]
//  5. [io] - file export, preview pages and batch manifests
//
// Supporting packages: [cache] (file, redis and null caches), [config]
// (TOML/YAML config files), [errors] (coded errors), [observability]
// (hooks) and [buildinfo].
//
// # Data Flow
//
//	"header/nav,main/footer"
//	         ↓
//	    [grid.Tokenize]  (rows of tokens)
//	         ↓
//	    [grid.Resolve]   (one placement per selector)
//	         ↓
//	    [grid.EmitMarkup] + [grid.EmitStylesheet]
//	         ↓
//	    grid.Output
//
// # Quick Start
//
//	out, err := grid.CompileFromQuery("header/nav,main/footer", ".page", true, false)
//	if err != nil {
//	    return err
//	}
//	fmt.Print(out.Markup, "\n", out.Stylesheet)
//
// [selector]: github.com/matzehuels/gridgen/pkg/selector
// [grid]: github.com/matzehuels/gridgen/pkg/grid
// [lint]: github.com/matzehuels/gridgen/pkg/lint
// [pipeline]: github.com/matzehuels/gridgen/pkg/pipeline
// [io]: github.com/matzehuels/gridgen/pkg/io
// [cache]: github.com/matzehuels/gridgen/pkg/cache
// [config]: github.com/matzehuels/gridgen/pkg/config
// [errors]: github.com/matzehuels/gridgen/pkg/errors
// [observability]: github.com/matzehuels/gridgen/pkg/observability
// [buildinfo]: github.com/matzehuels/gridgen/pkg/buildinfo
package pkg
