// Package lint checks generated markup and stylesheets for structural
// consistency.
//
// The compiler's output is re-read with real parsers: stylesheets with
// github.com/tdewolff/parse/v2/css and markup with golang.org/x/net/html.
// [Check] then compares both against the placements the compiler reported,
// so a broken resolver or emitter is caught before anything reaches the
// clipboard or disk.
package lint
