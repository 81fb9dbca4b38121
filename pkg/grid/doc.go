// Package grid compiles grid-layout queries into HTML markup and CSS rules.
//
// # Query Grammar
//
// A query lists the cells of a grid row by row. Rows are separated by "/",
// cells within a row by ",". Each cell is a selector understood by
// [selector.Resolver]: an element name, ".class", "#id" or a combination
// such as "aside.left-sidebar".
//
//	header/aside,article,article/footer
//
// Repeating a selector extends its block: above, article spans the second
// and third columns of the middle row. A selector that is not closed by a
// later neighbour runs to the right edge of the grid, so header and footer
// span the full width.
//
// The marker "name*N" (N repeated rows) is recognized by [Tokenize] but
// rejected by [Resolve] with an UNSUPPORTED error.
//
// # Pipeline
//
// Compilation runs in four steps, each usable on its own:
//
//  1. [Tokenize] splits the query into a [Grid] of tagged tokens.
//  2. [Resolve] infers one [Placement] per distinct selector.
//  3. [EmitMarkup] renders one element per selector.
//  4. [EmitStylesheet] renders one rule per selector; [ContainerRule]
//     renders the grid container.
//
// [Compiler] ties the steps together and adds the dimension and
// named-layout entry points:
//
//	out, err := grid.CompileFromQuery("header/nav,main/footer", ".page", true, false)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(out.Markup)
//	fmt.Println(out.Stylesheet)
//
// Everything in this package is free of I/O and shared mutable state.
package grid
