// Package io moves compiled grids in and out of gridgen.
//
// # Output
//
//   - [WriteResult] writes a pipeline result as indented JSON (--json and
//     the API use the same shape).
//   - [WriteFiles] writes <name>.html and <name>.css into a directory; the
//     name is a slug of the container selector unless one is given.
//   - [RenderPreview] writes a standalone HTML page that embeds both outputs,
//     so a layout can be opened in a browser as-is.
//
// # Input
//
// [ReadJobs] decodes a batch manifest. The manifest is YAML (and therefore
// also accepts JSON):
//
//	jobs:
//	  - name: landing
//	    query: header/nav,main/footer
//	    spacing: true
//	  - name: gallery
//	    columns: 4
//	    rows: 3
//
// Each job carries the same fields as a pipeline.Options.
package io
