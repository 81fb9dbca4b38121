package io

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"github.com/matzehuels/gridgen/pkg/grid"
)

const previewTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Title | default "gridgen preview" | html }}</title>
<style>
body { margin: 0; font-family: system-ui, sans-serif; }
{{ .Stylesheet | trim }}
</style>
</head>
<body>
{{ .Markup | trim }}
{{- if .Caption }}
<p><small>{{ .Caption | html }}</small></p>
{{- end }}
</body>
</html>
`

// Preview is the data of a preview page.
type Preview struct {
	Title      string
	Caption    string
	Markup     string
	Stylesheet string
}

// NewPreview builds a preview of out. The title names the input that was
// compiled; the caption states the grid size.
func NewPreview(title string, out grid.Output) Preview {
	return Preview{
		Title:      title,
		Caption:    fmt.Sprintf("%d columns x %d rows", out.Columns, out.Rows),
		Markup:     out.Markup,
		Stylesheet: out.Stylesheet,
	}
}

var preview = template.Must(template.New("preview").Funcs(sprig.FuncMap()).Parse(previewTemplate))

// RenderPreview writes a standalone HTML page for p to w.
func RenderPreview(w io.Writer, p Preview) error {
	var buf bytes.Buffer
	if err := preview.Execute(&buf, p); err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// ExportPreview renders p into the file at path.
func ExportPreview(path string, p Preview) error {
	var buf bytes.Buffer
	if err := RenderPreview(&buf, p); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
