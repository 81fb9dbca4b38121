package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"github.com/matzehuels/gridgen/pkg/grid"
	"github.com/matzehuels/gridgen/pkg/pipeline"
)

// DefaultBaseName is used when a container selector slugs to nothing.
const DefaultBaseName = "grid"

// WriteResult encodes res as indented JSON.
func WriteResult(w io.Writer, res *pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// BaseName derives a file name stem from a container selector:
// ".grid-container" becomes "grid-container", "main#page.wide" becomes
// "main-page-wide".
func BaseName(container string) string {
	if s := slug.Make(container); s != "" {
		return s
	}
	return DefaultBaseName
}

// Files lists the paths WriteFiles created.
type Files struct {
	Markup     string `json:"markup,omitempty"`
	Stylesheet string `json:"stylesheet,omitempty"`
}

// WriteFiles writes out's non-empty parts to dir/<name>.html and
// dir/<name>.css, creating dir if needed.
func WriteFiles(dir, name string, out grid.Output) (Files, error) {
	var files Files
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return files, fmt.Errorf("create %s: %w", dir, err)
	}
	name = BaseName(name)

	if out.Markup != "" {
		path := filepath.Join(dir, name+".html")
		if err := os.WriteFile(path, []byte(out.Markup), 0o644); err != nil {
			return files, fmt.Errorf("write %s: %w", path, err)
		}
		files.Markup = path
	}
	if out.Stylesheet != "" {
		path := filepath.Join(dir, name+".css")
		if err := os.WriteFile(path, []byte(out.Stylesheet), 0o644); err != nil {
			return files, fmt.Errorf("write %s: %w", path, err)
		}
		files.Stylesheet = path
	}
	return files, nil
}

// Paths returns the created paths in a stable order.
func (f Files) Paths() []string {
	var paths []string
	for _, p := range []string{f.Markup, f.Stylesheet} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// String joins the created paths with ", ".
func (f Files) String() string {
	return strings.Join(f.Paths(), ", ")
}
