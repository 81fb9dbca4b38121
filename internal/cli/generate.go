package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridgen/pkg/grid"
	gio "github.com/matzehuels/gridgen/pkg/io"
	"github.com/matzehuels/gridgen/pkg/pipeline"
)

// generateFlags holds the flags of the generate command.
type generateFlags struct {
	columns   int
	rows      int
	query     string
	template  string
	container string
	spacing   bool
	highlight bool

	onlyHTML  bool
	onlyStyle bool
	verify    bool
	refresh   bool

	copy    bool
	outDir  string
	preview string
	json    bool
}

// options maps the flags onto pipeline options. The mode is left for the
// pipeline to infer.
func (f generateFlags) options() pipeline.Options {
	return pipeline.Options{
		Query:          f.query,
		Layout:         f.template,
		Columns:        f.columns,
		Rows:           f.rows,
		Container:      f.container,
		Spacing:        f.spacing,
		Highlight:      f.highlight,
		OnlyMarkup:     f.onlyHTML,
		OnlyStylesheet: f.onlyStyle,
		Verify:         f.verify,
		Refresh:        f.refresh,
	}
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate grid markup and stylesheet",
		Long: `Generate HTML markup and a CSS grid stylesheet.

The grid comes from a query (-q), a named layout (-t) or a number of columns
and rows (-c/-r). The output goes to stdout unless --copy, --out-dir or
--preview is given.`,
		Example: `  gridgen generate -q "header/nav,main,main/footer" --spacing
  gridgen generate -t holy-grail --out-dir site
  gridgen generate -c 3 -r 2 -C "#gallery" --only-style
  gridgen generate -q "a,b/c,c" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&f.columns, "columns", "c", 0, "number of columns")
	flags.IntVarP(&f.rows, "rows", "r", 0, "number of rows")
	flags.StringVarP(&f.query, "query", "q", "", `grid query, e.g. "header/nav,main/footer"`)
	flags.StringVarP(&f.template, "template", "t", "", "named layout (see: gridgen layouts)")
	flags.StringVarP(&f.container, "container", "C", "", "container selector (default from config, else "+grid.DefaultContainer+")")
	flags.BoolVar(&f.spacing, "spacing", false, "add padding and gap between cells")
	flags.BoolVar(&f.highlight, "highlight", false, "give cells a background and label them")
	flags.BoolVar(&f.onlyHTML, "only-html", false, "emit only the markup")
	flags.BoolVar(&f.onlyStyle, "only-style", false, "emit only the stylesheet")
	flags.BoolVar(&f.verify, "verify", false, "re-parse the output and check it against the placements")
	flags.BoolVar(&f.refresh, "refresh", false, "ignore cached output")
	flags.BoolVar(&f.copy, "copy", false, "copy the output to the clipboard")
	flags.StringVarP(&f.outDir, "out-dir", "o", "", "write <container>.html and <container>.css into this directory")
	flags.StringVar(&f.preview, "preview", "", "write a standalone preview page to this file")
	flags.BoolVar(&f.json, "json", false, "print the full result as JSON")

	cmd.MarkFlagsMutuallyExclusive("only-html", "only-style")
	cmd.MarkFlagsMutuallyExclusive("query", "template")
	cmd.MarkFlagsMutuallyExclusive("json", "copy")

	_ = cmd.RegisterFlagCompletionFunc("template", c.completeLayoutNames)

	return cmd
}

// completeLayoutNames completes --template with the catalogue's names.
func (c *CLI) completeLayoutNames(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	cat, err := cfg.Catalogue()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return cat.Names(), cobra.ShellCompDirectiveNoFileComp
}

func (c *CLI) runGenerate(ctx context.Context, w io.Writer, f generateFlags) error {
	runner, cfg, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := f.options()
	if opts.Container == "" {
		opts.Container = cfg.Container
	}

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	if f.json {
		return gio.WriteResult(w, res)
	}

	sunk := false
	if f.outDir != "" {
		files, err := gio.WriteFiles(f.outDir, opts.Container, res.Output)
		if err != nil {
			return err
		}
		printSuccess("Wrote %s", opts.Container)
		for _, path := range files.Paths() {
			printFile(path)
		}
		sunk = true
	}
	if f.preview != "" {
		if err := gio.ExportPreview(f.preview, gio.NewPreview(previewTitle(res.Mode, opts), res.Output)); err != nil {
			return err
		}
		printSuccess("Wrote preview")
		printFile(f.preview)
		sunk = true
	}
	if f.copy {
		if err := clipboard.WriteAll(formatOutput(res.Output)); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		printSuccess("Copied to clipboard")
		sunk = true
	}

	if !sunk {
		if _, err := io.WriteString(w, formatOutput(res.Output)); err != nil {
			return err
		}
		if w != os.Stdout || !isTerminal(os.Stdout) {
			return nil
		}
	}
	printStats(res.Stats.Selectors, res.Stats.Columns, res.Stats.Rows, res.CacheInfo.Hit)
	return nil
}

// formatOutput joins the markup and the stylesheet with a blank line,
// leaving out whichever is empty.
func formatOutput(out grid.Output) string {
	switch {
	case out.Markup == "":
		return out.Stylesheet
	case out.Stylesheet == "":
		return out.Markup
	}
	return out.Markup + "\n" + out.Stylesheet
}

// previewTitle names the preview page after its input.
func previewTitle(mode string, opts pipeline.Options) string {
	switch mode {
	case pipeline.ModeLayout:
		return opts.Layout
	case pipeline.ModeDimensions:
		return fmt.Sprintf("%d x %d grid", opts.Columns, opts.Rows)
	}
	return opts.Query
}
