package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	gio "github.com/matzehuels/gridgen/pkg/io"
)

// batchFlags holds the flags of the batch command.
type batchFlags struct {
	outDir  string
	workers int
	preview bool
}

// jobResult is what one successful batch job produced.
type jobResult struct {
	Name   string
	Files  gio.Files
	Cached bool
}

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	var f batchFlags

	cmd := &cobra.Command{
		Use:   "batch <manifest>",
		Short: "Generate every job listed in a manifest",
		Long: `Generate every job listed in a YAML or JSON manifest, in parallel.

Each job takes the same fields as the API request body plus a name, which
becomes the stem of the written files:

  jobs:
    - name: landing
      query: header/nav,main/footer
      spacing: true
    - name: gallery
      columns: 3
      rows: 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := c.runBatch(cmd.Context(), args[0], f)
			for _, r := range results {
				status := iconFresh
				if r.Cached {
					status = iconCached
				}
				printSuccess("%s %s", r.Name, StyleDim.Render("("+status+")"))
				for _, path := range r.Files.Paths() {
					printFile(path)
				}
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&f.outDir, "out-dir", "o", ".", "directory the files are written to")
	cmd.Flags().IntVarP(&f.workers, "jobs", "j", runtime.NumCPU(), "number of jobs compiled at once")
	cmd.Flags().BoolVar(&f.preview, "preview", false, "also write <name>.preview.html for each job")

	return cmd
}

// runBatch compiles every job of the manifest at path. A failing job does
// not stop the others; all failures are returned together. Results are in
// manifest order and hold only the jobs that succeeded.
func (c *CLI) runBatch(ctx context.Context, path string, f batchFlags) ([]jobResult, error) {
	jobs, err := gio.ImportJobs(path)
	if err != nil {
		return nil, err
	}
	runner, cfg, err := c.newRunner(ctx)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Compiling %d jobs...", len(jobs)))
	spinner.Start()

	var (
		mu      sync.Mutex
		errs    error
		done    atomic.Int32
		results = make([]*jobResult, len(jobs))
	)
	fail := func(name string, err error) {
		mu.Lock()
		errs = multierr.Append(errs, fmt.Errorf("job %s: %w", name, err))
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(f.workers, 1))
	for i, job := range jobs {
		i, job := i, job // per-iteration copy (go.mod targets < 1.22 loop semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			defer func() {
				spinner.Update("Compiled %d/%d jobs...", done.Add(1), len(jobs))
			}()

			opts := job.Options
			if opts.Container == "" {
				opts.Container = cfg.Container
			}
			res, err := runner.Execute(gctx, opts)
			if err != nil {
				fail(job.Name, err)
				return nil
			}

			files, err := gio.WriteFiles(f.outDir, job.Name, res.Output)
			if err != nil {
				fail(job.Name, err)
				return nil
			}
			if f.preview {
				page := gio.BaseName(job.Name) + ".preview.html"
				if err := gio.ExportPreview(filepath.Join(f.outDir, page), gio.NewPreview(job.Name, res.Output)); err != nil {
					fail(job.Name, err)
					return nil
				}
			}
			c.Logger.Debug("job done", "job", job.Name, "id", res.ID, "cached", res.CacheInfo.Hit)
			results[i] = &jobResult{Name: job.Name, Files: files, Cached: res.CacheInfo.Hit}
			return nil
		})
	}
	waitErr := g.Wait()
	if waitErr == nil {
		waitErr = ctx.Err()
	}
	if waitErr != nil {
		spinner.Stop()
		return nil, waitErr
	}

	var out []jobResult
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	summary := fmt.Sprintf("Compiled %d of %d jobs", len(out), len(jobs))
	if errs != nil {
		spinner.StopWithError(summary)
	} else {
		spinner.StopWithSuccess(summary)
	}
	prog.done("batch finished")
	return out, errs
}
