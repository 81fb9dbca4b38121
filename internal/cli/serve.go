package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridgen/internal/server"
)

// serveFlags holds the flags of the serve command.
type serveFlags struct {
	addr            string
	shutdownTimeout time.Duration
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compiler over HTTP",
		Long: `Serve the compiler as a JSON API.

  POST /v1/compile         {"query": "header/nav,main/footer", "spacing": true}
  GET  /v1/layouts
  GET  /v1/layouts/{name}
  GET  /healthz

Use --cache-url to share compiled output between several instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ln, err := net.Listen("tcp", f.addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", f.addr, err)
			}
			return c.runServe(cmd.Context(), ln, f)
		},
	}

	cmd.Flags().StringVarP(&f.addr, "addr", "a", ":8080", "address to listen on")
	cmd.Flags().DurationVar(&f.shutdownTimeout, "shutdown-timeout", 5*time.Second, "time allowed for in-flight requests on shutdown")

	return cmd
}

// runServe serves on ln until ctx is done, then shuts down gracefully.
func (c *CLI) runServe(ctx context.Context, ln net.Listener, f serveFlags) error {
	runner, cfg, err := c.newRunner(ctx)
	if err != nil {
		ln.Close()
		return err
	}
	defer runner.Close()

	cat, err := cfg.Catalogue()
	if err != nil {
		ln.Close()
		return err
	}

	server.LogHooks{Logger: c.Logger}.Register()

	srv := &http.Server{
		Handler:           server.New(runner, cat, cfg.Container, c.Logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("server starting", "address", "http://"+ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), f.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	c.Logger.Debug("server shut down gracefully")
	return nil
}
