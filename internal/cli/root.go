package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridgen/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Gridgen generates CSS grid markup and stylesheets",
		Long: `Gridgen turns a compact grid description into HTML markup and a CSS grid stylesheet.

A query lists rows separated by "/" and cells separated by ",". A selector that
repeats across adjacent columns or rows spans them:

  gridgen generate -q "header/nav,main,main/footer"`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.ConfigPath, "config", "", "config file (default: $XDG_CONFIG_HOME/gridgen/config.{toml,yaml})")
	flags.StringVar(&c.CacheURL, "cache-url", "", "redis URL for a shared cache (e.g. redis://localhost:6379/0)")
	flags.BoolVar(&c.NoCache, "no-cache", false, "disable the output cache")
	root.MarkFlagsMutuallyExclusive("cache-url", "no-cache")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.layoutsCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}
