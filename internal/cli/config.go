package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridgen/pkg/config"
	"github.com/matzehuels/gridgen/pkg/grid"
)

// sampleLayout is written by "config init" to show the layout syntax.
var sampleLayout = grid.Layout{
	Name:        "dashboard",
	Description: "Header, navigation and a wide main panel",
	Query:       "header,header,header/nav,main,main/footer,footer,footer",
	Spacing:     true,
}

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configInitCommand())

	return cmd
}

func formatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVarP(format, "format", "f", string(config.FormatTOML), "encoding: toml or yaml")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{string(config.FormatTOML), string(config.FormatYAML)}, cobra.ShellCompDirectiveNoFileComp))
}

func parseFormat(s string) (config.Format, error) {
	switch f := config.Format(s); f {
	case config.FormatTOML, config.FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (use toml or yaml)", s)
}

// configShowCommand prints the effective configuration.
func (c *CLI) configShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.Encode(f)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	formatFlag(cmd, &format)
	return cmd
}

// configPathCommand prints the config file in use, or where one would be read from.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.ConfigPath
			if path == "" {
				found, err := config.Find()
				if err != nil {
					return fmt.Errorf("get config dir: %w", err)
				}
				path = found
			}
			if path == "" {
				dir, err := config.Dir()
				if err != nil {
					return fmt.Errorf("get config dir: %w", err)
				}
				path = filepath.Join(dir, "config.toml")
				if isTerminal(os.Stdout) {
					printInfo("No config file yet")
					printNextStep("Create one", "gridgen config init")
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// configInitCommand writes a config file holding the defaults and a sample layout.
func (c *CLI) configInitCommand() *cobra.Command {
	var (
		format string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			path := c.ConfigPath
			if path == "" {
				dir, err := config.Dir()
				if err != nil {
					return fmt.Errorf("get config dir: %w", err)
				}
				path = filepath.Join(dir, "config."+string(f))
			} else if f, err = config.FormatOf(path); err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.Default()
			cfg.Layouts = []grid.Layout{sampleLayout}
			data, err := cfg.Encode(f)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create config dir: %w", err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			printSuccess("Wrote config")
			printFile(path)
			printNextStep("Try the sample layout", "gridgen generate -t "+sampleLayout.Name)
			return nil
		},
	}
	formatFlag(cmd, &format)
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
