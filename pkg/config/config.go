// Package config loads gridgen's optional user configuration.
//
// The file lives at $XDG_CONFIG_HOME/gridgen/config.toml (or config.yaml /
// config.yml) and sets the default container, the style values used for
// spacing and highlight, and extra named layouts:
//
//	container = ".page"
//
//	[style]
//	padding = "1rem"
//	gap = "8px"
//	highlight = "#ffe"
//
//	[[layouts]]
//	name = "dashboard"
//	query = "header/nav,main,main/footer"
//	spacing = true
//
// Missing values fall back to the built-in defaults. Unknown keys are
// rejected in both formats.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gridgen/pkg/errors"
	"github.com/matzehuels/gridgen/pkg/grid"
)

const appName = "gridgen"

// Format is a config file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// candidates are the file names searched in the config directory, in order.
var candidates = []string{"config.toml", "config.yaml", "config.yml"}

// Config is the decoded configuration file.
type Config struct {
	Container string        `toml:"container" yaml:"container"`
	Style     grid.Theme    `toml:"style" yaml:"style"`
	Layouts   []grid.Layout `toml:"layouts" yaml:"layouts,omitempty"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Container: grid.DefaultContainer,
		Style:     grid.DefaultTheme(),
	}
}

// Dir returns the gridgen config directory, honoring XDG_CONFIG_HOME.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Find returns the first existing config file in Dir, or "" if none exists.
func Find() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// Load reads the config at path. With an empty path the config directory
// is searched and the defaults are returned if no file is found.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		found, err := Find()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "locate config directory")
		}
		if found == "" {
			return Default(), nil
		}
		path = found
	}

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "config file %s does not exist", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	cfg, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	cfg.Path = path
	return cfg, nil
}

// FormatOf infers the encoding from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", filepath.Ext(path))
}

// Parse decodes data on top of the defaults and validates the result.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		meta, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		// Only fields we define are accepted, so yaml.Unmarshal cannot be
		// used directly.
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", format)
	}

	cfg.Style = cfg.Style.WithDefaults()
	if cfg.Container == "" {
		cfg.Container = grid.DefaultContainer
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the container and every custom layout.
func (c *Config) Validate() error {
	var errs []error
	if err := errors.ValidateContainer(c.Container); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Catalogue(); err != nil {
		errs = append(errs, err)
	}
	return errors.Combine(errs...)
}

// Catalogue returns the built-in layouts extended with the configured ones.
func (c *Config) Catalogue() (*grid.Catalogue, error) {
	return grid.DefaultCatalogue().With(c.Layouts...)
}

// Compiler returns a compiler using the configured style and layouts.
// opts are applied after the configured ones.
func (c *Config) Compiler(opts ...grid.Option) (*grid.Compiler, error) {
	cat, err := c.Catalogue()
	if err != nil {
		return nil, err
	}
	base := []grid.Option{grid.WithTheme(c.Style), grid.WithCatalogue(cat)}
	return grid.NewCompiler(append(base, opts...)...), nil
}

// Encode writes c in the given format.
func (c *Config) Encode(format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", format)
	}
	return buf.Bytes(), nil
}
