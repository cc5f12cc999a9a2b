// Package config loads the yamlmeta configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/gobwas/glob"
	"github.com/goccy/go-yaml"
)

// Defaults applied to empty fields.
const (
	DefaultOutput = "./yamlmeta"
	FormatJSON    = "json"
)

// ErrNoPatterns is returned when no package pattern is configured.
var ErrNoPatterns = errors.New("no package patterns configured")

// Config is the content of a yamlmeta.yml file.
type Config struct {
	// Packages are Go package patterns to load.
	Packages []string `yaml:"packages"`
	// Include and Exclude are globs over package-qualified type names,
	// e.g. "yamlmeta/store.*".
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
	// Output is the directory model documents are written to.
	Output string `yaml:"output"`
	Format string `yaml:"format"`
	// Strict makes warnings fail the check command.
	Strict bool `yaml:"strict"`

	include []glob.Glob
	exclude []glob.Glob
}

// Load reads and validates a config file. Environment variables in the
// file are expanded before parsing.
func Load(filename string) (*Config, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}

	return Parse(content)
}

// Parse decodes and validates config content.
func Parse(content []byte) (*Config, error) {
	var c Config

	decoder := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(content)))), yaml.DisallowUnknownField())
	if err := decoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}

	if err := c.Init(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Init applies defaults and compiles the filters. It must be called after
// fields are changed, e.g. by command line overrides.
func (c *Config) Init() error {
	if c.Output == "" {
		c.Output = DefaultOutput
	}

	if c.Format == "" {
		c.Format = FormatJSON
	}

	if c.Format != FormatJSON {
		return fmt.Errorf("unsupported format %q", c.Format)
	}

	var err error

	if c.include, err = compile(c.Include); err != nil {
		return fmt.Errorf("include: %w", err)
	}

	if c.exclude, err = compile(c.Exclude); err != nil {
		return fmt.Errorf("exclude: %w", err)
	}

	return nil
}

// Validate checks that the config can drive an extraction.
func (c *Config) Validate() error {
	if len(c.Packages) == 0 {
		return ErrNoPatterns
	}

	return nil
}

// Filter reports whether a package-qualified type name is selected: it
// matches an include glob (or there are none) and no exclude glob.
func (c *Config) Filter(fullName string) bool {
	for _, g := range c.exclude {
		if g.Match(fullName) {
			return false
		}
	}

	if len(c.include) == 0 {
		return true
	}

	for _, g := range c.include {
		if g.Match(fullName) {
			return true
		}
	}

	return false
}

func compile(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}

		globs = append(globs, g)
	}

	return globs, nil
}
