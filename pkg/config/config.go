// Package config loads lambdac settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/vic/lambdac/pkg/cli"
	"github.com/vic/lambdac/pkg/lambda"
)

// Config holds the evaluator and front-end settings.
type Config struct {
	// Alphabet is the renaming pool, e.g. "a-z" or "u-z".
	Alphabet string `yaml:"alphabet"`
	Prompt   string `yaml:"prompt"`
	Stats    bool   `yaml:"stats"`
	// Trace is the number of reduction events kept per line; 0 disables.
	Trace int `yaml:"trace"`
	// Workers bounds parallel evaluation of batch input.
	Workers int `yaml:"workers"`
	// Requires is a semver constraint the tool version must satisfy.
	Requires string `yaml:"requires"`
}

func Default() *Config {
	return &Config{
		Alphabet: "a-z",
		Prompt:   "λ> ",
		Workers:  runtime.GOMAXPROCS(0),
	}
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", abs, err)
	}
	return cfg, nil
}

// Validate checks field values and the version constraint.
func (c *Config) Validate() error {
	if _, err := c.ParsedAlphabet(); err != nil {
		return err
	}
	if c.Trace < 0 {
		return fmt.Errorf("trace must not be negative, got %d", c.Trace)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return CheckVersion(c.Requires, cli.Version)
}

// ParsedAlphabet returns the configured renaming alphabet.
func (c *Config) ParsedAlphabet() (lambda.Alphabet, error) {
	if c.Alphabet == "" {
		return lambda.DefaultAlphabet, nil
	}
	return lambda.ParseAlphabet(c.Alphabet)
}

// CheckVersion reports an error if version does not satisfy constraint. An
// empty constraint accepts any version.
func CheckVersion(constraint, version string) error {
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid requires %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("version %s does not satisfy %q", v, constraint)
	}
	return nil
}
