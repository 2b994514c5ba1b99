// Package config loads the runtime settings of an inference run.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/parinfer/internal/backend"
	"github.com/born-ml/parinfer/internal/loader"
)

// Config captures the runtime knobs for an inference run.
type Config struct {
	DataDir         string   `yaml:"data_dir"`
	SearchPaths     []string `yaml:"search_paths"`
	Seed            int      `yaml:"seed"`
	Samples         int      `yaml:"samples"`
	Workers         int      `yaml:"workers"`
	Backend         string   `yaml:"backend"`
	MissingValue    string   `yaml:"missing_value"`
	MaxErrorsLogged int      `yaml:"max_errors_logged"`
	Preview         int      `yaml:"preview"`
	PinThreads      bool     `yaml:"pin_threads"`
	View            bool     `yaml:"view"`
}

// Overrides captures CLI supplied values. Zero values leave the config
// unchanged, except Seed when SeedSet is true.
type Overrides struct {
	DataDir         string
	Seed            int
	SeedSet         bool // Seed was given explicitly, so 0 is a real seed
	Samples         int
	Workers         int
	Backend         string
	MaxErrorsLogged int
	Preview         int
	PinThreads      bool
	View            bool
}

// Default returns the settings of the reference data set.
func Default() *Config {
	return &Config{
		SearchPaths:     append([]string(nil), loader.DefaultSearchPaths...),
		Seed:            3,
		Samples:         10000,
		Backend:         backend.Default,
		MissingValue:    loader.DefaultFill.Name,
		MaxErrorsLogged: 1000,
		Preview:         100,
	}
}

// Load reads a Config from YAML on top of Default and validates it.
// Workers may be left unset in the file; callers validate again after
// applying overrides.
func Load(path string) (*Config, error) {
	//nolint:gosec // G304: config path is provided by the operator.
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validateFile(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates c using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.SeedSet || o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Samples > 0 {
		c.Samples = o.Samples
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.Backend != "" {
		c.Backend = o.Backend
	}
	if o.MaxErrorsLogged > 0 {
		c.MaxErrorsLogged = o.MaxErrorsLogged
	}
	if o.Preview > 0 {
		c.Preview = o.Preview
	}
	if o.PinThreads {
		c.PinThreads = true
	}
	if o.View {
		c.View = true
	}
}

// Candidates returns the directories to search for data, DataDir first.
func (c *Config) Candidates() []string {
	if c.DataDir != "" {
		return []string{c.DataDir}
	}
	return c.SearchPaths
}

// Fill returns the configured fill policy.
func (c *Config) Fill() (loader.FillPolicy, error) {
	return loader.ParseFillPolicy(c.MissingValue)
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if err := c.validateFile(); err != nil {
		return err
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0 (got %d)", c.Workers)
	}
	return nil
}

// validateFile checks everything except the worker count.
func (c *Config) validateFile() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Samples < 0 {
		return fmt.Errorf("samples must be >= 0 (got %d)", c.Samples)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be > 0 (got %d)", c.Workers)
	}
	if c.MaxErrorsLogged < 0 {
		return fmt.Errorf("max_errors_logged must be >= 0 (got %d)", c.MaxErrorsLogged)
	}
	if c.Preview < 0 {
		return fmt.Errorf("preview must be >= 0 (got %d)", c.Preview)
	}
	if c.DataDir == "" && len(c.SearchPaths) == 0 {
		return errors.New("either data_dir or search_paths must be set")
	}
	if _, err := backend.Lookup(c.Backend); err != nil {
		return err
	}
	if _, err := c.Fill(); err != nil {
		return err
	}
	return nil
}
