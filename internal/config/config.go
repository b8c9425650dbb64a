// Package config loads CLI settings from an optional YAML file.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ukaji3/sheetflat/pkg/sheetflat"
	"github.com/ukaji3/sheetflat/pkg/sheetflat/header"
	"gopkg.in/yaml.v3"
)

// Config mirrors the CLI flags. Unset fields keep their defaults.
type Config struct {
	Strategy  string   `yaml:"strategy"`
	Policy    string   `yaml:"policy"`
	Keywords  []string `yaml:"keywords"`
	Expr      string   `yaml:"expr"`
	LeafRow   *bool    `yaml:"leaf_row"`
	Sheet     string   `yaml:"sheet"`
	PrintArea *bool    `yaml:"print_area"`
	LogLevel  string   `yaml:"log_level"`
	Workers   int      `yaml:"workers"`
	Format    string   `yaml:"format"`
}

// Load reads a YAML config file. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Apply overlays the file settings onto opts.
func (c *Config) Apply(opts *sheetflat.Options) error {
	if c.Strategy != "" {
		s, err := header.ParseStrategy(c.Strategy)
		if err != nil {
			return err
		}
		opts.Strategy = s
	}
	if c.Policy != "" {
		p, err := header.ParsePolicy(c.Policy)
		if err != nil {
			return err
		}
		opts.HeaderPolicy = p
	}
	if len(c.Keywords) > 0 {
		opts.Keywords = append([]string(nil), c.Keywords...)
	}
	if c.Expr != "" {
		opts.Expr = c.Expr
	}
	if c.LeafRow != nil {
		opts.LeafRow = *c.LeafRow
	}
	if c.Sheet != "" {
		opts.Sheet = c.Sheet
	}
	if c.PrintArea != nil {
		opts.PrintArea = *c.PrintArea
	}
	return nil
}
