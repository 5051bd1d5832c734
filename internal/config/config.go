// Package config handles configuration loading and shared data structures.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Collections []Collection `yaml:"collections" json:"collections"`
	Concurrency int          `yaml:"concurrency,omitempty" json:"-"`
	Timeout     int          `yaml:"timeout,omitempty" json:"-"` // HTTP fetch timeout in seconds
}

// Collection represents a single FeatureCollection source to validate.
// Exactly one of Path, URL or Inline is expected.
type Collection struct {
	// defining the FeatureCollection directly in config.yaml
	Inline *yaml.Node `yaml:"inline,omitempty" json:"-"`

	Name   string `yaml:"name" json:"name"`
	Path   string `yaml:"path,omitempty" json:"path,omitempty"`
	URL    string `yaml:"url,omitempty" json:"url,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"` // json or yaml, guessed when empty
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes a YAML configuration and checks its collections.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every collection is named uniquely and has one source.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Collections))

	for i, col := range c.Collections {
		if col.Name == "" {
			return fmt.Errorf("collection #%d: name is required", i)
		}
		if seen[col.Name] {
			return fmt.Errorf("collection %q: duplicate name", col.Name)
		}
		seen[col.Name] = true

		sources := 0
		if col.Path != "" {
			sources++
		}
		if col.URL != "" {
			sources++
		}
		if col.Inline != nil {
			sources++
		}
		if sources != 1 {
			return fmt.Errorf("collection %q: exactly one of path, url or inline must be set", col.Name)
		}

		switch col.Format {
		case "", "json", "yaml":
		default:
			return fmt.Errorf("collection %q: unknown format %q", col.Name, col.Format)
		}
	}

	return nil
}
