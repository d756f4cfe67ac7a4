// Package config provides configuration loading and management for Semarch.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/semarch/export"
	"github.com/c360studio/semarch/governance"
)

// Config represents the complete Semarch configuration
type Config struct {
	Governance governance.Config `yaml:"governance"`
	Models     ModelsConfig      `yaml:"models"`
	NATS       NATSConfig        `yaml:"nats"`
	Export     ExportConfig      `yaml:"export"`
}

// ModelsConfig configures where architecture models are read from
type ModelsConfig struct {
	// Paths are glob patterns (doublestar syntax) resolved against the
	// working directory, e.g. "models/**/*.yaml"
	Paths []string `yaml:"paths"`
}

// NATSConfig configures the NATS connection
type NATSConfig struct {
	// URL is the NATS server URL
	URL string `yaml:"url"`
}

// ExportConfig configures RDF export defaults
type ExportConfig struct {
	// Format is the serialization format (turtle, ntriples, jsonld)
	Format string `yaml:"format"`
	// Profile selects ontology type assertions (minimal, bfo)
	Profile string `yaml:"profile"`
	// Output is the output file path (empty = stdout)
	Output string `yaml:"output"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Governance: governance.DefaultConfig(),
		Models: ModelsConfig{
			Paths: []string{"models/**/*.yaml"},
		},
		NATS: NATSConfig{
			URL: "nats://localhost:4222",
		},
		Export: ExportConfig{
			Format:  string(export.FormatTurtle),
			Profile: string(export.ProfileMinimal),
			Output:  "", // stdout
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if err := c.Governance.Validate(); err != nil {
		return fmt.Errorf("governance: %w", err)
	}
	for i, pattern := range c.Models.Paths {
		if pattern == "" {
			return fmt.Errorf("models.paths[%d] is empty", i)
		}
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("models.paths[%d]: invalid glob pattern %q", i, pattern)
		}
	}
	if c.Export.Format != "" {
		if _, err := export.ParseFormat(c.Export.Format); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	if c.Export.Profile != "" {
		if _, err := export.ParseProfile(c.Export.Profile); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Governance
	if other.Governance.Mode != "" {
		c.Governance.Mode = other.Governance.Mode
	}
	if other.Governance.Coverage != "" {
		c.Governance.Coverage = other.Governance.Coverage
	}
	if len(other.Governance.Vocabulary.Terms) > 0 {
		c.Governance.Vocabulary.Terms = other.Governance.Vocabulary.Terms
	}
	if len(other.Governance.Vocabulary.AppliesTo) > 0 {
		c.Governance.Vocabulary.AppliesTo = other.Governance.Vocabulary.AppliesTo
	}
	if len(other.Governance.Cardinality) > 0 {
		c.Governance.Cardinality = other.Governance.Cardinality
	}
	if len(other.Governance.OwnershipExempt) > 0 {
		c.Governance.OwnershipExempt = other.Governance.OwnershipExempt
	}

	// Models
	if len(other.Models.Paths) > 0 {
		c.Models.Paths = other.Models.Paths
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}

	// Export
	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}
	if other.Export.Profile != "" {
		c.Export.Profile = other.Export.Profile
	}
	if other.Export.Output != "" {
		c.Export.Output = other.Export.Output
	}
}
