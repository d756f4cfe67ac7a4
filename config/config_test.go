package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/c360studio/semarch/governance"
	"github.com/c360studio/semarch/vocabulary/eam"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Governance.Mode != governance.ModeStrict {
		t.Errorf("expected strict mode by default, got %s", cfg.Governance.Mode)
	}
	if cfg.NATS.URL != "nats://localhost:4222" {
		t.Errorf("expected default NATS URL nats://localhost:4222, got %s", cfg.NATS.URL)
	}
	if cfg.Export.Format != "turtle" {
		t.Errorf("expected default export format turtle, got %s", cfg.Export.Format)
	}
	if len(cfg.Models.Paths) == 0 {
		t.Error("expected default model paths")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "unknown governance mode",
			modify:  func(c *Config) { c.Governance.Mode = "lenient" },
			wantErr: true,
		},
		{
			name:    "empty model path",
			modify:  func(c *Config) { c.Models.Paths = []string{""} },
			wantErr: true,
		},
		{
			name:    "invalid glob pattern",
			modify:  func(c *Config) { c.Models.Paths = []string{"models/[.yaml"} },
			wantErr: true,
		},
		{
			name:    "unknown export format",
			modify:  func(c *Config) { c.Export.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "unknown export profile",
			modify:  func(c *Config) { c.Export.Profile = "cco" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temp file with config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
governance:
  mode: advisory
  coverage: as-is
  vocabulary:
    terms:
      - API
      - mainframe
    applies_to:
      - Capability
models:
  paths:
    - "landscape/**/*.yaml"
nats:
  url: "nats://test:4222"
export:
  format: jsonld
  profile: bfo
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Governance.Mode != governance.ModeAdvisory {
		t.Errorf("expected advisory mode, got %s", cfg.Governance.Mode)
	}
	if cfg.Governance.Coverage != governance.CoverageAsIs {
		t.Errorf("expected as-is coverage, got %s", cfg.Governance.Coverage)
	}
	if len(cfg.Governance.Vocabulary.Terms) != 2 {
		t.Errorf("expected 2 vocabulary terms, got %d", len(cfg.Governance.Vocabulary.Terms))
	}
	if !cfg.Governance.Vocabulary.AppliesToType(eam.TypeCapability) {
		t.Error("expected vocabulary policy to cover capabilities")
	}
	if len(cfg.Models.Paths) != 1 || cfg.Models.Paths[0] != "landscape/**/*.yaml" {
		t.Errorf("expected model paths override, got %v", cfg.Models.Paths)
	}
	if cfg.NATS.URL != "nats://test:4222" {
		t.Errorf("expected NATS URL nats://test:4222, got %s", cfg.NATS.URL)
	}
	if cfg.Export.Format != "jsonld" {
		t.Errorf("expected export format jsonld, got %s", cfg.Export.Format)
	}
	if cfg.Export.Profile != "bfo" {
		t.Errorf("expected export profile bfo, got %s", cfg.Export.Profile)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Governance: governance.Config{
			Mode: governance.ModeAdvisory,
		},
		NATS: NATSConfig{
			URL: "nats://override:4222",
		},
	}

	base.Merge(override)

	if base.Governance.Mode != governance.ModeAdvisory {
		t.Errorf("expected advisory mode, got %s", base.Governance.Mode)
	}
	// Coverage should remain from base since override didn't set it
	if base.Governance.Coverage != governance.CoverageBoth {
		t.Errorf("expected coverage to remain default, got %s", base.Governance.Coverage)
	}
	// Vocabulary should remain from base
	if len(base.Governance.Vocabulary.Terms) == 0 {
		t.Error("expected vocabulary terms to remain default")
	}
	if base.NATS.URL != "nats://override:4222" {
		t.Errorf("expected NATS URL nats://override:4222, got %s", base.NATS.URL)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Governance.Mode = governance.ModeAdvisory

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	// Load and verify
	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Governance.Mode != governance.ModeAdvisory {
		t.Errorf("expected advisory mode, got %s", loaded.Governance.Mode)
	}
}
