package main

import (
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/c360studio/semstreams/config"
	"github.com/c360studio/semstreams/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateConfig keeps buildDefaultConfig from picking up semarch.yaml or
// user config outside the test sandbox.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestBuildDefaultConfig(t *testing.T) {
	isolateConfig(t)

	cfg, err := buildDefaultConfig(slog.Default())
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	// Both processors enabled
	validator, ok := cfg.Components["governance-validator"]
	require.True(t, ok)
	assert.True(t, validator.Enabled)
	assert.Equal(t, types.ComponentTypeProcessor, validator.Type)

	ingester, ok := cfg.Components["model-ingester"]
	require.True(t, ok)
	assert.True(t, ingester.Enabled)

	exporter, ok := cfg.Components["graph-export"]
	require.True(t, ok)
	assert.True(t, exporter.Enabled)

	// Processor configs carry the configured governance defaults
	var validatorCfg map[string]any
	require.NoError(t, json.Unmarshal(validator.Config, &validatorCfg))
	assert.Equal(t, "strict", validatorCfg["mode"])
	assert.Equal(t, "both", validatorCfg["coverage"])

	var ingesterCfg map[string]any
	require.NoError(t, json.Unmarshal(ingester.Config, &ingesterCfg))
	assert.Equal(t, "EAM", ingesterCfg["stream_name"])
	assert.Equal(t, "model-ingester", ingesterCfg["consumer_name"])

	var exportCfg map[string]any
	require.NoError(t, json.Unmarshal(exporter.Config, &exportCfg))
	assert.Equal(t, "turtle", exportCfg["format"])

	// Streams cover the model pipeline and graph ingestion
	eam, ok := cfg.Streams["EAM"]
	require.True(t, ok)
	assert.Contains(t, eam.Subjects, "eam.model.>")

	graph, ok := cfg.Streams["GRAPH"]
	require.True(t, ok)
	assert.Contains(t, graph.Subjects, "graph.ingest.entity")

	assert.True(t, cfg.NATS.JetStream.Enabled)
	assert.Equal(t, []string{"nats://localhost:4222"}, cfg.NATS.URLs)
}

func TestExtractPlatformMeta(t *testing.T) {
	cfg := &config.Config{
		Platform: config.PlatformConfig{
			Org: "semarch",
			ID:  "semarch-local",
		},
	}
	meta := extractPlatformMeta(cfg)
	assert.Equal(t, "semarch", meta.Org)
	assert.Equal(t, "semarch-local", meta.Platform)

	// InstanceID takes precedence over ID when set
	cfg.Platform.InstanceID = "semarch-7"
	meta = extractPlatformMeta(cfg)
	assert.Equal(t, "semarch-7", meta.Platform)
}

func TestEnsureServiceManagerConfig(t *testing.T) {
	cfg := &config.Config{}
	ensureServiceManagerConfig(cfg)

	svc, ok := cfg.Services["service-manager"]
	require.True(t, ok)
	assert.True(t, svc.Enabled)

	var svcCfg map[string]any
	require.NoError(t, json.Unmarshal(svc.Config, &svcCfg))
	assert.Equal(t, float64(8080), svcCfg["http_port"])
}

func TestEnsureServiceManagerConfig_PreservesExisting(t *testing.T) {
	existing, err := json.Marshal(map[string]any{"http_port": 9090})
	require.NoError(t, err)

	cfg := &config.Config{
		Services: types.ServiceConfigs{
			"service-manager": types.ServiceConfig{
				Name:    "service-manager",
				Enabled: false,
				Config:  existing,
			},
		},
	}
	ensureServiceManagerConfig(cfg)

	svc := cfg.Services["service-manager"]
	assert.False(t, svc.Enabled)

	var svcCfg map[string]any
	require.NoError(t, json.Unmarshal(svc.Config, &svcCfg))
	assert.Equal(t, float64(9090), svcCfg["http_port"])
}
