package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	semarchconfig "github.com/c360studio/semarch/config"
	"github.com/c360studio/semarch/observability"
	governancevalidator "github.com/c360studio/semarch/processor/governance-validator"
	graphexport "github.com/c360studio/semarch/processor/graph-export"
	modelingester "github.com/c360studio/semarch/processor/model-ingester"
	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/componentregistry"
	"github.com/c360studio/semstreams/config"
	"github.com/c360studio/semstreams/metric"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/c360studio/semstreams/service"
	"github.com/c360studio/semstreams/types"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the governance platform services",
		Long: `Serve starts the semarch platform: the governance-validator
request/reply service, the model-ingester pipeline, and the graph-export
serializer, connected to NATS.

Platform configuration is loaded from the file given with --config, with
environment variable substitution. Without a config file a default
configuration is built from semarch.yaml governance settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Platform config file path (JSON)")

	return cmd
}

func runServe(configPath string) error {
	// Print banner
	printBanner()

	logger := slog.Default()

	// Load configuration
	cfg, err := loadPlatformConfig(configPath, logger)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Connect to NATS
	ctx := context.Background()
	natsClient, err := connectToNATS(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer natsClient.Close(ctx)

	// Ensure JetStream streams exist
	if err := ensureStreams(ctx, cfg, natsClient, logger); err != nil {
		return err
	}

	// Governance metrics are shared by both processors
	observability.RegisterMetrics()

	slog.Info("Semarch ready", "version", Version)

	// Create remaining infrastructure
	metricsRegistry := metric.NewMetricsRegistry()
	platform := extractPlatformMeta(cfg)

	// Create and start config manager (required for component-manager to access component configs)
	configManager, err := config.NewConfigManager(cfg, natsClient, logger)
	if err != nil {
		return fmt.Errorf("create config manager: %w", err)
	}
	if err := configManager.Start(ctx); err != nil {
		return fmt.Errorf("start config manager: %w", err)
	}
	defer configManager.Stop(5 * time.Second)

	slog.Info("Platform identity configured",
		"org", platform.Org,
		"platform", platform.Platform)

	// Create and populate component registry
	componentRegistry := component.NewRegistry()

	// Register all semstreams components
	slog.Debug("Registering semstreams component factories")
	if err := componentregistry.Register(componentRegistry); err != nil {
		return fmt.Errorf("register semstreams components: %w", err)
	}

	// Register semarch-specific components
	slog.Debug("Registering semarch component factories")
	if err := governancevalidator.Register(componentRegistry); err != nil {
		return fmt.Errorf("register governance-validator: %w", err)
	}

	if err := modelingester.Register(componentRegistry); err != nil {
		return fmt.Errorf("register model-ingester: %w", err)
	}

	if err := graphexport.Register(componentRegistry); err != nil {
		return fmt.Errorf("register graph-export: %w", err)
	}

	factories := componentRegistry.ListFactories()
	slog.Info("Component factories registered", "count", len(factories))

	// Create service registry and manager (semstreams pattern)
	serviceRegistry := service.NewServiceRegistry()
	if err := service.RegisterAll(serviceRegistry); err != nil {
		return fmt.Errorf("register services: %w", err)
	}

	manager := service.NewServiceManager(serviceRegistry)
	ensureServiceManagerConfig(cfg)

	// Create service dependencies
	svcDeps := &service.Dependencies{
		NATSClient:        natsClient,
		MetricsRegistry:   metricsRegistry,
		Logger:            logger,
		Platform:          platform,
		Manager:           configManager,
		ComponentRegistry: componentRegistry,
	}

	// Configure and create services
	if err := configureAndCreateServices(cfg, manager, svcDeps); err != nil {
		return err
	}

	slog.Info("All services configured")

	// Setup signal handling
	signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	// Start all services (includes HTTP server with health endpoints)
	slog.Info("Starting all services")
	if err := manager.StartAll(signalCtx); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	slog.Info("All services started successfully")

	// Block until shutdown signal
	<-signalCtx.Done()
	slog.Info("Received shutdown signal")

	// Stop all services
	shutdownTimeout := 30 * time.Second
	if err := manager.StopAll(shutdownTimeout); err != nil {
		slog.Error("Error stopping services", "error", err)
	}

	slog.Info("Semarch shutdown complete")
	return nil
}

func printBanner() {
	fmt.Println("╔═══════════════════════════════════════════════╗")
	fmt.Println("║             Semarch v" + Version + "                     ║")
	fmt.Println("║      Architecture Governance Platform         ║")
	fmt.Println("╚═══════════════════════════════════════════════╝")
}

func loadPlatformConfig(configPath string, logger *slog.Logger) (*config.Config, error) {
	if configPath != "" {
		// Load from file with environment variable substitution
		return loadConfigWithEnvSubstitution(configPath)
	}

	// Build minimal config programmatically
	return buildDefaultConfig(logger)
}

// loadConfigWithEnvSubstitution reads a config file and expands environment
// variables before parsing. Supports ${VAR} and $VAR syntax.
func loadConfigWithEnvSubstitution(configPath string) (*config.Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := config.ExpandEnvWithDefaults(string(data))

	// Load using semstreams loader (preserves defaults, validation, env overrides)
	loader := config.NewLoader()
	return loader.LoadFromBytes([]byte(expanded))
}

// buildDefaultConfig assembles a platform config from semarch.yaml
// governance settings: all three processors enabled, EAM and GRAPH streams.
func buildDefaultConfig(logger *slog.Logger) (*config.Config, error) {
	semarchCfg, err := semarchconfig.NewLoader(logger).Load()
	if err != nil {
		return nil, fmt.Errorf("load semarch config: %w", err)
	}

	gov := semarchCfg.Governance

	// Both processors carry the same governance defaults; requests to the
	// validator may still override mode and coverage per request.
	validatorConfig := map[string]any{
		"mode":     string(gov.Mode),
		"coverage": string(gov.Coverage),
	}
	if len(gov.Vocabulary.Terms) > 0 {
		validatorConfig["denied_terms"] = gov.Vocabulary.Terms
	}
	validatorJSON, _ := json.Marshal(validatorConfig)

	ingesterConfig := map[string]any{
		"stream_name":   "EAM",
		"consumer_name": "model-ingester",
		"mode":          string(gov.Mode),
		"coverage":      string(gov.Coverage),
	}
	if len(gov.Vocabulary.Terms) > 0 {
		ingesterConfig["denied_terms"] = gov.Vocabulary.Terms
	}
	ingesterJSON, _ := json.Marshal(ingesterConfig)

	exportConfig := map[string]any{
		"format": semarchCfg.Export.Format,
	}
	exportJSON, _ := json.Marshal(exportConfig)

	natsURLs := []string{"nats://localhost:4222"}
	if semarchCfg.NATS.URL != "" {
		natsURLs = []string{semarchCfg.NATS.URL}
	}

	return &config.Config{
		Version: "1.0.0",
		Platform: config.PlatformConfig{
			Org:         "semarch",
			ID:          "semarch-local",
			Environment: "dev",
		},
		NATS: config.NATSConfig{
			URLs:          natsURLs,
			MaxReconnects: -1,
			ReconnectWait: 2 * time.Second,
			JetStream: config.JetStreamConfig{
				Enabled: true,
			},
		},
		Services: types.ServiceConfigs{},
		Components: config.ComponentConfigs{
			"governance-validator": types.ComponentConfig{
				Name:    "governance-validator",
				Type:    types.ComponentTypeProcessor,
				Enabled: true,
				Config:  validatorJSON,
			},
			"model-ingester": types.ComponentConfig{
				Name:    "model-ingester",
				Type:    types.ComponentTypeProcessor,
				Enabled: true,
				Config:  ingesterJSON,
			},
			"graph-export": types.ComponentConfig{
				Name:    "graph-export",
				Type:    types.ComponentTypeProcessor,
				Enabled: true,
				Config:  exportJSON,
			},
		},
		Streams: config.StreamConfigs{
			"EAM": config.StreamConfig{
				Subjects: []string{
					"eam.model.>",
					"eam.governance.events",
				},
				MaxAge:   "24h",
				Storage:  "memory",
				Replicas: 1,
			},
			"GRAPH": config.StreamConfig{
				Subjects: []string{
					"graph.ingest.entity",
					"graph.export.>",
				},
				MaxAge:   "24h",
				Storage:  "memory",
				Replicas: 1,
			},
		},
	}, nil
}

func connectToNATS(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*natsclient.Client, error) {
	natsURLs := "nats://localhost:4222"

	// Environment variable override takes precedence
	if envURL := os.Getenv("NATS_URL"); envURL != "" {
		natsURLs = envURL
	} else if envURL := os.Getenv("SEMARCH_NATS_URL"); envURL != "" {
		natsURLs = envURL
	} else if len(cfg.NATS.URLs) > 0 {
		natsURLs = strings.Join(cfg.NATS.URLs, ",")
	}

	logger.Info("Connecting to NATS", "url", natsURLs)

	client, err := natsclient.NewClient(natsURLs,
		natsclient.WithName("semarch"),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
		natsclient.WithCircuitBreakerThreshold(20), // Higher threshold for startup bursts
		natsclient.WithHealthInterval(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}

	if err := client.Connect(ctx); err != nil {
		return nil, wrapNATSError(err, natsURLs)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.WaitForConnection(connCtx); err != nil {
		return nil, wrapNATSError(err, natsURLs)
	}

	logger.Info("Connected to NATS", "url", natsURLs)
	return client, nil
}

// wrapNATSError provides helpful guidance when NATS connection fails.
func wrapNATSError(err error, url string) error {
	errStr := err.Error()

	// Check for common connection errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no servers available") ||
		strings.Contains(errStr, "timeout") {
		return fmt.Errorf(`NATS connection failed: %w

NATS is not running at %s.

To start NATS:
  docker compose up -d nats

Or set NATS_URL environment variable to point to your NATS server.`, err, url)
	}

	return fmt.Errorf("NATS connection failed: %w", err)
}

func ensureStreams(ctx context.Context, cfg *config.Config, natsClient *natsclient.Client, logger *slog.Logger) error {
	logger.Debug("Creating JetStream streams")
	streamsManager := config.NewStreamsManager(natsClient, logger)

	if err := streamsManager.EnsureStreams(ctx, cfg); err != nil {
		return fmt.Errorf("ensure streams: %w", err)
	}

	logger.Debug("JetStream streams ready")
	return nil
}

func extractPlatformMeta(cfg *config.Config) types.PlatformMeta {
	platformID := cfg.Platform.InstanceID
	if platformID == "" {
		platformID = cfg.Platform.ID
	}

	return types.PlatformMeta{
		Org:      cfg.Platform.Org,
		Platform: platformID,
	}
}

// ensureServiceManagerConfig ensures service-manager config exists with defaults
func ensureServiceManagerConfig(cfg *config.Config) {
	if cfg.Services == nil {
		cfg.Services = make(types.ServiceConfigs)
	}

	if _, exists := cfg.Services["service-manager"]; !exists {
		slog.Debug("Adding default service-manager config")
		defaultConfig := map[string]any{
			"http_port":  8080,
			"swagger_ui": false,
			"server_info": map[string]string{
				"title":       "Semarch API",
				"description": "enterprise architecture governance - model validation and graph projection",
				"version":     Version,
			},
		}
		defaultConfigJSON, _ := json.Marshal(defaultConfig)
		cfg.Services["service-manager"] = types.ServiceConfig{
			Name:    "service-manager",
			Enabled: true,
			Config:  defaultConfigJSON,
		}
		slog.Debug("Service-manager config added", "enabled", true)
	}
}

// configureAndCreateServices configures the manager and creates all services
func configureAndCreateServices(
	cfg *config.Config,
	manager *service.Manager,
	svcDeps *service.Dependencies,
) error {
	slog.Debug("Configuring Manager")
	if err := manager.ConfigureFromServices(cfg.Services, svcDeps); err != nil {
		return fmt.Errorf("configure service manager: %w", err)
	}

	slog.Debug("Creating services from config", "count", len(cfg.Services))
	for name, svcConfig := range cfg.Services {
		if name == "service-manager" {
			slog.Debug("Skipping service-manager (configured directly)")
			continue
		}

		if err := createServiceIfEnabled(manager, name, svcConfig, svcDeps); err != nil {
			return err
		}
	}

	return nil
}

// createServiceIfEnabled creates a service if it's enabled and registered
func createServiceIfEnabled(
	manager *service.Manager,
	name string,
	svcConfig types.ServiceConfig,
	svcDeps *service.Dependencies,
) error {
	slog.Debug("Processing service config", "key", name, "name", svcConfig.Name, "enabled", svcConfig.Enabled)

	if !svcConfig.Enabled {
		slog.Info("Service disabled in config", "name", name)
		return nil
	}

	if !manager.HasConstructor(name) {
		slog.Warn("Service configured but not registered", "key", name, "available_constructors", manager.ListConstructors())
		return nil
	}

	slog.Debug("Creating service", "name", name, "has_constructor", true)
	if _, err := manager.CreateService(name, svcConfig.Config, svcDeps); err != nil {
		return fmt.Errorf("create service %s: %w", name, err)
	}

	slog.Info("Created service", "name", name, "config_name", svcConfig.Name)
	return nil
}
