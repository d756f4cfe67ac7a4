// Package governancevalidator provides a request/reply service for
// validating architecture models against the governance rule catalog.
package governancevalidator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360studio/semarch/governance"
	"github.com/c360studio/semarch/observability"
	"github.com/c360studio/semarch/storage"
	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
)

// Component implements the governance-validator processor.
type Component struct {
	name       string
	config     Config
	natsClient *natsclient.Client
	logger     *slog.Logger

	engine *governance.Engine

	// Model store for validate-by-id requests; nil when JetStream is
	// unavailable.
	modelStore *storage.ModelStore

	// Request subject
	requestSubject string

	// Lifecycle
	running      bool
	startTime    time.Time
	mu           sync.RWMutex
	cancel       context.CancelFunc
	subscription *natsclient.Subscription

	// Metrics
	requestsProcessed atomic.Int64
	modelsAccepted    atomic.Int64
	modelsRejected    atomic.Int64
	errorsCount       atomic.Int64
	lastActivityMu    sync.RWMutex
	lastActivity      time.Time
}

// NewComponent creates a new governance-validator processor.
func NewComponent(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	var config Config
	if err := json.Unmarshal(rawConfig, &config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Apply defaults if not specified
	defaults := DefaultConfig()
	if config.Ports == nil {
		config.Ports = defaults.Ports
	}
	if config.Mode == "" {
		config.Mode = defaults.Mode
	}
	if config.Coverage == "" {
		config.Coverage = defaults.Coverage
	}
	if config.TimeoutSecs == 0 {
		config.TimeoutSecs = defaults.TimeoutSecs
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Resolve request subject from port definitions
	requestSubject := "eam.governance.validate"
	if config.Ports != nil && len(config.Ports.Inputs) > 0 {
		requestSubject = config.Ports.Inputs[0].Subject
	}

	return &Component{
		name:           "governance-validator",
		config:         config,
		natsClient:     deps.NATSClient,
		logger:         deps.GetLogger(),
		engine:         governance.NewEngine(),
		requestSubject: requestSubject,
	}, nil
}

// Initialize prepares the component.
func (c *Component) Initialize() error {
	c.logger.Debug("Initialized governance-validator",
		"request_subject", c.requestSubject,
		"mode", c.config.Mode,
		"coverage", c.config.Coverage)
	return nil
}

// Start begins handling validation requests.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("component already running")
	}
	if c.natsClient == nil {
		c.mu.Unlock()
		return fmt.Errorf("NATS client required")
	}

	c.running = true
	c.startTime = time.Now()

	subCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	// Model lookup by id needs the KV store; requests with inline models
	// work without it.
	if js, err := c.natsClient.JetStream(); err != nil {
		c.logger.Warn("JetStream unavailable, validate-by-id disabled", "error", err)
	} else if store, err := storage.NewModelStore(subCtx, js); err != nil {
		c.logger.Warn("Model store unavailable, validate-by-id disabled", "error", err)
	} else {
		c.modelStore = store
	}

	sub, err := c.natsClient.SubscribeForRequests(subCtx, c.requestSubject, c.handleRequest)
	if err != nil {
		c.mu.Lock()
		c.running = false
		c.cancel = nil
		c.mu.Unlock()
		cancel()
		return fmt.Errorf("subscribe to %s: %w", c.requestSubject, err)
	}

	c.mu.Lock()
	c.subscription = sub
	c.mu.Unlock()

	c.logger.Info("governance-validator started",
		"subject", c.requestSubject,
		"mode", c.config.Mode)

	return nil
}

// handleRequest processes a validation request and returns response data.
// Accepts both raw ValidateRequest JSON and BaseMessage-wrapped requests.
func (c *Component) handleRequest(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.requestsProcessed.Add(1)
	c.updateLastActivity()

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout())
	defer cancel()

	// Try to parse as raw ValidateRequest first
	var req ValidateRequest
	if err := json.Unmarshal(data, &req); err == nil && (req.Model != nil || req.ModelID != "") {
		c.logger.Debug("Parsed as raw ValidateRequest",
			"request_id", req.RequestID, "model_id", req.ModelID, "inline", req.Model != nil)
	} else {
		// Try to parse as BaseMessage-wrapped request
		var baseMsg message.BaseMessage
		if err := json.Unmarshal(data, &baseMsg); err != nil {
			return c.errorResponse(req.RequestID, "failed to parse request: "+err.Error())
		}

		payloadBytes, err := json.Marshal(baseMsg.Payload())
		if err != nil {
			return c.errorResponse(req.RequestID, "failed to marshal payload: "+err.Error())
		}
		if err := json.Unmarshal(payloadBytes, &req); err != nil {
			return c.errorResponse(req.RequestID, "failed to unmarshal request: "+err.Error())
		}
	}

	if err := req.Validate(); err != nil {
		return c.errorResponse(req.RequestID, err.Error())
	}

	// Resolve the model document
	doc := req.Model
	if doc == nil {
		if c.modelStore == nil {
			return c.errorResponse(req.RequestID, "model lookup unavailable: no model store")
		}
		record, err := c.modelStore.GetModel(ctx, req.ModelID)
		if err != nil {
			return c.errorResponse(req.RequestID, "load model "+req.ModelID+": "+err.Error())
		}
		doc = &record.Document
	}

	// Structural integrity precedes governance; a store that fails to
	// build is an error response, not a rejection.
	store, err := doc.BuildStore()
	if err != nil {
		return c.errorResponse(req.RequestID, "build model store: "+err.Error())
	}

	cfg, err := c.config.GovernanceConfig(req.Mode, req.Coverage)
	if err != nil {
		return c.errorResponse(req.RequestID, err.Error())
	}

	start := time.Now()
	result, err := c.engine.Validate(store, cfg)
	if err != nil {
		return c.errorResponse(req.RequestID, err.Error())
	}

	observability.RecordValidation(string(cfg.Mode), string(result.Status), time.Since(start))
	if result.RuleID != "" {
		observability.RecordViolations(result.RuleID, len(result.Findings()))
	}

	if result.Accepted() {
		c.modelsAccepted.Add(1)
	} else {
		c.modelsRejected.Add(1)
	}

	c.logger.Debug("Validated model",
		"request_id", req.RequestID,
		"status", result.Status,
		"rule", result.RuleID)

	return c.marshalResponse(FromResult(req.RequestID, result))
}

// marshalResponse marshals a validation response.
// For request/reply services, we return the raw payload without BaseMessage
// wrapper so callers can access fields directly.
func (c *Component) marshalResponse(response *ValidateResponse) ([]byte, error) {
	return json.Marshal(response)
}

// errorResponse builds an error response.
func (c *Component) errorResponse(requestID, errMsg string) ([]byte, error) {
	c.errorsCount.Add(1)
	response := &ValidateResponse{
		RequestID: requestID,
		Accepted:  false,
		Status:    "error",
		Error:     errMsg,
		Timestamp: time.Now(),
	}
	return c.marshalResponse(response)
}

// Stop gracefully stops the component.
func (c *Component) Stop(_ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	c.running = false
	c.logger.Info("governance-validator stopped",
		"requests_processed", c.requestsProcessed.Load(),
		"models_accepted", c.modelsAccepted.Load(),
		"models_rejected", c.modelsRejected.Load(),
		"errors", c.errorsCount.Load())

	return nil
}

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        "governance-validator",
		Type:        "processor",
		Description: "Request/reply service for validating architecture models against governance rules",
		Version:     "1.0.0",
	}
}

// InputPorts returns configured input port definitions.
func (c *Component) InputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Inputs))
	for i, def := range c.config.Ports.Inputs {
		ports[i] = component.Port{
			Name:        def.Name,
			Direction:   component.DirectionInput,
			Required:    def.Required,
			Description: def.Description,
			Config:      component.NATSPort{Subject: def.Subject},
		}
	}
	return ports
}

// OutputPorts returns configured output port definitions.
func (c *Component) OutputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Outputs))
	for i, def := range c.config.Ports.Outputs {
		ports[i] = component.Port{
			Name:        def.Name,
			Direction:   component.DirectionOutput,
			Required:    def.Required,
			Description: def.Description,
			Config:      component.NATSPort{Subject: def.Subject},
		}
	}
	return ports
}

// ConfigSchema returns the configuration schema.
func (c *Component) ConfigSchema() component.ConfigSchema {
	return governanceValidatorSchema
}

// Health returns the current health status.
func (c *Component) Health() component.HealthStatus {
	c.mu.RLock()
	running := c.running
	startTime := c.startTime
	c.mu.RUnlock()

	status := "stopped"
	if running {
		status = "running"
	}

	return component.HealthStatus{
		Healthy:    running,
		LastCheck:  time.Now(),
		ErrorCount: int(c.errorsCount.Load()),
		Uptime:     time.Since(startTime),
		Status:     status,
	}
}

// DataFlow returns current data flow metrics.
func (c *Component) DataFlow() component.FlowMetrics {
	return component.FlowMetrics{
		MessagesPerSecond: 0,
		BytesPerSecond:    0,
		ErrorRate:         0,
		LastActivity:      c.getLastActivity(),
	}
}

func (c *Component) updateLastActivity() {
	c.lastActivityMu.Lock()
	c.lastActivity = time.Now()
	c.lastActivityMu.Unlock()
}

func (c *Component) getLastActivity() time.Time {
	c.lastActivityMu.RLock()
	defer c.lastActivityMu.RUnlock()
	return c.lastActivity
}
