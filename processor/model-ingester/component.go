// Package modelingester provides a JetStream processor that gates model
// persistence on governance. It consumes ModelSubmission messages,
// validates them against the rule catalog, persists accepted models to
// the KV store, publishes their entities to the knowledge graph, and
// emits accepted/rejected pipeline events.
package modelingester

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360studio/semarch/governance"
	"github.com/c360studio/semarch/graph"
	"github.com/c360studio/semarch/observability"
	"github.com/c360studio/semarch/storage"
	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/nats-io/nats.go/jetstream"
)

// Component implements the model-ingester processor.
type Component struct {
	name       string
	config     Config
	natsClient *natsclient.Client
	logger     *slog.Logger

	engine     *governance.Engine
	modelStore *storage.ModelStore

	// JetStream consumer state.
	consumer jetstream.Consumer

	// Lifecycle.
	running   bool
	startTime time.Time
	mu        sync.RWMutex
	cancel    context.CancelFunc

	// Metrics.
	submissionsProcessed atomic.Int64
	modelsAccepted       atomic.Int64
	modelsRejected       atomic.Int64
	errorsCount          atomic.Int64
	lastActivityMu       sync.RWMutex
	lastActivity         time.Time
}

// NewComponent constructs a model-ingester Component from raw JSON config
// and semstreams dependencies.
func NewComponent(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	var config Config
	if err := json.Unmarshal(rawConfig, &config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Apply defaults for any unset fields.
	defaults := DefaultConfig()
	if config.StreamName == "" {
		config.StreamName = defaults.StreamName
	}
	if config.ConsumerName == "" {
		config.ConsumerName = defaults.ConsumerName
	}
	if config.Mode == "" {
		config.Mode = defaults.Mode
	}
	if config.Coverage == "" {
		config.Coverage = defaults.Coverage
	}
	if config.Ports == nil {
		config.Ports = defaults.Ports
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Component{
		name:       "model-ingester",
		config:     config,
		natsClient: deps.NATSClient,
		logger:     deps.GetLogger(),
		engine:     governance.NewEngine(),
	}, nil
}

// Initialize prepares the component for startup.
func (c *Component) Initialize() error {
	c.logger.Debug("Initialized model-ingester",
		"stream", c.config.StreamName,
		"consumer", c.config.ConsumerName,
		"mode", c.config.Mode)
	return nil
}

// Start begins consuming ModelSubmission messages from JetStream.
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

	js, err := c.natsClient.JetStream()
	if err != nil {
		c.rollbackStart(cancel)
		return fmt.Errorf("get jetstream: %w", err)
	}

	stream, err := js.Stream(subCtx, c.config.StreamName)
	if err != nil {
		c.rollbackStart(cancel)
		return fmt.Errorf("get stream %s: %w", c.config.StreamName, err)
	}

	// Persistence is the point of this pipeline; no store, no start.
	modelStore, err := storage.NewModelStore(subCtx, js)
	if err != nil {
		c.rollbackStart(cancel)
		return fmt.Errorf("create model store: %w", err)
	}
	c.modelStore = modelStore

	submissionSubject := SubjectModelSubmitted
	if c.config.Ports != nil && len(c.config.Ports.Inputs) > 0 {
		submissionSubject = c.config.Ports.Inputs[0].Subject
	}

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       c.config.ConsumerName,
		FilterSubject: submissionSubject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       60 * time.Second,
		MaxDeliver:    3,
	}

	consumer, err := stream.CreateOrUpdateConsumer(subCtx, consumerConfig)
	if err != nil {
		c.rollbackStart(cancel)
		return fmt.Errorf("create consumer: %w", err)
	}
	c.consumer = consumer

	go c.consumeLoop(subCtx)

	c.logger.Info("model-ingester started",
		"stream", c.config.StreamName,
		"consumer", c.config.ConsumerName,
		"subject", submissionSubject)

	return nil
}

func (c *Component) rollbackStart(cancel context.CancelFunc) {
	c.mu.Lock()
	c.running = false
	c.cancel = nil
	c.mu.Unlock()
	cancel()
}

// consumeLoop fetches messages from the JetStream consumer in a tight loop
// until the context is cancelled.
func (c *Component) consumeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msgs, err := c.consumer.Fetch(1, jetstream.FetchMaxWait(5*time.Second))
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Debug("Fetch timeout or error", "error", err)
			continue
		}

		for msg := range msgs.Messages() {
			c.handleMessage(ctx, msg)
		}

		if msgs.Error() != nil && msgs.Error() != context.DeadlineExceeded {
			c.logger.Warn("Message fetch error", "error", msgs.Error())
		}
	}
}

// parseSubmission decodes a submission from raw ModelSubmission JSON or a
// BaseMessage-wrapped payload.
func parseSubmission(data []byte) (*ModelSubmission, error) {
	var sub ModelSubmission
	if err := json.Unmarshal(data, &sub); err == nil && sub.Name != "" {
		return &sub, nil
	}

	var baseMsg message.BaseMessage
	if err := json.Unmarshal(data, &baseMsg); err != nil {
		return nil, fmt.Errorf("parse submission: %w", err)
	}
	payloadBytes, err := json.Marshal(baseMsg.Payload())
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	if err := json.Unmarshal(payloadBytes, &sub); err != nil {
		return nil, fmt.Errorf("unmarshal submission: %w", err)
	}
	return &sub, nil
}

// decide runs the structural checks and governance validation for a
// submission. A build error means the submission is structurally broken;
// it is terminal and distinct from a governance rejection.
func (c *Component) decide(sub *ModelSubmission) (*governance.Result, error) {
	store, err := sub.Model.BuildStore()
	if err != nil {
		return nil, err
	}

	cfg, err := c.config.GovernanceConfig()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := c.engine.Validate(store, cfg)
	if err != nil {
		return nil, err
	}
	observability.RecordValidation(string(cfg.Mode), string(result.Status), time.Since(start))
	if result.RuleID != "" {
		observability.RecordViolations(result.RuleID, len(result.Findings()))
	}
	return result, nil
}

// handleMessage processes a single ModelSubmission message. Structural
// failures and invalid payloads are terminal (Ack + rejected event);
// persistence and publish failures are transient (Nak for redelivery).
func (c *Component) handleMessage(ctx context.Context, msg jetstream.Msg) {
	c.submissionsProcessed.Add(1)
	c.updateLastActivity()

	sub, err := parseSubmission(msg.Data())
	if err != nil {
		c.errorsCount.Add(1)
		c.logger.Error("Failed to parse submission", "error", err)
		if nakErr := msg.Nak(); nakErr != nil {
			c.logger.Warn("Failed to NAK message", "error", nakErr)
		}
		return
	}

	if err := sub.Validate(); err != nil {
		c.logger.Error("Invalid submission", "error", err)
		// ACK invalid messages: they will not succeed on retry.
		if ackErr := msg.Ack(); ackErr != nil {
			c.logger.Warn("Failed to ACK invalid message", "error", ackErr)
		}
		return
	}

	c.logger.Info("Processing model submission",
		"submission_id", sub.SubmissionID,
		"name", sub.Name,
		"objects", len(sub.Model.Objects))

	result, err := c.decide(sub)
	if err != nil {
		// Structurally broken submissions cannot succeed on retry.
		c.errorsCount.Add(1)
		observability.RecordSubmission("error")
		c.logger.Warn("Submission failed structural checks",
			"submission_id", sub.SubmissionID,
			"name", sub.Name,
			"error", err)
		if pubErr := c.publishEvent(ctx, SubjectModelRejected, eventFromError(sub, err)); pubErr != nil {
			c.logger.Warn("Failed to publish rejected event", "error", pubErr)
		}
		if ackErr := msg.Ack(); ackErr != nil {
			c.logger.Warn("Failed to ACK message", "error", ackErr)
		}
		return
	}

	if !result.Accepted() {
		c.modelsRejected.Add(1)
		observability.RecordSubmission("rejected")
		if err := c.publishEvent(ctx, SubjectModelRejected, eventFromResult(sub, "", result)); err != nil {
			c.logger.Warn("Failed to publish rejected event",
				"submission_id", sub.SubmissionID, "error", err)
			if nakErr := msg.Nak(); nakErr != nil {
				c.logger.Warn("Failed to NAK message", "error", nakErr)
			}
			return
		}
		if ackErr := msg.Ack(); ackErr != nil {
			c.logger.Warn("Failed to ACK message", "error", ackErr)
		}
		c.logger.Info("Model rejected by governance",
			"submission_id", sub.SubmissionID,
			"name", sub.Name,
			"rule", result.RuleID)
		return
	}

	// Accepted: persist, publish graph entities, emit the event.
	record := &storage.ModelRecord{
		Name:        sub.Name,
		Description: sub.Description,
		SubmittedBy: sub.SubmittedBy,
		Document:    sub.Model,
	}
	if err := c.modelStore.SaveModel(ctx, record); err != nil {
		c.errorsCount.Add(1)
		c.logger.Error("Failed to persist model",
			"submission_id", sub.SubmissionID, "error", err)
		if nakErr := msg.Nak(); nakErr != nil {
			c.logger.Warn("Failed to NAK message", "error", nakErr)
		}
		return
	}

	if err := graph.PublishModel(ctx, c.natsClient, record); err != nil {
		c.errorsCount.Add(1)
		c.logger.Error("Failed to publish graph entities",
			"submission_id", sub.SubmissionID, "error", err)
		if nakErr := msg.Nak(); nakErr != nil {
			c.logger.Warn("Failed to NAK message", "error", nakErr)
		}
		return
	}

	if err := c.publishEvent(ctx, SubjectModelAccepted, eventFromResult(sub, record.ID, result)); err != nil {
		c.logger.Warn("Failed to publish accepted event",
			"submission_id", sub.SubmissionID, "error", err)
		if nakErr := msg.Nak(); nakErr != nil {
			c.logger.Warn("Failed to NAK message", "error", nakErr)
		}
		return
	}

	c.modelsAccepted.Add(1)
	observability.RecordSubmission("accepted")

	if ackErr := msg.Ack(); ackErr != nil {
		c.logger.Warn("Failed to ACK message", "error", ackErr)
	}

	c.logger.Info("Model accepted and persisted",
		"submission_id", sub.SubmissionID,
		"model_id", record.ID,
		"name", sub.Name,
		"advisories", len(result.Advisories))
}

// publishEvent publishes a pipeline event to JetStream.
func (c *Component) publishEvent(ctx context.Context, subject string, event *ModelEvent) error {
	baseMsg := message.NewBaseMessage(event.Schema(), event, "model-ingester")

	data, err := json.Marshal(baseMsg)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	js, err := c.natsClient.JetStream()
	if err != nil {
		return fmt.Errorf("get jetstream: %w", err)
	}

	if _, err := js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Stop gracefully stops the component.
func (c *Component) Stop(_ time.Duration) error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}

	cancel := c.cancel
	c.running = false
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	c.logger.Info("model-ingester stopped",
		"submissions_processed", c.submissionsProcessed.Load(),
		"models_accepted", c.modelsAccepted.Load(),
		"models_rejected", c.modelsRejected.Load(),
		"errors", c.errorsCount.Load())

	return nil
}

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        "model-ingester",
		Type:        "processor",
		Description: "Governance-gated persistence pipeline for submitted architecture models",
		Version:     "1.0.0",
	}
}

// InputPorts returns the configured input port definitions.
func (c *Component) InputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}
	ports := make([]component.Port, len(c.config.Ports.Inputs))
	for i, def := range c.config.Ports.Inputs {
		ports[i] = buildPort(def, component.DirectionInput)
	}
	return ports
}

// OutputPorts returns the configured output port definitions.
func (c *Component) OutputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}
	ports := make([]component.Port, len(c.config.Ports.Outputs))
	for i, def := range c.config.Ports.Outputs {
		ports[i] = buildPort(def, component.DirectionOutput)
	}
	return ports
}

// buildPort creates a component.Port from a PortDefinition, using JetStreamPort
// for jetstream-type ports and NATSPort for core NATS ports.
func buildPort(def component.PortDefinition, direction component.Direction) component.Port {
	port := component.Port{
		Name:        def.Name,
		Direction:   direction,
		Required:    def.Required,
		Description: def.Description,
	}
	if def.Type == "jetstream" {
		port.Config = component.JetStreamPort{
			StreamName: def.StreamName,
			Subjects:   []string{def.Subject},
		}
	} else {
		port.Config = component.NATSPort{
			Subject: def.Subject,
		}
	}
	return port
}

// ConfigSchema returns the configuration schema.
func (c *Component) ConfigSchema() component.ConfigSchema {
	return modelIngesterSchema
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
