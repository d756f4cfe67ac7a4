// Package graphexport provides a streaming output component that follows
// the knowledge graph ingest stream and serializes each entity to RDF.
//
// Entities arrive on graph.ingest.entity either as raw ingest messages,
// the format the model pipeline publishes, or as enveloped payloads from
// other platform components. Ontology alignment happens at ingest time,
// so the serializer renders triples exactly as they arrive.
package graphexport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360studio/semarch/graph"
	"github.com/c360studio/semstreams/component"
	ssgraph "github.com/c360studio/semstreams/graph"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
	ssexport "github.com/c360studio/semstreams/vocabulary/export"
	"github.com/nats-io/nats.go/jetstream"
)

// Component implements the graph-export output processor.
type Component struct {
	name       string
	config     Config
	natsClient *natsclient.Client
	logger     *slog.Logger

	format  ssexport.Format
	baseIRI string

	// Resolved subjects from port config
	inputSubject  string
	inputStream   string
	outputSubject string

	// Lifecycle
	running   bool
	startTime time.Time
	mu        sync.RWMutex
	cancel    context.CancelFunc

	// Metrics
	entitiesExported atomic.Int64
	serializeErrors  atomic.Int64
	publishErrors    atomic.Int64
	lastActivityMu   sync.RWMutex
	lastActivity     time.Time
}

// NewComponent creates a new graph-export output component.
func NewComponent(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	var config Config
	if err := json.Unmarshal(rawConfig, &config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if config.Ports == nil {
		config = DefaultConfig()
		if err := json.Unmarshal(rawConfig, &config); err != nil {
			return nil, fmt.Errorf("unmarshal config with defaults: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Resolve subjects from port definitions
	inputSubject := graph.GraphIngestSubject
	inputStream := "GRAPH"
	outputSubject := "graph.export.rdf"

	if config.Ports != nil {
		if len(config.Ports.Inputs) > 0 {
			inputSubject = config.Ports.Inputs[0].Subject
			inputStream = config.Ports.Inputs[0].StreamName
		}
		if len(config.Ports.Outputs) > 0 {
			outputSubject = config.Ports.Outputs[0].Subject
		}
	}

	return &Component{
		name:          "graph-export",
		config:        config,
		natsClient:    deps.NATSClient,
		logger:        deps.GetLogger(),
		format:        config.GetFormat(),
		baseIRI:       config.GetBaseIRI(),
		inputSubject:  inputSubject,
		inputStream:   inputStream,
		outputSubject: outputSubject,
	}, nil
}

// Initialize prepares the component.
func (c *Component) Initialize() error {
	return nil
}

// Start begins consuming entity ingest messages and producing RDF output.
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

	// Set running state while holding lock to prevent race condition
	c.running = true
	c.startTime = time.Now()

	consumeCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	consumerCfg := natsclient.StreamConsumerConfig{
		StreamName:    c.inputStream,
		ConsumerName:  "graph-export",
		FilterSubject: c.inputSubject,
		DeliverPolicy: "new",
		AckPolicy:     "explicit",
		MaxDeliver:    3,
		AckWait:       10 * time.Second,
	}

	err := c.natsClient.ConsumeStreamWithConfig(consumeCtx, consumerCfg, c.handleMessage)
	if err != nil {
		// Rollback running state on failure
		c.mu.Lock()
		c.running = false
		c.cancel = nil
		c.mu.Unlock()
		cancel()
		return fmt.Errorf("start consumer: %w", err)
	}

	c.logger.Info("graph-export started",
		"format", c.config.FormatName(),
		"input", c.inputSubject,
		"output", c.outputSubject)

	return nil
}

// parseEntity decodes an entity from either wire format: the raw ingest
// message the model pipeline publishes, or an enveloped payload carrying
// graph triples.
func (c *Component) parseEntity(data []byte) (string, []message.Triple, error) {
	var ingest graph.EntityIngestMessage
	if err := json.Unmarshal(data, &ingest); err == nil && ingest.ID != "" && len(ingest.Triples) > 0 {
		return ingest.ID, ingest.Triples, nil
	}

	var baseMsg message.BaseMessage
	if err := json.Unmarshal(data, &baseMsg); err != nil {
		return "", nil, fmt.Errorf("unmarshal entity message: %w", err)
	}

	graphable, ok := baseMsg.Payload().(ssgraph.Graphable)
	if !ok {
		return "", nil, fmt.Errorf("payload %s does not carry graph triples", baseMsg.Type())
	}

	return graphable.EntityID(), graphable.Triples(), nil
}

// handleMessage serializes a single entity to RDF and publishes the
// rendition.
func (c *Component) handleMessage(ctx context.Context, msg jetstream.Msg) {
	entityID, triples, err := c.parseEntity(msg.Data())
	if err != nil {
		c.logger.Warn("Failed to parse entity message",
			"error", err,
			"subject", msg.Subject())
		_ = msg.Nak()
		return
	}

	output, err := ssexport.SerializeToString(triples, c.format,
		ssexport.WithBaseIRI(c.baseIRI))
	if err != nil {
		c.logger.Warn("Failed to serialize RDF",
			"entity_id", entityID,
			"format", c.config.FormatName(),
			"error", err)
		c.serializeErrors.Add(1)
		_ = msg.Nak()
		return
	}

	if err := c.publishRendition(ctx, entityID, output); err != nil {
		c.logger.Warn("Failed to publish RDF rendition",
			"entity_id", entityID,
			"subject", c.outputSubject,
			"error", err)
		c.publishErrors.Add(1)
		_ = msg.Nak()
		return
	}

	_ = msg.Ack()
	c.entitiesExported.Add(1)
	c.updateLastActivity()

	c.logger.Debug("Exported entity to RDF",
		"entity_id", entityID,
		"format", c.config.FormatName(),
		"output_bytes", len(output))
}

// publishRendition wraps the rendered RDF in an export payload and
// publishes it durably.
func (c *Component) publishRendition(ctx context.Context, entityID, content string) error {
	payload := &Payload{
		EntityID: entityID,
		Format:   c.config.FormatName(),
		Content:  content,
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("build export payload: %w", err)
	}

	baseMsg := message.NewBaseMessage(payload.Schema(), payload, "graph-export")
	data, err := json.Marshal(baseMsg)
	if err != nil {
		return fmt.Errorf("marshal export payload: %w", err)
	}

	js, err := c.natsClient.JetStream()
	if err != nil {
		return fmt.Errorf("get jetstream: %w", err)
	}
	if _, err := js.Publish(ctx, c.outputSubject, data); err != nil {
		return err
	}
	return nil
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
	c.logger.Info("graph-export stopped",
		"entities_exported", c.entitiesExported.Load(),
		"serialize_errors", c.serializeErrors.Load(),
		"publish_errors", c.publishErrors.Load())

	return nil
}

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        "graph-export",
		Type:        "output",
		Description: "Serializes knowledge graph entities to RDF formats (Turtle, N-Triples, JSON-LD)",
		Version:     "1.0.0",
	}
}

// InputPorts returns configured input port definitions.
func (c *Component) InputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Inputs))
	for i, portDef := range c.config.Ports.Inputs {
		ports[i] = buildPort(portDef, component.DirectionInput)
	}
	return ports
}

// OutputPorts returns configured output port definitions.
func (c *Component) OutputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Outputs))
	for i, portDef := range c.config.Ports.Outputs {
		ports[i] = buildPort(portDef, component.DirectionOutput)
	}
	return ports
}

// buildPort creates a component.Port from a PortDefinition, using JetStreamPort
// for jetstream-type ports and NATSPort for core NATS ports.
func buildPort(portDef component.PortDefinition, direction component.Direction) component.Port {
	port := component.Port{
		Name:        portDef.Name,
		Direction:   direction,
		Required:    portDef.Required,
		Description: portDef.Description,
	}
	if portDef.Type == "jetstream" {
		port.Config = component.JetStreamPort{
			StreamName: portDef.StreamName,
			Subjects:   []string{portDef.Subject},
		}
	} else {
		port.Config = component.NATSPort{
			Subject: portDef.Subject,
		}
	}
	return port
}

// ConfigSchema returns the configuration schema.
func (c *Component) ConfigSchema() component.ConfigSchema {
	return graphExportSchema
}

// Health returns the current health status.
func (c *Component) Health() component.HealthStatus {
	c.mu.RLock()
	running := c.running
	startTime := c.startTime
	c.mu.RUnlock()

	errorCount := int(c.serializeErrors.Load() + c.publishErrors.Load())

	status := "stopped"
	if running {
		status = "running"
	}

	return component.HealthStatus{
		Healthy:    running,
		LastCheck:  time.Now(),
		ErrorCount: errorCount,
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
