package modelingester

import (
	"fmt"
	"reflect"

	"github.com/c360studio/semarch/governance"
	"github.com/c360studio/semstreams/component"
)

// modelIngesterSchema defines the configuration schema.
var modelIngesterSchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// Config holds configuration for the model-ingester processor.
type Config struct {
	// StreamName is the JetStream stream carrying model submissions.
	StreamName string `json:"stream_name" schema:"type:string,description:JetStream stream carrying model submissions,category:basic,default:EAM"`

	// ConsumerName is the durable consumer name for submission consumption.
	ConsumerName string `json:"consumer_name" schema:"type:string,description:Durable consumer name for submission consumption,category:basic,default:model-ingester"`

	// Mode is the governance mode applied to submissions.
	Mode string `json:"mode" schema:"type:string,description:Governance mode (strict or advisory),category:basic,default:strict"`

	// Coverage is the lifecycle coverage applied to submissions.
	Coverage string `json:"coverage" schema:"type:string,description:Lifecycle coverage (as-is / to-be / both),category:basic,default:both"`

	// DeniedTerms overrides the vocabulary denylist.
	DeniedTerms []string `json:"denied_terms" schema:"type:array,description:Override for the vocabulary denylist,category:advanced"`

	// Ports contains input/output port definitions.
	Ports *component.PortConfig `json:"ports,omitempty" schema:"type:ports,description:Input/output port definitions,category:basic"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.StreamName == "" {
		return fmt.Errorf("stream_name is required")
	}
	if c.ConsumerName == "" {
		return fmt.Errorf("consumer_name is required")
	}
	if c.Mode != "" {
		if _, err := governance.ParseMode(c.Mode); err != nil {
			return err
		}
	}
	if c.Coverage != "" {
		if _, err := governance.ParseCoverage(c.Coverage); err != nil {
			return err
		}
	}
	return nil
}

// GovernanceConfig builds the governance policy submissions are validated
// under.
func (c *Config) GovernanceConfig() (governance.Config, error) {
	cfg := governance.DefaultConfig()

	if len(c.DeniedTerms) > 0 {
		cfg.Vocabulary.Terms = c.DeniedTerms
	}
	if c.Mode != "" {
		m, err := governance.ParseMode(c.Mode)
		if err != nil {
			return governance.Config{}, err
		}
		cfg.Mode = m
	}
	if c.Coverage != "" {
		cov, err := governance.ParseCoverage(c.Coverage)
		if err != nil {
			return governance.Config{}, err
		}
		cfg.Coverage = cov
	}

	return cfg, nil
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		StreamName:   "EAM",
		ConsumerName: "model-ingester",
		Mode:         string(governance.ModeStrict),
		Coverage:     string(governance.CoverageBoth),
		Ports: &component.PortConfig{
			Inputs: []component.PortDefinition{
				{
					Name:        "model-submissions",
					Type:        "jetstream",
					Subject:     SubjectModelSubmitted,
					StreamName:  "EAM",
					Description: "Receive model submissions",
					Required:    true,
				},
			},
			Outputs: []component.PortDefinition{
				{
					Name:        "model-events",
					Type:        "nats",
					Subject:     "eam.model.>",
					Description: "Publish submission pipeline events",
					Required:    false,
				},
			},
		},
	}
}
