package governancevalidator

import (
	"fmt"
	"reflect"
	"time"

	"github.com/c360studio/semarch/governance"
	"github.com/c360studio/semstreams/component"
)

// governanceValidatorSchema defines the configuration schema.
var governanceValidatorSchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// Config holds configuration for the governance-validator processor.
type Config struct {
	Ports       *component.PortConfig `json:"ports" schema:"type:ports,description:Port configuration,category:basic"`
	Mode        string                `json:"mode" schema:"type:string,description:Default governance mode (strict or advisory),category:basic,default:strict"`
	Coverage    string                `json:"coverage" schema:"type:string,description:Default lifecycle coverage (as-is / to-be / both),category:basic,default:both"`
	DeniedTerms []string              `json:"denied_terms" schema:"type:array,description:Override for the vocabulary denylist,category:advanced"`
	TimeoutSecs int                   `json:"timeout_secs" schema:"type:integer,description:Request timeout in seconds,category:basic,default:30"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.TimeoutSecs < 0 {
		return fmt.Errorf("timeout_secs must be non-negative")
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

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSecs) * time.Second
}

// GovernanceConfig builds the effective governance policy for a request,
// applying request-level mode/coverage overrides on top of the component
// defaults.
func (c *Config) GovernanceConfig(mode, coverage string) (governance.Config, error) {
	cfg := governance.DefaultConfig()

	if len(c.DeniedTerms) > 0 {
		cfg.Vocabulary.Terms = c.DeniedTerms
	}

	effMode := c.Mode
	if mode != "" {
		effMode = mode
	}
	if effMode != "" {
		m, err := governance.ParseMode(effMode)
		if err != nil {
			return governance.Config{}, err
		}
		cfg.Mode = m
	}

	effCoverage := c.Coverage
	if coverage != "" {
		effCoverage = coverage
	}
	if effCoverage != "" {
		cov, err := governance.ParseCoverage(effCoverage)
		if err != nil {
			return governance.Config{}, err
		}
		cfg.Coverage = cov
	}

	return cfg, nil
}

// DefaultConfig returns the default configuration for governance-validator.
func DefaultConfig() Config {
	return Config{
		Ports: &component.PortConfig{
			Inputs: []component.PortDefinition{
				{
					Name:        "validate_requests",
					Type:        "nats",
					Subject:     "eam.governance.validate",
					Required:    true,
					Description: "Governance validation request/reply subject",
				},
			},
			Outputs: []component.PortDefinition{
				{
					Name:        "validation_events",
					Type:        "nats",
					Subject:     "eam.governance.events",
					Required:    false,
					Description: "Governance validation event notifications",
				},
			},
		},
		Mode:        string(governance.ModeStrict),
		Coverage:    string(governance.CoverageBoth),
		TimeoutSecs: 30,
	}
}
