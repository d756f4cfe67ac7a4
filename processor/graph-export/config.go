package graphexport

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/c360studio/semstreams/component"
	ssexport "github.com/c360studio/semstreams/vocabulary/export"
)

// graphExportSchema defines the configuration schema.
var graphExportSchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// Config holds configuration for the graph-export output component.
type Config struct {
	Ports   *component.PortConfig `json:"ports" schema:"type:ports,description:Port configuration,category:basic"`
	Format  string                `json:"format" schema:"type:string,description:RDF serialization format (turtle/ntriples/jsonld),category:basic,default:turtle"`
	BaseIRI string                `json:"base_iri" schema:"type:string,description:Base IRI for entity URIs,category:basic,default:https://semarch.dev"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Format != "" {
		switch strings.ToLower(c.Format) {
		case "turtle", "ntriples", "jsonld":
			// valid
		default:
			return fmt.Errorf("unsupported format: %s (valid: turtle, ntriples, jsonld)", c.Format)
		}
	}
	return nil
}

// GetFormat returns the configured ssexport.Format.
func (c *Config) GetFormat() ssexport.Format {
	switch strings.ToLower(c.Format) {
	case "ntriples":
		return ssexport.NTriples
	case "jsonld":
		return ssexport.JSONLD
	default:
		return ssexport.Turtle
	}
}

// FormatName returns the canonical format name carried in export
// payloads.
func (c *Config) FormatName() string {
	switch strings.ToLower(c.Format) {
	case "ntriples":
		return "ntriples"
	case "jsonld":
		return "jsonld"
	default:
		return "turtle"
	}
}

// GetBaseIRI returns the configured base IRI with a default fallback.
func (c *Config) GetBaseIRI() string {
	if c.BaseIRI != "" {
		return c.BaseIRI
	}
	return "https://semarch.dev"
}

// DefaultConfig returns the default configuration for graph-export.
func DefaultConfig() Config {
	return Config{
		Ports: &component.PortConfig{
			Inputs: []component.PortDefinition{
				{
					Name:        "entities_in",
					Type:        "jetstream",
					Subject:     "graph.ingest.entity",
					StreamName:  "GRAPH",
					Required:    true,
					Description: "Entity ingest messages from the model pipeline",
				},
			},
			Outputs: []component.PortDefinition{
				{
					Name:        "rdf_out",
					Type:        "jetstream",
					Subject:     "graph.export.rdf",
					Required:    true,
					Description: "Serialized RDF renditions for downstream consumers",
				},
			},
		},
		Format:  "turtle",
		BaseIRI: "https://semarch.dev",
	}
}
