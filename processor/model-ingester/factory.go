package modelingester

import (
	"fmt"

	"github.com/c360studio/semstreams/component"
)

// RegistryInterface defines the minimal interface needed for registration.
type RegistryInterface interface {
	RegisterWithConfig(component.RegistrationConfig) error
}

// Register registers the model-ingester processor with the given registry.
func Register(registry RegistryInterface) error {
	if registry == nil {
		return fmt.Errorf("registry cannot be nil")
	}
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        "model-ingester",
		Factory:     NewComponent,
		Schema:      modelIngesterSchema,
		Type:        "processor",
		Protocol:    "eam",
		Domain:      "governance",
		Description: "Governance-gated persistence pipeline for submitted architecture models",
		Version:     "1.0.0",
	})
}
