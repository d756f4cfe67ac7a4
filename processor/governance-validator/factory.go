package governancevalidator

import (
	"fmt"

	"github.com/c360studio/semstreams/component"
)

// RegistryInterface defines the minimal interface needed for registration.
type RegistryInterface interface {
	RegisterWithConfig(component.RegistrationConfig) error
}

// Register registers the governance-validator processor with the given registry.
func Register(registry RegistryInterface) error {
	if registry == nil {
		return fmt.Errorf("registry cannot be nil")
	}
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        "governance-validator",
		Factory:     NewComponent,
		Schema:      governanceValidatorSchema,
		Type:        "processor",
		Protocol:    "eam",
		Domain:      "governance",
		Description: "Request/reply service for validating architecture models against governance rules",
		Version:     "1.0.0",
	})
}
