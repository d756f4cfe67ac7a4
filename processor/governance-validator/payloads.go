package governancevalidator

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/c360studio/semarch/governance"
	"github.com/c360studio/semarch/repository"
	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

// ValidateRequest is the request payload for governance validation.
type ValidateRequest struct {
	// RequestID correlates the response with the request.
	RequestID string `json:"request_id,omitempty"`

	// ModelID looks up a persisted model by its store id.
	// Either ModelID or Model must be provided.
	ModelID string `json:"model_id,omitempty"`

	// Model is an inline model document to validate.
	// Either ModelID or Model must be provided.
	Model *repository.ModelDocument `json:"model,omitempty"`

	// Mode overrides the configured governance mode (strict, advisory).
	Mode string `json:"mode,omitempty"`

	// Coverage overrides the configured lifecycle coverage (as-is, to-be, both).
	Coverage string `json:"coverage,omitempty"`
}

// ValidateResponse is the response payload for governance validation.
type ValidateResponse struct {
	// RequestID echoes the request correlation id.
	RequestID string `json:"request_id,omitempty"`

	// Accepted indicates whether the model passed governance.
	Accepted bool `json:"accepted"`

	// Status is accepted, rejected, or error.
	Status string `json:"status"`

	// Mode is the governance mode the validation ran under.
	Mode string `json:"mode,omitempty"`

	// RuleID identifies the deciding rule when findings exist.
	RuleID string `json:"rule_id,omitempty"`

	// Highlights are the blocking findings of a rejected model.
	Highlights []string `json:"highlights,omitempty"`

	// Advisories are non-blocking findings under advisory mode.
	Advisories []string `json:"advisories,omitempty"`

	// Feedback is the formatted findings report for display or retry prompts.
	Feedback string `json:"feedback,omitempty"`

	// Error is set if validation could not be performed.
	Error string `json:"error,omitempty"`

	// Timestamp is when the validation completed.
	Timestamp time.Time `json:"timestamp"`
}

// FromResult converts a governance.Result to a ValidateResponse.
func FromResult(requestID string, result *governance.Result) *ValidateResponse {
	return &ValidateResponse{
		RequestID:  requestID,
		Accepted:   result.Accepted(),
		Status:     string(result.Status),
		Mode:       string(result.Mode),
		RuleID:     result.RuleID,
		Highlights: result.Highlights,
		Advisories: result.Advisories,
		Feedback:   result.FormatFeedback(),
		Timestamp:  time.Now(),
	}
}

// Schema returns the message type for ValidateRequest.
func (p *ValidateRequest) Schema() message.Type {
	return ValidateRequestType
}

// Validate validates the ValidateRequest.
func (p *ValidateRequest) Validate() error {
	if p.ModelID == "" && p.Model == nil {
		return fmt.Errorf("either model_id or model is required")
	}
	return nil
}

// MarshalJSON marshals the ValidateRequest to JSON.
func (p *ValidateRequest) MarshalJSON() ([]byte, error) {
	type Alias ValidateRequest
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON unmarshals the ValidateRequest from JSON.
func (p *ValidateRequest) UnmarshalJSON(data []byte) error {
	type Alias ValidateRequest
	return json.Unmarshal(data, (*Alias)(p))
}

// Schema returns the message type for ValidateResponse.
func (p *ValidateResponse) Schema() message.Type {
	return ValidateResponseType
}

// Validate validates the ValidateResponse.
func (p *ValidateResponse) Validate() error {
	return nil
}

// MarshalJSON marshals the ValidateResponse to JSON.
func (p *ValidateResponse) MarshalJSON() ([]byte, error) {
	type Alias ValidateResponse
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON unmarshals the ValidateResponse from JSON.
func (p *ValidateResponse) UnmarshalJSON(data []byte) error {
	type Alias ValidateResponse
	return json.Unmarshal(data, (*Alias)(p))
}

// ValidateRequestType is the message type for validation requests.
var ValidateRequestType = message.Type{
	Domain:   "eam",
	Category: "validate-request",
	Version:  "v1",
}

// ValidateResponseType is the message type for validation responses.
var ValidateResponseType = message.Type{
	Domain:   "eam",
	Category: "validate-response",
	Version:  "v1",
}

func init() {
	if err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "eam",
		Category:    "validate-request",
		Version:     "v1",
		Description: "Governance validation request",
		Factory:     func() any { return &ValidateRequest{} },
	}); err != nil {
		log.Printf("ERROR: failed to register ValidateRequest: %v", err)
	}

	if err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "eam",
		Category:    "validate-response",
		Version:     "v1",
		Description: "Governance validation response",
		Factory:     func() any { return &ValidateResponse{} },
	}); err != nil {
		log.Printf("ERROR: failed to register ValidateResponse: %v", err)
	}
}
