package modelingester

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

// Subjects for the model submission pipeline.
const (
	// SubjectModelSubmitted carries incoming model submissions.
	SubjectModelSubmitted = "eam.model.submitted"

	// SubjectModelAccepted carries accepted-model events.
	SubjectModelAccepted = "eam.model.accepted"

	// SubjectModelRejected carries rejected-model events, including
	// submissions that failed structural checks.
	SubjectModelRejected = "eam.model.rejected"
)

// ModelSubmission is a model submitted for governance-gated persistence.
type ModelSubmission struct {
	// SubmissionID correlates pipeline events with the submission.
	SubmissionID string `json:"submission_id,omitempty"`

	// Name is the model name; it determines the storage key.
	Name string `json:"name"`

	// Description is an optional model description.
	Description string `json:"description,omitempty"`

	// SubmittedBy identifies the submitting principal.
	SubmittedBy string `json:"submitted_by,omitempty"`

	// Model is the architecture model document.
	Model repository.ModelDocument `json:"model"`
}

// ModelEvent reports the outcome of a model submission.
type ModelEvent struct {
	// SubmissionID echoes the submission correlation id.
	SubmissionID string `json:"submission_id,omitempty"`

	// ModelID is the storage id of a persisted model.
	ModelID string `json:"model_id,omitempty"`

	// Name is the submitted model name.
	Name string `json:"name"`

	// Status is accepted, rejected, or error.
	Status string `json:"status"`

	// RuleID identifies the deciding governance rule when findings exist.
	RuleID string `json:"rule_id,omitempty"`

	// Highlights are the blocking findings of a rejected model.
	Highlights []string `json:"highlights,omitempty"`

	// Advisories are non-blocking findings under advisory mode.
	Advisories []string `json:"advisories,omitempty"`

	// Feedback is the formatted findings report.
	Feedback string `json:"feedback,omitempty"`

	// Error is set when the submission failed structural checks.
	Error string `json:"error,omitempty"`

	// Timestamp is when the pipeline decided the submission.
	Timestamp time.Time `json:"timestamp"`
}

// eventFromResult builds the pipeline event for a governance result.
func eventFromResult(sub *ModelSubmission, modelID string, result *governance.Result) *ModelEvent {
	return &ModelEvent{
		SubmissionID: sub.SubmissionID,
		ModelID:      modelID,
		Name:         sub.Name,
		Status:       string(result.Status),
		RuleID:       result.RuleID,
		Highlights:   result.Highlights,
		Advisories:   result.Advisories,
		Feedback:     result.FormatFeedback(),
		Timestamp:    time.Now(),
	}
}

// eventFromError builds the pipeline event for a structural failure.
func eventFromError(sub *ModelSubmission, err error) *ModelEvent {
	return &ModelEvent{
		SubmissionID: sub.SubmissionID,
		Name:         sub.Name,
		Status:       "error",
		Error:        err.Error(),
		Timestamp:    time.Now(),
	}
}

// Schema returns the message type for ModelSubmission.
func (p *ModelSubmission) Schema() message.Type {
	return ModelSubmissionType
}

// Validate validates the ModelSubmission.
func (p *ModelSubmission) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("model name is required")
	}
	return nil
}

// MarshalJSON marshals the ModelSubmission to JSON.
func (p *ModelSubmission) MarshalJSON() ([]byte, error) {
	type Alias ModelSubmission
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON unmarshals the ModelSubmission from JSON.
func (p *ModelSubmission) UnmarshalJSON(data []byte) error {
	type Alias ModelSubmission
	return json.Unmarshal(data, (*Alias)(p))
}

// Schema returns the message type for ModelEvent.
func (p *ModelEvent) Schema() message.Type {
	return ModelEventType
}

// Validate validates the ModelEvent.
func (p *ModelEvent) Validate() error {
	if p.Status == "" {
		return fmt.Errorf("status is required")
	}
	return nil
}

// MarshalJSON marshals the ModelEvent to JSON.
func (p *ModelEvent) MarshalJSON() ([]byte, error) {
	type Alias ModelEvent
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON unmarshals the ModelEvent from JSON.
func (p *ModelEvent) UnmarshalJSON(data []byte) error {
	type Alias ModelEvent
	return json.Unmarshal(data, (*Alias)(p))
}

// ModelSubmissionType is the message type for model submissions.
var ModelSubmissionType = message.Type{
	Domain:   "eam",
	Category: "model-submission",
	Version:  "v1",
}

// ModelEventType is the message type for pipeline events.
var ModelEventType = message.Type{
	Domain:   "eam",
	Category: "model-event",
	Version:  "v1",
}

func init() {
	if err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "eam",
		Category:    "model-submission",
		Version:     "v1",
		Description: "Architecture model submission",
		Factory:     func() any { return &ModelSubmission{} },
	}); err != nil {
		log.Printf("ERROR: failed to register ModelSubmission: %v", err)
	}

	if err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "eam",
		Category:    "model-event",
		Version:     "v1",
		Description: "Model submission pipeline event",
		Factory:     func() any { return &ModelEvent{} },
	}); err != nil {
		log.Printf("ERROR: failed to register ModelEvent: %v", err)
	}
}
