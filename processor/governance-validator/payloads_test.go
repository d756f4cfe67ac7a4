package governancevalidator

import (
	"encoding/json"
	"testing"

	"github.com/c360studio/semarch/governance"
	"github.com/c360studio/semarch/repository"
	"github.com/c360studio/semarch/vocabulary/eam"
)

// TestValidateRequest_Validate verifies the request validation logic.
func TestValidateRequest_Validate(t *testing.T) {
	// Neither model_id nor model → error.
	req := &ValidateRequest{}
	if err := req.Validate(); err == nil {
		t.Error("expected error for empty request")
	}

	// Model id alone → ok.
	req.ModelID = "claims-landscape"
	if err := req.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// Inline model alone → ok.
	req = &ValidateRequest{Model: &repository.ModelDocument{}}
	if err := req.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestValidateRequest_RoundTrip verifies inline models survive JSON.
func TestValidateRequest_RoundTrip(t *testing.T) {
	req := &ValidateRequest{
		RequestID: "req-1",
		Mode:      "advisory",
		Coverage:  "as-is",
		Model: &repository.ModelDocument{
			Objects: []repository.Object{
				{ID: "cap-1", Type: eam.TypeCapability, Attributes: repository.AttributeSet{Name: "Claims Handling"}},
			},
		},
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	var decoded ValidateRequest
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal request: %v", err)
	}

	if decoded.RequestID != "req-1" {
		t.Errorf("expected RequestID=req-1, got %q", decoded.RequestID)
	}
	if decoded.Mode != "advisory" {
		t.Errorf("expected Mode=advisory, got %q", decoded.Mode)
	}
	if decoded.Model == nil || len(decoded.Model.Objects) != 1 {
		t.Fatalf("expected 1 inline object, got %+v", decoded.Model)
	}
	if decoded.Model.Objects[0].Attributes.Name != "Claims Handling" {
		t.Errorf("expected object name preserved, got %q", decoded.Model.Objects[0].Attributes.Name)
	}
}

// TestFromResult verifies the result conversion for both outcomes.
func TestFromResult(t *testing.T) {
	rejected := &governance.Result{
		Status:     governance.StatusRejected,
		Mode:       governance.ModeStrict,
		RuleID:     "vocabulary",
		Highlights: []string{"Capability 'API Enablement' uses a technical term: 'API'"},
	}

	resp := FromResult("req-7", rejected)
	if resp.Accepted {
		t.Error("expected Accepted=false for rejected result")
	}
	if resp.Status != "rejected" {
		t.Errorf("expected Status=rejected, got %q", resp.Status)
	}
	if resp.RuleID != "vocabulary" {
		t.Errorf("expected RuleID=vocabulary, got %q", resp.RuleID)
	}
	if resp.RequestID != "req-7" {
		t.Errorf("expected RequestID echoed, got %q", resp.RequestID)
	}
	if len(resp.Highlights) != 1 {
		t.Fatalf("expected 1 highlight, got %d", len(resp.Highlights))
	}
	if resp.Feedback == "" {
		t.Error("expected formatted feedback for rejected result")
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected Timestamp set")
	}

	accepted := &governance.Result{Status: governance.StatusAccepted, Mode: governance.ModeStrict}
	resp = FromResult("req-8", accepted)
	if !resp.Accepted {
		t.Error("expected Accepted=true for accepted result")
	}
	if resp.Feedback != "" {
		t.Errorf("expected empty feedback for clean accept, got %q", resp.Feedback)
	}
}

// TestValidateRequest_Schema verifies the request schema matches registration.
func TestValidateRequest_Schema(t *testing.T) {
	req := &ValidateRequest{ModelID: "m-1"}
	schema := req.Schema()
	if schema.Domain != "eam" {
		t.Errorf("expected Domain=eam, got %q", schema.Domain)
	}
	if schema.Category != "validate-request" {
		t.Errorf("expected Category=validate-request, got %q", schema.Category)
	}
	if schema.Version != "v1" {
		t.Errorf("expected Version=v1, got %q", schema.Version)
	}
}

// TestValidateResponse_Schema verifies the response schema matches registration.
func TestValidateResponse_Schema(t *testing.T) {
	resp := &ValidateResponse{Status: "accepted"}
	schema := resp.Schema()
	if schema.Domain != "eam" {
		t.Errorf("expected Domain=eam, got %q", schema.Domain)
	}
	if schema.Category != "validate-response" {
		t.Errorf("expected Category=validate-response, got %q", schema.Category)
	}
}
