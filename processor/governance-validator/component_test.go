package governancevalidator

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/c360studio/semarch/repository"
	"github.com/c360studio/semarch/vocabulary/eam"
	"github.com/c360studio/semstreams/component"
)

func newTestComponent(t *testing.T, rawConfig string) *Component {
	t.Helper()
	deps := component.Dependencies{
		Logger: slog.Default(),
	}
	comp, err := NewComponent(json.RawMessage(rawConfig), deps)
	if err != nil {
		t.Fatalf("NewComponent() error = %v", err)
	}
	c, ok := comp.(*Component)
	if !ok {
		t.Fatalf("NewComponent() returned %T, want *Component", comp)
	}
	return c
}

// handle runs a request through the component and decodes the response.
func handle(t *testing.T, c *Component, req *ValidateRequest) *ValidateResponse {
	t.Helper()
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	respData, err := c.handleRequest(context.Background(), data)
	if err != nil {
		t.Fatalf("handleRequest() error = %v", err)
	}
	var resp ValidateResponse
	if err := json.Unmarshal(respData, &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return &resp
}

func cleanModel() *repository.ModelDocument {
	return &repository.ModelDocument{
		Model: repository.ModelInfo{Name: "Claims Landscape"},
		Objects: []repository.Object{
			{ID: "ent-1", Type: eam.TypeEnterprise, Attributes: repository.AttributeSet{Name: "Acme Insurance"}},
			{ID: "cap-1", Type: eam.TypeCapability, Attributes: repository.AttributeSet{Name: "Claims Handling", OwnerID: "ent-1"}},
		},
	}
}

func TestNewComponent_DefaultsApplied(t *testing.T) {
	c := newTestComponent(t, `{}`)

	if c.config.Mode != "strict" {
		t.Errorf("expected default mode strict, got %q", c.config.Mode)
	}
	if c.config.Coverage != "both" {
		t.Errorf("expected default coverage both, got %q", c.config.Coverage)
	}
	if c.requestSubject != "eam.governance.validate" {
		t.Errorf("expected default request subject, got %q", c.requestSubject)
	}
	if c.config.TimeoutSecs != 30 {
		t.Errorf("expected default timeout 30, got %d", c.config.TimeoutSecs)
	}
}

func TestNewComponent_InvalidJSON(t *testing.T) {
	deps := component.Dependencies{Logger: slog.Default()}
	if _, err := NewComponent(json.RawMessage(`{invalid`), deps); err == nil {
		t.Error("expected error for invalid JSON config")
	}
}

func TestNewComponent_UnknownMode(t *testing.T) {
	deps := component.Dependencies{Logger: slog.Default()}
	if _, err := NewComponent(json.RawMessage(`{"mode":"lenient"}`), deps); err == nil {
		t.Error("expected error for unknown governance mode")
	}
}

func TestHandleRequest_InlineModelAccepted(t *testing.T) {
	c := newTestComponent(t, `{}`)

	resp := handle(t, c, &ValidateRequest{RequestID: "req-1", Model: cleanModel()})

	if !resp.Accepted {
		t.Fatalf("expected accepted, got %+v", resp)
	}
	if resp.Status != "accepted" {
		t.Errorf("expected status accepted, got %q", resp.Status)
	}
	if resp.RuleID != "" {
		t.Errorf("expected no deciding rule, got %q", resp.RuleID)
	}
	if resp.RequestID != "req-1" {
		t.Errorf("expected request id echoed, got %q", resp.RequestID)
	}
}

func TestHandleRequest_InlineModelRejected(t *testing.T) {
	c := newTestComponent(t, `{}`)

	doc := cleanModel()
	doc.Objects = append(doc.Objects, repository.Object{
		ID:         "cap-2",
		Type:       eam.TypeCapability,
		Attributes: repository.AttributeSet{Name: "API Enablement", OwnerID: "ent-1"},
	})

	resp := handle(t, c, &ValidateRequest{RequestID: "req-2", Model: doc})

	if resp.Accepted {
		t.Fatalf("expected rejection, got %+v", resp)
	}
	if resp.Status != "rejected" {
		t.Errorf("expected status rejected, got %q", resp.Status)
	}
	if resp.RuleID != "vocabulary" {
		t.Errorf("expected vocabulary rule, got %q", resp.RuleID)
	}
	want := "Capability 'API Enablement' uses a technical term: 'API'"
	if len(resp.Highlights) != 1 || resp.Highlights[0] != want {
		t.Errorf("expected highlight %q, got %v", want, resp.Highlights)
	}
	if !strings.Contains(resp.Feedback, "Governance Failed") {
		t.Errorf("expected feedback report, got %q", resp.Feedback)
	}
}

func TestHandleRequest_AdvisoryOverride(t *testing.T) {
	c := newTestComponent(t, `{}`)

	doc := cleanModel()
	doc.Objects = append(doc.Objects, repository.Object{
		ID:         "cap-2",
		Type:       eam.TypeCapability,
		Attributes: repository.AttributeSet{Name: "API Enablement", OwnerID: "ent-1"},
	})

	resp := handle(t, c, &ValidateRequest{RequestID: "req-3", Model: doc, Mode: "advisory"})

	if !resp.Accepted {
		t.Fatalf("expected advisory accept, got %+v", resp)
	}
	if resp.Mode != "advisory" {
		t.Errorf("expected mode advisory, got %q", resp.Mode)
	}
	if len(resp.Advisories) == 0 {
		t.Error("expected advisories to carry the findings")
	}
	if len(resp.Highlights) != 0 {
		t.Errorf("expected no blocking highlights, got %v", resp.Highlights)
	}
}

func TestHandleRequest_StructuralError(t *testing.T) {
	c := newTestComponent(t, `{}`)

	doc := cleanModel()
	doc.Objects = append(doc.Objects, doc.Objects[1]) // duplicate cap-1

	resp := handle(t, c, &ValidateRequest{RequestID: "req-4", Model: doc})

	if resp.Status != "error" {
		t.Fatalf("expected error status, got %+v", resp)
	}
	if !strings.Contains(resp.Error, "duplicate object id") {
		t.Errorf("expected duplicate id error, got %q", resp.Error)
	}
	if resp.Accepted {
		t.Error("error responses must not be accepted")
	}
}

func TestHandleRequest_MissingModel(t *testing.T) {
	c := newTestComponent(t, `{}`)

	// A request naming neither a model nor a model id cannot be resolved:
	// it fails either as an unparseable envelope or on request validation.
	resp := handle(t, c, &ValidateRequest{RequestID: "req-5"})

	if resp.Status != "error" {
		t.Fatalf("expected error status, got %+v", resp)
	}
	if resp.Accepted {
		t.Error("error responses must not be accepted")
	}
	if resp.Error == "" {
		t.Error("expected error detail in response")
	}
}

func TestHandleRequest_ModelIDWithoutStore(t *testing.T) {
	c := newTestComponent(t, `{}`)

	resp := handle(t, c, &ValidateRequest{RequestID: "req-6", ModelID: "claims-landscape"})

	if resp.Status != "error" {
		t.Fatalf("expected error status, got %+v", resp)
	}
	if !strings.Contains(resp.Error, "model lookup unavailable") {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
}

func TestHandleRequest_DeniedTermsOverride(t *testing.T) {
	c := newTestComponent(t, `{"denied_terms":["widget"]}`)

	// "API Enablement" passes under the overridden denylist.
	doc := cleanModel()
	doc.Objects = append(doc.Objects, repository.Object{
		ID:         "cap-2",
		Type:       eam.TypeCapability,
		Attributes: repository.AttributeSet{Name: "API Enablement", OwnerID: "ent-1"},
	})

	resp := handle(t, c, &ValidateRequest{Model: doc})
	if !resp.Accepted {
		t.Fatalf("expected accept under overridden denylist, got %+v", resp)
	}

	// A name using the overridden term is rejected.
	doc2 := cleanModel()
	doc2.Objects = append(doc2.Objects, repository.Object{
		ID:         "cap-3",
		Type:       eam.TypeCapability,
		Attributes: repository.AttributeSet{Name: "Widget Assembly", OwnerID: "ent-1"},
	})

	resp = handle(t, c, &ValidateRequest{Model: doc2})
	if resp.Accepted {
		t.Fatalf("expected rejection for overridden term, got %+v", resp)
	}
	if resp.RuleID != "vocabulary" {
		t.Errorf("expected vocabulary rule, got %q", resp.RuleID)
	}
}

func TestConfigTimeout(t *testing.T) {
	cfg := Config{TimeoutSecs: 5}
	if cfg.Timeout().Seconds() != 5 {
		t.Errorf("expected 5s timeout, got %v", cfg.Timeout())
	}
	cfg.TimeoutSecs = 0
	if cfg.Timeout().Seconds() != 30 {
		t.Errorf("expected 30s fallback, got %v", cfg.Timeout())
	}
}
