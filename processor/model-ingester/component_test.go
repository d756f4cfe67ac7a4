package modelingester

import (
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/c360studio/semarch/governance"
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

func submission(objects []repository.Object, rels []repository.Relationship) *ModelSubmission {
	return &ModelSubmission{
		SubmissionID: "sub-1",
		Name:         "Claims Landscape",
		Model: repository.ModelDocument{
			Objects:       objects,
			Relationships: rels,
		},
	}
}

func TestNewComponent_DefaultsApplied(t *testing.T) {
	c := newTestComponent(t, `{}`)

	if c.config.StreamName != "EAM" {
		t.Errorf("expected default stream EAM, got %q", c.config.StreamName)
	}
	if c.config.ConsumerName != "model-ingester" {
		t.Errorf("expected default consumer model-ingester, got %q", c.config.ConsumerName)
	}
	if c.config.Mode != "strict" {
		t.Errorf("expected default mode strict, got %q", c.config.Mode)
	}
	if c.config.Ports == nil || len(c.config.Ports.Inputs) == 0 {
		t.Fatal("expected default ports")
	}
	if c.config.Ports.Inputs[0].Subject != SubjectModelSubmitted {
		t.Errorf("expected default input subject %q, got %q",
			SubjectModelSubmitted, c.config.Ports.Inputs[0].Subject)
	}
}

func TestNewComponent_InvalidJSON(t *testing.T) {
	deps := component.Dependencies{Logger: slog.Default()}
	if _, err := NewComponent(json.RawMessage(`{bad`), deps); err == nil {
		t.Error("expected error for invalid JSON config")
	}
}

func TestNewComponent_UnknownCoverage(t *testing.T) {
	deps := component.Dependencies{Logger: slog.Default()}
	if _, err := NewComponent(json.RawMessage(`{"coverage":"future"}`), deps); err == nil {
		t.Error("expected error for unknown coverage")
	}
}

func TestParseSubmission_Raw(t *testing.T) {
	sub := submission([]repository.Object{
		{ID: "ent-1", Type: eam.TypeEnterprise, Attributes: repository.AttributeSet{Name: "Acme"}},
	}, nil)

	data, err := json.Marshal(sub)
	if err != nil {
		t.Fatalf("marshal submission: %v", err)
	}

	parsed, err := parseSubmission(data)
	if err != nil {
		t.Fatalf("parseSubmission() error = %v", err)
	}
	if parsed.Name != "Claims Landscape" {
		t.Errorf("expected name parsed, got %q", parsed.Name)
	}
	if len(parsed.Model.Objects) != 1 {
		t.Errorf("expected 1 object, got %d", len(parsed.Model.Objects))
	}
}

func TestParseSubmission_Garbage(t *testing.T) {
	if _, err := parseSubmission([]byte(`not json at all`)); err == nil {
		t.Error("expected error for unparseable submission")
	}
}

func TestDecide_Accepted(t *testing.T) {
	c := newTestComponent(t, `{}`)

	sub := submission([]repository.Object{
		{ID: "ent-1", Type: eam.TypeEnterprise, Attributes: repository.AttributeSet{Name: "Acme"}},
		{ID: "cap-1", Type: eam.TypeCapability, Attributes: repository.AttributeSet{Name: "Claims Handling", OwnerID: "ent-1"}},
	}, nil)

	result, err := c.decide(sub)
	if err != nil {
		t.Fatalf("decide() error = %v", err)
	}
	if !result.Accepted() {
		t.Errorf("expected accepted, got %+v", result)
	}
}

func TestDecide_RejectedByGovernance(t *testing.T) {
	c := newTestComponent(t, `{}`)

	// cap-1 has no owner: ownership rule evidence under strict mode.
	sub := submission([]repository.Object{
		{ID: "cap-1", Type: eam.TypeCapability, Attributes: repository.AttributeSet{Name: "Claims Handling"}},
	}, nil)

	result, err := c.decide(sub)
	if err != nil {
		t.Fatalf("decide() error = %v", err)
	}
	if result.Accepted() {
		t.Fatalf("expected rejection, got %+v", result)
	}
	if result.RuleID != "ownership" {
		t.Errorf("expected ownership rule, got %q", result.RuleID)
	}
	want := "Capability 'Claims Handling' has no owner"
	if len(result.Highlights) != 1 || result.Highlights[0] != want {
		t.Errorf("expected highlight %q, got %v", want, result.Highlights)
	}
}

func TestDecide_AdvisoryMode(t *testing.T) {
	c := newTestComponent(t, `{"mode":"advisory"}`)

	sub := submission([]repository.Object{
		{ID: "cap-1", Type: eam.TypeCapability, Attributes: repository.AttributeSet{Name: "Claims Handling"}},
	}, nil)

	result, err := c.decide(sub)
	if err != nil {
		t.Fatalf("decide() error = %v", err)
	}
	if !result.Accepted() {
		t.Fatalf("advisory mode must accept, got %+v", result)
	}
	if result.Mode != governance.ModeAdvisory {
		t.Errorf("expected advisory mode, got %q", result.Mode)
	}
	if len(result.Advisories) == 0 {
		t.Error("expected advisories to carry the findings")
	}
}

func TestDecide_StructuralError(t *testing.T) {
	c := newTestComponent(t, `{}`)

	// Relationship to a missing object fails eagerly before governance.
	sub := submission([]repository.Object{
		{ID: "ent-1", Type: eam.TypeEnterprise, Attributes: repository.AttributeSet{Name: "Acme"}},
	}, []repository.Relationship{
		{From: "ent-1", To: "ghost", Type: eam.RelOwns},
	})

	_, err := c.decide(sub)
	if err == nil {
		t.Fatal("expected structural error")
	}
	var dangling *repository.DanglingReferenceError
	if !errors.As(err, &dangling) {
		t.Fatalf("expected DanglingReferenceError, got %v", err)
	}
	if dangling.Missing != "ghost" {
		t.Errorf("expected missing=ghost, got %q", dangling.Missing)
	}
}
