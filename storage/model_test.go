package storage

import (
	"testing"

	"github.com/c360studio/semarch/repository"
	"github.com/c360studio/semarch/vocabulary/eam"
)

func TestModelKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"claims-landscape", "claims-landscape"},
		{"Claims Landscape", "claims-landscape"},
		{"Claims  /  Landscape (2026)", "claims-landscape-2026"},
		{"  Trimmed  ", "trimmed"},
		{"___", ""},
		{"", ""},
	}

	for _, tc := range tests {
		if got := ModelKey(tc.name); got != tc.want {
			t.Errorf("ModelKey(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestModelRecordFields(t *testing.T) {
	record := ModelRecord{
		ID:          "claims-landscape",
		Name:        "Claims Landscape",
		SubmittedBy: "archteam",
		Document: repository.ModelDocument{
			Model: repository.ModelInfo{Name: "Claims Landscape"},
			Objects: []repository.Object{
				{ID: "ent-1", Type: eam.TypeEnterprise, Attributes: repository.AttributeSet{Name: "Contoso"}},
			},
		},
	}

	if record.ID != "claims-landscape" {
		t.Errorf("unexpected ID: %s", record.ID)
	}
	if record.SubmittedBy != "archteam" {
		t.Errorf("unexpected submitter: %s", record.SubmittedBy)
	}
	if len(record.Document.Objects) != 1 {
		t.Errorf("expected 1 object, got %d", len(record.Document.Objects))
	}
}

func TestBucketNames(t *testing.T) {
	if BucketModels != "SEMARCH_MODELS" {
		t.Errorf("unexpected models bucket: %s", BucketModels)
	}
}
