package export_test

import (
	"testing"

	"github.com/c360studio/semstreams/vocabulary/bfo"

	"github.com/c360studio/semarch/export"
	"github.com/c360studio/semarch/vocabulary/eam"
)

func TestGetProfileConfig(t *testing.T) {
	tests := []struct {
		profile  export.Profile
		wantBFO  bool
		wantPROV bool
	}{
		{export.ProfileMinimal, false, true},
		{export.ProfileBFO, true, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.profile), func(t *testing.T) {
			config := export.GetProfileConfig(tc.profile)
			if config.IncludeBFO != tc.wantBFO {
				t.Errorf("IncludeBFO = %v, want %v", config.IncludeBFO, tc.wantBFO)
			}
			if config.IncludePROV != tc.wantPROV {
				t.Errorf("IncludePROV = %v, want %v", config.IncludePROV, tc.wantPROV)
			}
		})
	}

	t.Run("unknown falls back to minimal", func(t *testing.T) {
		config := export.GetProfileConfig("galactic")
		if config.Name != export.ProfileMinimal {
			t.Errorf("fallback profile = %q, want %q", config.Name, export.ProfileMinimal)
		}
	})
}

func TestParseProfile(t *testing.T) {
	tests := []struct {
		input   string
		want    export.Profile
		wantErr bool
	}{
		{"minimal", export.ProfileMinimal, false},
		{"BFO", export.ProfileBFO, false},
		{"cco", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		got, err := export.ParseProfile(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseProfile(%q) should fail", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseProfile(%q): %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseProfile(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestTypeTriples(t *testing.T) {
	entityID := "acme.semarch.model.capability.cap-1"

	t.Run("minimal profile", func(t *testing.T) {
		triples := export.TypeTriples(entityID, eam.TypeCapability, export.ProfileMinimal)
		if len(triples) != 2 {
			t.Fatalf("got %d triples, want 2", len(triples))
		}
		for _, triple := range triples {
			if triple.Subject != entityID {
				t.Errorf("subject = %q, want %q", triple.Subject, entityID)
			}
			if triple.Predicate != "rdf.syntax.type" {
				t.Errorf("predicate = %q", triple.Predicate)
			}
			if triple.Source != "semarch.rdf-export" {
				t.Errorf("source = %q", triple.Source)
			}
		}
	})

	t.Run("bfo profile adds bfo class", func(t *testing.T) {
		triples := export.TypeTriples(entityID, eam.TypeCapability, export.ProfileBFO)
		if len(triples) != 3 {
			t.Fatalf("got %d triples, want 3", len(triples))
		}
		found := false
		for _, triple := range triples {
			if triple.Object == bfo.GenericallyDependentContinuant {
				found = true
			}
		}
		if !found {
			t.Error("bfo profile missing BFO type assertion")
		}
	})
}
