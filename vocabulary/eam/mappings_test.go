package eam_test

import (
	"testing"

	"github.com/c360studio/semarch/vocabulary/eam"
	"github.com/c360studio/semstreams/vocabulary"
	"github.com/c360studio/semstreams/vocabulary/bfo"
)

func TestPROVClassMap(t *testing.T) {
	tests := []struct {
		objectType eam.ObjectType
		wantPROV   string
	}{
		{eam.TypeEnterprise, vocabulary.ProvAgent},
		{eam.TypeBusinessProcess, vocabulary.ProvActivity},
		{eam.TypeCapability, vocabulary.ProvEntity},
		{eam.TypeApplication, vocabulary.ProvEntity},
		{eam.TypeApplicationService, vocabulary.ProvEntity},
	}

	for _, tc := range tests {
		t.Run(string(tc.objectType), func(t *testing.T) {
			got, ok := eam.PROVClassMap[tc.objectType]
			if !ok {
				t.Fatalf("object type %q not in PROVClassMap", tc.objectType)
			}
			if got != tc.wantPROV {
				t.Errorf("got %q, want %q", got, tc.wantPROV)
			}
		})
	}
}

func TestBFOClassMap(t *testing.T) {
	tests := []struct {
		objectType eam.ObjectType
		wantBFO    string
	}{
		{eam.TypeEnterprise, bfo.IndependentContinuant},
		{eam.TypeTechnology, bfo.IndependentContinuant},
		{eam.TypeBusinessProcess, bfo.Process},
		{eam.TypeApplication, bfo.GenericallyDependentContinuant},
		{eam.TypeDataObject, bfo.GenericallyDependentContinuant},
	}

	for _, tc := range tests {
		t.Run(string(tc.objectType), func(t *testing.T) {
			got, ok := eam.BFOClassMap[tc.objectType]
			if !ok {
				t.Fatalf("object type %q not in BFOClassMap", tc.objectType)
			}
			if got != tc.wantBFO {
				t.Errorf("got %q, want %q", got, tc.wantBFO)
			}
		})
	}
}

func TestGetTypesForObject(t *testing.T) {
	tests := []struct {
		name       string
		objectType eam.ObjectType
		profile    string
		wantCount  int
		wantFirst  string
	}{
		{"application minimal", eam.TypeApplication, "minimal", 2, eam.ClassApplication},
		{"application bfo", eam.TypeApplication, "bfo", 3, eam.ClassApplication},
		{"enterprise minimal", eam.TypeEnterprise, "minimal", 2, eam.ClassEnterprise},
		{"unknown type", eam.ObjectType("Widget"), "bfo", 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			types := eam.GetTypesForObject(tc.objectType, tc.profile)
			if len(types) != tc.wantCount {
				t.Fatalf("got %d types %v, want %d", len(types), types, tc.wantCount)
			}
			if tc.wantCount > 0 && types[0] != tc.wantFirst {
				t.Errorf("first type = %q, want %q", types[0], tc.wantFirst)
			}
		})
	}
}

func TestGetPredicateIRI(t *testing.T) {
	tests := []struct {
		name      string
		predicate string
		want      string
	}{
		{"mapped name", eam.ObjectName, vocabulary.SkosPrefLabel},
		{"mapped owner", eam.ObjectOwner, eam.PropOwnedBy},
		{"mapped model name", eam.ModelName, vocabulary.DcTitle},
		{"unmapped falls back to namespace", "eam.object.custom", eam.Namespace + "eam.object.custom"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := eam.GetPredicateIRI(tc.predicate); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGetRelationshipIRI(t *testing.T) {
	if got := eam.GetRelationshipIRI(eam.RelProvidedBy); got != eam.PropProvidedBy {
		t.Errorf("got %q, want %q", got, eam.PropProvidedBy)
	}
	want := eam.Namespace + "CONTAINS"
	if got := eam.GetRelationshipIRI(eam.RelationshipType("CONTAINS")); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
