package eam_test

import (
	"testing"

	"github.com/c360studio/semarch/vocabulary/eam"
)

func TestObjectTypeIsValid(t *testing.T) {
	tests := []struct {
		name  string
		typ   eam.ObjectType
		valid bool
	}{
		{"enterprise", eam.TypeEnterprise, true},
		{"capability", eam.TypeCapability, true},
		{"business process", eam.TypeBusinessProcess, true},
		{"application", eam.TypeApplication, true},
		{"application service", eam.TypeApplicationService, true},
		{"data object", eam.TypeDataObject, true},
		{"technology", eam.TypeTechnology, true},
		{"empty", eam.ObjectType(""), false},
		{"unknown", eam.ObjectType("Widget"), false},
		{"wrong case", eam.ObjectType("capability"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.typ.IsValid(); got != tc.valid {
				t.Errorf("IsValid(%q) = %v, want %v", tc.typ, got, tc.valid)
			}
		})
	}
}

func TestObjectTypeIsRoot(t *testing.T) {
	if !eam.TypeEnterprise.IsRoot() {
		t.Error("Enterprise should be a root type")
	}

	nonRoots := []eam.ObjectType{
		eam.TypeCapability,
		eam.TypeBusinessProcess,
		eam.TypeApplication,
		eam.TypeApplicationService,
		eam.TypeDataObject,
		eam.TypeTechnology,
	}
	for _, typ := range nonRoots {
		if typ.IsRoot() {
			t.Errorf("%s should not be a root type", typ)
		}
	}
}

func TestObjectTypeRequiresName(t *testing.T) {
	for _, typ := range []eam.ObjectType{
		eam.TypeEnterprise,
		eam.TypeCapability,
		eam.TypeApplication,
		eam.TypeApplicationService,
	} {
		if !typ.RequiresName() {
			t.Errorf("%s should require a name", typ)
		}
	}
}

func TestRelationshipTypeIsValid(t *testing.T) {
	tests := []struct {
		name  string
		typ   eam.RelationshipType
		valid bool
	}{
		{"owns", eam.RelOwns, true},
		{"provided by", eam.RelProvidedBy, true},
		{"realizes", eam.RelRealizes, true},
		{"supports", eam.RelSupports, true},
		{"depends on", eam.RelDependsOn, true},
		{"empty", eam.RelationshipType(""), false},
		{"unknown", eam.RelationshipType("CONTAINS"), false},
		{"wrong case", eam.RelationshipType("owns"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.typ.IsValid(); got != tc.valid {
				t.Errorf("IsValid(%q) = %v, want %v", tc.typ, got, tc.valid)
			}
		})
	}
}

func TestConfersOwnership(t *testing.T) {
	if !eam.RelOwns.ConfersOwnership() {
		t.Error("OWNS should confer ownership")
	}
	for _, typ := range []eam.RelationshipType{
		eam.RelProvidedBy,
		eam.RelRealizes,
		eam.RelSupports,
		eam.RelDependsOn,
	} {
		if typ.ConfersOwnership() {
			t.Errorf("%s should not confer ownership", typ)
		}
	}
}

func TestLifecycleIsValid(t *testing.T) {
	tests := []struct {
		name  string
		value eam.Lifecycle
		valid bool
	}{
		{"empty", eam.Lifecycle(""), true},
		{"as-is", eam.LifecycleAsIs, true},
		{"to-be", eam.LifecycleToBe, true},
		{"unknown", eam.Lifecycle("retired"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.value.IsValid(); got != tc.valid {
				t.Errorf("IsValid(%q) = %v, want %v", tc.value, got, tc.valid)
			}
		})
	}
}
