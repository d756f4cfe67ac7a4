package eam_test

import (
	"testing"

	"github.com/c360studio/semarch/vocabulary/eam"
	"github.com/c360studio/semstreams/vocabulary"
)

func TestPredicatesRegistered(t *testing.T) {
	predicates := []string{
		eam.ObjectName,
		eam.PredicateObjectType,
		eam.ObjectOwner,
		eam.ObjectLifecycle,
		eam.ObjectDescription,
		eam.ObjectModel,
		eam.RelationshipKind,
		eam.RelationshipFrom,
		eam.RelationshipTo,
		eam.ModelName,
		eam.ModelSubmittedBy,
		eam.ModelUpdatedAt,
	}

	for _, predicate := range predicates {
		t.Run(predicate, func(t *testing.T) {
			meta := vocabulary.GetPredicateMetadata(predicate)
			if meta == nil {
				t.Errorf("predicate %q not registered", predicate)
				return
			}
			if meta.Description == "" {
				t.Errorf("predicate %q has no description", predicate)
			}
			if meta.DataType == "" {
				t.Errorf("predicate %q has no data type", predicate)
			}
		})
	}
}

func TestRelationshipPredicate(t *testing.T) {
	tests := []struct {
		relType  eam.RelationshipType
		expected string
	}{
		{eam.RelOwns, "eam.relationship.owns"},
		{eam.RelProvidedBy, "eam.relationship.provided_by"},
		{eam.RelRealizes, "eam.relationship.realizes"},
		{eam.RelSupports, "eam.relationship.supports"},
		{eam.RelDependsOn, "eam.relationship.depends_on"},
	}

	for _, tc := range tests {
		t.Run(string(tc.relType), func(t *testing.T) {
			got := eam.RelationshipPredicate(tc.relType)
			if got != tc.expected {
				t.Errorf("got %q, want %q", got, tc.expected)
			}
			if vocabulary.GetPredicateMetadata(got) == nil {
				t.Errorf("edge predicate %q not registered", got)
			}
		})
	}
}

func TestObjectPredicateValues(t *testing.T) {
	tests := []struct {
		name      string
		predicate string
		expected  string
	}{
		{"ObjectName", eam.ObjectName, "eam.object.name"},
		{"PredicateObjectType", eam.PredicateObjectType, "eam.object.type"},
		{"ObjectOwner", eam.ObjectOwner, "eam.object.owner"},
		{"ObjectLifecycle", eam.ObjectLifecycle, "eam.object.lifecycle"},
		{"ModelName", eam.ModelName, "eam.model.name"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.predicate != tc.expected {
				t.Errorf("got %q, want %q", tc.predicate, tc.expected)
			}
		})
	}
}
