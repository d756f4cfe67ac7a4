package governance

import (
	"fmt"
	"strings"

	"github.com/c360studio/semarch/repository"
)

// namingRule requires a non-blank display name on every object whose
// type calls for one.
type namingRule struct{}

func (namingRule) ID() string          { return "naming" }
func (namingRule) Description() string { return "objects must carry a display name" }

func (namingRule) Evaluate(store *repository.Store, cfg Config) []string {
	var evidence []string
	for _, obj := range coveredObjects(store, cfg) {
		if !obj.Type.RequiresName() || obj.Attributes.HasName() {
			continue
		}
		evidence = append(evidence, fmt.Sprintf("%s '%s' has no name", obj.Type, obj.ID))
	}
	return evidence
}

// ownershipRule requires every non-exempt object to have at least one
// owner, whether conferred by an inbound OWNS relationship or declared
// through the ownerId attribute.
type ownershipRule struct{}

func (ownershipRule) ID() string          { return "ownership" }
func (ownershipRule) Description() string { return "objects must have an accountable owner" }

func (ownershipRule) Evaluate(store *repository.Store, cfg Config) []string {
	var evidence []string
	for _, obj := range coveredObjects(store, cfg) {
		if cfg.IsOwnershipExempt(obj.Type) {
			continue
		}
		if len(store.OwnersOf(obj.ID)) > 0 {
			continue
		}
		evidence = append(evidence, fmt.Sprintf("%s '%s' has no owner", obj.Type, obj.DisplayName()))
	}
	return evidence
}

// vocabularyRule denies technical terms in the names of business-facing
// object types. Which terms and which types come from the policy.
type vocabularyRule struct{}

func (vocabularyRule) ID() string          { return "vocabulary" }
func (vocabularyRule) Description() string { return "business names must avoid technical terms" }

func (vocabularyRule) Evaluate(store *repository.Store, cfg Config) []string {
	var evidence []string
	for _, obj := range coveredObjects(store, cfg) {
		if !cfg.Vocabulary.AppliesToType(obj.Type) {
			continue
		}
		term := firstDeniedTerm(obj.Attributes.Name, cfg.Vocabulary.Terms)
		if term == "" {
			continue
		}
		evidence = append(evidence, fmt.Sprintf("%s '%s' uses a technical term: '%s'", obj.Type, obj.Attributes.Name, term))
	}
	return evidence
}

// firstDeniedTerm returns the first configured term found in the name,
// or "" when the name is clean. Single-word terms must match a whole
// word token so that e.g. "api" does not flag "Rapid Quoting"; terms
// with embedded whitespace fall back to substring matching.
func firstDeniedTerm(name string, terms []string) string {
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)
	tokens := strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" {
			continue
		}
		if strings.ContainsAny(t, " \t") {
			if strings.Contains(lower, t) {
				return term
			}
			continue
		}
		for _, token := range tokens {
			if token == t {
				return term
			}
		}
	}
	return ""
}

// cardinalityRule requires every object of a constrained source type to
// hold exactly one relationship of the required type to an object of the
// required target type. Relationships to objects of other types do not
// count toward the total.
type cardinalityRule struct{}

func (cardinalityRule) ID() string { return "cardinality" }
func (cardinalityRule) Description() string {
	return "constrained types must hold exactly one required relationship"
}

func (cardinalityRule) Evaluate(store *repository.Store, cfg Config) []string {
	var evidence []string
	for _, obj := range coveredObjects(store, cfg) {
		for _, constraint := range cfg.Cardinality {
			if obj.Type != constraint.Source {
				continue
			}
			count := 0
			for _, rel := range store.RelationshipsOfType(constraint.Relationship, repository.WithFrom(obj.ID)) {
				if target, ok := store.Object(rel.To); ok && target.Type == constraint.Target {
					count++
				}
			}
			if count == 1 {
				continue
			}
			evidence = append(evidence, fmt.Sprintf("%s '%s' must belong to exactly one %s (found %d)",
				obj.Type, obj.DisplayName(), constraint.Target, count))
		}
	}
	return evidence
}
