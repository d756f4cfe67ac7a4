package governance

import (
	"github.com/c360studio/semarch/repository"
)

// Rule is a single governance check over a repository snapshot.
// Evaluate returns evidence strings ordered by ascending object id; an
// empty result means the rule is satisfied. Rules never mutate the store.
type Rule interface {
	// ID identifies the rule in results and reports.
	ID() string
	// Description is a short human-readable statement of the check.
	Description() string
	// Evaluate checks the whole store against the configured policy.
	Evaluate(store *repository.Store, cfg Config) []string
}

// Catalog returns the governance rules in priority order. Adding a rule
// means appending an entry here; the engine walks whatever the catalog
// holds.
func Catalog() []Rule {
	return []Rule{
		namingRule{},
		ownershipRule{},
		vocabularyRule{},
		cardinalityRule{},
	}
}

// coveredObjects returns the objects the configured coverage examines,
// in ascending id order. Rule evidence inherits this ordering.
func coveredObjects(store *repository.Store, cfg Config) []repository.Object {
	var covered []repository.Object
	for _, obj := range store.Objects() {
		if cfg.Coverage.Covers(obj.Attributes.Lifecycle) {
			covered = append(covered, obj)
		}
	}
	return covered
}
