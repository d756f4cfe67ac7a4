package governance

import (
	"fmt"
	"slices"
	"strings"

	"github.com/c360studio/semarch/vocabulary/eam"
)

// Mode selects how rule evidence affects the validation outcome.
type Mode string

const (
	// ModeStrict rejects a model on the first rule with evidence.
	ModeStrict Mode = "strict"
	// ModeAdvisory always accepts and reports findings as advisories.
	ModeAdvisory Mode = "advisory"
)

// IsValid reports whether the mode is a known governance mode.
func (m Mode) IsValid() bool {
	return m == ModeStrict || m == ModeAdvisory
}

// ParseMode parses a governance mode, accepting any casing.
// Unknown values are an error, never silently defaulted.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("unknown governance mode %q (valid: %s, %s)", s, ModeStrict, ModeAdvisory)
	}
	return m, nil
}

// Coverage selects which lifecycle landscapes the rules examine.
// Objects without a lifecycle attribute belong to every landscape.
type Coverage string

const (
	// CoverageAsIs examines the current landscape.
	CoverageAsIs Coverage = "as-is"
	// CoverageToBe examines the target landscape.
	CoverageToBe Coverage = "to-be"
	// CoverageBoth examines both landscapes.
	CoverageBoth Coverage = "both"
)

// IsValid reports whether the coverage is a known lifecycle coverage.
func (c Coverage) IsValid() bool {
	return c == CoverageAsIs || c == CoverageToBe || c == CoverageBoth
}

// ParseCoverage parses a lifecycle coverage, accepting any casing.
// Unknown values are an error, never silently defaulted.
func ParseCoverage(s string) (Coverage, error) {
	c := Coverage(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("unknown lifecycle coverage %q (valid: %s, %s, %s)", s, CoverageAsIs, CoverageToBe, CoverageBoth)
	}
	return c, nil
}

// Covers reports whether an object with the given lifecycle falls inside
// this coverage. Unmarked objects are covered by every coverage.
func (c Coverage) Covers(lc eam.Lifecycle) bool {
	switch {
	case lc == "":
		return true
	case c == CoverageBoth:
		return true
	case c == CoverageAsIs:
		return lc == eam.LifecycleAsIs
	case c == CoverageToBe:
		return lc == eam.LifecycleToBe
	default:
		return false
	}
}

// VocabularyPolicy configures the technical-term denylist and the object
// types whose names it applies to.
type VocabularyPolicy struct {
	// Terms are denied in display names. Single-word terms match whole
	// word tokens case-insensitively; multi-word terms match as
	// case-insensitive substrings.
	Terms []string `json:"terms" yaml:"terms"`
	// AppliesTo lists the object types whose names are checked.
	AppliesTo []eam.ObjectType `json:"applies_to" yaml:"applies_to"`
}

// AppliesToType reports whether names of the given type are checked.
func (p VocabularyPolicy) AppliesToType(t eam.ObjectType) bool {
	return slices.Contains(p.AppliesTo, t)
}

// CardinalityConstraint requires every object of the source type to hold
// exactly one relationship of the given type to an object of the target
// type.
type CardinalityConstraint struct {
	Source       eam.ObjectType       `json:"source" yaml:"source"`
	Relationship eam.RelationshipType `json:"relationship" yaml:"relationship"`
	Target       eam.ObjectType       `json:"target" yaml:"target"`
}

// Config holds the governance policy applied during validation.
type Config struct {
	Mode        Mode                    `json:"mode" yaml:"mode"`
	Coverage    Coverage                `json:"coverage" yaml:"coverage"`
	Vocabulary  VocabularyPolicy        `json:"vocabulary" yaml:"vocabulary"`
	Cardinality []CardinalityConstraint `json:"cardinality" yaml:"cardinality"`
	// OwnershipExempt extends the built-in exemption of root types
	// (Enterprise) from the ownership rule.
	OwnershipExempt []eam.ObjectType `json:"ownership_exempt,omitempty" yaml:"ownership_exempt,omitempty"`
}

// DefaultConfig returns the governance policy applied when none is
// configured: strict mode over both landscapes, a baseline technical-term
// denylist for capabilities and business processes, and the requirement
// that every application service is provided by exactly one application.
func DefaultConfig() Config {
	return Config{
		Mode:     ModeStrict,
		Coverage: CoverageBoth,
		Vocabulary: VocabularyPolicy{
			Terms: []string{
				"API", "database", "server", "microservice", "middleware",
				"backend", "frontend", "REST", "SQL", "ETL",
			},
			AppliesTo: []eam.ObjectType{eam.TypeCapability, eam.TypeBusinessProcess},
		},
		Cardinality: []CardinalityConstraint{
			{Source: eam.TypeApplicationService, Relationship: eam.RelProvidedBy, Target: eam.TypeApplication},
		},
	}
}

// Validate checks the configuration for unknown enum values and malformed
// policy entries. Validation failures are fatal to the caller; the engine
// never evaluates rules against an invalid configuration.
func (c Config) Validate() error {
	if !c.Mode.IsValid() {
		return fmt.Errorf("unknown governance mode %q (valid: %s, %s)", c.Mode, ModeStrict, ModeAdvisory)
	}
	if !c.Coverage.IsValid() {
		return fmt.Errorf("unknown lifecycle coverage %q (valid: %s, %s, %s)", c.Coverage, CoverageAsIs, CoverageToBe, CoverageBoth)
	}
	for i, term := range c.Vocabulary.Terms {
		if strings.TrimSpace(term) == "" {
			return fmt.Errorf("vocabulary terms[%d] is blank", i)
		}
	}
	for i, t := range c.Vocabulary.AppliesTo {
		if !t.IsValid() {
			return fmt.Errorf("vocabulary applies_to[%d]: unknown object type %q", i, t)
		}
	}
	for i, cc := range c.Cardinality {
		if !cc.Source.IsValid() {
			return fmt.Errorf("cardinality[%d]: unknown source type %q", i, cc.Source)
		}
		if !cc.Relationship.IsValid() {
			return fmt.Errorf("cardinality[%d]: unknown relationship type %q", i, cc.Relationship)
		}
		if !cc.Target.IsValid() {
			return fmt.Errorf("cardinality[%d]: unknown target type %q", i, cc.Target)
		}
	}
	for i, t := range c.OwnershipExempt {
		if !t.IsValid() {
			return fmt.Errorf("ownership_exempt[%d]: unknown object type %q", i, t)
		}
	}
	return nil
}

// IsOwnershipExempt reports whether the ownership rule skips objects of
// the given type. Root types are always exempt; the configuration can
// exempt more.
func (c Config) IsOwnershipExempt(t eam.ObjectType) bool {
	return t.IsRoot() || slices.Contains(c.OwnershipExempt, t)
}
