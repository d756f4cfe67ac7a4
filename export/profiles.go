package export

import (
	"fmt"
	"strings"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/semarch/vocabulary/eam"
)

// Profile determines which ontology type assertions are included in the
// export.
type Profile string

const (
	// ProfileMinimal includes Semarch classes plus PROV-O alignment.
	ProfileMinimal Profile = "minimal"

	// ProfileBFO includes BFO type assertions plus the minimal profile.
	ProfileBFO Profile = "bfo"
)

// ParseProfile parses an export profile, accepting any casing.
func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := Profiles[p]; !ok {
		return "", fmt.Errorf("unsupported profile %q (valid: %s, %s)", s, ProfileMinimal, ProfileBFO)
	}
	return p, nil
}

// ProfileConfig contains configuration for an export profile.
type ProfileConfig struct {
	// Name is the profile identifier.
	Name Profile

	// Description describes the profile.
	Description string

	// IncludeBFO indicates whether to include BFO type assertions.
	IncludeBFO bool

	// IncludePROV indicates whether to include PROV-O type assertions.
	IncludePROV bool
}

// Profiles contains the configuration for all available export profiles.
var Profiles = map[Profile]ProfileConfig{
	ProfileMinimal: {
		Name:        ProfileMinimal,
		Description: "Semarch classes with PROV-O alignment",
		IncludeBFO:  false,
		IncludePROV: true,
	},
	ProfileBFO: {
		Name:        ProfileBFO,
		Description: "BFO type assertions plus minimal profile",
		IncludeBFO:  true,
		IncludePROV: true,
	},
}

// GetProfileConfig returns the configuration for a profile, falling back
// to the minimal profile for unknown names.
func GetProfileConfig(profile Profile) ProfileConfig {
	if config, ok := Profiles[profile]; ok {
		return config
	}
	return Profiles[ProfileMinimal]
}

// TypeTriples returns rdf:type triples as []message.Triple for an object
// based on its type and the given profile. The graph publisher uses
// these to align published entities with standard ontologies.
func TypeTriples(entityID string, objectType eam.ObjectType, profile Profile) []message.Triple {
	typeIRIs := eam.GetTypesForObject(objectType, string(profile))
	triples := make([]message.Triple, 0, len(typeIRIs))
	for _, typeIRI := range typeIRIs {
		triples = append(triples, message.Triple{
			Subject:    entityID,
			Predicate:  "rdf.syntax.type",
			Object:     typeIRI,
			Source:     "semarch.rdf-export",
			Confidence: 1.0,
		})
	}
	return triples
}
