package eam

import (
	"github.com/c360studio/semstreams/vocabulary"
	"github.com/c360studio/semstreams/vocabulary/bfo"
)

// EamClassMap maps object types to Semarch class IRIs.
var EamClassMap = map[ObjectType]string{
	TypeEnterprise:         ClassEnterprise,
	TypeCapability:         ClassCapability,
	TypeBusinessProcess:    ClassBusinessProcess,
	TypeApplication:        ClassApplication,
	TypeApplicationService: ClassApplicationService,
	TypeDataObject:         ClassDataObject,
	TypeTechnology:         ClassTechnology,
}

// PROVClassMap maps object types to PROV-O class IRIs.
// Use this for minimal profile RDF export.
var PROVClassMap = map[ObjectType]string{
	// The enterprise is a responsible organizational agent
	TypeEnterprise: vocabulary.ProvAgent,

	// Behavior elements are activities
	TypeBusinessProcess: vocabulary.ProvActivity,

	// Everything else is an entity
	TypeCapability:         vocabulary.ProvEntity,
	TypeApplication:        vocabulary.ProvEntity,
	TypeApplicationService: vocabulary.ProvEntity,
	TypeDataObject:         vocabulary.ProvEntity,
	TypeTechnology:         vocabulary.ProvEntity,
}

// BFOClassMap maps object types to BFO class IRIs.
// Use this for bfo profile RDF export.
var BFOClassMap = map[ObjectType]string{
	// Organizations and infrastructure exist on their own
	TypeEnterprise: bfo.IndependentContinuant,
	TypeTechnology: bfo.IndependentContinuant,

	// Behavior unfolds in time
	TypeBusinessProcess: bfo.Process,

	// Information artifacts are copyable patterns
	TypeCapability:         bfo.GenericallyDependentContinuant,
	TypeApplication:        bfo.GenericallyDependentContinuant,
	TypeApplicationService: bfo.GenericallyDependentContinuant,
	TypeDataObject:         bfo.GenericallyDependentContinuant,
}

// RelationshipIRIMap maps relationship types to object property IRIs.
var RelationshipIRIMap = map[RelationshipType]string{
	RelOwns:       PropOwns,
	RelProvidedBy: PropProvidedBy,
	RelRealizes:   PropRealizes,
	RelSupports:   PropSupports,
	RelDependsOn:  PropDependsOn,
}

// PredicateIRIMap maps internal attribute predicates to standard IRIs.
// Use this for RDF export to translate dotted predicates.
var PredicateIRIMap = map[string]string{
	ObjectName:          vocabulary.SkosPrefLabel,
	PredicateObjectType: PropObjectType,
	ObjectOwner:         PropOwnedBy,
	ObjectLifecycle:     PropLifecycle,
	ObjectDescription:   "http://purl.org/dc/terms/description",
	ObjectModel:         PropModel,

	ModelName:        vocabulary.DcTitle,
	ModelSubmittedBy: vocabulary.ProvWasAttributedTo,
	ModelUpdatedAt:   "http://purl.org/dc/terms/modified",
}

// GetTypesForObject returns all class IRIs for an object type and profile.
// Profile determines which ontology types are included:
//   - "minimal": PROV-O + Semarch types
//   - "bfo": BFO + PROV-O + Semarch types
func GetTypesForObject(objectType ObjectType, profile string) []string {
	types := make([]string, 0, 3)

	// Always include the Semarch type
	if eamClass, ok := EamClassMap[objectType]; ok {
		types = append(types, eamClass)
	}

	// Always include the PROV-O type
	if provClass, ok := PROVClassMap[objectType]; ok {
		types = append(types, provClass)
	}

	// Include the BFO type for the bfo profile
	if profile == "bfo" {
		if bfoClass, ok := BFOClassMap[objectType]; ok {
			types = append(types, bfoClass)
		}
	}

	return types
}

// GetPredicateIRI returns the standard IRI for a predicate, if mapped.
// Unmapped predicates fall back to the semarch namespace.
func GetPredicateIRI(predicate string) string {
	if iri, ok := PredicateIRIMap[predicate]; ok {
		return iri
	}
	return Namespace + predicate
}

// GetRelationshipIRI returns the object property IRI for a relationship
// type, falling back to the semarch namespace for unknown kinds.
func GetRelationshipIRI(relType RelationshipType) string {
	if iri, ok := RelationshipIRIMap[relType]; ok {
		return iri
	}
	return Namespace + string(relType)
}
