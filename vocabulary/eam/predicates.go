package eam

import (
	"strings"

	"github.com/c360studio/semstreams/vocabulary"
)

// Object predicates define attributes of architecture objects.
const (
	// ObjectName is the display name of the object.
	ObjectName = "eam.object.name"

	// PredicateObjectType is the architecture object kind predicate.
	// Values: Enterprise, Capability, BusinessProcess, Application,
	// ApplicationService, DataObject, Technology
	PredicateObjectType = "eam.object.type"

	// ObjectOwner is the direct owner reference (object id).
	ObjectOwner = "eam.object.owner"

	// ObjectLifecycle is the planning state.
	// Values: as-is, to-be
	ObjectLifecycle = "eam.object.lifecycle"

	// ObjectDescription is the free-form description.
	ObjectDescription = "eam.object.description"

	// ObjectModel links the object to its containing model.
	ObjectModel = "eam.object.model"
)

// Relationship predicates define attributes of typed edges.
const (
	// RelationshipKind is the relationship type predicate.
	// Values: OWNS, PROVIDED_BY, REALIZES, SUPPORTS, DEPENDS_ON
	RelationshipKind = "eam.relationship.type"

	// RelationshipFrom is the source object id.
	RelationshipFrom = "eam.relationship.from"

	// RelationshipTo is the target object id.
	RelationshipTo = "eam.relationship.to"
)

// RelationshipPredicate returns the dotted predicate used for a typed edge
// between two objects in the graph, e.g. OWNS becomes
// "eam.relationship.owns".
func RelationshipPredicate(t RelationshipType) string {
	return "eam.relationship." + strings.ToLower(string(t))
}

// Model predicates define model-level metadata.
const (
	// ModelName is the model display name.
	ModelName = "eam.model.name"

	// ModelDescription is the free-form model description.
	ModelDescription = "eam.model.description"

	// ModelSubmittedBy links a model to the submitting principal.
	ModelSubmittedBy = "eam.model.submitted_by"

	// ModelUpdatedAt is the RFC3339 last update timestamp.
	ModelUpdatedAt = "eam.model.updated_at"
)

func registerObjectPredicates() {
	vocabulary.Register(ObjectName,
		vocabulary.WithDescription("Display name of the architecture object"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.SkosPrefLabel))

	vocabulary.Register(PredicateObjectType,
		vocabulary.WithDescription("Architecture object kind"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropObjectType))

	vocabulary.Register(ObjectOwner,
		vocabulary.WithDescription("Direct owner of the object"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropOwnedBy))

	vocabulary.Register(ObjectLifecycle,
		vocabulary.WithDescription("Planning state: as-is or to-be"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropLifecycle))

	vocabulary.Register(ObjectDescription,
		vocabulary.WithDescription("Free-form description"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI("http://purl.org/dc/terms/description"))

	vocabulary.Register(ObjectModel,
		vocabulary.WithDescription("Model the object belongs to"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropModel))
}

func registerRelationshipPredicates() {
	vocabulary.Register(RelationshipKind,
		vocabulary.WithDescription("Relationship kind between two objects"),
		vocabulary.WithDataType("string"))

	vocabulary.Register(RelationshipFrom,
		vocabulary.WithDescription("Source object of the relationship"),
		vocabulary.WithDataType("entity_id"))

	vocabulary.Register(RelationshipTo,
		vocabulary.WithDescription("Target object of the relationship"),
		vocabulary.WithDataType("entity_id"))

	for _, relType := range []RelationshipType{
		RelOwns, RelProvidedBy, RelRealizes, RelSupports, RelDependsOn,
	} {
		vocabulary.Register(RelationshipPredicate(relType),
			vocabulary.WithDescription("Typed edge: "+string(relType)),
			vocabulary.WithDataType("entity_id"),
			vocabulary.WithIRI(GetRelationshipIRI(relType)))
	}
}

func registerModelPredicates() {
	vocabulary.Register(ModelName,
		vocabulary.WithDescription("Model display name"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.DcTitle))

	vocabulary.Register(ModelDescription,
		vocabulary.WithDescription("Free-form model description"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI("http://purl.org/dc/terms/description"))

	vocabulary.Register(ModelSubmittedBy,
		vocabulary.WithDescription("Principal that submitted the model"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(vocabulary.ProvWasAttributedTo))

	vocabulary.Register(ModelUpdatedAt,
		vocabulary.WithDescription("Last update timestamp (RFC3339)"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI("http://purl.org/dc/terms/modified"))
}

func init() {
	registerObjectPredicates()
	registerRelationshipPredicates()
	registerModelPredicates()
}
