package eam

// Namespace is the base IRI prefix for all Semarch ontology terms.
const Namespace = "https://semarch.dev/ontology/"

// EntityNamespace is the base IRI for Semarch entity instances.
const EntityNamespace = "https://semarch.dev/entity/"

// Class IRIs define the types of architecture objects in the Semarch
// ontology. These classes extend standard ontology classes from BFO and
// PROV-O.
const (
	// ClassEnterprise represents the root organizational unit.
	// Extends: bfo:IndependentContinuant, prov:Agent
	ClassEnterprise = Namespace + "Enterprise"

	// ClassCapability represents a business capability.
	// Extends: bfo:GenericallyDependentContinuant, prov:Entity
	ClassCapability = Namespace + "Capability"

	// ClassBusinessProcess represents a business process.
	// Extends: bfo:Process, prov:Activity
	ClassBusinessProcess = Namespace + "BusinessProcess"

	// ClassApplication represents an application system.
	// Extends: bfo:GenericallyDependentContinuant, prov:Entity
	ClassApplication = Namespace + "Application"

	// ClassApplicationService represents a service exposed by an application.
	// Extends: bfo:GenericallyDependentContinuant, prov:Entity
	ClassApplicationService = Namespace + "ApplicationService"

	// ClassDataObject represents a data entity.
	// Extends: bfo:GenericallyDependentContinuant, prov:Entity
	ClassDataObject = Namespace + "DataObject"

	// ClassTechnology represents an infrastructure element.
	// Extends: bfo:IndependentContinuant, prov:Entity
	ClassTechnology = Namespace + "Technology"
)

// Object property IRIs define relationships between architecture objects.
const (
	// PropOwns links an owner to an owned object.
	// Domain: any, Range: any
	PropOwns = Namespace + "owns"

	// PropProvidedBy links a service to its providing application.
	// Domain: ClassApplicationService, Range: ClassApplication
	PropProvidedBy = Namespace + "providedBy"

	// PropRealizes links a realizing element to a capability.
	// Domain: ClassApplication | ClassBusinessProcess, Range: ClassCapability
	PropRealizes = Namespace + "realizes"

	// PropSupports links a technology element to what it supports.
	// Domain: ClassTechnology, Range: any
	PropSupports = Namespace + "supports"

	// PropDependsOn links a dependent object to its dependency.
	// Domain: any, Range: any
	PropDependsOn = Namespace + "dependsOn"
)

// Data property IRIs define literal-valued attributes.
const (
	// PropOwnedBy is the direct owner reference.
	PropOwnedBy = Namespace + "ownedBy"

	// PropLifecycle is the planning state (as-is, to-be).
	PropLifecycle = Namespace + "lifecycle"

	// PropObjectType is the architecture object kind.
	PropObjectType = Namespace + "objectType"

	// PropModel is the model an object belongs to.
	PropModel = Namespace + "model"
)
