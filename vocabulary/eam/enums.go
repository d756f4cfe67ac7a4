package eam

// ObjectType represents the kind of an architecture object.
type ObjectType string

const (
	// TypeEnterprise is the root organizational unit of a model.
	TypeEnterprise ObjectType = "Enterprise"

	// TypeCapability is a business capability.
	TypeCapability ObjectType = "Capability"

	// TypeBusinessProcess is a business process realizing capabilities.
	TypeBusinessProcess ObjectType = "BusinessProcess"

	// TypeApplication is a deployed application system.
	TypeApplication ObjectType = "Application"

	// TypeApplicationService is a service exposed by an application.
	TypeApplicationService ObjectType = "ApplicationService"

	// TypeDataObject is a data entity owned by the architecture.
	TypeDataObject ObjectType = "DataObject"

	// TypeTechnology is an infrastructure or platform element.
	TypeTechnology ObjectType = "Technology"
)

// IsValid reports whether the object type is a known kind.
func (t ObjectType) IsValid() bool {
	switch t {
	case TypeEnterprise, TypeCapability, TypeBusinessProcess, TypeApplication,
		TypeApplicationService, TypeDataObject, TypeTechnology:
		return true
	}
	return false
}

// RequiresName reports whether objects of this type must carry a display
// name. All current kinds do; the hook exists so that anonymous structural
// kinds can be added without touching the naming rule.
func (t ObjectType) RequiresName() bool {
	return t.IsValid()
}

// IsRoot reports whether the type is an enterprise-level root. Root types
// anchor the ownership hierarchy and are themselves exempt from the
// ownership requirement.
func (t ObjectType) IsRoot() bool {
	return t == TypeEnterprise
}

// RelationshipType represents the kind of a directed edge between two
// architecture objects.
type RelationshipType string

const (
	// RelOwns marks organizational ownership, from owner to owned.
	RelOwns RelationshipType = "OWNS"

	// RelProvidedBy links a service to the application providing it.
	RelProvidedBy RelationshipType = "PROVIDED_BY"

	// RelRealizes links an application or process to the capability it realizes.
	RelRealizes RelationshipType = "REALIZES"

	// RelSupports links a technology element to what it supports.
	RelSupports RelationshipType = "SUPPORTS"

	// RelDependsOn marks a dependency on another object.
	RelDependsOn RelationshipType = "DEPENDS_ON"
)

// IsValid reports whether the relationship type is a known kind.
func (t RelationshipType) IsValid() bool {
	switch t {
	case RelOwns, RelProvidedBy, RelRealizes, RelSupports, RelDependsOn:
		return true
	}
	return false
}

// ConfersOwnership reports whether an inbound edge of this type makes the
// target object owned.
func (t RelationshipType) ConfersOwnership() bool {
	return t == RelOwns
}

// Lifecycle represents the planning state of an architecture object.
type Lifecycle string

const (
	// LifecycleAsIs marks an object present in the current landscape.
	LifecycleAsIs Lifecycle = "as-is"

	// LifecycleToBe marks an object planned for the target landscape.
	LifecycleToBe Lifecycle = "to-be"
)

// IsValid reports whether the lifecycle value is known. The empty value is
// valid and means the object belongs to every landscape.
func (l Lifecycle) IsValid() bool {
	switch l {
	case "", LifecycleAsIs, LifecycleToBe:
		return true
	}
	return false
}
