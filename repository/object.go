package repository

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semarch/vocabulary/eam"
)

// Wire keys for the well-known attributes.
const (
	attrKeyName        = "name"
	attrKeyOwnerID     = "ownerId"
	attrKeyLifecycle   = "lifecycle"
	attrKeyDescription = "description"
)

// AttributeSet is the attribute bag of an object or relationship. The
// well-known keys are typed fields; unknown extension attributes
// round-trip through Extra. On the wire the set is a flat string map.
type AttributeSet struct {
	// Name is the display name.
	Name string

	// OwnerID is the id of the directly assigned owner object.
	OwnerID string

	// Lifecycle is the planning state (as-is, to-be). Empty means the
	// object belongs to every landscape.
	Lifecycle eam.Lifecycle

	// Description is free-form descriptive text.
	Description string

	// Extra holds extension attributes not modeled above.
	Extra map[string]string
}

// HasName reports whether the set carries a non-blank display name.
func (a AttributeSet) HasName() bool {
	return strings.TrimSpace(a.Name) != ""
}

// HasOwner reports whether a direct owner is assigned.
func (a AttributeSet) HasOwner() bool {
	return strings.TrimSpace(a.OwnerID) != ""
}

// Get returns the value for an attribute key, typed fields included.
func (a AttributeSet) Get(key string) (string, bool) {
	switch key {
	case attrKeyName:
		return a.Name, a.Name != ""
	case attrKeyOwnerID:
		return a.OwnerID, a.OwnerID != ""
	case attrKeyLifecycle:
		return string(a.Lifecycle), a.Lifecycle != ""
	case attrKeyDescription:
		return a.Description, a.Description != ""
	}
	v, ok := a.Extra[key]
	return v, ok
}

// Clone returns a deep copy of the attribute set.
func (a AttributeSet) Clone() AttributeSet {
	out := a
	if a.Extra != nil {
		out.Extra = make(map[string]string, len(a.Extra))
		for k, v := range a.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// toMap flattens the set into the wire representation.
func (a AttributeSet) toMap() map[string]string {
	m := make(map[string]string, len(a.Extra)+4)
	for k, v := range a.Extra {
		m[k] = v
	}
	if a.Name != "" {
		m[attrKeyName] = a.Name
	}
	if a.OwnerID != "" {
		m[attrKeyOwnerID] = a.OwnerID
	}
	if a.Lifecycle != "" {
		m[attrKeyLifecycle] = string(a.Lifecycle)
	}
	if a.Description != "" {
		m[attrKeyDescription] = a.Description
	}
	return m
}

// fromMap populates the set from the wire representation.
func (a *AttributeSet) fromMap(m map[string]string) {
	*a = AttributeSet{}
	for k, v := range m {
		switch k {
		case attrKeyName:
			a.Name = v
		case attrKeyOwnerID:
			a.OwnerID = v
		case attrKeyLifecycle:
			a.Lifecycle = eam.Lifecycle(v)
		case attrKeyDescription:
			a.Description = v
		default:
			if a.Extra == nil {
				a.Extra = make(map[string]string)
			}
			a.Extra[k] = v
		}
	}
}

// MarshalJSON flattens the set into a plain string map.
func (a AttributeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.toMap())
}

// UnmarshalJSON reads the flat string map form.
func (a *AttributeSet) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	a.fromMap(m)
	return nil
}

// MarshalYAML flattens the set into a plain string map.
func (a AttributeSet) MarshalYAML() (interface{}, error) {
	return a.toMap(), nil
}

// UnmarshalYAML reads the flat string map form.
func (a *AttributeSet) UnmarshalYAML(value *yaml.Node) error {
	var m map[string]string
	if err := value.Decode(&m); err != nil {
		return err
	}
	a.fromMap(m)
	return nil
}

// Object is a typed, attributed node of the architecture graph. ID and
// Type are immutable once the object is in a store; a type change is
// modeled as delete and re-create.
type Object struct {
	ID         string         `json:"id" yaml:"id"`
	Type       eam.ObjectType `json:"type" yaml:"type"`
	Attributes AttributeSet   `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// DisplayName returns the object's name, falling back to its id when no
// name is set. Violation evidence uses this form.
func (o Object) DisplayName() string {
	if o.Attributes.HasName() {
		return o.Attributes.Name
	}
	return o.ID
}

// Relationship is a typed, directed edge between two architecture
// objects. Direction is semantically meaningful: for OWNS the source is
// the owner and the target the owned object. Relationships are not
// required to be unique per (from, to, type).
type Relationship struct {
	From       string               `json:"from" yaml:"from"`
	To         string               `json:"to" yaml:"to"`
	Type       eam.RelationshipType `json:"type" yaml:"type"`
	Attributes AttributeSet         `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}
