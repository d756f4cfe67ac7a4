package repository

import (
	"fmt"
	"sort"
	"sync"

	"github.com/c360studio/semarch/vocabulary/eam"
)

// Store holds the objects and relationships of one architecture model and
// provides the read operations governance rules need. It supports
// concurrent readers; validation requires that no writer is active for
// the duration of the call.
type Store struct {
	mu            sync.RWMutex
	objects       map[string]Object
	relationships []Relationship
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		objects: make(map[string]Object),
	}
}

// AddObject inserts an object. It fails with *DuplicateIDError when the
// id is already present, and with a plain error when the object is
// malformed (missing id, unknown type).
func (s *Store) AddObject(obj Object) error {
	if obj.ID == "" {
		return fmt.Errorf("object id is required")
	}
	if !obj.Type.IsValid() {
		return fmt.Errorf("object %q: unknown type %q", obj.ID, obj.Type)
	}
	if !obj.Attributes.Lifecycle.IsValid() {
		return fmt.Errorf("object %q: unknown lifecycle %q", obj.ID, obj.Attributes.Lifecycle)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.objects[obj.ID]; exists {
		return &DuplicateIDError{ID: obj.ID}
	}
	obj.Attributes = obj.Attributes.Clone()
	s.objects[obj.ID] = obj
	return nil
}

// AddRelationship inserts a relationship. It fails with
// *DanglingReferenceError when either endpoint id is absent from the
// store, and with a plain error when the relationship is malformed.
func (s *Store) AddRelationship(rel Relationship) error {
	if rel.From == "" || rel.To == "" {
		return fmt.Errorf("relationship endpoints are required")
	}
	if !rel.Type.IsValid() {
		return fmt.Errorf("relationship %q -> %q: unknown type %q", rel.From, rel.To, rel.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[rel.From]; !ok {
		return &DanglingReferenceError{From: rel.From, To: rel.To, Type: rel.Type, Missing: rel.From}
	}
	if _, ok := s.objects[rel.To]; !ok {
		return &DanglingReferenceError{From: rel.From, To: rel.To, Type: rel.Type, Missing: rel.To}
	}
	rel.Attributes = rel.Attributes.Clone()
	s.relationships = append(s.relationships, rel)
	return nil
}

// Object returns the object with the given id.
func (s *Store) Object(id string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[id]
	if !ok {
		return Object{}, false
	}
	obj.Attributes = obj.Attributes.Clone()
	return obj, true
}

// Objects returns a snapshot of all objects, ascending by id.
func (s *Store) Objects() []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Object, 0, len(s.objects))
	for _, obj := range s.objects {
		obj.Attributes = obj.Attributes.Clone()
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Relationships returns a snapshot of all relationships, ordered by
// (from, to, type) so that reads are independent of insertion order.
func (s *Store) Relationships() []Relationship {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Relationship, len(s.relationships))
	for i, rel := range s.relationships {
		rel.Attributes = rel.Attributes.Clone()
		out[i] = rel
	}
	sortRelationships(out)
	return out
}

// RelationshipFilter narrows a RelationshipsOfType query.
type RelationshipFilter func(*relationshipQuery)

type relationshipQuery struct {
	from string
	to   string
}

// WithFrom restricts the query to relationships with the given source id.
func WithFrom(id string) RelationshipFilter {
	return func(q *relationshipQuery) { q.from = id }
}

// WithTo restricts the query to relationships with the given target id.
func WithTo(id string) RelationshipFilter {
	return func(q *relationshipQuery) { q.to = id }
}

// RelationshipsOfType returns the relationships of the given type,
// optionally narrowed by source and target, ordered by (from, to, type).
func (s *Store) RelationshipsOfType(relType eam.RelationshipType, opts ...RelationshipFilter) []Relationship {
	var q relationshipQuery
	for _, opt := range opts {
		opt(&q)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Relationship
	for _, rel := range s.relationships {
		if rel.Type != relType {
			continue
		}
		if q.from != "" && rel.From != q.from {
			continue
		}
		if q.to != "" && rel.To != q.to {
			continue
		}
		rel.Attributes = rel.Attributes.Clone()
		out = append(out, rel)
	}
	sortRelationships(out)
	return out
}

// OwnersOf returns the deduplicated, ascending set of owner ids for an
// object: sources of inbound ownership-conferring relationships, unioned
// with the object's own ownerId attribute when set. An object is owned
// iff this set is nonempty.
func (s *Store) OwnersOf(objectID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var owners []string
	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		owners = append(owners, id)
	}

	for _, rel := range s.relationships {
		if rel.To == objectID && rel.Type.ConfersOwnership() {
			add(rel.From)
		}
	}
	if obj, ok := s.objects[objectID]; ok && obj.Attributes.HasOwner() {
		add(obj.Attributes.OwnerID)
	}

	sort.Strings(owners)
	return owners
}

// ObjectCount returns the number of objects in the store.
func (s *Store) ObjectCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// RelationshipCount returns the number of relationships in the store.
func (s *Store) RelationshipCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.relationships)
}

func sortRelationships(rels []Relationship) {
	sort.Slice(rels, func(i, j int) bool {
		if rels[i].From != rels[j].From {
			return rels[i].From < rels[j].From
		}
		if rels[i].To != rels[j].To {
			return rels[i].To < rels[j].To
		}
		return rels[i].Type < rels[j].Type
	})
}

// BuildStore constructs a store from object and relationship lists,
// applying the eager structural checks in order. Errors carry positional
// context for the caller.
func BuildStore(objects []Object, relationships []Relationship) (*Store, error) {
	store := NewStore()
	for i, obj := range objects {
		if err := store.AddObject(obj); err != nil {
			return nil, fmt.Errorf("objects[%d]: %w", i, err)
		}
	}
	for i, rel := range relationships {
		if err := store.AddRelationship(rel); err != nil {
			return nil, fmt.Errorf("relationships[%d]: %w", i, err)
		}
	}
	return store, nil
}
