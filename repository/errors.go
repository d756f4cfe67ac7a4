package repository

import (
	"fmt"

	"github.com/c360studio/semarch/vocabulary/eam"
)

// DuplicateIDError reports an object insertion whose id is already
// present in the store.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate object id %q", e.ID)
}

// DanglingReferenceError reports a relationship insertion with an
// endpoint id that does not resolve to an object in the store.
type DanglingReferenceError struct {
	From    string
	To      string
	Type    eam.RelationshipType
	Missing string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("relationship %s %q -> %q references missing object %q",
		e.Type, e.From, e.To, e.Missing)
}
