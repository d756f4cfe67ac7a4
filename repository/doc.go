// Package repository provides the in-memory typed graph of architecture
// objects and relationships that governance validation runs against.
//
// A Store is built fresh per validation call by the caller, from a YAML
// model document or from payload data, and is never mutated by the
// validation engine. Structural integrity is enforced eagerly: inserting a
// duplicate object id fails with DuplicateIDError, and inserting a
// relationship whose endpoint does not resolve fails with
// DanglingReferenceError. A store that failed to build must not be
// validated.
//
// Read operations return stable snapshots ordered by ascending id so that
// rule evaluation over the same store is deterministic.
package repository
