// Package export serializes architecture models as RDF with PROV-O and
// BFO alignment. Output is deterministic: identical stores and settings
// produce byte-identical documents regardless of insertion order.
package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/c360studio/semarch/repository"
	"github.com/c360studio/semarch/vocabulary/eam"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// ParseFormat parses a serialization format, accepting any casing.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := FormatRegistry[f]; !ok {
		return "", fmt.Errorf("unsupported format %q (valid: %s, %s, %s)", s, FormatTurtle, FormatNTriples, FormatJSONLD)
	}
	return f, nil
}

// IRI marks a triple object as a resource reference rather than a
// literal, so serializers emit <...> instead of a quoted string.
type IRI string

// Triple is a predicate-object pair attached to an exported subject.
type Triple struct {
	Predicate string
	Object    any
}

// entity is an exportable object with its type assertions and triples
// already resolved against the active profile.
type entity struct {
	iri     string
	types   []string
	triples []Triple
}

// RDFExporter exports repository snapshots to RDF with a configurable
// ontology profile.
type RDFExporter struct {
	profile  Profile
	prefixes map[string]string
}

// NewRDFExporter creates an exporter for the given profile.
func NewRDFExporter(profile Profile) *RDFExporter {
	return &RDFExporter{
		profile:  profile,
		prefixes: defaultPrefixes(),
	}
}

// defaultPrefixes returns the standard namespace prefixes for RDF export.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":     "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":    "http://www.w3.org/2000/01/rdf-schema#",
		"owl":     "http://www.w3.org/2002/07/owl#",
		"xsd":     "http://www.w3.org/2001/XMLSchema#",
		"dc":      "http://purl.org/dc/terms/",
		"skos":    "http://www.w3.org/2004/02/skos/core#",
		"prov":    "http://www.w3.org/ns/prov#",
		"bfo":     "http://purl.obolibrary.org/obo/",
		"semarch": eam.Namespace,
		"entity":  eam.EntityNamespace,
	}
}

// ExportStore serializes every object and relationship in the store.
func (e *RDFExporter) ExportStore(store *repository.Store, format Format) (string, error) {
	entities := e.buildEntities(store)

	switch format {
	case FormatTurtle:
		return e.toTurtle(entities), nil
	case FormatNTriples:
		return e.toNTriples(entities), nil
	case FormatJSONLD:
		return e.toJSONLD(entities), nil
	default:
		return "", fmt.Errorf("unsupported format %q (valid: %s, %s, %s)", format, FormatTurtle, FormatNTriples, FormatJSONLD)
	}
}

// buildEntities resolves the store into export entities. Objects arrive
// sorted by id and relationships by (from, to, type), so the resulting
// document order is stable.
func (e *RDFExporter) buildEntities(store *repository.Store) []entity {
	objects := store.Objects()
	entities := make([]entity, 0, len(objects))

	outgoing := make(map[string][]repository.Relationship, len(objects))
	for _, rel := range store.Relationships() {
		outgoing[rel.From] = append(outgoing[rel.From], rel)
	}

	for _, obj := range objects {
		ent := entity{
			iri:   ObjectIRI(obj.Type, obj.ID),
			types: eam.GetTypesForObject(obj.Type, string(e.profile)),
		}
		ent.triples = append(ent.triples, e.attributeTriples(store, obj)...)
		for _, rel := range outgoing[obj.ID] {
			if target, ok := store.Object(rel.To); ok {
				ent.triples = append(ent.triples, Triple{
					Predicate: eam.GetRelationshipIRI(rel.Type),
					Object:    IRI(ObjectIRI(target.Type, target.ID)),
				})
			}
		}
		entities = append(entities, ent)
	}

	return entities
}

// attributeTriples maps an object's attributes to predicate triples in a
// fixed order: name, description, lifecycle, owner, then extra
// attributes sorted by key.
func (e *RDFExporter) attributeTriples(store *repository.Store, obj repository.Object) []Triple {
	var triples []Triple

	if obj.Attributes.Name != "" {
		triples = append(triples, Triple{
			Predicate: eam.GetPredicateIRI(eam.ObjectName),
			Object:    obj.Attributes.Name,
		})
	}
	if obj.Attributes.Description != "" {
		triples = append(triples, Triple{
			Predicate: eam.GetPredicateIRI(eam.ObjectDescription),
			Object:    obj.Attributes.Description,
		})
	}
	if obj.Attributes.Lifecycle != "" {
		triples = append(triples, Triple{
			Predicate: eam.GetPredicateIRI(eam.ObjectLifecycle),
			Object:    string(obj.Attributes.Lifecycle),
		})
	}
	if obj.Attributes.OwnerID != "" {
		var object any = obj.Attributes.OwnerID
		if owner, ok := store.Object(obj.Attributes.OwnerID); ok {
			object = IRI(ObjectIRI(owner.Type, owner.ID))
		}
		triples = append(triples, Triple{
			Predicate: eam.GetPredicateIRI(eam.ObjectOwner),
			Object:    object,
		})
	}

	extraKeys := make([]string, 0, len(obj.Attributes.Extra))
	for key := range obj.Attributes.Extra {
		extraKeys = append(extraKeys, key)
	}
	sort.Strings(extraKeys)
	for _, key := range extraKeys {
		triples = append(triples, Triple{
			Predicate: eam.Namespace + "attribute/" + key,
			Object:    obj.Attributes.Extra[key],
		})
	}

	return triples
}

// ObjectIRI returns the entity IRI for an object.
// Example: ("Capability", "cap-claims") ->
// "https://semarch.dev/entity/capability/cap-claims".
func ObjectIRI(objectType eam.ObjectType, id string) string {
	return eam.EntityNamespace + strings.ToLower(string(objectType)) + "/" + id
}

// toTurtle serializes entities to Turtle.
func (e *RDFExporter) toTurtle(entities []entity) string {
	w := NewTurtleWriter()
	for prefix, iri := range e.prefixes {
		w.SetPrefix(prefix, iri)
	}
	w.WritePrefixes()

	for _, ent := range entities {
		w.WriteSubject(ent.iri)
		for i, typeIRI := range ent.types {
			last := i == len(ent.types)-1 && len(ent.triples) == 0
			w.WriteType(typeIRI, last)
		}
		for i, triple := range ent.triples {
			w.WritePredicate(triple.Predicate, triple.Object, i == len(ent.triples)-1)
		}
		w.WriteBlank()
	}

	return w.String()
}

// toNTriples serializes entities to N-Triples.
func (e *RDFExporter) toNTriples(entities []entity) string {
	w := NewNTriplesWriter()

	for _, ent := range entities {
		for _, typeIRI := range ent.types {
			w.WriteTypeTriple(ent.iri, typeIRI)
		}
		for _, triple := range ent.triples {
			w.WriteTriple(ent.iri, triple.Predicate, triple.Object)
		}
	}

	return w.String()
}

// toJSONLD serializes entities to JSON-LD.
func (e *RDFExporter) toJSONLD(entities []entity) string {
	w := NewJSONLDWriter()
	w.SetContext(e.prefixes)

	for _, ent := range entities {
		properties := make(map[string]any, len(ent.triples))
		for _, triple := range ent.triples {
			value := formatObjectJSONLD(triple.Object)
			if existing, ok := properties[triple.Predicate]; ok {
				switch prev := existing.(type) {
				case []any:
					properties[triple.Predicate] = append(prev, value)
				default:
					properties[triple.Predicate] = []any{prev, value}
				}
				continue
			}
			properties[triple.Predicate] = value
		}
		w.AddNode(ent.iri, ent.types, properties)
	}

	return w.String()
}

// formatObject formats an object value for Turtle output.
func formatObject(obj any) string {
	switch v := obj.(type) {
	case IRI:
		return fmt.Sprintf("<%s>", string(v))
	case string:
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("\"%s\"^^xsd:dateTime", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^xsd:integer", v)
	case float32, float64:
		return fmt.Sprintf("\"%f\"^^xsd:decimal", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^xsd:boolean", v)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// formatObjectNTriples formats an object value for N-Triples output.
func formatObjectNTriples(obj any) string {
	switch v := obj.(type) {
	case IRI:
		return fmt.Sprintf("<%s>", string(v))
	case string:
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("\"%s\"^^<http://www.w3.org/2001/XMLSchema#dateTime>", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^<http://www.w3.org/2001/XMLSchema#integer>", v)
	case float32, float64:
		return fmt.Sprintf("\"%f\"^^<http://www.w3.org/2001/XMLSchema#decimal>", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^<http://www.w3.org/2001/XMLSchema#boolean>", v)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// formatObjectJSONLD formats an object value for JSON-LD output.
func formatObjectJSONLD(obj any) any {
	switch v := obj.(type) {
	case IRI:
		return map[string]any{"@id": string(v)}
	case string:
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return map[string]any{"@value": v, "@type": "xsd:dateTime"}
		}
		return v
	default:
		return v
	}
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
