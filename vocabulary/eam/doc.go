// Package eam provides the domain vocabulary for enterprise-architecture
// models managed by Semarch.
//
// The vocabulary covers the typed object and relationship kinds that make
// up an architecture repository, the dotted attribute predicates used when
// models are published to the knowledge graph, and the IRI mappings used
// for RDF export. It is designed for:
//   - Internal efficiency: Clean dotted notation for NATS wildcard queries
//   - External interoperability: Alignment with PROV-O, Dublin Core, SKOS,
//     and BFO standards
//
// # Semstreams Integration
//
// This package follows semstreams vocabulary patterns:
//   - Predicates use three-level dotted notation (domain.category.property)
//   - Predicates are registered in init() using vocabulary.Register()
//   - IRI mappings use vocabulary.WithIRI() for RDF export compatibility
//   - Metadata includes description and data type where applicable
//
// # Domains
//
//   - Object: architecture object attributes (eam.object.*)
//   - Relationship: edge attributes (eam.relationship.*)
//   - Model: model-level metadata (eam.model.*)
//
// # Governance
//
// The ObjectType and RelationshipType enums define the closed, extensible
// sets the governance rules operate over. Type-level policy hooks
// (RequiresName, IsRoot, ConfersOwnership) live here so that rules stay
// free of hard-coded type lists.
package eam
