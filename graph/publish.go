// Package graph publishes architecture models and their objects as
// entities to the knowledge graph.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/semarch/export"
	"github.com/c360studio/semarch/repository"
	"github.com/c360studio/semarch/storage"
	"github.com/c360studio/semarch/vocabulary/eam"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
)

// Subject for graph ingestion.
const GraphIngestSubject = "graph.ingest.entity"

// publishSource identifies semarch as the origin of ingested triples.
const publishSource = "semarch.ingest"

// EntityIngestMessage is the message format for graph ingestion.
// Matches the format used by other semstreams components.
type EntityIngestMessage struct {
	ID        string           `json:"id"`
	Triples   []message.Triple `json:"triples"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// PublishModel publishes an accepted model and all of its objects to the
// knowledge graph. The model itself becomes one entity; every object
// becomes an entity carrying its attributes, its outgoing relationships,
// and ontology type triples.
func PublishModel(ctx context.Context, nc *natsclient.Client, record *storage.ModelRecord) error {
	if nc == nil {
		return nil // Skip publishing if no NATS client (graceful degradation)
	}

	now := time.Now()
	modelID := ModelEntityID(record.ID)

	triples := []message.Triple{
		{
			Subject:    modelID,
			Predicate:  eam.ModelName,
			Object:     record.Name,
			Source:     publishSource,
			Timestamp:  now,
			Confidence: 1.0,
		},
	}
	if record.Description != "" {
		triples = append(triples, message.Triple{
			Subject:    modelID,
			Predicate:  eam.ModelDescription,
			Object:     record.Description,
			Source:     publishSource,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}
	if record.SubmittedBy != "" {
		triples = append(triples, message.Triple{
			Subject:    modelID,
			Predicate:  eam.ModelSubmittedBy,
			Object:     record.SubmittedBy,
			Source:     publishSource,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}
	triples = append(triples, message.Triple{
		Subject:    modelID,
		Predicate:  eam.ModelUpdatedAt,
		Object:     record.UpdatedAt.Format(time.RFC3339),
		Source:     publishSource,
		Timestamp:  now,
		Confidence: 1.0,
	})

	if err := publishEntity(ctx, nc, modelID, triples, now); err != nil {
		return fmt.Errorf("publish model entity: %w", err)
	}

	byID := make(map[string]repository.Object, len(record.Document.Objects))
	for _, obj := range record.Document.Objects {
		byID[obj.ID] = obj
	}
	outgoing := make(map[string][]repository.Relationship, len(record.Document.Relationships))
	for _, rel := range record.Document.Relationships {
		outgoing[rel.From] = append(outgoing[rel.From], rel)
	}

	for _, obj := range record.Document.Objects {
		if err := publishObject(ctx, nc, modelID, obj, outgoing[obj.ID], byID, now); err != nil {
			return fmt.Errorf("publish object %s: %w", obj.ID, err)
		}
	}

	return nil
}

// publishObject publishes a single architecture object entity. Owner and
// relationship targets are referenced by entity ID when the target object
// is part of the model, so the graph links resolve.
func publishObject(ctx context.Context, nc *natsclient.Client, modelID string, obj repository.Object, rels []repository.Relationship, byID map[string]repository.Object, now time.Time) error {
	entityID := ObjectEntityID(obj.Type, obj.ID)

	triples := []message.Triple{
		{
			Subject:    entityID,
			Predicate:  eam.PredicateObjectType,
			Object:     string(obj.Type),
			Source:     publishSource,
			Timestamp:  now,
			Confidence: 1.0,
		},
	}
	if obj.Attributes.HasName() {
		triples = append(triples, message.Triple{
			Subject:    entityID,
			Predicate:  eam.ObjectName,
			Object:     obj.Attributes.Name,
			Source:     publishSource,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}
	if obj.Attributes.Lifecycle != "" {
		triples = append(triples, message.Triple{
			Subject:    entityID,
			Predicate:  eam.ObjectLifecycle,
			Object:     string(obj.Attributes.Lifecycle),
			Source:     publishSource,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}
	if obj.Attributes.Description != "" {
		triples = append(triples, message.Triple{
			Subject:    entityID,
			Predicate:  eam.ObjectDescription,
			Object:     obj.Attributes.Description,
			Source:     publishSource,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}
	if obj.Attributes.HasOwner() {
		ownerRef := obj.Attributes.OwnerID
		if owner, ok := byID[ownerRef]; ok {
			ownerRef = ObjectEntityID(owner.Type, owner.ID)
		}
		triples = append(triples, message.Triple{
			Subject:    entityID,
			Predicate:  eam.ObjectOwner,
			Object:     ownerRef,
			Source:     publishSource,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}
	triples = append(triples, message.Triple{
		Subject:    entityID,
		Predicate:  eam.ObjectModel,
		Object:     modelID,
		Source:     publishSource,
		Timestamp:  now,
		Confidence: 1.0,
	})

	for _, rel := range rels {
		target, ok := byID[rel.To]
		if !ok {
			continue
		}
		triples = append(triples, message.Triple{
			Subject:    entityID,
			Predicate:  eam.RelationshipPredicate(rel.Type),
			Object:     ObjectEntityID(target.Type, target.ID),
			Source:     publishSource,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}

	// Ontology alignment so graph consumers can reason over BFO classes.
	for _, tt := range export.TypeTriples(entityID, obj.Type, export.ProfileBFO) {
		tt.Timestamp = now
		triples = append(triples, tt)
	}

	return publishEntity(ctx, nc, entityID, triples, now)
}

func publishEntity(ctx context.Context, nc *natsclient.Client, entityID string, triples []message.Triple, now time.Time) error {
	msg := EntityIngestMessage{
		ID:        entityID,
		Triples:   triples,
		UpdatedAt: now,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal entity %s: %w", entityID, err)
	}

	if err := nc.PublishToStream(ctx, GraphIngestSubject, data); err != nil {
		return fmt.Errorf("publish entity %s: %w", entityID, err)
	}

	return nil
}

// ModelEntityID generates a consistent entity ID for a model.
// Format: semarch.local.model.model.<key>
func ModelEntityID(key string) string {
	return fmt.Sprintf("semarch.local.model.model.%s", key)
}

// ObjectEntityID generates a consistent entity ID for an architecture
// object. Format: semarch.local.model.<type>.<id>
func ObjectEntityID(objectType eam.ObjectType, id string) string {
	return fmt.Sprintf("semarch.local.model.%s.%s", strings.ToLower(string(objectType)), id)
}
