// Package storage provides model persistence for semarch using NATS KV.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/semarch/repository"
)

// BucketModels is the KV bucket holding accepted architecture models.
const BucketModels = "SEMARCH_MODELS"

// ModelRecord is a persisted architecture model with its submission
// metadata. The document is stored as submitted; counts are derived at
// save time for cheap listing.
type ModelRecord struct {
	ID            string                   `json:"id"`
	Name          string                   `json:"name"`
	Description   string                   `json:"description,omitempty"`
	SubmittedBy   string                   `json:"submitted_by,omitempty"`
	Document      repository.ModelDocument `json:"document"`
	Objects       int                      `json:"objects"`
	Relationships int                      `json:"relationships"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// ModelKey derives the KV key for a model name: lowercase, with runs of
// non-alphanumeric characters collapsed to single hyphens. Returns ""
// for names with no usable characters.
func ModelKey(name string) string {
	var sb strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			sb.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

// ModelStore provides model storage operations backed by NATS KV.
type ModelStore struct {
	models jetstream.KeyValue
}

// NewModelStore creates a ModelStore with the given JetStream context.
// It creates the models bucket if it doesn't exist.
func NewModelStore(ctx context.Context, js jetstream.JetStream) (*ModelStore, error) {
	models, err := getOrCreateBucket(ctx, js, BucketModels)
	if err != nil {
		return nil, fmt.Errorf("create models bucket: %w", err)
	}
	return &ModelStore{models: models}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: fmt.Sprintf("Semarch %s storage", strings.ToLower(name)),
		History:     5, // Keep last 5 revisions
	})
}

// SaveModel stores a model record, keyed by its ID. When the ID is
// empty it is derived from the model name, falling back to a generated
// UUID. Resubmitting the same ID updates the record in place and
// preserves its creation time; KV history keeps prior revisions.
func (s *ModelStore) SaveModel(ctx context.Context, record *ModelRecord) error {
	if record.ID == "" {
		record.ID = ModelKey(record.Name)
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	now := time.Now()
	existing, err := s.GetModel(ctx, record.ID)
	switch {
	case err == nil:
		record.CreatedAt = existing.CreatedAt
	case errors.Is(err, ErrNotFound):
		record.CreatedAt = now
	default:
		return err
	}
	record.UpdatedAt = now
	record.Objects = len(record.Document.Objects)
	record.Relationships = len(record.Document.Relationships)

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	if _, err := s.models.Put(ctx, record.ID, data); err != nil {
		return fmt.Errorf("store model: %w", err)
	}
	return nil
}

// GetModel retrieves a model record by ID.
func (s *ModelStore) GetModel(ctx context.Context, id string) (*ModelRecord, error) {
	entry, err := s.models.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get model: %w", err)
	}

	var record ModelRecord
	if err := json.Unmarshal(entry.Value(), &record); err != nil {
		return nil, fmt.Errorf("unmarshal model: %w", err)
	}
	return &record, nil
}

// ListModels returns all stored models ordered by ID.
func (s *ModelStore) ListModels(ctx context.Context) ([]*ModelRecord, error) {
	keys, err := s.models.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list model keys: %w", err)
	}

	records := make([]*ModelRecord, 0, len(keys))
	for _, key := range keys {
		entry, err := s.models.Get(ctx, key)
		if err != nil {
			continue // Skip entries that fail to load
		}
		var record ModelRecord
		if err := json.Unmarshal(entry.Value(), &record); err != nil {
			continue
		}
		records = append(records, &record)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// DeleteModel removes a model record.
func (s *ModelStore) DeleteModel(ctx context.Context, id string) error {
	if err := s.models.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete model: %w", err)
	}
	return nil
}

// isNotFound checks if an error indicates a key was not found.
func isNotFound(err error) bool {
	return errors.Is(err, jetstream.ErrKeyNotFound)
}
