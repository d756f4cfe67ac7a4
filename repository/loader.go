package repository

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ModelInfo carries model-level metadata from a model document.
type ModelInfo struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ModelDocument is the YAML document form of an architecture model.
type ModelDocument struct {
	Model         ModelInfo      `json:"model" yaml:"model"`
	Objects       []Object       `json:"objects" yaml:"objects"`
	Relationships []Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// BuildStore constructs a validated store from the document, applying the
// eager structural checks.
func (d *ModelDocument) BuildStore() (*Store, error) {
	return BuildStore(d.Objects, d.Relationships)
}

// LoadModel parses a model document from a reader. The store is not built
// yet; call BuildStore to apply the structural checks.
func LoadModel(r io.Reader) (*ModelDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}

	var doc ModelDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	return &doc, nil
}

// LoadModelFile parses a model document from a file path.
func LoadModelFile(path string) (*ModelDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer f.Close()

	doc, err := LoadModel(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// SaveModelFile writes a model document to a file path as YAML.
func SaveModelFile(doc *ModelDocument, path string) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write model file: %w", err)
	}
	return nil
}
