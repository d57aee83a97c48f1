package storage

import (
	"bytes"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/pstuifzand/sortable-tree/internal/model"
	"github.com/pstuifzand/sortable-tree/internal/tree"
)

// document is the on-disk shape of JSON and YAML seed files. A bare list of
// items is accepted as well.
type document struct {
	Items []*model.Item `json:"items" yaml:"items"`
}

// FileStore reads seed files from disk
type FileStore struct {
	FilePath string
	Format   Format
}

// NewFileStore creates a store for the given file. The format is detected
// from the extension.
func NewFileStore(filePath string) *FileStore {
	return &FileStore{
		FilePath: filePath,
		Format:   DetectFormat(filePath),
	}
}

// Load reads and validates the forest stored in the file
func (s *FileStore) Load() ([]*model.Item, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	items, err := Parse(data, s.Format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.FilePath, err)
	}
	return items, nil
}

// FileExists checks if the seed file exists
func (s *FileStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}

// JSONParser reads {"items": [...]} documents or bare arrays
type JSONParser struct{}

func (p *JSONParser) Name() string {
	return "JSON"
}

func (p *JSONParser) Parse(content []byte) ([]*model.Item, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return []*model.Item{}, nil
	}

	if trimmed[0] == '[' {
		var items []*model.Item
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return items, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return doc.Items, nil
}

// YAMLParser reads the same shapes as JSONParser in YAML
type YAMLParser struct{}

func (p *YAMLParser) Name() string {
	return "YAML"
}

func (p *YAMLParser) Parse(content []byte) ([]*model.Item, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(root.Content) == 0 {
		return []*model.Item{}, nil
	}

	node := root.Content[0]
	if node.Kind == yaml.SequenceNode {
		var items []*model.Item
		if err := node.Decode(&items); err != nil {
			return nil, fmt.Errorf("failed to decode YAML items: %w", err)
		}
		return items, nil
	}

	var doc document
	if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML document: %w", err)
	}
	return doc.Items, nil
}

// normalize validates a parsed forest and replaces nil children with empty
// slices.
func normalize(items []*model.Item) ([]*model.Item, error) {
	if err := tree.Validate(items); err != nil {
		return nil, err
	}
	return tree.Clone(items), nil
}
