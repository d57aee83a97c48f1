// Package storage reads seed forests from JSON, YAML, markdown and indented
// text files and writes forests back out in the same formats.
package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/sortable-tree/internal/model"
)

// Format represents the file formats a forest can be read from or written to
type Format string

const (
	FormatJSON         Format = "json"
	FormatYAML         Format = "yaml"
	FormatMarkdown     Format = "markdown"
	FormatIndentedText Format = "indented"
	FormatAuto         Format = "auto" // Detect from extension
)

// Parser interface for the different seed formats
type Parser interface {
	Parse(content []byte) ([]*model.Item, error)
	Name() string
}

// ParseFormat maps a user supplied name to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "indented", "txt", "text":
		return FormatIndentedText, nil
	case "auto", "":
		return FormatAuto, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", name)
	}
}

// DetectFormat guesses the format from the file extension. Unknown
// extensions are read as indented text.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatIndentedText
	}
}

func parserFor(format Format) (Parser, error) {
	switch format {
	case FormatJSON:
		return &JSONParser{}, nil
	case FormatYAML:
		return &YAMLParser{}, nil
	case FormatMarkdown:
		return &MarkdownParser{}, nil
	case FormatIndentedText:
		return &IndentedTextParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Parse decodes content in the given format and validates the result.
// Every item of the returned forest has a non-nil Children slice.
func Parse(content []byte, format Format) ([]*model.Item, error) {
	parser, err := parserFor(format)
	if err != nil {
		return nil, err
	}

	items, err := parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse error (%s): %w", parser.Name(), err)
	}
	return normalize(items)
}
