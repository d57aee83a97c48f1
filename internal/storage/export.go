package storage

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/pstuifzand/sortable-tree/internal/model"
)

// Write encodes the forest to w. JSON and YAML keep the collapsed flags,
// markdown and indented text only keep the ids and the nesting.
func Write(w io.Writer, items []*model.Item, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, items)
	case FormatYAML:
		return WriteYAML(w, items)
	case FormatMarkdown:
		return WriteMarkdown(w, items)
	case FormatIndentedText:
		return WriteIndented(w, items)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// WriteJSON writes the forest as an {"items": [...]} document
func WriteJSON(w io.Writer, items []*model.Item) error {
	data, err := json.MarshalIndent(document{Items: items}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// WriteYAML writes the forest as an items: document
func WriteYAML(w io.Writer, items []*model.Item) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Items: items}); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}

// WriteMarkdown writes the forest as unordered list bullets,
// 2 spaces of indentation per level.
func WriteMarkdown(w io.Writer, items []*model.Item) error {
	var sb strings.Builder
	for _, item := range items {
		writeItem(&sb, item, 0, "- ")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteIndented writes one id per line, 2 spaces of indentation per level.
func WriteIndented(w io.Writer, items []*model.Item) error {
	var sb strings.Builder
	for _, item := range items {
		writeItem(&sb, item, 0, "")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeItem(sb *strings.Builder, item *model.Item, depth int, marker string) {
	if item == nil {
		return
	}

	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(marker)
	sb.WriteString(item.ID)
	sb.WriteString("\n")

	for _, child := range item.Children {
		writeItem(sb, child, depth+1, marker)
	}
}
