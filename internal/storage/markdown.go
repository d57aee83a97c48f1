package storage

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/pstuifzand/sortable-tree/internal/model"
)

// MarkdownParser reads headings and bullet lists. A heading of level n is
// an item at depth n-1; bullets and plain lines below it nest under it.
type MarkdownParser struct{}

func (p *MarkdownParser) Name() string {
	return "Markdown"
}

func (p *MarkdownParser) Parse(content []byte) ([]*model.Item, error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	var nest nester
	base := 0

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if level, text := parseHeader(line); level >= 0 {
			if level > nest.depth()+1 {
				level = nest.depth() + 1
			}
			nest.place(model.NewItem(text), level)
			base = level + 1
			continue
		}

		if level, text := parseListItem(line); level >= 0 {
			nest.place(model.NewItem(text), base+level)
			continue
		}

		nest.place(model.NewItem(strings.TrimSpace(line)), base)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nest.items(), nil
}

// parseHeader extracts the 0-based level and text of an ATX heading
func parseHeader(line string) (level int, text string) {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 || (n < len(line) && line[n] != ' ') {
		return -1, ""
	}
	text = strings.TrimSpace(line[n:])
	if text == "" {
		return -1, ""
	}
	return n - 1, text
}

// parseListItem extracts indentation level and text from a bullet line
func parseListItem(line string) (level int, text string) {
	trimmed := strings.TrimSpace(line)

	if len(trimmed) > 2 && (trimmed[0] == '-' || trimmed[0] == '*' || trimmed[0] == '+') && trimmed[1] == ' ' {
		text = strings.TrimSpace(trimmed[2:])
		return indentLevel(line), text
	}

	return -1, ""
}
