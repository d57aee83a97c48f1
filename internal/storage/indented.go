package storage

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/pstuifzand/sortable-tree/internal/model"
)

// IndentedTextParser reads plain text where every line is an item id and
// two spaces (or one tab) of indentation make one level.
type IndentedTextParser struct{}

func (p *IndentedTextParser) Name() string {
	return "Indented Text"
}

func (p *IndentedTextParser) Parse(content []byte) ([]*model.Item, error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	var nest nester

	for scanner.Scan() {
		line := scanner.Text()
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		nest.place(model.NewItem(text), indentLevel(line))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nest.items(), nil
}

// indentLevel calculates the 0-based level of a line.
// Counts tabs and spaces (tab = 2 spaces)
func indentLevel(line string) int {
	indent := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\t' {
			indent += 2
		} else if line[i] == ' ' {
			indent++
		} else {
			break
		}
	}
	return indent / 2
}

// nester builds a forest from items that arrive in pre-order with a
// level each. A level deeper than the previous item plus one is treated
// as a child of the previous item.
type nester struct {
	roots []*model.Item
	stack []*model.Item // open parent at each level
}

func (n *nester) place(item *model.Item, level int) {
	if level > len(n.stack) {
		level = len(n.stack)
	}
	n.stack = n.stack[:level]

	if level == 0 {
		n.roots = append(n.roots, item)
	} else {
		parent := n.stack[level-1]
		parent.Children = append(parent.Children, item)
	}
	n.stack = append(n.stack, item)
}

// depth of the most recently placed item, -1 before the first one
func (n *nester) depth() int {
	return len(n.stack) - 1
}

func (n *nester) items() []*model.Item {
	if n.roots == nil {
		return []*model.Item{}
	}
	return n.roots
}
