// Package tree converts between the nested and the flat representation of a
// forest, computes drop projections and applies structural edits.
//
// Every function in this package is pure: arguments are never mutated and
// results never alias the inputs.
package tree

import (
	"github.com/pstuifzand/sortable-tree/internal/model"
)

// Flatten creates a flat list of items in top-to-bottom order.
//
// Each entry copies the item and records its parent id, its depth and its
// index inside the parent. Children are always emitted right after their
// parent, so every subtree is a contiguous block.
func Flatten(items []*model.Item) []model.FlattenedItem {
	result := make([]model.FlattenedItem, 0, Count(items))
	return flattenInto(result, items, "", 0)
}

func flattenInto(result []model.FlattenedItem, items []*model.Item, parentID string, depth int) []model.FlattenedItem {
	for index, item := range items {
		if item == nil {
			continue
		}
		result = append(result, model.FlattenedItem{
			ID:        item.ID,
			Children:  Clone(item.Children),
			Collapsed: item.Collapsed,
			ParentID:  parentID,
			Depth:     depth,
			Index:     index,
		})
		result = flattenInto(result, item.Children, item.ID, depth+1)
	}
	return result
}

// Build recreates the forest from a flat list.
//
// The list must be parent-first: the parent of every item has to appear
// earlier in the list, otherwise an OrphanError is returned. Depth, Index and
// the Children copied into the flat entries are ignored; the topology comes
// from ParentID and the order of the list alone.
func Build(flat []model.FlattenedItem) ([]*model.Item, error) {
	root := &model.Item{Children: make([]*model.Item, 0)}
	nodes := make(map[string]*model.Item, len(flat))

	for _, entry := range flat {
		if entry.ID == "" {
			return nil, EmptyIDError{}
		}
		if _, exists := nodes[entry.ID]; exists {
			return nil, DuplicateIDError{ID: entry.ID}
		}

		parent := root
		if entry.ParentID != "" {
			p, ok := nodes[entry.ParentID]
			if !ok {
				return nil, OrphanError{ID: entry.ID, ParentID: entry.ParentID}
			}
			parent = p
		}

		node := &model.Item{
			ID:        entry.ID,
			Children:  make([]*model.Item, 0),
			Collapsed: entry.Collapsed,
		}
		nodes[entry.ID] = node
		parent.Children = append(parent.Children, node)
	}

	return root.Children, nil
}

// Count returns the number of items in the forest
func Count(items []*model.Item) int {
	n := 0
	for _, item := range items {
		if item == nil {
			continue
		}
		n += 1 + Count(item.Children)
	}
	return n
}

// IDs returns the ids of a flat list in order
func IDs(flat []model.FlattenedItem) []string {
	ids := make([]string, len(flat))
	for i, item := range flat {
		ids[i] = item.ID
	}
	return ids
}

// IndexOf returns the position of id in the flat list, or -1
func IndexOf(flat []model.FlattenedItem, id string) int {
	for i, item := range flat {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// SubtreeEnd returns the exclusive end of the contiguous block holding the
// item at index and all of its descendants.
func SubtreeEnd(flat []model.FlattenedItem, index int) int {
	if index < 0 || index >= len(flat) {
		return index
	}
	depth := flat[index].Depth
	end := index + 1
	for end < len(flat) && flat[end].Depth > depth {
		end++
	}
	return end
}

// ArrayMove returns a copy of items with the element at from moved to to.
// The relative order of every other element is preserved.
func ArrayMove[T any](items []T, from, to int) []T {
	result := make([]T, len(items))
	copy(result, items)
	if from == to || from < 0 || to < 0 || from >= len(items) || to >= len(items) {
		return result
	}

	moved := result[from]
	if from < to {
		copy(result[from:to], result[from+1:to+1])
	} else {
		copy(result[to+1:from+1], result[to:from])
	}
	result[to] = moved
	return result
}
