package tree

import (
	"github.com/pstuifzand/sortable-tree/internal/model"
)

// RemoveChildrenOf returns a copy of the flat list without the descendants of
// the given ids.
//
// Collapsed items stay in the result, only their children are dropped. One
// left-to-right pass is enough: an excluded item joins the exclusion set so
// its own children, which follow it immediately, are dropped as well.
func RemoveChildrenOf(flat []model.FlattenedItem, ids []string) []model.FlattenedItem {
	excluded := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		excluded[id] = struct{}{}
	}

	result := make([]model.FlattenedItem, 0, len(flat))
	for _, item := range flat {
		if item.ParentID != "" {
			if _, hidden := excluded[item.ParentID]; hidden {
				if len(item.Children) > 0 {
					excluded[item.ID] = struct{}{}
				}
				continue
			}
		}
		result = append(result, item)
	}
	return result
}

// CollapsedIDs returns the ids of collapsed items that have children
func CollapsedIDs(flat []model.FlattenedItem) []string {
	var ids []string
	for _, item := range flat {
		if item.Collapsed && len(item.Children) > 0 {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// VisibleItems flattens the forest and hides the children of collapsed
// items. While an item is being dragged (activeID != "") its children are
// hidden too, so the subtree does not show twice under the drag overlay.
func VisibleItems(items []*model.Item, activeID string) []model.FlattenedItem {
	flat := Flatten(items)
	hidden := CollapsedIDs(flat)
	if activeID != "" {
		hidden = append([]string{activeID}, hidden...)
	}
	return RemoveChildrenOf(flat, hidden)
}

// Ancestors returns the ids of the ancestors of id, nearest first. It is
// empty for top-level and unknown items.
func Ancestors(items []*model.Item, id string) []string {
	flat := Flatten(items)
	parents := make(map[string]string, len(flat))
	for _, item := range flat {
		parents[item.ID] = item.ParentID
	}

	var result []string
	for parent := parents[id]; parent != ""; parent = parents[parent] {
		result = append(result, parent)
	}
	return result
}
