package tree

import (
	"github.com/pstuifzand/sortable-tree/internal/model"
)

// Drop moves the active item next to the hovered item and gives it the depth
// and parent of the projection, then rebuilds the forest.
//
// The move happens on the full flat list, so items hidden by collapsing keep
// their place. The active item's descendants travel with it as one block;
// everything else keeps its relative order.
func Drop(items []*model.Item, activeID, overID string, projection model.Projection) ([]*model.Item, error) {
	flat := Flatten(items)

	activeIndex := IndexOf(flat, activeID)
	if activeIndex == -1 {
		return nil, NotFoundError{Kind: "active item", ID: activeID}
	}
	overIndex := IndexOf(flat, overID)
	if overIndex == -1 {
		return nil, NotFoundError{Kind: "over item", ID: overID}
	}

	end := SubtreeEnd(flat, activeIndex)
	if overIndex > activeIndex && overIndex < end {
		return nil, InvalidDropError{ActiveID: activeID, OverID: overID}
	}
	descendants := flat[activeIndex+1 : end]

	moved := flat[activeIndex]
	moved.Depth = projection.Depth
	moved.ParentID = projection.ParentID
	flat[activeIndex] = moved

	sorted := ArrayMove(flat, activeIndex, overIndex)

	inBlock := make(map[string]struct{}, len(descendants))
	for _, d := range descendants {
		inBlock[d.ID] = struct{}{}
	}
	result := make([]model.FlattenedItem, 0, len(sorted))
	for _, entry := range sorted {
		if _, skip := inBlock[entry.ID]; skip {
			continue
		}
		result = append(result, entry)
		if entry.ID == activeID {
			result = append(result, descendants...)
		}
	}

	return Build(result)
}
