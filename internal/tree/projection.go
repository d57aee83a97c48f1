package tree

import (
	"math"

	"github.com/pstuifzand/sortable-tree/internal/model"
)

// DragDepth converts a horizontal pointer offset into a number of nesting
// levels. Halves round away from zero.
func DragDepth(offset float64, indentationWidth int) int {
	return int(math.Round(offset / float64(indentationWidth)))
}

// Project computes where the active item lands if it is dropped over the
// hovered item with the given horizontal offset.
//
// items is the visible flat list. Both ids must be present in it, otherwise a
// NotFoundError is returned: the caller's ids and the list are out of sync.
func Project(items []model.FlattenedItem, activeID, overID string, dragOffset float64, indentationWidth int) (model.Projection, error) {
	if indentationWidth <= 0 {
		return model.Projection{}, InvalidIndentationError{Width: indentationWidth}
	}

	overIndex := IndexOf(items, overID)
	if overIndex == -1 {
		return model.Projection{}, NotFoundError{Kind: "over item", ID: overID}
	}
	activeIndex := IndexOf(items, activeID)
	if activeIndex == -1 {
		return model.Projection{}, NotFoundError{Kind: "active item", ID: activeID}
	}
	activeItem := items[activeIndex]

	// The list as it would look with the active item dropped in place of the
	// hovered one.
	newItems := ArrayMove(items, activeIndex, overIndex)

	var previous, next *model.FlattenedItem
	if overIndex > 0 {
		previous = &newItems[overIndex-1]
	}
	if overIndex+1 < len(newItems) {
		next = &newItems[overIndex+1]
	}

	maxDepth := 0
	if previous != nil {
		maxDepth = previous.Depth + 1
	}
	minDepth := 0
	if next != nil {
		minDepth = next.Depth
	}

	projected := activeItem.Depth + DragDepth(dragOffset, indentationWidth)
	depth := projected
	if projected >= maxDepth {
		depth = maxDepth
	} else if projected < minDepth {
		depth = minDepth
	}

	parentID, err := resolveParent(newItems, overIndex, previous, depth)
	if err != nil {
		return model.Projection{}, err
	}

	return model.Projection{
		Depth:    depth,
		MinDepth: minDepth,
		MaxDepth: maxDepth,
		ParentID: parentID,
	}, nil
}

func resolveParent(newItems []model.FlattenedItem, overIndex int, previous *model.FlattenedItem, depth int) (string, error) {
	if depth == 0 || previous == nil {
		return "", nil
	}
	if depth == previous.Depth {
		return previous.ParentID, nil
	}
	if depth > previous.Depth {
		return previous.ID, nil
	}

	// Shallower than the previous item: the nearest item above at the target
	// depth is the new sibling, its parent is ours.
	for i := overIndex - 1; i >= 0; i-- {
		if newItems[i].Depth == depth {
			if newItems[i].ParentID == "" {
				break
			}
			return newItems[i].ParentID, nil
		}
	}
	return "", ErrAncestorNotFound
}
