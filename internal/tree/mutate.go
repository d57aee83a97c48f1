package tree

import (
	"github.com/pstuifzand/sortable-tree/internal/model"
)

// Property names a boolean field of an item that SetProperty can change.
type Property int

const (
	PropertyCollapsed Property = iota
)

// String returns the field name of the property
func (p Property) String() string {
	switch p {
	case PropertyCollapsed:
		return "collapsed"
	default:
		return "unknown"
	}
}

// ParseProperty maps a field name back to its Property
func ParseProperty(name string) (Property, bool) {
	switch name {
	case "collapsed":
		return PropertyCollapsed, true
	default:
		return 0, false
	}
}

// Clone returns a deep copy of the forest. The result is never nil.
func Clone(items []*model.Item) []*model.Item {
	result := make([]*model.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		result = append(result, &model.Item{
			ID:        item.ID,
			Children:  Clone(item.Children),
			Collapsed: item.Collapsed,
		})
	}
	return result
}

// FindItem locates an item depth-first; children are searched before the
// next sibling. Returns nil when the id is not in the forest.
func FindItem(items []*model.Item, id string) *model.Item {
	for _, item := range items {
		if item == nil {
			continue
		}
		if item.ID == id {
			return item
		}
		if found := FindItem(item.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// RemoveItem returns a copy of the forest without the item and its subtree.
// An unknown id yields an identical copy.
func RemoveItem(items []*model.Item, id string) []*model.Item {
	result := make([]*model.Item, 0, len(items))
	for _, item := range items {
		if item == nil || item.ID == id {
			continue
		}
		result = append(result, &model.Item{
			ID:        item.ID,
			Children:  RemoveItem(item.Children, id),
			Collapsed: item.Collapsed,
		})
	}
	return result
}

// UpdateItem returns a copy of the forest where fn has been applied to the
// copy of the item with the given id. fn must not touch Children.
func UpdateItem(items []*model.Item, id string, fn func(*model.Item)) []*model.Item {
	result := make([]*model.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		copied := &model.Item{
			ID:        item.ID,
			Children:  UpdateItem(item.Children, id, fn),
			Collapsed: item.Collapsed,
		}
		if item.ID == id {
			fn(copied)
		}
		result = append(result, copied)
	}
	return result
}

// SetProperty returns a copy of the forest with one boolean property of one
// item replaced by setter(old). An unknown id yields an identical copy.
func SetProperty(items []*model.Item, id string, property Property, setter func(bool) bool) []*model.Item {
	return UpdateItem(items, id, func(item *model.Item) {
		switch property {
		case PropertyCollapsed:
			item.Collapsed = setter(item.Collapsed)
		}
	})
}

// ChildCount returns the number of descendants of the item, 0 if the id is
// not in the forest.
func ChildCount(items []*model.Item, id string) int {
	item := FindItem(items, id)
	if item == nil {
		return 0
	}
	return Count(item.Children)
}
