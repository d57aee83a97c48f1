package tree

import (
	"github.com/pstuifzand/sortable-tree/internal/model"
)

// Validate checks that every item has a non-empty id and that no id is used
// twice in the whole forest.
func Validate(items []*model.Item) error {
	seen := make(map[string]struct{})
	return validate(items, nil, seen)
}

func validate(items []*model.Item, path []string, seen map[string]struct{}) error {
	for _, item := range items {
		if item == nil {
			continue
		}
		if item.ID == "" {
			return EmptyIDError{Path: append([]string(nil), path...)}
		}
		if _, dup := seen[item.ID]; dup {
			return DuplicateIDError{ID: item.ID}
		}
		seen[item.ID] = struct{}{}
		if err := validate(item.Children, append(path, item.ID), seen); err != nil {
			return err
		}
	}
	return nil
}
