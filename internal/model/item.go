// Package model contains the data types shared by the tree, the drag session
// and the hosts that render them.
package model

// Item represents a single node in the tree. The topology is stored
// implicitly through Children.
type Item struct {
	ID        string  `json:"id" yaml:"id"`
	Children  []*Item `json:"children" yaml:"children"`
	Collapsed bool    `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
}

// NewItem creates a new leaf item with the given id
func NewItem(id string, children ...*Item) *Item {
	if children == nil {
		children = make([]*Item, 0)
	}
	return &Item{
		ID:       id,
		Children: children,
	}
}

// HasChildren reports whether the item has at least one child
func (i *Item) HasChildren() bool {
	return i != nil && len(i.Children) > 0
}

// FlattenedItem is an item that stores its position explicitly.
//
// ParentID is empty for top-level items. Depth is 0 for top-level items and
// parent depth + 1 otherwise. Index is the 0-based position among siblings.
type FlattenedItem struct {
	ID        string  `json:"id" yaml:"id"`
	Children  []*Item `json:"children" yaml:"children"`
	Collapsed bool    `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
	ParentID  string  `json:"parentId" yaml:"parentId"`
	Depth     int     `json:"depth" yaml:"depth"`
	Index     int     `json:"index" yaml:"index"`
}

// IsRoot reports whether the item sits at the top level
func (f FlattenedItem) IsRoot() bool {
	return f.ParentID == ""
}

// Projection is the legal placement computed for a drop in progress.
// MinDepth <= Depth <= MaxDepth always holds.
type Projection struct {
	Depth    int    `json:"depth" yaml:"depth"`
	MinDepth int    `json:"minDepth" yaml:"minDepth"`
	MaxDepth int    `json:"maxDepth" yaml:"maxDepth"`
	ParentID string `json:"parentId" yaml:"parentId"`
}
