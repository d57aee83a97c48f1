package tree

import (
	"errors"
	"fmt"
)

// ErrAncestorNotFound is returned by Project when no item at the target depth
// precedes the drop position. It only happens for malformed flat lists.
var ErrAncestorNotFound = errors.New("no ancestor at target depth")

// NotFoundError reports an id that is required but missing from a list.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// OrphanError reports a flat item whose parent does not appear before it.
type OrphanError struct {
	ID       string
	ParentID string
}

func (e OrphanError) Error() string {
	return fmt.Sprintf("item %s references parent %s before it is defined", e.ID, e.ParentID)
}

type DuplicateIDError struct {
	ID string
}

func (e DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate item id: %s", e.ID)
}

type EmptyIDError struct {
	// Path lists the ids of the ancestors of the offending item.
	Path []string
}

func (e EmptyIDError) Error() string {
	if len(e.Path) == 0 {
		return "item with empty id at top level"
	}
	return fmt.Sprintf("item with empty id under %s", e.Path[len(e.Path)-1])
}

type InvalidIndentationError struct {
	Width int
}

func (e InvalidIndentationError) Error() string {
	return fmt.Sprintf("indentation width must be positive, got %d", e.Width)
}

// InvalidDropError reports a drop onto one of the dragged item's descendants.
type InvalidDropError struct {
	ActiveID string
	OverID   string
}

func (e InvalidDropError) Error() string {
	return fmt.Sprintf("cannot drop %s inside its own subtree at %s", e.ActiveID, e.OverID)
}
