package dnd

import (
	"fmt"

	"github.com/pstuifzand/sortable-tree/internal/model"
	"github.com/pstuifzand/sortable-tree/internal/tree"
)

// Announcer receives the screen-reader style messages describing a drag.
type Announcer interface {
	Announce(message string)
}

// AnnouncerFunc adapts a function to the Announcer interface.
type AnnouncerFunc func(message string)

func (f AnnouncerFunc) Announce(message string) {
	f(message)
}

type nopAnnouncer struct{}

func (nopAnnouncer) Announce(string) {}

// Event identifies the drag event an announcement describes.
type Event int

const (
	EventMove Event = iota
	EventOver
	EventEnd
)

// position is the last announced placement of the dragged item.
type position struct {
	parentID string
	overID   string
}

func pickedUpMessage(activeID string) string {
	return fmt.Sprintf("Picked up %s.", activeID)
}

func cancelledMessage(activeID string) string {
	return fmt.Sprintf("Moving was cancelled. %s was dropped in its original position.", activeID)
}

// MovementAnnouncement describes where the active item would land, relative
// to its neighbours in the full (unfiltered) list. It returns an empty string
// when there is nothing to say.
func MovementAnnouncement(items []*model.Item, activeID, overID string, projection model.Projection, event Event) string {
	flat := tree.Flatten(items)
	overIndex := tree.IndexOf(flat, overID)
	activeIndex := tree.IndexOf(flat, activeID)
	if overIndex == -1 || activeIndex == -1 {
		return ""
	}
	sorted := tree.ArrayMove(flat, activeIndex, overIndex)

	movedVerb, nestedVerb := "moved", "nested"
	if event == EventEnd {
		movedVerb, nestedVerb = "dropped", "dropped"
	}

	if overIndex == 0 {
		if len(sorted) < 2 {
			return ""
		}
		return fmt.Sprintf("%s was %s before %s.", activeID, movedVerb, sorted[1].ID)
	}

	previous := sorted[overIndex-1]
	if projection.Depth > previous.Depth {
		return fmt.Sprintf("%s was %s under %s.", activeID, nestedVerb, previous.ID)
	}

	sibling := &previous
	for sibling != nil && projection.Depth < sibling.Depth {
		idx := tree.IndexOf(sorted, sibling.ParentID)
		if idx == -1 {
			sibling = nil
			break
		}
		sibling = &sorted[idx]
	}
	if sibling == nil {
		return ""
	}
	return fmt.Sprintf("%s was %s after %s.", activeID, movedVerb, sibling.ID)
}
