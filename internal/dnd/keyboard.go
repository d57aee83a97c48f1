package dnd

import (
	"github.com/pstuifzand/sortable-tree/internal/tree"
)

// Direction of a keyboard drag step
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

// KeyboardStep moves the drag one step with the keyboard.
//
// Up and down hover the previous or next visible item. Left and right change
// the offset by one indentation width, but only while the projected depth
// can still follow.
func (c *Controller) KeyboardStep(dir Direction) error {
	if c.state != StateDragging {
		return ErrNotDragging
	}

	switch dir {
	case DirectionUp, DirectionDown:
		visible := c.Visible()
		current := c.overID
		if current == "" {
			current = c.activeID
		}
		idx := tree.IndexOf(visible, current)
		if dir == DirectionUp {
			idx--
		} else {
			idx++
		}
		if idx < 0 || idx >= len(visible) {
			return nil
		}
		return c.Over(visible[idx].ID)

	case DirectionLeft, DirectionRight:
		p, ok, err := c.Projection()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if dir == DirectionRight && p.Depth < p.MaxDepth {
			return c.Move(c.snapOffset(p.Depth + 1))
		}
		if dir == DirectionLeft && p.Depth > p.MinDepth {
			return c.Move(c.snapOffset(p.Depth - 1))
		}
	}
	return nil
}

// snapOffset returns the offset that projects the active item to depth.
func (c *Controller) snapOffset(depth int) float64 {
	item, ok := c.ActiveItem()
	if !ok {
		return c.offset
	}
	return float64((depth - item.Depth) * c.opts.IndentationWidth)
}
