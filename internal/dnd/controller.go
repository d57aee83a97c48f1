// Package dnd holds the drag session state machine of the sortable tree.
//
// A Controller owns the authoritative forest. Hosts feed it sensor output
// (picked-up id, pointer delta, hovered id, drop, cancel) and render what it
// returns: the visible flat list and, while dragging, the live projection.
package dnd

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/pstuifzand/sortable-tree/internal/model"
	"github.com/pstuifzand/sortable-tree/internal/tree"
)

var (
	// ErrDragInProgress is returned when an action needs an idle controller.
	ErrDragInProgress = errors.New("a drag is already in progress")
	// ErrNotDragging is returned by drag events received while idle.
	ErrNotDragging = errors.New("no drag in progress")
	// ErrActionDisabled is returned by Remove and ToggleCollapse when the
	// options do not allow them.
	ErrActionDisabled = errors.New("action disabled")
)

// State of a drag session
type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Controller runs one drag session at a time over a forest.
// It is not safe for concurrent use.
type Controller struct {
	items []*model.Item
	opts  Options

	state    State
	activeID string
	overID   string
	offset   float64

	// baseline is where the active item was picked up from.
	baseline  position
	announced *position

	announcer Announcer
	log       logrus.FieldLogger
}

// NewController creates a controller for a copy of items.
func NewController(items []*model.Item, opts Options, options ...Option) (*Controller, error) {
	if opts.IndentationWidth <= 0 {
		return nil, tree.InvalidIndentationError{Width: opts.IndentationWidth}
	}
	if err := tree.Validate(items); err != nil {
		return nil, err
	}

	c := &Controller{
		items:     tree.Clone(items),
		opts:      opts,
		announcer: nopAnnouncer{},
		log:       discardLogger(),
	}
	for _, o := range options {
		o(c)
	}
	return c, nil
}

// Items returns a copy of the authoritative forest
func (c *Controller) Items() []*model.Item {
	return tree.Clone(c.items)
}

// SetItems replaces the forest. Not allowed while dragging.
func (c *Controller) SetItems(items []*model.Item) error {
	if c.state == StateDragging {
		return ErrDragInProgress
	}
	if err := tree.Validate(items); err != nil {
		return err
	}
	c.items = tree.Clone(items)
	return nil
}

func (c *Controller) Options() Options { return c.opts }

// SetOptions replaces the options. Not allowed while dragging.
func (c *Controller) SetOptions(opts Options) error {
	if c.state == StateDragging {
		return ErrDragInProgress
	}
	if opts.IndentationWidth <= 0 {
		return tree.InvalidIndentationError{Width: opts.IndentationWidth}
	}
	c.opts = opts
	return nil
}

func (c *Controller) State() State { return c.state }
func (c *Controller) ActiveID() string { return c.activeID }
func (c *Controller) OverID() string { return c.overID }
func (c *Controller) Offset() float64 { return c.offset }

// OriginParentID is the parent the dragged item was picked up from.
func (c *Controller) OriginParentID() string { return c.baseline.parentID }

// Visible returns the flat list the renderer shows: children of collapsed
// items and of the dragged item are left out.
func (c *Controller) Visible() []model.FlattenedItem {
	return tree.VisibleItems(c.items, c.activeID)
}

// Projection returns the live drop placement. ok is false when idle or when
// the pointer is over nothing.
func (c *Controller) Projection() (p model.Projection, ok bool, err error) {
	if c.state != StateDragging || c.activeID == "" || c.overID == "" {
		return model.Projection{}, false, nil
	}
	p, err = tree.Project(c.Visible(), c.activeID, c.overID, c.offset, c.opts.IndentationWidth)
	if err != nil {
		return model.Projection{}, false, err
	}
	return p, true, nil
}

// ActiveItem returns the visible entry of the dragged item
func (c *Controller) ActiveItem() (model.FlattenedItem, bool) {
	if c.state != StateDragging {
		return model.FlattenedItem{}, false
	}
	visible := c.Visible()
	idx := tree.IndexOf(visible, c.activeID)
	if idx == -1 {
		return model.FlattenedItem{}, false
	}
	return visible[idx], true
}

// ActiveChildCount is the number of items represented by the drag overlay:
// the dragged item plus all of its descendants.
func (c *Controller) ActiveChildCount() int {
	if c.state != StateDragging {
		return 0
	}
	return tree.ChildCount(c.items, c.activeID) + 1
}

// RenderDepth returns the depth an item should be drawn at: the projected
// depth for the dragged item, its own depth otherwise.
func (c *Controller) RenderDepth(item model.FlattenedItem) int {
	if item.ID == c.activeID {
		if p, ok, err := c.Projection(); err == nil && ok {
			return p.Depth
		}
	}
	return item.Depth
}

// Start picks up the item with the given id.
func (c *Controller) Start(id string) error {
	if c.state == StateDragging {
		c.log.WithField("active", c.activeID).Warn("drag start while dragging")
		return ErrDragInProgress
	}
	visible := c.Visible()
	idx := tree.IndexOf(visible, id)
	if idx == -1 {
		c.log.WithField("id", id).Warn("drag start on unknown item")
		return tree.NotFoundError{Kind: "item", ID: id}
	}

	c.state = StateDragging
	c.activeID = id
	c.overID = id
	c.offset = 0
	c.baseline = position{parentID: visible[idx].ParentID, overID: id}
	c.announced = &position{parentID: c.baseline.parentID, overID: id}

	c.log.WithFields(logrus.Fields{"active": id, "parent": c.baseline.parentID}).Debug("drag started")
	c.announcer.Announce(pickedUpMessage(id))
	return nil
}

// Move records the horizontal pointer offset relative to the drag start.
func (c *Controller) Move(deltaX float64) error {
	if c.state != StateDragging {
		return ErrNotDragging
	}
	c.offset = deltaX
	c.announceMovement(EventMove)
	return nil
}

// Over records the hovered item. An empty id means the pointer is over no
// drop target; no projection is computed until it hovers an item again.
func (c *Controller) Over(id string) error {
	if c.state != StateDragging {
		return ErrNotDragging
	}
	if id != "" && tree.IndexOf(c.Visible(), id) == -1 {
		c.log.WithField("id", id).Warn("drag over unknown item")
		return tree.NotFoundError{Kind: "item", ID: id}
	}
	c.overID = id
	c.announceMovement(EventOver)
	return nil
}

// End drops the item. The forest is replaced when a projection is
// available; either way the controller returns to idle. dropped reports
// whether the forest changed hands.
func (c *Controller) End() (dropped bool, err error) {
	if c.state != StateDragging {
		return false, ErrNotDragging
	}
	activeID, overID := c.activeID, c.overID
	p, ok, err := c.Projection()
	if err == nil && ok {
		if msg := MovementAnnouncement(c.items, activeID, overID, p, EventEnd); msg != "" {
			c.announcer.Announce(msg)
		}
	}
	c.reset()

	if err != nil {
		c.log.WithError(err).WithField("active", activeID).Warn("drop without valid projection")
		return false, err
	}
	if !ok {
		c.log.WithField("active", activeID).Debug("drag ended over nothing")
		return false, nil
	}

	items, err := tree.Drop(c.items, activeID, overID, p)
	if err != nil {
		c.log.WithError(err).WithField("active", activeID).Warn("drop failed")
		return false, err
	}
	c.items = items
	c.log.WithFields(logrus.Fields{
		"active": activeID,
		"over":   overID,
		"depth":  p.Depth,
		"parent": p.ParentID,
	}).Debug("drag ended")
	return true, nil
}

// Cancel abandons the drag without touching the forest.
func (c *Controller) Cancel() {
	if c.state != StateDragging {
		return
	}
	activeID := c.activeID
	c.reset()
	c.log.WithField("active", activeID).Debug("drag cancelled")
	c.announcer.Announce(cancelledMessage(activeID))
}

func (c *Controller) reset() {
	c.state = StateIdle
	c.activeID = ""
	c.overID = ""
	c.offset = 0
	c.baseline = position{}
	c.announced = nil
}

func (c *Controller) announceMovement(event Event) {
	p, ok, err := c.Projection()
	if err != nil || !ok {
		return
	}
	current := position{parentID: p.ParentID, overID: c.overID}
	if c.announced != nil && *c.announced == current {
		return
	}
	c.announced = &current

	if msg := MovementAnnouncement(c.items, c.activeID, c.overID, p, event); msg != "" {
		c.announcer.Announce(msg)
	}
}

// Remove deletes an item and its subtree. Unknown ids are ignored.
func (c *Controller) Remove(id string) error {
	if !c.opts.Removable {
		return ErrActionDisabled
	}
	if c.state == StateDragging {
		return ErrDragInProgress
	}
	c.items = tree.RemoveItem(c.items, id)
	return nil
}

// ToggleCollapse flips the collapsed flag of an item with children.
func (c *Controller) ToggleCollapse(id string) (bool, error) {
	if !c.opts.Collapsible {
		return false, ErrActionDisabled
	}
	if c.state == StateDragging {
		return false, ErrDragInProgress
	}
	item := tree.FindItem(c.items, id)
	if item == nil || !item.HasChildren() {
		return false, nil
	}
	c.items = tree.SetProperty(c.items, id, tree.PropertyCollapsed, func(v bool) bool { return !v })
	return true, nil
}
