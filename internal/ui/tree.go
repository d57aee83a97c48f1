package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/sortable-tree/internal/dnd"
	"github.com/pstuifzand/sortable-tree/internal/model"
	"github.com/pstuifzand/sortable-tree/internal/tree"
)

// TreeView renders the controller's forest and keeps the cursor.
//
// While a drag is in progress the rows are shown in their sorted order:
// the dragged item sits in the place of the hovered item, indented to the
// projected depth.
type TreeView struct {
	ctrl           *dnd.Controller
	indent         int
	selectedID     string
	selectedIndex  int // row of selectedID when last seen
	viewportOffset int

	// ids of the rows drawn by the last Render, top to bottom
	rows   []string
	startY int
}

// NewTreeView creates a view on ctrl; indent is the number of cells per level.
func NewTreeView(ctrl *dnd.Controller, indent int) *TreeView {
	if indent <= 0 {
		indent = 2
	}
	tv := &TreeView{
		ctrl:   ctrl,
		indent: indent,
	}
	tv.ensureSelection()
	return tv
}

// Rows returns the flat items in display order
func (tv *TreeView) Rows() []model.FlattenedItem {
	visible := tv.ctrl.Visible()
	if tv.ctrl.State() != dnd.StateDragging || tv.ctrl.OverID() == "" {
		return visible
	}
	activeIndex := tree.IndexOf(visible, tv.ctrl.ActiveID())
	overIndex := tree.IndexOf(visible, tv.ctrl.OverID())
	if activeIndex == -1 || overIndex == -1 {
		return visible
	}
	return tree.ArrayMove(visible, activeIndex, overIndex)
}

// ensureSelection moves the cursor to the nearest visible ancestor when the
// selected item got hidden, or to the row that took its place when it
// disappeared.
func (tv *TreeView) ensureSelection() {
	visible := tv.ctrl.Visible()
	if len(visible) == 0 {
		tv.selectedID = ""
		return
	}
	if idx := tree.IndexOf(visible, tv.selectedID); idx != -1 {
		tv.selectedIndex = idx
		return
	}
	for _, ancestor := range tree.Ancestors(tv.ctrl.Items(), tv.selectedID) {
		if idx := tree.IndexOf(visible, ancestor); idx != -1 {
			tv.selectedID = ancestor
			tv.selectedIndex = idx
			return
		}
	}
	tv.selectIndex(tv.selectedIndex)
}

// Selected returns the id under the cursor, "" for an empty forest
func (tv *TreeView) Selected() string {
	tv.ensureSelection()
	return tv.selectedID
}

// SelectedIndex returns the row of the cursor in the visible list
func (tv *TreeView) SelectedIndex() int {
	tv.ensureSelection()
	return tree.IndexOf(tv.ctrl.Visible(), tv.selectedID)
}

// SelectID moves the cursor to id if it is visible
func (tv *TreeView) SelectID(id string) bool {
	idx := tree.IndexOf(tv.ctrl.Visible(), id)
	if idx == -1 {
		return false
	}
	tv.selectedID = id
	tv.selectedIndex = idx
	return true
}

func (tv *TreeView) selectIndex(idx int) {
	visible := tv.ctrl.Visible()
	if len(visible) == 0 {
		return
	}
	idx = max(0, min(idx, len(visible)-1))
	tv.selectedID = visible[idx].ID
	tv.selectedIndex = idx
}

// SelectNext moves selection down
func (tv *TreeView) SelectNext() {
	tv.selectIndex(tv.SelectedIndex() + 1)
}

// SelectPrev moves selection up
func (tv *TreeView) SelectPrev() {
	tv.selectIndex(tv.SelectedIndex() - 1)
}

func (tv *TreeView) SelectFirst() {
	tv.selectIndex(0)
}

func (tv *TreeView) SelectLast() {
	tv.selectIndex(len(tv.ctrl.Visible()) - 1)
}

// SelectParent moves the cursor to the parent of the selected item
func (tv *TreeView) SelectParent() bool {
	visible := tv.ctrl.Visible()
	idx := tree.IndexOf(visible, tv.Selected())
	if idx == -1 || visible[idx].ParentID == "" {
		return false
	}
	return tv.SelectID(visible[idx].ParentID)
}

// ItemAt returns the id of the row drawn at screen line y
func (tv *TreeView) ItemAt(y int) (string, bool) {
	row := y - tv.startY
	if row < 0 || row >= len(tv.rows) {
		return "", false
	}
	return tv.rows[row], true
}

// Render draws the rows from startY down to the line above the status bar
func (tv *TreeView) Render(screen *Screen, startY int) {
	rows := tv.Rows()
	dragging := tv.ctrl.State() == dnd.StateDragging
	opts := tv.ctrl.Options()
	viewportHeight := max(screen.GetHeight()-startY-1, 1)

	// Keep the cursor (or the dragged item) in view
	focus := tv.Selected()
	if dragging {
		focus = tv.ctrl.ActiveID()
	}
	focusIdx := tree.IndexOf(rows, focus)
	if focusIdx < tv.viewportOffset {
		tv.viewportOffset = max(focusIdx, 0)
	} else if focusIdx >= tv.viewportOffset+viewportHeight {
		tv.viewportOffset = focusIdx - viewportHeight + 1
	}
	tv.viewportOffset = max(0, min(tv.viewportOffset, len(rows)-viewportHeight))

	tv.startY = startY
	tv.rows = tv.rows[:0]

	y := startY
	for i := tv.viewportOffset; i < len(rows) && y < startY+viewportHeight; i++ {
		item := rows[i]
		tv.rows = append(tv.rows, item.ID)

		switch {
		case dragging && item.ID == tv.ctrl.ActiveID():
			tv.renderActive(screen, item, y, opts.Indicator)
		case dragging && item.ID == tv.ctrl.OverID():
			tv.renderItem(screen, item, y, screen.DragOverStyle(), opts.Collapsible)
		case !dragging && item.ID == tv.selectedID:
			tv.renderItem(screen, item, y, screen.TreeSelectedStyle(), opts.Collapsible)
		default:
			tv.renderItem(screen, item, y, screen.TreeNormalStyle(), opts.Collapsible)
		}
		y++
	}

	for ; y < startY+viewportHeight; y++ {
		screen.FillLine(0, y, DefaultStyle())
	}
}

func (tv *TreeView) renderItem(screen *Screen, item model.FlattenedItem, y int, style tcell.Style, collapsible bool) {
	x := item.Depth * tv.indent
	screen.FillLine(0, y, DefaultStyle())

	hasChildren := len(item.Children) > 0
	arrow := "•"
	if hasChildren && collapsible {
		arrow = "▼"
		if item.Collapsed {
			arrow = "▶"
		}
	}
	x = screen.DrawString(x, y, arrow, screen.TreeArrowStyle(hasChildren, item.Collapsed))
	x = screen.DrawString(x, y, " ", DefaultStyle())
	x = screen.DrawStringLimited(x, y, item.ID, screen.GetWidth()-x, style)

	if hasChildren && item.Collapsed {
		screen.DrawString(x, y, fmt.Sprintf(" (%d)", tree.Count(item.Children)), screen.TreeChildCountStyle())
	}
}

// renderActive draws the dragged item at its projected depth, as a clone of
// the row or as an insertion line.
func (tv *TreeView) renderActive(screen *Screen, item model.FlattenedItem, y int, indicator bool) {
	depth := tv.ctrl.RenderDepth(item)
	x := depth * tv.indent
	screen.FillLine(0, y, DefaultStyle())

	label := item.ID
	if count := tv.ctrl.ActiveChildCount(); count > 1 {
		label = fmt.Sprintf("%s [%d]", label, count)
	}

	if indicator {
		x = screen.DrawString(x, y, "●", screen.DragIndicatorStyle())
		width := screen.GetWidth() - x - StringWidth(label) - 2
		if width > 0 {
			x = screen.DrawString(x, y, strings.Repeat("─", width), screen.DragIndicatorStyle())
		}
		screen.DrawStringLimited(x+1, y, label, screen.GetWidth()-x-1, screen.DragGhostStyle())
		return
	}

	x = screen.DrawString(x, y, "≡ ", screen.DragActiveStyle())
	screen.DrawStringLimited(x, y, label, screen.GetWidth()-x, screen.DragActiveStyle())
}
