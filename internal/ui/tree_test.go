package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/sortable-tree/internal/dnd"
	"github.com/pstuifzand/sortable-tree/internal/model"
)

func testForest() []*model.Item {
	return []*model.Item{
		model.NewItem("A", model.NewItem("A1"), model.NewItem("A2")),
		model.NewItem("B"),
	}
}

func newTestView(t *testing.T, opts dnd.Options) (*TreeView, *dnd.Controller) {
	t.Helper()
	ctrl, err := dnd.NewController(testForest(), opts)
	require.NoError(t, err)
	return NewTreeView(ctrl, 2), ctrl
}

func newSimScreen(t *testing.T, width, height int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFromTcell(sim, nil)
	require.NoError(t, err)
	sim.SetSize(width, height)
	t.Cleanup(func() { screen.Close() })
	return screen, sim
}

// screenLine returns the text on row y with trailing blanks removed
func screenLine(sim tcell.SimulationScreen, y int) string {
	cells, width, _ := sim.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		cell := cells[y*width+x]
		if len(cell.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(cell.Runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func rowIDs(rows []model.FlattenedItem) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func TestTreeViewRender(t *testing.T) {
	tv, _ := newTestView(t, dnd.Options{IndentationWidth: 10, Collapsible: true})
	screen, sim := newSimScreen(t, 40, 10)

	tv.Render(screen, 0)
	screen.Show()

	assert.Equal(t, "▼ A", screenLine(sim, 0))
	assert.Equal(t, "  • A1", screenLine(sim, 1))
	assert.Equal(t, "  • A2", screenLine(sim, 2))
	assert.Equal(t, "• B", screenLine(sim, 3))
	assert.Equal(t, "", screenLine(sim, 4))
}

func TestTreeViewRenderCollapsed(t *testing.T) {
	tv, ctrl := newTestView(t, dnd.Options{IndentationWidth: 10, Collapsible: true})
	screen, sim := newSimScreen(t, 40, 10)

	_, err := ctrl.ToggleCollapse("A")
	require.NoError(t, err)
	tv.Render(screen, 0)
	screen.Show()

	assert.Equal(t, "▶ A (2)", screenLine(sim, 0))
	assert.Equal(t, "• B", screenLine(sim, 1))
}

func TestTreeViewRowsWhileDragging(t *testing.T) {
	tv, ctrl := newTestView(t, dnd.Options{IndentationWidth: 10})

	require.NoError(t, ctrl.Start("B"))
	assert.Equal(t, []string{"A", "A1", "A2", "B"}, rowIDs(tv.Rows()))

	require.NoError(t, ctrl.Over("A2"))
	assert.Equal(t, []string{"A", "A1", "B", "A2"}, rowIDs(tv.Rows()))

	require.NoError(t, ctrl.Over(""))
	assert.Equal(t, []string{"A", "A1", "A2", "B"}, rowIDs(tv.Rows()))
}

func TestTreeViewRenderDragClone(t *testing.T) {
	tv, ctrl := newTestView(t, dnd.Options{IndentationWidth: 10})
	screen, sim := newSimScreen(t, 40, 10)

	require.NoError(t, ctrl.Start("B"))
	require.NoError(t, ctrl.Over("A2"))
	tv.Render(screen, 0)
	screen.Show()

	// B is clamped to the depth of A2, the item below it
	assert.Equal(t, "  ≡ B", screenLine(sim, 2))
	assert.Equal(t, "  • A2", screenLine(sim, 3))
}

func TestTreeViewRenderDragSubtree(t *testing.T) {
	tv, ctrl := newTestView(t, dnd.Options{IndentationWidth: 10})
	screen, sim := newSimScreen(t, 40, 10)

	require.NoError(t, ctrl.Start("A"))
	tv.Render(screen, 0)
	screen.Show()

	assert.Equal(t, "≡ A [3]", screenLine(sim, 0))
	assert.Equal(t, "• B", screenLine(sim, 1))
}

func TestTreeViewRenderIndicator(t *testing.T) {
	tv, ctrl := newTestView(t, dnd.Options{IndentationWidth: 10, Indicator: true})
	screen, sim := newSimScreen(t, 40, 10)

	require.NoError(t, ctrl.Start("B"))
	require.NoError(t, ctrl.Over("A2"))
	tv.Render(screen, 0)
	screen.Show()

	line := screenLine(sim, 2)
	assert.True(t, strings.HasPrefix(line, "  ●──"), line)
	assert.True(t, strings.HasSuffix(line, " B"), line)
}

func TestTreeViewItemAt(t *testing.T) {
	tv, _ := newTestView(t, dnd.Options{IndentationWidth: 10})
	screen, _ := newSimScreen(t, 40, 10)

	tv.Render(screen, 1)

	_, ok := tv.ItemAt(0)
	assert.False(t, ok)

	id, ok := tv.ItemAt(1)
	assert.True(t, ok)
	assert.Equal(t, "A", id)

	id, ok = tv.ItemAt(4)
	assert.True(t, ok)
	assert.Equal(t, "B", id)

	_, ok = tv.ItemAt(5)
	assert.False(t, ok)
}

func TestTreeViewScrollsToSelection(t *testing.T) {
	tv, _ := newTestView(t, dnd.Options{IndentationWidth: 10})
	// three rows for items, one for the status line
	screen, sim := newSimScreen(t, 40, 4)

	tv.SelectLast()
	tv.Render(screen, 0)
	screen.Show()

	id, ok := tv.ItemAt(0)
	require.True(t, ok)
	assert.Equal(t, "A1", id)
	assert.Equal(t, "• B", screenLine(sim, 2))
}

func TestTreeViewSelection(t *testing.T) {
	tv, ctrl := newTestView(t, dnd.Options{IndentationWidth: 10, Collapsible: true})

	assert.Equal(t, "A", tv.Selected())

	tv.SelectNext()
	tv.SelectNext()
	assert.Equal(t, "A2", tv.Selected())
	assert.Equal(t, 2, tv.SelectedIndex())

	tv.SelectLast()
	tv.SelectNext()
	assert.Equal(t, "B", tv.Selected())

	tv.SelectFirst()
	tv.SelectPrev()
	assert.Equal(t, "A", tv.Selected())

	assert.True(t, tv.SelectID("A1"))
	assert.False(t, tv.SelectID("missing"))
	assert.True(t, tv.SelectParent())
	assert.Equal(t, "A", tv.Selected())
	assert.False(t, tv.SelectParent())

	// collapsing hides the cursor; it moves to the nearest visible ancestor
	require.True(t, tv.SelectID("A2"))
	_, err := ctrl.ToggleCollapse("A")
	require.NoError(t, err)
	assert.Equal(t, "A", tv.Selected())

	// removing the selected item moves the cursor to the row in its place
	require.NoError(t, ctrl.SetOptions(dnd.Options{IndentationWidth: 10, Removable: true}))
	require.True(t, tv.SelectID("B"))
	require.NoError(t, ctrl.Remove("B"))
	assert.Equal(t, "A", tv.Selected())
	assert.Equal(t, 0, tv.SelectedIndex())
}
