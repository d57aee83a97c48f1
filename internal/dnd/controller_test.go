package dnd

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/sortable-tree/internal/model"
	"github.com/pstuifzand/sortable-tree/internal/tree"
)

func sampleItems() []*model.Item {
	return []*model.Item{
		model.NewItem("Home"),
		model.NewItem("Collections",
			model.NewItem("Spring"),
			model.NewItem("Summer"),
			model.NewItem("Fall"),
			model.NewItem("Winter"),
		),
		model.NewItem("About Us"),
		model.NewItem("My Account",
			model.NewItem("Addresses"),
			model.NewItem("Order History"),
		),
	}
}

type recorder struct {
	messages []string
}

func (r *recorder) Announce(message string) {
	r.messages = append(r.messages, message)
}

func newController(t *testing.T, opts Options) (*Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	c, err := NewController(sampleItems(), opts, WithAnnouncer(rec))
	require.NoError(t, err)
	return c, rec
}

func allOptions() Options {
	return Options{IndentationWidth: 50, Collapsible: true, Removable: true}
}

func childIDs(items []*model.Item, id string) []string {
	item := tree.FindItem(items, id)
	if item == nil {
		return nil
	}
	ids := make([]string, 0, len(item.Children))
	for _, child := range item.Children {
		ids = append(ids, child.ID)
	}
	return ids
}

func TestNewControllerValidates(t *testing.T) {
	_, err := NewController(sampleItems(), Options{})
	var width tree.InvalidIndentationError
	assert.True(t, errors.As(err, &width))

	dup := []*model.Item{model.NewItem("A"), model.NewItem("A")}
	_, err = NewController(dup, DefaultOptions())
	var dupErr tree.DuplicateIDError
	assert.True(t, errors.As(err, &dupErr))
}

func TestNewControllerCopiesItems(t *testing.T) {
	items := sampleItems()
	c, err := NewController(items, DefaultOptions())
	require.NoError(t, err)

	items[0].ID = "changed"
	assert.Equal(t, "Home", c.Items()[0].ID)
}

func TestDragSession(t *testing.T) {
	c, rec := newController(t, allOptions())

	require.NoError(t, c.Start("About Us"))
	assert.Equal(t, StateDragging, c.State())
	assert.Equal(t, "About Us", c.ActiveID())
	assert.Equal(t, "About Us", c.OverID())
	assert.Equal(t, "", c.OriginParentID())

	require.NoError(t, c.Over("Winter"))
	p, ok, err := c.Projection()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.Projection{Depth: 1, MinDepth: 1, MaxDepth: 2, ParentID: "Collections"}, p)

	require.NoError(t, c.Move(100))
	require.NoError(t, c.Move(110))

	active, ok := c.ActiveItem()
	require.True(t, ok)
	assert.Equal(t, 2, c.RenderDepth(active))

	dropped, err := c.End()
	require.NoError(t, err)
	assert.True(t, dropped)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, "", c.ActiveID())

	assert.Equal(t, []string{"About Us"}, childIDs(c.Items(), "Fall"))
	assert.Equal(t, []string{
		"Picked up About Us.",
		"About Us was moved after Fall.",
		"About Us was nested under Fall.",
		"About Us was dropped under Fall.",
	}, rec.messages)
}

func TestCancel(t *testing.T) {
	c, rec := newController(t, allOptions())

	require.NoError(t, c.Start("Home"))
	require.NoError(t, c.Move(50))
	c.Cancel()

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, sampleItems(), c.Items())
	assert.Equal(t, []string{
		"Picked up Home.",
		"Moving was cancelled. Home was dropped in its original position.",
	}, rec.messages)

	// cancel while idle is a no-op
	c.Cancel()
	assert.Len(t, rec.messages, 2)
}

func TestEndOverNothing(t *testing.T) {
	c, _ := newController(t, allOptions())

	require.NoError(t, c.Start("Spring"))
	require.NoError(t, c.Over(""))

	_, ok, err := c.Projection()
	require.NoError(t, err)
	assert.False(t, ok)

	dropped, err := c.End()
	require.NoError(t, err)
	assert.False(t, dropped)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, sampleItems(), c.Items())
}

func TestStateErrors(t *testing.T) {
	c, _ := newController(t, allOptions())

	assert.ErrorIs(t, c.Move(10), ErrNotDragging)
	assert.ErrorIs(t, c.Over("Home"), ErrNotDragging)
	_, err := c.End()
	assert.ErrorIs(t, err, ErrNotDragging)

	var notFound tree.NotFoundError
	assert.True(t, errors.As(c.Start("missing"), &notFound))
	assert.Equal(t, StateIdle, c.State())

	require.NoError(t, c.Start("Home"))
	assert.ErrorIs(t, c.Start("About Us"), ErrDragInProgress)
	assert.Equal(t, "Home", c.ActiveID())

	assert.True(t, errors.As(c.Over("missing"), &notFound))
	assert.Equal(t, "Home", c.OverID())

	assert.ErrorIs(t, c.SetItems(sampleItems()), ErrDragInProgress)
}

func TestDragHidesActiveChildren(t *testing.T) {
	c, _ := newController(t, allOptions())

	require.NoError(t, c.Start("Collections"))
	assert.Equal(t, []string{"Home", "Collections", "About Us", "My Account", "Addresses", "Order History"},
		tree.IDs(c.Visible()))
	assert.Equal(t, 5, c.ActiveChildCount())

	var notFound tree.NotFoundError
	assert.True(t, errors.As(c.Over("Spring"), &notFound))

	require.NoError(t, c.Over("About Us"))
	dropped, err := c.End()
	require.NoError(t, err)
	require.True(t, dropped)

	items := c.Items()
	assert.Equal(t, "About Us", items[1].ID)
	assert.Equal(t, "Collections", items[2].ID)
	assert.Equal(t, []string{"Spring", "Summer", "Fall", "Winter"}, childIDs(items, "Collections"))
	assert.Equal(t, 0, c.ActiveChildCount())
}

func TestStartOnHiddenItem(t *testing.T) {
	c, _ := newController(t, allOptions())

	changed, err := c.ToggleCollapse("My Account")
	require.NoError(t, err)
	require.True(t, changed)

	var notFound tree.NotFoundError
	assert.True(t, errors.As(c.Start("Addresses"), &notFound))
}

func TestRemove(t *testing.T) {
	c, _ := newController(t, allOptions())

	require.NoError(t, c.Remove("Collections"))
	assert.Equal(t, 5, tree.Count(c.Items()))

	require.NoError(t, c.Remove("missing"))
	assert.Equal(t, 5, tree.Count(c.Items()))

	require.NoError(t, c.Start("Home"))
	assert.ErrorIs(t, c.Remove("Home"), ErrDragInProgress)

	disabled, _ := newController(t, DefaultOptions())
	assert.ErrorIs(t, disabled.Remove("Home"), ErrActionDisabled)
}

func TestToggleCollapse(t *testing.T) {
	c, _ := newController(t, allOptions())

	changed, err := c.ToggleCollapse("Home")
	require.NoError(t, err)
	assert.False(t, changed, "leaves cannot collapse")

	changed, err = c.ToggleCollapse("Collections")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, tree.FindItem(c.Items(), "Collections").Collapsed)
	assert.Equal(t, -1, tree.IndexOf(c.Visible(), "Spring"))

	changed, err = c.ToggleCollapse("Collections")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, sampleItems(), c.Items())

	disabled, _ := newController(t, DefaultOptions())
	_, err = disabled.ToggleCollapse("Collections")
	assert.ErrorIs(t, err, ErrActionDisabled)
}

func TestLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	c, err := NewController(sampleItems(), DefaultOptions(), WithLogger(logger))
	require.NoError(t, err)

	require.Error(t, c.Start("missing"))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "missing", hook.LastEntry().Data["id"])

	require.NoError(t, c.Start("Home"))
	assert.Equal(t, "drag started", hook.LastEntry().Message)

	c.Cancel()
	assert.Equal(t, "drag cancelled", hook.LastEntry().Message)
}

func TestSetOptions(t *testing.T) {
	c, _ := newController(t, DefaultOptions())

	var invalid tree.InvalidIndentationError
	assert.ErrorAs(t, c.SetOptions(Options{IndentationWidth: 0}), &invalid)
	assert.Equal(t, DefaultOptions(), c.Options())

	require.NoError(t, c.SetOptions(allOptions()))
	assert.Equal(t, allOptions(), c.Options())

	require.NoError(t, c.Start("Home"))
	assert.ErrorIs(t, c.SetOptions(DefaultOptions()), ErrDragInProgress)
	assert.Equal(t, allOptions(), c.Options())
}
