package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/pstuifzand/sortable-tree/internal/config"
	"github.com/pstuifzand/sortable-tree/internal/dnd"
	"github.com/pstuifzand/sortable-tree/internal/model"
	"github.com/pstuifzand/sortable-tree/internal/theme"
	"github.com/pstuifzand/sortable-tree/internal/tree"
	"github.com/pstuifzand/sortable-tree/internal/ui"
)

const statusTimeout = 3 * time.Second

// mouseState tracks a press of the primary button until its release
type mouseState struct {
	down     bool
	pressX   int
	pressY   int
	pressID  string
	dragging bool
}

// App is the main application controller
type App struct {
	screen  *ui.Screen
	ctrl    *dnd.Controller
	cfg     *config.Config
	log     logrus.FieldLogger
	source  string
	initial []*model.Item

	tree    *ui.TreeView
	search  *ui.Search
	help    *ui.HelpScreen
	command *ui.CommandMode
	live    *ui.LiveRegion

	idleKeys map[rune]KeyBinding
	dragKeys map[rune]KeyBinding

	statusMsg   string
	statusError bool
	statusTime  time.Time
	mouse       mouseState
	quit        bool
	debugMode   bool
}

// NewApp creates the terminal application for items. source names the
// forest in the header.
func NewApp(items []*model.Item, source string, cfg *config.Config, logger logrus.FieldLogger) (*App, error) {
	screen, err := ui.NewScreen(theme.LoadThemeOrDefault(cfg.Theme))
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	a, err := newApp(screen, items, source, cfg, logger)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return a, nil
}

func newApp(screen *ui.Screen, items []*model.Item, source string, cfg *config.Config, logger logrus.FieldLogger) (*App, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	a := &App{
		screen:     screen,
		cfg:        cfg,
		log:        logger,
		source:     source,
		initial:    tree.Clone(items),
		search:     ui.NewSearch(),
		help:       ui.NewHelpScreen(),
		command:    ui.NewCommandMode(),
		live:       ui.NewLiveRegion(50),
		statusMsg:  "Ready",
		statusTime: time.Now(),
	}

	opts, err := a.treeOptions()
	if err != nil {
		return nil, err
	}
	a.ctrl, err = dnd.NewController(items, opts,
		dnd.WithLogger(logger.WithField("component", "dnd")),
		dnd.WithAnnouncer(a.live),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drag controller: %w", err)
	}
	a.tree = ui.NewTreeView(a.ctrl, cfg.TUI.Indent)
	a.command.SetCompleter(completeCommand)

	idle, drag := a.InitializeKeybindings()
	a.idleKeys = bindingMap(idle)
	a.dragKeys = bindingMap(drag)
	a.help.AddSection("Tree", helpInfo(idle))
	a.help.AddSection("While dragging", helpInfo(drag))
	a.help.AddSection("Mouse", helpInfo(mouseHelp))

	if cfg.TUI.Mouse {
		screen.EnableMouse()
	}

	return a, nil
}

// treeOptions returns the configured options with the indentation width of
// the terminal: one level is cfg.TUI.Indent cells wide.
func (a *App) treeOptions() (dnd.Options, error) {
	opts, err := a.cfg.TreeOptions()
	if err != nil {
		return opts, err
	}
	opts.IndentationWidth = a.cfg.TUI.Indent
	if opts.IndentationWidth <= 0 {
		opts.IndentationWidth = 4
	}
	return opts, nil
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	eventChan := make(chan tcell.Event)

	go func() {
		for {
			event := a.screen.PollEvent()
			eventChan <- event
			if event == nil {
				break
			}
		}
	}()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	a.log.WithField("items", tree.Count(a.ctrl.Items())).Info("tui started")
	for !a.quit {
		select {
		case ev := <-eventChan:
			if ev == nil {
				a.quit = true
				continue
			}
			a.handleRawEvent(ev)
		case <-ticker.C:
			a.render()
		}
	}
	a.log.Info("tui stopped")

	return nil
}

// Close closes the application
func (a *App) Close() error {
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// Controller exposes the drag controller driven by the app
func (a *App) Controller() *dnd.Controller {
	return a.ctrl
}

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()

	width := a.screen.GetWidth()
	height := a.screen.GetHeight()

	header := fmt.Sprintf(" %s (%d items) ", a.source, tree.Count(a.ctrl.Items()))
	a.screen.DrawStringLimited(0, 0, header, width, a.screen.HeaderStyle())

	a.tree.Render(a.screen, 1)

	switch {
	case a.search.IsActive():
		a.search.Render(a.screen, height-1)
	case a.command.IsActive():
		a.command.Render(a.screen, height-1)
	default:
		a.renderStatus(height - 1)
	}

	a.help.Render(a.screen)
	a.screen.Show()
}

func (a *App) renderStatus(y int) {
	mode := "-- TREE --"
	if a.ctrl.State() == dnd.StateDragging {
		mode = "-- DRAG --"
	}
	x := a.screen.DrawString(0, y, mode, a.screen.StatusModeStyle())
	x++

	msg, style := a.statusLine()
	if msg != "" {
		x = a.screen.DrawStringLimited(x, y, msg, a.screen.GetWidth()-x, style)
	}

	if info := a.projectionInfo(); info != "" {
		start := a.screen.GetWidth() - ui.StringWidth(info) - 1
		if start > x {
			a.screen.DrawString(start, y, info, a.screen.StatusMessageStyle())
		}
	}
}

// statusLine picks the message for the status bar: a fresh status message,
// else the latest announcement.
func (a *App) statusLine() (string, tcell.Style) {
	if a.statusMsg != "" && a.statusMsg != "Ready" && time.Since(a.statusTime) <= statusTimeout {
		if a.statusError {
			return a.statusMsg, a.screen.StatusErrorStyle()
		}
		return a.statusMsg, a.screen.StatusMessageStyle()
	}
	if msg, ok := a.live.Latest(statusTimeout); ok {
		return msg, a.screen.StatusMessageStyle()
	}
	return "", a.screen.StatusMessageStyle()
}

// projectionInfo describes the live drop target while dragging
func (a *App) projectionInfo() string {
	p, ok, err := a.ctrl.Projection()
	if err != nil {
		return "no valid drop"
	}
	if !ok {
		return ""
	}
	parent := "top level"
	if p.ParentID != "" {
		parent = "under " + p.ParentID
	}
	info := fmt.Sprintf("depth %d [%d-%d] %s", p.Depth, p.MinDepth, p.MaxDepth, parent)
	if a.debugMode {
		info += fmt.Sprintf(" offset %.0f", a.ctrl.Offset())
	}
	return info
}

// handleRawEvent processes raw input events
func (a *App) handleRawEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventMouse:
		if !a.search.IsActive() && !a.command.IsActive() && !a.help.IsVisible() {
			a.handleMouse(ev)
		}
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if a.debugMode {
		a.SetStatus(fmt.Sprintf("Key: %v | Rune: %q | Modifiers: %v", ev.Key(), ev.Rune(), ev.Modifiers()))
	}

	if a.command.IsActive() {
		if cmd, done := a.command.HandleKey(ev); done {
			a.handleCommand(cmd)
		}
		return
	}

	if a.search.IsActive() {
		if id, done := a.search.HandleKey(ev); done && id != "" {
			a.jumpTo(id)
		}
		return
	}

	if a.help.IsVisible() {
		if ev.Key() == tcell.KeyEscape || ev.Rune() == '?' || ev.Rune() == 'q' {
			a.help.Hide()
		}
		return
	}

	if ev.Key() == tcell.KeyCtrlC {
		a.Quit()
		return
	}

	r, ok := keyRune(ev)
	if !ok {
		return
	}
	bindings := a.idleKeys
	if a.ctrl.State() == dnd.StateDragging {
		bindings = a.dragKeys
	}
	if kb, ok := bindings[r]; ok {
		kb.Handler(a)
	}
}

// handleMouse turns press, motion and release of the primary button into a
// drag. The horizontal distance from the press is the drag offset.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !a.mouse.down:
		if a.ctrl.State() == dnd.StateDragging {
			// a keyboard drag is in progress
			return
		}
		id, _ := a.tree.ItemAt(y)
		a.mouse = mouseState{down: true, pressX: x, pressY: y, pressID: id}
		if id != "" {
			a.tree.SelectID(id)
		}

	case pressed && a.mouse.down:
		if !a.mouse.dragging {
			if a.mouse.pressID == "" || (x == a.mouse.pressX && y == a.mouse.pressY) {
				return
			}
			if err := a.ctrl.Start(a.mouse.pressID); err != nil {
				a.SetError(err)
				a.mouse = mouseState{}
				return
			}
			a.mouse.dragging = true
		}
		a.dragPointer(x, y)

	case !pressed && a.mouse.down:
		dragging := a.mouse.dragging
		a.mouse = mouseState{}
		if dragging {
			a.drop()
		}
	}
}

// dragPointer feeds the pointer position into the controller
func (a *App) dragPointer(x, y int) {
	if id, ok := a.tree.ItemAt(y); !ok {
		a.report(a.ctrl.Over(""))
	} else if id != a.ctrl.ActiveID() {
		a.report(a.ctrl.Over(id))
	} else if a.ctrl.OverID() == "" {
		a.report(a.ctrl.Over(id))
	}
	a.report(a.ctrl.Move(float64(x - a.mouse.pressX)))
}

// pickUp starts a keyboard drag of the selected item
func (a *App) pickUp() {
	id := a.tree.Selected()
	if id == "" {
		return
	}
	if err := a.ctrl.Start(id); err != nil {
		a.SetError(err)
	}
}

// drop ends the drag and reports the outcome
func (a *App) drop() {
	activeID := a.ctrl.ActiveID()
	dropped, err := a.ctrl.End()
	switch {
	case err != nil:
		a.SetError(fmt.Errorf("drop %s: %w", activeID, err))
	case dropped:
		a.tree.SelectID(activeID)
		a.log.WithField("id", activeID).Info("item moved")
	default:
		a.SetStatus(activeID + " was not moved")
	}
}

func (a *App) cancelDrag() {
	activeID := a.ctrl.ActiveID()
	a.ctrl.Cancel()
	a.tree.SelectID(activeID)
}

func (a *App) step(dir dnd.Direction) {
	a.report(a.ctrl.KeyboardStep(dir))
}

// selectedItem returns the visible entry under the cursor
func (a *App) selectedItem() (model.FlattenedItem, bool) {
	visible := a.ctrl.Visible()
	idx := tree.IndexOf(visible, a.tree.Selected())
	if idx == -1 {
		return model.FlattenedItem{}, false
	}
	return visible[idx], true
}

// collapseOrParent collapses an expanded item, otherwise moves to its parent
func (a *App) collapseOrParent() {
	item, ok := a.selectedItem()
	if !ok {
		return
	}
	if a.ctrl.Options().Collapsible && len(item.Children) > 0 && !item.Collapsed {
		a.toggle(item.ID)
		return
	}
	a.tree.SelectParent()
}

// expandOrDescend expands a collapsed item, otherwise moves to its first child
func (a *App) expandOrDescend() {
	item, ok := a.selectedItem()
	if !ok || len(item.Children) == 0 {
		return
	}
	if item.Collapsed {
		a.toggle(item.ID)
		return
	}
	a.tree.SelectNext()
}

func (a *App) toggle(id string) {
	if id == "" {
		return
	}
	collapsed, err := a.ctrl.ToggleCollapse(id)
	if err != nil {
		a.SetError(fmt.Errorf("toggle %s: %w", id, err))
		return
	}
	if collapsed {
		a.SetStatus("Collapsed " + id)
	} else {
		a.SetStatus("Expanded " + id)
	}
}

func (a *App) remove() {
	id := a.tree.Selected()
	if id == "" {
		return
	}
	count := tree.ChildCount(a.ctrl.Items(), id)
	if err := a.ctrl.Remove(id); err != nil {
		a.SetError(fmt.Errorf("remove %s: %w", id, err))
		return
	}
	if count > 0 {
		a.SetStatus(fmt.Sprintf("Removed %s and %d descendants", id, count))
	} else {
		a.SetStatus("Removed " + id)
	}
}

func (a *App) startSearch() {
	a.search.Start(tree.IDs(tree.Flatten(a.ctrl.Items())))
}

// jumpTo selects id, expanding its collapsed ancestors
func (a *App) jumpTo(id string) {
	items := a.ctrl.Items()
	for _, ancestor := range tree.Ancestors(items, id) {
		if item := tree.FindItem(items, ancestor); item != nil && item.Collapsed {
			if _, err := a.ctrl.ToggleCollapse(ancestor); err != nil {
				a.SetError(fmt.Errorf("%s is hidden under %s: %w", id, ancestor, err))
				return
			}
		}
	}
	if !a.tree.SelectID(id) {
		a.SetError(tree.NotFoundError{Kind: "item", ID: id})
	}
}

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	parts := parseCommand(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "q", "quit":
		a.quit = true
	case "help":
		a.help.Toggle()
	case "debug":
		a.debugMode = !a.debugMode
		if a.debugMode {
			a.SetStatus("Debug mode ON")
		} else {
			a.SetStatus("Debug mode OFF")
		}
	case "reset":
		if err := a.ctrl.SetItems(a.initial); err != nil {
			a.SetError(err)
			return
		}
		a.live.Clear()
		a.SetStatus("Tree reset")
	case "set":
		a.handleSet(parts[1:])
	default:
		a.SetError(fmt.Errorf("unknown command: %s", parts[0]))
	}
}

// handleSet applies `:set key value` as a session setting
func (a *App) handleSet(args []string) {
	switch len(args) {
	case 0:
		opts := a.ctrl.Options()
		a.SetStatus(fmt.Sprintf("%s=%t %s=%t %s=%t", config.KeyCollapsible, opts.Collapsible,
			config.KeyRemovable, opts.Removable, config.KeyIndicator, opts.Indicator))
		return
	case 1:
		a.SetStatus(fmt.Sprintf("%s = %q", args[0], a.cfg.Get(args[0])))
		return
	}

	key, value := args[0], strings.Join(args[1:], " ")
	previous := a.cfg.Get(key)
	a.cfg.Set(key, value)

	opts, err := a.treeOptions()
	if err == nil {
		err = a.ctrl.SetOptions(opts)
	}
	if err != nil {
		a.cfg.Set(key, previous)
		a.SetError(err)
		return
	}
	a.log.WithFields(logrus.Fields{"key": key, "value": value}).Info("setting changed")
	a.SetStatus(fmt.Sprintf("%s = %s", key, value))
}

// report shows err in the status bar
func (a *App) report(err error) {
	if err != nil {
		a.SetError(err)
	}
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.statusMsg = msg
	a.statusError = false
	a.statusTime = time.Now()
}

// SetError shows err as status message and logs it
func (a *App) SetError(err error) {
	a.statusMsg = err.Error()
	a.statusError = true
	a.statusTime = time.Now()

	level := logrus.WarnLevel
	if errors.Is(err, dnd.ErrActionDisabled) {
		level = logrus.InfoLevel
	}
	a.log.WithError(err).Log(level, "action failed")
}

// Quit signals the app to quit
func (a *App) Quit() {
	if a.ctrl.State() == dnd.StateDragging {
		a.ctrl.Cancel()
	}
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}
