package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/sortable-tree/internal/dnd"
	"github.com/pstuifzand/sortable-tree/internal/ui"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Key         rune
	Label       string // shown in help instead of Key when set
	Description string
	Handler     func(*App)
}

// GetKey returns the key of this keybinding as shown in the help screen
func (kb KeyBinding) GetKey() string {
	if kb.Label != "" {
		return kb.Label
	}
	return string(kb.Key)
}

// GetDescription returns the description of this keybinding
func (kb KeyBinding) GetDescription() string {
	return kb.Description
}

const keyEscape = '\x1b'

// keyAliases maps special keys onto the rune of the binding they trigger
var keyAliases = map[tcell.Key]rune{
	tcell.KeyUp:     'k',
	tcell.KeyDown:   'j',
	tcell.KeyLeft:   'h',
	tcell.KeyRight:  'l',
	tcell.KeyHome:   'g',
	tcell.KeyEnd:    'G',
	tcell.KeyEnter:  ' ',
	tcell.KeyEscape: keyEscape,
}

// keyRune returns the binding rune for a key event
func keyRune(ev *tcell.EventKey) (rune, bool) {
	if ev.Key() == tcell.KeyRune {
		return ev.Rune(), true
	}
	r, ok := keyAliases[ev.Key()]
	return r, ok
}

// mouseHelp documents the pointer gestures; it has no handlers
var mouseHelp = []KeyBinding{
	{Label: "click", Description: "Select item"},
	{Label: "drag", Description: "Move item; drag sideways to change depth"},
}

// InitializeKeybindings sets up the bindings of the tree and of a drag in
// progress.
func (a *App) InitializeKeybindings() (idle, drag []KeyBinding) {
	idle = []KeyBinding{
		{
			Key:         'j',
			Label:       "j/↓",
			Description: "Move down",
			Handler: func(app *App) {
				app.tree.SelectNext()
			},
		},
		{
			Key:         'k',
			Label:       "k/↑",
			Description: "Move up",
			Handler: func(app *App) {
				app.tree.SelectPrev()
			},
		},
		{
			Key:         'g',
			Description: "Go to first item",
			Handler: func(app *App) {
				app.tree.SelectFirst()
			},
		},
		{
			Key:         'G',
			Description: "Go to last item",
			Handler: func(app *App) {
				app.tree.SelectLast()
			},
		},
		{
			Key:         'h',
			Label:       "h/←",
			Description: "Collapse item or go to parent",
			Handler:     (*App).collapseOrParent,
		},
		{
			Key:         'l',
			Label:       "l/→",
			Description: "Expand item or go to first child",
			Handler:     (*App).expandOrDescend,
		},
		{
			Key:         'c',
			Description: "Toggle collapse",
			Handler: func(app *App) {
				app.toggle(app.tree.Selected())
			},
		},
		{
			Key:         ' ',
			Label:       "space",
			Description: "Pick up item",
			Handler:     (*App).pickUp,
		},
		{
			Key:         'd',
			Description: "Remove item and its children",
			Handler:     (*App).remove,
		},
		{
			Key:         '/',
			Description: "Jump to item",
			Handler:     (*App).startSearch,
		},
		{
			Key:         ':',
			Description: "Command (q, help, reset, set KEY VALUE, debug)",
			Handler: func(app *App) {
				app.command.Start()
			},
		},
		{
			Key:         '?',
			Description: "Toggle help",
			Handler: func(app *App) {
				app.help.Toggle()
			},
		},
		{
			Key:         'q',
			Description: "Quit",
			Handler:     (*App).Quit,
		},
	}

	drag = []KeyBinding{
		{
			Key:         'k',
			Label:       "k/↑",
			Description: "Move over previous item",
			Handler: func(app *App) {
				app.step(dnd.DirectionUp)
			},
		},
		{
			Key:         'j',
			Label:       "j/↓",
			Description: "Move over next item",
			Handler: func(app *App) {
				app.step(dnd.DirectionDown)
			},
		},
		{
			Key:         'h',
			Label:       "h/←",
			Description: "One level shallower",
			Handler: func(app *App) {
				app.step(dnd.DirectionLeft)
			},
		},
		{
			Key:         'l',
			Label:       "l/→",
			Description: "One level deeper",
			Handler: func(app *App) {
				app.step(dnd.DirectionRight)
			},
		},
		{
			Key:         ' ',
			Label:       "space",
			Description: "Drop item",
			Handler:     (*App).drop,
		},
		{
			Key:         keyEscape,
			Label:       "esc",
			Description: "Cancel move",
			Handler:     (*App).cancelDrag,
		},
	}

	return idle, drag
}

func bindingMap(bindings []KeyBinding) map[rune]KeyBinding {
	m := make(map[rune]KeyBinding, len(bindings))
	for _, kb := range bindings {
		m[kb.Key] = kb
	}
	return m
}

func helpInfo(bindings []KeyBinding) []ui.KeyBindingInfo {
	info := make([]ui.KeyBindingInfo, len(bindings))
	for i, kb := range bindings {
		info[i] = kb
	}
	return info
}
