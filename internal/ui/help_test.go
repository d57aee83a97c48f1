package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type binding struct{ key, desc string }

func (b binding) GetKey() string         { return b.key }
func (b binding) GetDescription() string { return b.desc }

func TestHelpScreenLines(t *testing.T) {
	h := NewHelpScreen()
	h.AddSection("Tree", []KeyBindingInfo{binding{"j", "Down"}, binding{"space", "Pick up"}})
	h.AddSection("Drag", []KeyBindingInfo{binding{"esc", "Cancel"}})

	assert.Equal(t, []string{
		"Tree:",
		"  j      Down",
		"  space  Pick up",
		"",
		"Drag:",
		"  esc    Cancel",
	}, h.Lines())

	assert.False(t, h.IsVisible())
	h.Toggle()
	assert.True(t, h.IsVisible())
	h.Hide()
	assert.False(t, h.IsVisible())
}

func TestHelpScreenRender(t *testing.T) {
	h := NewHelpScreen()
	h.AddSection("Tree", []KeyBindingInfo{binding{"q", "Quit"}})
	screen, sim := newSimScreen(t, 34, 10)

	h.Toggle()
	h.Render(screen)
	screen.Show()

	assert.Equal(t, "  ┌────────────────────────────┐", screenLine(sim, 1))
	assert.Equal(t, "  │ Keybindings (? to close)   │", screenLine(sim, 2))
	assert.Equal(t, "  │ Tree:                      │", screenLine(sim, 4))
	assert.Equal(t, "  │   q  Quit                  │", screenLine(sim, 5))
}
