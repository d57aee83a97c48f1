package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// KeyBindingInfo represents a keybinding for display
type KeyBindingInfo interface {
	GetKey() string
	GetDescription() string
}

// HelpSection is a titled group of keybindings
type HelpSection struct {
	Title    string
	Bindings []KeyBindingInfo
}

// HelpScreen manages the help display
type HelpScreen struct {
	visible  bool
	sections []HelpSection
}

// NewHelpScreen creates a new HelpScreen
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{}
}

// AddSection appends a group of keybindings to the help text
func (h *HelpScreen) AddSection(title string, bindings []KeyBindingInfo) {
	h.sections = append(h.sections, HelpSection{Title: title, Bindings: bindings})
}

// Toggle toggles the help screen visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
}

func (h *HelpScreen) Hide() {
	h.visible = false
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Lines returns the help text, one entry per line
func (h *HelpScreen) Lines() []string {
	var result []string

	keyWidth := 0
	for _, section := range h.sections {
		for _, kb := range section.Bindings {
			keyWidth = max(keyWidth, StringWidth(kb.GetKey()))
		}
	}

	for i, section := range h.sections {
		if i > 0 {
			result = append(result, "")
		}
		result = append(result, section.Title+":")
		for _, kb := range section.Bindings {
			key := kb.GetKey()
			pad := keyWidth - StringWidth(key)
			result = append(result, fmt.Sprintf("  %s%*s  %s", key, pad, "", kb.GetDescription()))
		}
	}

	return result
}

// Render renders the help screen
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()
	titleStyle := screen.HelpTitleStyle()

	for y := 0; y < screen.GetHeight(); y++ {
		screen.FillLine(0, y, contentStyle)
	}

	startY := 1
	startX := 2
	boxWidth := screen.GetWidth() - 4
	height := screen.GetHeight() - 2
	if boxWidth < 4 || height < 4 {
		return
	}

	horizontal := func(y int, left, right rune) {
		screen.SetCell(startX, y, left, borderStyle)
		for i := 1; i < boxWidth-1; i++ {
			screen.SetCell(startX+i, y, '─', borderStyle)
		}
		screen.SetCell(startX+boxWidth-1, y, right, borderStyle)
	}
	row := func(y int, text string, style tcell.Style) {
		screen.SetCell(startX, y, '│', borderStyle)
		screen.DrawStringLimited(startX+2, y, text, boxWidth-4, style)
		screen.SetCell(startX+boxWidth-1, y, '│', borderStyle)
	}

	horizontal(startY, '┌', '┐')
	row(startY+1, "Keybindings (? to close)", titleStyle)
	horizontal(startY+2, '├', '┤')

	y := startY + 3
	for _, line := range h.Lines() {
		if y >= startY+height-1 {
			break
		}
		row(y, line, contentStyle)
		y++
	}

	horizontal(y, '└', '┘')
}
