package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/sortable-tree/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates a terminal screen with the given theme
func NewScreen(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFromTcell(tcellScreen, t)
}

// NewScreenFromTcell wraps and initializes an existing tcell screen, such as
// a simulation screen.
func NewScreenFromTcell(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.Default()
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws a string at the given position and returns the column
// after the last cell drawn. Wide runes take two columns.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		s.SetCell(x, y, r, style)
		x += RuneWidth(r)
	}
	return x
}

// DrawStringLimited draws a string, truncating it if it exceeds maxWidth
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return x
	}
	return s.DrawString(x, y, TruncateToWidthWithEllipsis(text, maxWidth), style)
}

// FillLine paints the rest of row y starting at x
func (s *Screen) FillLine(x, y int, style tcell.Style) {
	for ; x < s.width; x++ {
		s.SetCell(x, y, ' ', style)
	}
}

// PollEvent polls for the next event (key press, mouse, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync redraws the whole screen after a resize
func (s *Screen) Sync() {
	s.width, s.height = s.tcellScreen.Size()
	s.tcellScreen.Sync()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	s.width, s.height = s.tcellScreen.Size()
	return s.width, s.height
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// EnableMouse turns on press, release and drag reporting
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse(tcell.MouseDragEvents)
}

// DefaultStyle returns the default terminal style
func DefaultStyle() tcell.Style {
	return tcell.StyleDefault
}

// Theme-aware style methods

func (s *Screen) TreeNormalStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TreeNormalText)
}

func (s *Screen) TreeSelectedStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TreeSelectedItem).Bold(true).Reverse(true)
}

// TreeArrowStyle returns the style of the expand/collapse marker
func (s *Screen) TreeArrowStyle(hasChildren, collapsed bool) tcell.Style {
	switch {
	case !hasChildren:
		return theme.ColorToStyle(s.Theme.Colors.TreeLeafArrow).Dim(true)
	case collapsed:
		return theme.ColorToStyle(s.Theme.Colors.TreeCollapsedArrow)
	default:
		return theme.ColorToStyle(s.Theme.Colors.TreeExpandedArrow)
	}
}

func (s *Screen) TreeChildCountStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TreeChildCount).Bold(true)
}

// DragActiveStyle is used for the dragged item at its projected position
func (s *Screen) DragActiveStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.DragActive, s.Theme.Colors.DragBackground).Bold(true)
}

// DragGhostStyle is used for the text of the dragged item in indicator mode
func (s *Screen) DragGhostStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.DragGhost).Italic(true)
}

func (s *Screen) DragOverStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.DragOver).Underline(true)
}

func (s *Screen) DragIndicatorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.DragIndicator).Bold(true)
}

func (s *Screen) SearchLabelStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchLabel).Bold(true)
}

func (s *Screen) SearchTextStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchText)
}

// HelpStyle returns the style for help background
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpContent, s.Theme.Colors.HelpBackground)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpBorder, s.Theme.Colors.HelpBackground)
}

// HelpTitleStyle returns the style for help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpTitle, s.Theme.Colors.HelpBackground).Bold(true)
}

// StatusModeStyle returns the style for mode indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMode).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMessage)
}

func (s *Screen) StatusErrorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusError).Bold(true)
}

// HeaderStyle returns the style for header title
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.HeaderTitle).Bold(true)
}
