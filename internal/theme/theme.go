package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// Tree view colors
	TreeNormalText     tcell.Color
	TreeSelectedItem   tcell.Color
	TreeLeafArrow      tcell.Color
	TreeExpandedArrow  tcell.Color
	TreeCollapsedArrow tcell.Color
	TreeChildCount     tcell.Color

	// Drag colors
	DragActive     tcell.Color
	DragGhost      tcell.Color
	DragOver       tcell.Color
	DragIndicator  tcell.Color
	DragBackground tcell.Color

	// Search bar colors
	SearchLabel tcell.Color
	SearchText  tcell.Color

	// Help overlay colors
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color

	// Status line colors
	StatusMode    tcell.Color
	StatusMessage tcell.Color
	StatusError   tcell.Color

	// Header colors
	HeaderTitle tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			TreeNormalText:     tcell.ColorDefault,
			TreeSelectedItem:   tcell.ColorDefault,
			TreeLeafArrow:      tcell.ColorDefault,
			TreeExpandedArrow:  tcell.ColorDefault,
			TreeCollapsedArrow: tcell.ColorDefault,
			TreeChildCount:     tcell.ColorDefault,
			DragActive:         tcell.ColorDefault,
			DragGhost:          tcell.ColorGray,
			DragOver:           tcell.ColorDefault,
			DragIndicator:      tcell.ColorBlue,
			DragBackground:     tcell.ColorDefault,
			SearchLabel:        tcell.ColorDefault,
			SearchText:         tcell.ColorDefault,
			HelpBackground:     tcell.ColorDefault,
			HelpBorder:         tcell.ColorDefault,
			HelpTitle:          tcell.ColorDefault,
			HelpContent:        tcell.ColorDefault,
			StatusMode:         tcell.ColorDefault,
			StatusMessage:      tcell.ColorDefault,
			StatusError:        tcell.ColorRed,
			HeaderTitle:        tcell.ColorDefault,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	text := HexToColor("#c0caf5")
	background := HexToColor("#1a1b26")
	blue := HexToColor("#7aa2f7")

	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			TreeNormalText:     text,
			TreeSelectedItem:   blue,
			TreeLeafArrow:      HexToColor("#7dcfff"), // Cyan
			TreeExpandedArrow:  HexToColor("#7dcfff"),
			TreeCollapsedArrow: HexToColor("#7dcfff"),
			TreeChildCount:     HexToColor("#ff9e64"), // Orange
			DragActive:         HexToColor("#e0af68"), // Yellow
			DragGhost:          Blend(text, background, 0.6),
			DragOver:           HexToColor("#bb9af7"), // Magenta
			DragIndicator:      blue,
			DragBackground:     Blend(blue, background, 0.8),
			SearchLabel:        HexToColor("#bb9af7"),
			SearchText:         text,
			HelpBackground:     background,
			HelpBorder:         HexToColor("#7dcfff"),
			HelpTitle:          HexToColor("#bb9af7"),
			HelpContent:        text,
			StatusMode:         HexToColor("#bb9af7"),
			StatusMessage:      HexToColor("#9ece6a"), // Green
			StatusError:        HexToColor("#f7768e"), // Red
			HeaderTitle:        HexToColor("#bb9af7"),
		},
	}
}
