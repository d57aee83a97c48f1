package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration.
// Colors maps the snake_case color names to color strings.
type ThemeConfig struct {
	Name   string            `toml:"name"`
	Colors map[string]string `toml:"colors"`
}

// fields maps the TOML color names onto the fields of c
func (c *Colors) fields() map[string]*tcell.Color {
	return map[string]*tcell.Color{
		"tree_normal_text":     &c.TreeNormalText,
		"tree_selected_item":   &c.TreeSelectedItem,
		"tree_leaf_arrow":      &c.TreeLeafArrow,
		"tree_expanded_arrow":  &c.TreeExpandedArrow,
		"tree_collapsed_arrow": &c.TreeCollapsedArrow,
		"tree_child_count":     &c.TreeChildCount,
		"drag_active":          &c.DragActive,
		"drag_ghost":           &c.DragGhost,
		"drag_over":            &c.DragOver,
		"drag_indicator":       &c.DragIndicator,
		"drag_background":      &c.DragBackground,
		"search_label":         &c.SearchLabel,
		"search_text":          &c.SearchText,
		"help_background":      &c.HelpBackground,
		"help_border":          &c.HelpBorder,
		"help_title":           &c.HelpTitle,
		"help_content":         &c.HelpContent,
		"status_mode":          &c.StatusMode,
		"status_message":       &c.StatusMessage,
		"status_error":         &c.StatusError,
		"header_title":         &c.HeaderTitle,
	}
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	paths := []string{}

	if home, err := homedir.Dir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "sortable-tree", "themes"),
			filepath.Join(home, ".local", "share", "sortable-tree", "themes"),
		)
	}

	return paths
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config)
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// configToTheme converts a ThemeConfig to a Theme, with fallback to Tokyo
// Night for missing colors. Unknown color names are an error.
func configToTheme(config ThemeConfig) (*Theme, error) {
	theme := TokyoNight()
	fields := theme.Colors.fields()

	for name, value := range config.Colors {
		field, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("unknown theme color: %s", name)
		}
		if value != "" {
			*field = ParseColorString(value)
		}
	}

	if config.Name != "" {
		theme.Name = config.Name
	}

	return theme, nil
}

// LoadThemeOrDefault loads a theme by name, or returns Tokyo Night if not found
func LoadThemeOrDefault(themeName string) *Theme {
	switch themeName {
	case "default":
		return Default()
	case "tokyo-night", "":
		return TokyoNight()
	}

	theme, err := LoadTheme(themeName)
	if err != nil {
		return TokyoNight()
	}

	return theme
}
