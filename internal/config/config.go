package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/pstuifzand/sortable-tree/internal/dnd"
)

// Keys understood by Get and Set in addition to free-form settings
const (
	KeyIndentationWidth = "indentation_width"
	KeyCollapsible      = "collapsible"
	KeyRemovable        = "removable"
	KeyIndicator        = "indicator"
)

// Config holds application configuration
type Config struct {
	Theme    string            `toml:"theme"`
	LogFile  string            `toml:"log_file"`
	LogLevel string            `toml:"log_level"`
	Tree     TreeConfig        `toml:"tree"`
	TUI      TUIConfig         `toml:"tui"`
	Settings map[string]string `toml:"settings"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
}

// TreeConfig holds the drag and drop options
type TreeConfig struct {
	IndentationWidth int  `toml:"indentation_width"`
	Collapsible      bool `toml:"collapsible"`
	Removable        bool `toml:"removable"`
	Indicator        bool `toml:"indicator"`
}

// TUIConfig holds settings of the terminal host
type TUIConfig struct {
	// Indent is the number of cells per nesting level. It is also the
	// indentation width of drags started in the terminal.
	Indent int  `toml:"indent"`
	Mouse  bool `toml:"mouse"`
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil // Return default if can't find config path
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file. A leading ~ is expanded.
func LoadFromFile(filePath string) (*Config, error) {
	filePath, err := homedir.Expand(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	// If file doesn't exist, return default config
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Keys missing from the file keep their default value
	config := defaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Theme == "" {
		config.Theme = "tokyo-night"
	}
	if config.Tree.IndentationWidth <= 0 {
		config.Tree.IndentationWidth = dnd.DefaultIndentationWidth
	}
	if config.TUI.Indent <= 0 {
		config.TUI.Indent = 4
	}
	if config.Settings == nil {
		config.Settings = make(map[string]string)
	}
	config.sessionSettings = make(map[string]string)

	return config, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		Theme:    "tokyo-night",
		LogFile:  "sortable-tree.log",
		LogLevel: "info",
		Tree: TreeConfig{
			IndentationWidth: dnd.DefaultIndentationWidth,
			Collapsible:      true,
			Removable:        true,
			Indicator:        false,
		},
		TUI: TUIConfig{
			Indent: 4,
			Mouse:  true,
		},
		Settings:        make(map[string]string),
		sessionSettings: make(map[string]string),
	}
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "sortable-tree"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	return os.MkdirAll(configDir, 0755)
}

// Set sets a session configuration value
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Get retrieves a configuration value, checking session settings first (which override persisted settings)
// Returns empty string if not found in either source
func (c *Config) Get(key string) string {
	if c.sessionSettings != nil {
		if val, ok := c.sessionSettings[key]; ok {
			return val
		}
	}

	if c.Settings != nil {
		if val, ok := c.Settings[key]; ok {
			return val
		}
	}

	return ""
}

// GetAll returns all configuration values (both persisted and session)
// Session settings override persisted settings with the same key
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string)

	for k, v := range c.Settings {
		result[k] = v
	}
	for k, v := range c.sessionSettings {
		result[k] = v
	}

	return result
}

// TreeOptions returns the controller options: the [tree] table with session
// and free-form settings applied on top.
func (c *Config) TreeOptions() (dnd.Options, error) {
	opts := dnd.Options{
		IndentationWidth: c.Tree.IndentationWidth,
		Collapsible:      c.Tree.Collapsible,
		Removable:        c.Tree.Removable,
		Indicator:        c.Tree.Indicator,
	}

	if v := c.Get(KeyIndentationWidth); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil || width <= 0 {
			return opts, fmt.Errorf("invalid %s: %q", KeyIndentationWidth, v)
		}
		opts.IndentationWidth = width
	}

	flags := []struct {
		key    string
		target *bool
	}{
		{KeyCollapsible, &opts.Collapsible},
		{KeyRemovable, &opts.Removable},
		{KeyIndicator, &opts.Indicator},
	}
	for _, f := range flags {
		v := c.Get(f.key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid %s: %q", f.key, v)
		}
		*f.target = b
	}

	return opts, nil
}

// LogFilePath returns the log file location with ~ expanded
func (c *Config) LogFilePath() (string, error) {
	if c.LogFile == "" {
		return "", nil
	}
	return homedir.Expand(c.LogFile)
}

// Save persists the configuration to the TOML file
// Note: This only persists the Settings map, not session settings
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
