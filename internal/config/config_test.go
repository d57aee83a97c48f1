package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("collapsible", "false")
	if cfg.Get("collapsible") != "false" {
		t.Errorf("Expected 'false', got '%s'", cfg.Get("collapsible"))
	}
}

func TestGet(t *testing.T) {
	cfg := &Config{
		Settings:        map[string]string{"test": "persisted"},
		sessionSettings: make(map[string]string),
	}

	if cfg.Get("nonexistent") != "" {
		t.Errorf("Expected empty string for nonexistent key, got '%s'", cfg.Get("nonexistent"))
	}
	if cfg.Get("test") != "persisted" {
		t.Errorf("Expected 'persisted', got '%s'", cfg.Get("test"))
	}

	cfg.Set("test", "value")
	if cfg.Get("test") != "value" {
		t.Errorf("Expected session value to win, got '%s'", cfg.Get("test"))
	}
}

func TestGetAllReturnsACopy(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("original", "value")

	all := cfg.GetAll()
	all["original"] = "modified"

	if cfg.Get("original") != "value" {
		t.Errorf("GetAll() should return a copy, not a reference")
	}
}

func TestNilSessionSettings(t *testing.T) {
	cfg := &Config{}

	cfg.Set("key", "value")
	if cfg.Get("key") != "value" {
		t.Errorf("Set should initialize nil sessionSettings")
	}

	cfg2 := &Config{}
	if cfg2.Get("key") != "" {
		t.Errorf("Get should return empty string for nil sessionSettings")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, "tokyo-night", cfg.Theme)
	assert.Equal(t, 50, cfg.Tree.IndentationWidth)
	assert.True(t, cfg.Tree.Collapsible)
	assert.True(t, cfg.Tree.Removable)
	assert.False(t, cfg.Tree.Indicator)
	assert.Equal(t, 4, cfg.TUI.Indent)
	assert.NotNil(t, cfg.sessionSettings)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `theme = "default"

[tree]
indentation_width = 24
indicator = true

[tui]
mouse = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Theme)
	assert.Equal(t, 24, cfg.Tree.IndentationWidth)
	assert.True(t, cfg.Tree.Indicator)
	assert.True(t, cfg.Tree.Collapsible, "missing keys keep their default")
	assert.False(t, cfg.TUI.Mouse)
	assert.Equal(t, 4, cfg.TUI.Indent)
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadFromFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = \n"), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestTreeOptions(t *testing.T) {
	cfg := defaultConfig()
	cfg.Set(KeyIndentationWidth, "10")
	cfg.Set(KeyRemovable, "false")
	cfg.Settings[KeyIndicator] = "true"

	opts, err := cfg.TreeOptions()
	require.NoError(t, err)
	assert.Equal(t, 10, opts.IndentationWidth)
	assert.True(t, opts.Collapsible)
	assert.False(t, opts.Removable)
	assert.True(t, opts.Indicator)

	cfg.Set(KeyIndentationWidth, "-3")
	_, err = cfg.TreeOptions()
	assert.Error(t, err)

	cfg.Set(KeyIndentationWidth, "10")
	cfg.Set(KeyCollapsible, "maybe")
	_, err = cfg.TreeOptions()
	assert.Error(t, err)
}
