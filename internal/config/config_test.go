package config

import (
	"encoding/json"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.Alert.Sound)
	assert.False(t, cfg.Alert.Notify)
	assert.True(t, cfg.TUI.ShowHelp)
	assert.True(t, cfg.TUI.AltScreen)
	assert.True(t, cfg.TUI.ReleaseOnBlur)
	assert.False(t, cfg.GUI.Overlay)
	assert.Equal(t, "default", cfg.GUI.Theme)
	assert.Equal(t, "top-right", cfg.GUI.Position)
	assert.Equal(t, 16, cfg.GUI.OffsetX)
	assert.Equal(t, 16, cfg.GUI.OffsetY)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[alert]
sound = "~/sounds/ding.ogg"
notify = true

[tui]
show_help = false
alt_screen = false
release_on_blur = false

[gui]
overlay = true
theme = "compact"
position = "bottom-left"
offset_x = 4
offset_y = 8
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "~/sounds/ding.ogg", cfg.Alert.Sound)
	assert.True(t, cfg.Alert.Notify)
	assert.False(t, cfg.TUI.ShowHelp)
	assert.False(t, cfg.TUI.AltScreen)
	assert.False(t, cfg.TUI.ReleaseOnBlur)
	assert.True(t, cfg.GUI.Overlay)
	assert.Equal(t, "compact", cfg.GUI.Theme)
	assert.Equal(t, "bottom-left", cfg.GUI.Position)
	assert.Equal(t, 4, cfg.GUI.OffsetX)
	assert.Equal(t, 8, cfg.GUI.OffsetY)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[alert]
notify = true
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Changed field
	assert.True(t, cfg.Alert.Notify)

	// Unchanged fields should have defaults
	assert.Empty(t, cfg.Alert.Sound)
	assert.True(t, cfg.TUI.ShowHelp)
	assert.Equal(t, "top-right", cfg.GUI.Position)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `this is not valid toml [`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidPosition(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[gui]
position = "middle"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid position")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"every corner", func(c *Config) { c.GUI.Position = "bottom-right" }, false},
		{"unknown position", func(c *Config) { c.GUI.Position = "center" }, true},
		{"empty position", func(c *Config) { c.GUI.Position = "" }, true},
		{"negative offset", func(c *Config) { c.GUI.OffsetY = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Alert.Notify = true
	cfg.GUI.Position = "top-left"

	err := cfg.Save(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)

	// No temp file left behind
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_Encode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Alert.Sound = "/tmp/ding.wav"

	t.Run("toml", func(t *testing.T) {
		data, err := cfg.Encode("toml")
		require.NoError(t, err)
		assert.Contains(t, string(data), "[alert]")
		assert.Contains(t, string(data), "release_on_blur = true")
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := cfg.Encode("YAML")
		require.NoError(t, err)

		var decoded Config
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		assert.Equal(t, *cfg, decoded)
	})

	t.Run("json", func(t *testing.T) {
		data, err := cfg.Encode("json")
		require.NoError(t, err)

		var decoded map[string]map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "/tmp/ding.wav", decoded["alert"]["sound"])
		assert.Equal(t, "top-right", decoded["gui"]["position"])
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := cfg.Encode("ini")
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/countdown/config.toml", ConfigPath())
}

func TestConfigPathDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	path := ConfigPath()
	assert.Contains(t, path, "countdown/config.toml")
}

// Config is loaded by every frontend, so it must not pull in the audio
// stack.
func TestConfig_NoAudioImports(t *testing.T) {
	files, err := filepath.Glob("*.go")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	fset := token.NewFileSet()
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		require.NoError(t, err)
		for _, imp := range f.Imports {
			path := strings.Trim(imp.Path.Value, `"`)
			assert.NotContains(t, path, "internal/alert", name)
			assert.NotContains(t, path, "gopxl/beep", name)
		}
	}
}
