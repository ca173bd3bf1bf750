package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCSS writes files into a fresh directory and returns it.
func writeCSS(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, css := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(css), 0o644))
	}
	return dir
}

func TestProcessImports(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		css      string
		contains []string
	}{
		{
			name:     "no imports",
			css:      `.countdown { color: red; }`,
			contains: []string{`.countdown { color: red; }`},
		},
		{
			name:  "partial from dir",
			files: map[string]string{"_accent.css": `@define-color countdown_accent #ff0000;`},
			css:   "@import \"_accent.css\";\n.countdown { color: @countdown_accent; }",
			contains: []string{
				"/* imported: _accent.css */",
				"countdown_accent #ff0000",
				".countdown { color: @countdown_accent; }",
			},
		},
		{
			name: "nested",
			files: map[string]string{
				"_outer.css": "@import \"_inner.css\";\n.readout { font-size: 2em; }",
				"_inner.css": `.toggle { min-width: 48px; }`,
			},
			css: "@import \"_outer.css\";\n.countdown {}",
			contains: []string{
				"/* imported: _outer.css */",
				"/* imported: _inner.css */",
				".readout",
				".toggle",
				".countdown",
			},
		},
		{
			name: "cycle is cut",
			files: map[string]string{
				"_a.css": "@import \"_b.css\";\n.a {}",
				"_b.css": "@import \"_a.css\";\n.b {}",
			},
			css: `@import "_a.css";`,
			contains: []string{
				"/* imported: _a.css */",
				"/* imported: _b.css */",
				"/* circular import prevented: _a.css */",
			},
		},
		{
			name:     "missing file",
			css:      `@import "nonexistent.css";`,
			contains: []string{"/* import failed: nonexistent.css"},
		},
		{
			name: "embedded partial",
			css:  `@import "_palette.css";`,
			contains: []string{
				"/* imported (embedded): _palette.css */",
				"@define-color countdown_idle_color",
			},
		},
		{
			name: "embedded theme with its own imports",
			css:  `@import "default.css";`,
			contains: []string{
				"/* imported (embedded): default.css */",
				".countdown",
				"@define-color countdown_idle_color",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeCSS(t, tt.files)
			got := ProcessImports(tt.css, dir, nil)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestImportRegex(t *testing.T) {
	for input, want := range map[string]string{
		`@import "a.css";`:          "a.css",
		`@import 'a.css';`:          "a.css",
		`@import url("a.css");`:     "a.css",
		`@import url('a.css');`:     "a.css",
		`@import url( "a.css" );`:   "a.css",
		`@import "_palette.css"`:    "_palette.css",
		`@import   "spaced.css"  ;`: "spaced.css",
	} {
		m := importRegex.FindStringSubmatch(input)
		if assert.Len(t, m, 2, input) {
			assert.Equal(t, want, m[1], input)
		}
	}
}

func TestNewTheme(t *testing.T) {
	dir := writeCSS(t, map[string]string{
		"_colors.css": `@define-color countdown_running_color #ff0000;`,
		"custom.css":  "@import \"_colors.css\";\n.countdown.running { color: @countdown_running_color; }",
	})

	th, err := NewTheme("custom", filepath.Join(dir, "custom.css"))
	require.NoError(t, err)
	assert.Equal(t, "custom", th.Name)
	assert.False(t, th.Embedded)
	assert.False(t, th.ModTime.IsZero())
	assert.Contains(t, th.CSS, "/* imported: _colors.css */")
	assert.Contains(t, th.CSS, "countdown_running_color #ff0000")

	_, err = NewTheme("gone", filepath.Join(dir, "gone.css"))
	assert.Error(t, err)
}

func TestTheme_Reload(t *testing.T) {
	dir := writeCSS(t, map[string]string{
		"mine.css": `.countdown { color: red; }`,
	})
	path := filepath.Join(dir, "mine.css")

	th, err := NewTheme("mine", path)
	require.NoError(t, err)

	changed, err := th.Reload()
	require.NoError(t, err)
	assert.False(t, changed, "unchanged file")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "_extra.css"), []byte(`.toggle { opacity: 0.5; }`), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("@import \"_extra.css\";\n.countdown { color: blue; }"), 0o644))

	changed, err = th.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, th.CSS, "/* imported: _extra.css */")
	assert.Contains(t, th.CSS, "color: blue")

	require.NoError(t, os.Remove(path))
	_, err = th.Reload()
	assert.Error(t, err)
}

func TestNewEmbeddedTheme(t *testing.T) {
	th, found := NewEmbeddedTheme("default")
	require.True(t, found)
	assert.True(t, th.Embedded)
	assert.Empty(t, th.Path)
	assert.Contains(t, th.CSS, "/* imported (embedded): _palette.css */")

	changed, err := th.Reload()
	require.NoError(t, err)
	assert.False(t, changed)

	_, found = NewEmbeddedTheme("nonexistent")
	assert.False(t, found)
}

func TestResolve(t *testing.T) {
	dir := writeCSS(t, map[string]string{
		"compact.css": `.countdown { color: pink; }`,
	})
	userPath := filepath.Join(dir, "compact.css")

	t.Run("empty name is default", func(t *testing.T) {
		th, err := Resolve("", dir)
		require.NoError(t, err)
		assert.Equal(t, DefaultThemeName, th.Name)
		assert.True(t, th.Embedded)
	})

	t.Run("user theme overrides bundled", func(t *testing.T) {
		th, err := Resolve("compact", dir)
		require.NoError(t, err)
		assert.False(t, th.Embedded)
		assert.Equal(t, userPath, th.Path)
		assert.Contains(t, th.CSS, "pink")
	})

	t.Run("bundled without user dir", func(t *testing.T) {
		th, err := Resolve("compact", "")
		require.NoError(t, err)
		assert.True(t, th.Embedded)
	})

	t.Run("explicit path", func(t *testing.T) {
		th, err := Resolve(userPath, "")
		require.NoError(t, err)
		assert.Equal(t, "compact", th.Name)
		assert.Equal(t, userPath, th.Path)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Resolve("nonexistent", dir)
		assert.Error(t, err)
	})
}

func TestThemesDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	dir, err := ThemesDir()
	require.NoError(t, err)
	assert.Equal(t, "/custom/config/countdown/themes", dir)
}
