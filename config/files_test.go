package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTheme(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDir, dir)

	t.Run("explicit file first", func(t *testing.T) {
		t.Setenv(EnvThemeFile, "/env/theme.toml")
		cfg := &Config{Theme: "nord"}

		src, ok, err := cfg.ResolveTheme(Selection{File: "/cli/theme.toml", Name: "dracula"})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, Source{Path: "/cli/theme.toml", Origin: "--theme-file"}, src)
	})

	t.Run("name under the themes directory", func(t *testing.T) {
		t.Setenv(EnvThemeFile, "/env/theme.toml")

		src, ok, err := DefaultConfig().ResolveTheme(Selection{Name: "dracula"})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dir, "themes", "dracula.toml"), src.Path)
		assert.Equal(t, "--theme", src.Origin)
	})

	t.Run("environment before config", func(t *testing.T) {
		t.Setenv(EnvThemeFile, "/env/theme.toml")
		cfg := &Config{Theme: "nord"}

		src, ok, err := cfg.ResolveTheme(Selection{})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, Source{Path: "/env/theme.toml", Origin: "$DYE_THEME_FILE"}, src)
	})

	t.Run("config name and config path", func(t *testing.T) {
		t.Setenv(EnvThemeFile, "")

		src, ok, err := (&Config{Theme: "nord"}).ResolveTheme(Selection{})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dir, "themes", "nord.toml"), src.Path)
		assert.Equal(t, ConfigFileName, src.Origin)

		src, ok, err = (&Config{Theme: "/opt/themes/nord.toml"}).ResolveTheme(Selection{})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "/opt/themes/nord.toml", src.Path)
	})

	t.Run("nothing selected", func(t *testing.T) {
		t.Setenv(EnvThemeFile, "")

		_, ok, err := DefaultConfig().ResolveTheme(Selection{})
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestResolvePattern(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDir, dir)
	t.Setenv(EnvPatternFile, "")

	src, ok, err := DefaultConfig().ResolvePattern(Selection{Name: "work/shell"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "patterns", "work", "shell.toml"), src.Path)
	assert.Equal(t, "--pattern", src.Origin)

	src, ok, err = DefaultConfig().ResolvePattern(Selection{File: "p.toml"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "--pattern-file", src.Origin)
	assert.Equal(t, "p.toml", src.Path)
}
