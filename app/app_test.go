package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kastheco/dye/agents"
	"github.com/kastheco/dye/config"
	"github.com/kastheco/dye/log"
	"github.com/kastheco/dye/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Initialize(false, "")
	defer log.Close()
	os.Exit(m.Run())
}

const testTheme = `
[colors]
red = "#ff0000"
blue = "#0000ff"
`

const testPattern = `
[scopes.ls]
agent = "ls_colors"
style.directory = { fg = "red" }

[scopes.eza]
agent = "eza"
enabled = false
style.da = "blue"

[scopes.env]
agent = "environment_variables"
comment = "prompt colors"
enabled_if = "[ \"$TERM\" = xterm ]"
export.EDITOR = "vi"
`

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func testInputs(t *testing.T, themeText, patternText string) *Inputs {
	t.Helper()
	theme, err := palette.ParseTheme("theme.toml", themeText)
	require.NoError(t, err)
	pattern, err := palette.ParsePattern("pattern.toml", patternText)
	require.NoError(t, err)
	pal, err := palette.New(theme, pattern)
	require.NoError(t, err)
	return &Inputs{Theme: theme, Pattern: pattern, Palette: pal}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvDir, dir)
	t.Setenv(config.EnvThemeFile, "")
	t.Setenv(config.EnvPatternFile, "")
	themePath := writeFile(t, dir, "themes/dracula.toml", testTheme)
	patternPath := writeFile(t, dir, "p.toml", testPattern)

	t.Run("named theme and explicit pattern", func(t *testing.T) {
		in, err := Load(config.DefaultConfig(), LoadOptions{
			Theme:   config.Selection{Name: "dracula"},
			Pattern: config.Selection{File: patternPath},
		})
		require.NoError(t, err)
		assert.True(t, in.HasTheme())
		assert.True(t, in.HasPattern())
		assert.Equal(t, themePath, in.ThemeSource.Path)
		assert.Equal(t, "--pattern-file", in.PatternSource.Origin)
		c, ok := in.Palette.Color("red")
		require.True(t, ok)
		assert.Equal(t, "#ff0000", c.String())
	})

	t.Run("theme is optional", func(t *testing.T) {
		in, err := Load(config.DefaultConfig(), LoadOptions{Pattern: config.Selection{File: patternPath}})
		require.NoError(t, err)
		assert.False(t, in.HasTheme())
		assert.NotNil(t, in.Theme)
	})

	t.Run("required theme", func(t *testing.T) {
		_, err := Load(config.DefaultConfig(), LoadOptions{RequireTheme: true})
		assert.ErrorIs(t, err, ErrNoTheme)
	})

	t.Run("required pattern", func(t *testing.T) {
		_, err := Load(config.DefaultConfig(), LoadOptions{RequirePattern: true})
		assert.ErrorIs(t, err, ErrNoPattern)
	})

	t.Run("no-theme conflicts with a required theme", func(t *testing.T) {
		_, err := Load(config.DefaultConfig(), LoadOptions{NoTheme: true, RequireTheme: true})
		assert.EqualError(t, err, "a theme is required and you specified --no-theme")
	})

	t.Run("no-theme ignores the configured theme", func(t *testing.T) {
		cfg := &config.Config{Theme: "dracula"}
		in, err := Load(cfg, LoadOptions{NoTheme: true, Pattern: config.Selection{File: patternPath}})
		require.NoError(t, err)
		assert.False(t, in.HasTheme())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(config.DefaultConfig(), LoadOptions{Theme: config.Selection{Name: "nord"}})
		assert.ErrorIs(t, err, palette.ErrNotFound)
	})
}

func TestSelectScopes(t *testing.T) {
	in := testInputs(t, testTheme, testPattern)

	names := func(defs []*palette.ScopeDef) []string {
		var out []string
		for _, d := range defs {
			out = append(out, d.Name)
		}
		return out
	}

	t.Run("declaration order", func(t *testing.T) {
		defs, err := SelectScopes(in.Pattern, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"ls", "eza", "env"}, names(defs))
	})

	t.Run("requested order", func(t *testing.T) {
		defs, err := SelectScopes(in.Pattern, []string{"env", "ls"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"env", "ls"}, names(defs))
	})

	t.Run("agent filter", func(t *testing.T) {
		defs, err := SelectScopes(in.Pattern, nil, []string{"eza", "ls_colors"})
		require.NoError(t, err)
		assert.Equal(t, []string{"ls", "eza"}, names(defs))
	})

	t.Run("unknown scope", func(t *testing.T) {
		_, err := SelectScopes(in.Pattern, []string{"lss"}, nil)
		assert.EqualError(t, err, "lss: no such scope, did you mean 'ls'?")
	})
}

func TestApply(t *testing.T) {
	in := testInputs(t, testTheme, testPattern)
	ctx := context.Background()
	reg := agents.Default()

	t.Run("enabled_if true", func(t *testing.T) {
		out, err := Apply(ctx, reg, in, ApplyOptions{Env: []string{"TERM=xterm"}})
		require.NoError(t, err)
		assert.Equal(t, "export LS_COLORS=\"di=38;2;255;0;0\"\nexport EDITOR=\"vi\"\n", out)
	})

	t.Run("enabled_if false", func(t *testing.T) {
		out, err := Apply(ctx, reg, in, ApplyOptions{Env: []string{"TERM=dumb"}})
		require.NoError(t, err)
		assert.Equal(t, "export LS_COLORS=\"di=38;2;255;0;0\"\n", out)
	})

	t.Run("fish", func(t *testing.T) {
		out, err := Apply(ctx, reg, in, ApplyOptions{Scopes: []string{"env"}, Shell: agents.Fish, Env: []string{"TERM=xterm"}})
		require.NoError(t, err)
		assert.Equal(t, "set -gx EDITOR \"vi\"\n", out)
	})

	t.Run("comments", func(t *testing.T) {
		out, err := Apply(ctx, reg, in, ApplyOptions{Comment: true, Env: []string{"TERM=xterm"}})
		require.NoError(t, err)
		assert.Equal(t, "# scope 'ls' (agent ls_colors)\n"+
			"export LS_COLORS=\"di=38;2;255;0;0\"\n"+
			"# scope 'eza' (agent eza) skipped: enabled is false\n"+
			"# scope 'env' (agent environment_variables)\n"+
			"# prompt colors\n"+
			"export EDITOR=\"vi\"\n", out)
	})

	t.Run("nothing selected", func(t *testing.T) {
		out, err := Apply(ctx, reg, in, ApplyOptions{Agents: []string{"fzf"}})
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("a failing scope produces no output", func(t *testing.T) {
		bad := testInputs(t, "", `
[scopes.ls]
agent = "ls_colors"
style.directory = "#ff0000"

[scopes.other]
agent = "ls_colors"
style.directory = { fg = "blue" }
`)
		out, err := Apply(ctx, reg, bad, ApplyOptions{})
		var rerr *palette.ResolveError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "other", rerr.Scope)
		assert.Empty(t, out)
	})

	t.Run("disabled scopes still resolve", func(t *testing.T) {
		bad := testInputs(t, "", `
[scopes.off]
agent = "ls_colors"
enabled = false
style.directory = { fg = "missing" }
`)
		_, err := Apply(ctx, reg, bad, ApplyOptions{})
		var rerr *palette.ResolveError
		assert.ErrorAs(t, err, &rerr)
	})

	t.Run("unused named style with an undefined reference", func(t *testing.T) {
		bad := testInputs(t, testTheme, `
[styles]
warning = "bold nosuch"

[scopes.ls]
agent = "ls_colors"
style.directory = "red"
`)
		out, err := Apply(ctx, reg, bad, ApplyOptions{})
		var rerr *palette.ResolveError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "nosuch", rerr.Key)
		assert.Equal(t, "styles.warning", rerr.Entry)
		assert.Empty(t, out)
	})

	t.Run("invalid enabled_if", func(t *testing.T) {
		bad := testInputs(t, "", `
[scopes.x]
agent = "shell"
enabled_if = "if then fi ("
command.a = "true"
`)
		_, err := Apply(ctx, reg, bad, ApplyOptions{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "scope 'x'")
	})
}

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.sh")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, WriteOutput(path, []byte("export A=\"1\"\n")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "export A=\"1\"\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	assert.Error(t, WriteOutput(filepath.Join(t.TempDir(), "missing", "x.sh"), nil))

	t.Run("keeps the mode of an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "private.sh")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))
		require.NoError(t, os.Chmod(path, 0o600))

		require.NoError(t, WriteOutput(path, []byte("new")))
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	})

	t.Run("new files are world readable", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fresh.sh")
		require.NoError(t, WriteOutput(path, []byte("new")))
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), fi.Mode().Perm())
	})
}
