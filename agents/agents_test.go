package agents

import (
	"strings"
	"testing"

	"github.com/kastheco/dye/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLsColors(t *testing.T) {
	t.Run("theme reference renders truecolor codes", func(t *testing.T) {
		out, err := run(t, `red = "#ff0000"`, `
[scopes.ls]
agent = "ls_colors"
style.directory = { fg = "red" }
style.ex = "bold red"
`, "ls")
		require.NoError(t, err)
		assert.Equal(t, `export LS_COLORS="di=38;2;255;0;0:ex=1;38;2;255;0;0"`, out)
	})

	t.Run("default color and clear_builtin", func(t *testing.T) {
		out, err := run(t, "", `
[scopes.ls]
agent = "ls_colors"
clear_builtin = true
style.text = "default"
style.file = "color(4)"
`, "ls")
		require.NoError(t, err)
		want := []string{"no=0", "fi=34"}
		for _, p := range lsColorsBase[2:] {
			want = append(want, p.code+"=0")
		}
		assert.Equal(t, `export LS_COLORS="`+strings.Join(want, ":")+`"`, out)
	})

	t.Run("unknown style", func(t *testing.T) {
		_, err := run(t, "", `
[scopes.ls]
agent = "ls_colors"
style.bogus = "#ffffff"
`, "ls")
		var aerr *AgentError
		require.ErrorAs(t, err, &aerr)
		assert.Equal(t, "ls", aerr.Scope)
		assert.Equal(t, "scope 'ls': ls_colors: unknown style 'bogus'", err.Error())
	})

	t.Run("clear_builtin must be a bool", func(t *testing.T) {
		_, err := run(t, "", `
[scopes.ls]
agent = "ls_colors"
clear_builtin = "yes"
`, "ls")
		assert.ErrorIs(t, err, palette.ErrSyntax)
		assert.Contains(t, err.Error(), "'clear_builtin' must be true or false")
	})
}

func TestEza(t *testing.T) {
	out, err := run(t, `
[colors]
blue = "#0000ff"
`, `
[scopes.eza]
agent = "eza"
clear_builtin = true
style."filekinds:directory" = "bold blue"
style.da = "color(244)"
style."*.md" = "#ffffff"
`, "eza")
	require.NoError(t, err)
	assert.Equal(t, `export EZA_COLORS="reset:di=1;38;2;0;0;255:da=38;5;244:*.md=38;2;255;255;255"`, out)

	t.Run("empty", func(t *testing.T) {
		out, err := run(t, "", "[scopes.eza]\nagent = \"eza\"\n", "eza")
		require.NoError(t, err)
		assert.Equal(t, `export EZA_COLORS=""`, out)
	})
}

func TestFzf(t *testing.T) {
	out, err := run(t, `
[colors]
foreground = "#f8f8f2"
background = "#282a36"
green = "#50fa7b"
`, `
[scopes.fzf]
agent = "fzf"
colorbase = "dark"
opts."--layout" = "reverse"
opts."--ansi" = true
opts."--no-mouse" = false
style.text = "foreground on background"
style.prompt = "bold underline green on background"
style.current-line = "default on color(236)"
`, "fzf")
	require.NoError(t, err)
	assert.Equal(t,
		`export FZF_DEFAULT_OPTS=" --layout='reverse' --ansi --color='dark,fg:#f8f8f2:regular,bg:#282a36,prompt:#50fa7b:regular:bold:underline,fg+:-1:regular,bg+:236'"`,
		out)

	t.Run("nothing set", func(t *testing.T) {
		out, err := run(t, "", "[scopes.fzf]\nagent = \"fzf\"\n", "fzf")
		require.NoError(t, err)
		assert.Equal(t, `export FZF_DEFAULT_OPTS=""`, out)
	})

	t.Run("single quotes in an option value", func(t *testing.T) {
		out, err := run(t, "", `
[scopes.fzf]
agent = "fzf"
opts."--prompt" = "it's > "
`, "fzf")
		require.NoError(t, err)
		assert.Equal(t, `export FZF_DEFAULT_OPTS=" --prompt='it'\\''s > '"`, out)
	})
}

func TestIterm(t *testing.T) {
	out, err := run(t, "", `
[scopes.iterm]
agent = "iterm"
profile = "Dark"
cursor = "block"
style.tab = "#102030"
style.foreground = "#f8f8f2"
style.background = "#282a36"
style.cursor = "#ff0000"
`, "iterm")
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		`builtin echo -en "\e]1337;SetProfile=Dark\a"`,
		`builtin echo -en "\e]6;1;bg;red;brightness;16\a"`,
		`builtin echo -en "\e]6;1;bg;green;brightness;32\a"`,
		`builtin echo -en "\e]6;1;bg;blue;brightness;48\a"`,
		`builtin echo -en "\e]1337;SetColors=fg=f8f8f2\a"`,
		`builtin echo -en "\e]1337;SetColors=bg=282a36\a"`,
		`builtin echo -en "\e]1337;CursorShape=0\a"`,
		`builtin echo -en "\e]1337;SetColors=curbg=ff0000\a"`,
	}, "\n"), out)

	t.Run("default tab and profile cursor", func(t *testing.T) {
		out, err := run(t, "", `
[scopes.iterm]
agent = "iterm"
cursor = "profile"
style.tab = "default"
`, "iterm")
		require.NoError(t, err)
		assert.Equal(t, "builtin echo -en \"\\e]6;1;bg;*;default\\a\"\nbuiltin echo -en \"\\e[0q\"", out)
	})

	t.Run("unknown cursor", func(t *testing.T) {
		_, err := run(t, "", `
[scopes.iterm]
agent = "iterm"
cursor = "triangle"
`, "iterm")
		assert.EqualError(t, err, "scope 'iterm': iterm: unknown cursor 'triangle'")
	})
}

func TestDyeAgent(t *testing.T) {
	t.Run("single style", func(t *testing.T) {
		out, err := run(t, "", `
[scopes.my_dye]
agent = "dye"
style.usage_metavar = "#ffb86c"
`, "my_dye")
		require.NoError(t, err)
		assert.Equal(t, `export DYE_COLORS="usage_metavar=#ffb86c"`, out)
	})

	t.Run("references and attributes", func(t *testing.T) {
		out, err := run(t, `
[colors]
green = "#50fa7b"
purple = "#bd93f9"
`, `
[scopes.my_dye]
agent = "dye"
style.usage_prog = "bold green"
style.ui_border = "{{ color \"purple\" }}"
`, "my_dye")
		require.NoError(t, err)
		assert.Equal(t, `export DYE_COLORS="usage_prog=bold #50fa7b:ui_border=#bd93f9"`, out)
	})

	t.Run("no styles", func(t *testing.T) {
		out, err := run(t, "", "[scopes.my_dye]\nagent = \"dye\"\n", "my_dye")
		require.NoError(t, err)
		assert.Equal(t, `export DYE_COLORS=""`, out)
	})

	t.Run("unknown element", func(t *testing.T) {
		_, err := run(t, "", `
[scopes.my_dye]
agent = "dye"
style.usage_prg = "bold"
`, "my_dye")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown element 'usage_prg', did you mean 'usage_prog'?")
	})
}

func TestEnvironmentVariables(t *testing.T) {
	theme := `red = "#ff0000"`
	pattern := `
[scopes.env]
agent = "environment_variables"
unset = ["OLD_COLORS"]
export.GREP_COLOR = "1;31"
export.BAT_THEME = "Dracula"
style.PS_RED = { fg = "red" }
`
	sc := resolveScope(t, theme, pattern, "env")

	out, err := Default().Run(sc, RunOptions{Shell: Posix})
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"unset OLD_COLORS",
		`export GREP_COLOR="1;31"`,
		`export BAT_THEME="Dracula"`,
		`export PS_RED=$'\e[38;2;255;0;0m'`,
	}, "\n"), out)

	out, err = Default().Run(sc, RunOptions{Shell: Fish})
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"set -e OLD_COLORS",
		`set -gx GREP_COLOR "1;31"`,
		`set -gx BAT_THEME "Dracula"`,
		`set -gx PS_RED \e"[38;2;255;0;0m"`,
	}, "\n"), out)

	t.Run("invalid variable name", func(t *testing.T) {
		_, err := run(t, "", `
[scopes.env]
agent = "environment_variables"
export."NOT-OK" = "x"
`, "env")
		var aerr *AgentError
		require.ErrorAs(t, err, &aerr)
		assert.Contains(t, err.Error(), "'NOT-OK' is not a valid variable name")
	})
}

func TestShellAgent(t *testing.T) {
	out, err := run(t, `
[colors]
accent = "#bd93f9"
`, `
[scopes.sh]
agent = "shell"
command.first = "bindkey -e"
command.second = "zstyle ':completion:*' list-colors '{{ hex \"accent\" }}'"
`, "sh")
	require.NoError(t, err)
	assert.Equal(t, "bindkey -e\nzstyle ':completion:*' list-colors '#bd93f9'", out)

	t.Run("non string command", func(t *testing.T) {
		_, err := run(t, "", "[scopes.sh]\nagent = \"shell\"\ncommand.x = 1\n", "sh")
		assert.ErrorIs(t, err, palette.ErrSyntax)
	})
}
