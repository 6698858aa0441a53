package check

import (
	"context"
	"testing"

	"github.com/kastheco/dye/agents"
	"github.com/kastheco/dye/app"
	"github.com/kastheco/dye/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inputs(t *testing.T, themeText, patternText string) *app.Inputs {
	t.Helper()
	theme, err := palette.ParseTheme("theme.toml", themeText)
	require.NoError(t, err)
	pattern, err := palette.ParsePattern("pattern.toml", patternText)
	require.NoError(t, err)
	pal, err := palette.New(theme, pattern)
	require.NoError(t, err)
	return &app.Inputs{Theme: theme, Pattern: pattern, Palette: pal}
}

const theme = `
[colors]
red = "#ff0000"

[styles]
alert = "bold red"
broken = "bold missing"
`

const pattern = `
[scopes.ls]
agent = "ls_colors"
style.directory = "alert"

[scopes.off]
agent = "eza"
enabled = false
style.da = "red"

[scopes.gated]
agent = "shell"
enabled_if = "[ -n \"$DYE_TEST_GATE\" ]"
command.a = "true"

[scopes.bad]
agent = "ls_colors"
style.nonsense = "red"
`

func TestAudit(t *testing.T) {
	result := Audit(context.Background(), agents.Default(), inputs(t, theme, pattern), nil)

	t.Run("styles", func(t *testing.T) {
		require.Len(t, result.Styles, 2)
		assert.Equal(t, StatusOK, result.Styles[0].Status)
		assert.Equal(t, "broken", result.Styles[1].Name)
		assert.Equal(t, StatusFailed, result.Styles[1].Status)
		assert.Contains(t, result.Styles[1].Detail, "'missing'")
	})

	t.Run("scopes in declaration order", func(t *testing.T) {
		require.Len(t, result.Scopes, 4)
		byName := map[string]Entry{}
		var names []string
		for _, e := range result.Scopes {
			byName[e.Name] = e
			names = append(names, e.Name)
		}
		assert.Equal(t, []string{"ls", "off", "gated", "bad"}, names)

		assert.Equal(t, StatusOK, byName["ls"].Status)
		assert.Equal(t, "ls_colors", byName["ls"].Agent)
		assert.Equal(t, StatusDisabled, byName["off"].Status)
		assert.Equal(t, "enabled is false", byName["off"].Detail)
		assert.Equal(t, StatusDisabled, byName["gated"].Status)
		assert.Equal(t, StatusFailed, byName["bad"].Status)
		assert.Contains(t, byName["bad"].Detail, "unknown style 'nonsense'")
	})

	t.Run("summary skips disabled entries", func(t *testing.T) {
		ok, total := result.Summary()
		assert.Equal(t, 2, ok)
		assert.Equal(t, 4, total)
	})

	t.Run("failed entries", func(t *testing.T) {
		failed := result.Failed()
		require.Len(t, failed, 2)
		assert.Equal(t, "broken", failed[0].Name)
		assert.Equal(t, "bad", failed[1].Name)
	})
}

func TestAudit_Environment(t *testing.T) {
	in := inputs(t, theme, pattern)
	result := Audit(context.Background(), agents.Default(), in, []string{"DYE_TEST_GATE=1"})
	for _, e := range result.Scopes {
		if e.Name == "gated" {
			assert.Equal(t, StatusOK, e.Status)
		}
	}
}

func TestAudit_Empty(t *testing.T) {
	result := Audit(context.Background(), agents.Default(), inputs(t, "", ""), nil)
	assert.Empty(t, result.Styles)
	assert.Empty(t, result.Scopes)
	ok, total := result.Summary()
	assert.Zero(t, ok)
	assert.Zero(t, total)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "disabled", StatusDisabled.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", Status(42).String())
}
