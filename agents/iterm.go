package agents

import (
	"fmt"
	"strings"

	"github.com/kastheco/dye/palette"
)

var cursorShapes = map[string]string{
	"block":        "0",
	"box":          "0",
	"vertical_bar": "1",
	"vertical":     "1",
	"bar":          "1",
	"pipe":         "1",
	"underline":    "2",
}

type itermAgent struct{}

// Run emits echo commands carrying iTerm's proprietary escape sequences:
// profile, tab color, foreground and background, cursor shape and color.
func (itermAgent) Run(scope *palette.Scope, _ RunOptions) (string, error) {
	var out []string

	profile, err := scope.StringOr("profile", "")
	if err != nil {
		return "", err
	}
	if profile != "" {
		out = append(out, itermEcho(`\e]1337;SetProfile=`+profile+`\a`))
	}

	if tab, ok := scope.Style("tab"); ok && tab.Foreground.IsSet() {
		if tab.Foreground.Kind == palette.ColorDefault {
			out = append(out, itermEcho(`\e]6;1;bg;*;default\a`))
		} else {
			r, g, b, _ := tab.Foreground.RGB()
			for _, ch := range []struct {
				name  string
				value uint8
			}{{"red", r}, {"green", g}, {"blue", b}} {
				out = append(out, itermEcho(fmt.Sprintf(`\e]6;1;bg;%s;brightness;%d\a`, ch.name, ch.value)))
			}
		}
	}

	for _, c := range []struct{ style, key string }{{"foreground", "fg"}, {"background", "bg"}} {
		line, err := itermSetColor(scope, c.style, c.key)
		if err != nil {
			return "", err
		}
		if line != "" {
			out = append(out, line)
		}
	}

	cursor, err := scope.StringOr("cursor", "")
	if err != nil {
		return "", err
	}
	switch {
	case cursor == "":
	case cursor == "profile":
		out = append(out, itermEcho(`\e[0q`))
	default:
		shape, ok := cursorShapes[cursor]
		if !ok {
			return "", fmt.Errorf("unknown cursor '%s'", cursor)
		}
		out = append(out, itermEcho(`\e]1337;CursorShape=`+shape+`\a`))
	}
	line, err := itermSetColor(scope, "cursor", "curbg")
	if err != nil {
		return "", err
	}
	if line != "" {
		out = append(out, line)
	}

	return strings.Join(out, "\n"), nil
}

// itermSetColor sets one entry of the session's color palette from the
// foreground color of a style.
func itermSetColor(scope *palette.Scope, style, key string) (string, error) {
	st, ok := scope.Style(style)
	if !ok || !st.Foreground.IsSet() {
		return "", nil
	}
	hex := st.Foreground.HexValue()
	if hex == "" {
		return "", fmt.Errorf("style '%s' needs a color with an RGB value, not '%s'", style, st.Foreground)
	}
	return itermEcho(`\e]1337;SetColors=` + key + "=" + strings.TrimPrefix(hex, "#") + `\a`), nil
}

func itermEcho(seq string) string {
	return `builtin echo -en "` + seq + `"`
}
