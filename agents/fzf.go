package agents

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kastheco/dye/palette"
)

// fzfPairs maps style names that cover both a foreground and a background
// color in fzf.
var fzfPairs = map[string][2]string{
	"text":          {"fg", "bg"},
	"current-line":  {"fg+", "bg+"},
	"selected-line": {"selected-fg", "selected-bg"},
	"preview":       {"preview-fg", "preview-bg"},
}

type fzfAgent struct{}

func (fzfAgent) Run(scope *palette.Scope, opts RunOptions) (string, error) {
	var optstr strings.Builder
	entries, err := scope.Entries("opts")
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		switch v := e.Value.(type) {
		case string:
			fmt.Fprintf(&optstr, " %s=%s", e.Key, fzfQuote(v))
		case bool:
			if v {
				fmt.Fprintf(&optstr, " %s", e.Key)
			}
		case int64:
			fmt.Fprintf(&optstr, " %s='%d'", e.Key, v)
		default:
			return "", fmt.Errorf("%w: 'opts.%s' must be a string, a number or true/false", palette.ErrSyntax, e.Key)
		}
	}

	var colors []string
	for _, ns := range scope.Styles() {
		colors = append(colors, fzfColors(ns.Name, ns.Style)...)
	}
	colorbase, err := scope.StringOr("colorbase", "")
	if err != nil {
		return "", err
	}
	var colorstr string
	if colorbase != "" || len(colors) > 0 {
		spec := strings.Join(colors, ",")
		if colorbase != "" {
			spec = colorbase + "," + spec
		}
		colorstr = fmt.Sprintf(" --color='%s'", spec)
	}

	name, err := targetVar(scope, "FZF_DEFAULT_OPTS")
	if err != nil {
		return "", err
	}
	return opts.Shell.Export(name, optstr.String()+colorstr), nil
}

// fzfQuote single-quotes v for fzf's own word splitting of
// FZF_DEFAULT_OPTS. An embedded quote closes the string, adds an escaped
// quote and reopens it.
func fzfQuote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}

// fzfColors renders one style as fzf color specs. Styles outside fzfPairs
// only use their foreground color.
func fzfColors(name string, st palette.Style) []string {
	var out []string
	fgName, bgName := name, ""
	if pair, ok := fzfPairs[name]; ok {
		fgName, bgName = pair[0], pair[1]
	}
	if st.Foreground.IsSet() {
		out = append(out, fmt.Sprintf("%s:%s:%s", fgName, fzfColor(st.Foreground), fzfAttrs(st)))
	}
	if bgName != "" && st.Background.IsSet() {
		out = append(out, fmt.Sprintf("%s:%s", bgName, fzfColor(st.Background)))
	}
	return out
}

func fzfColor(c palette.Color) string {
	switch c.Kind {
	case palette.ColorDefault:
		return "-1"
	case palette.ColorStandard, palette.ColorEightBit:
		return strconv.Itoa(c.Number)
	default:
		return c.Hex
	}
}

var fzfAttrNames = []struct {
	attr palette.Attr
	name string
}{
	{palette.AttrBold, "bold"},
	{palette.AttrUnderline, "underline"},
	{palette.AttrReverse, "reverse"},
	{palette.AttrDim, "dim"},
	{palette.AttrItalic, "italic"},
	{palette.AttrStrike, "strikethrough"},
}

func fzfAttrs(st palette.Style) string {
	attrs := []string{"regular"}
	for _, a := range fzfAttrNames {
		if st.Has(a.attr) {
			attrs = append(attrs, a.name)
		}
	}
	return strings.Join(attrs, ":")
}
