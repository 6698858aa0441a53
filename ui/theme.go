// Package ui renders dye's own output: error and debug labels, tables and
// color swatches, styled from $DYE_COLORS.
package ui

import (
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/kastheco/dye/palette"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Output styles text written to one stream.
type Output struct {
	r        *lipgloss.Renderer
	elements map[string]palette.Style
}

// NewOutput returns an Output writing to w with the given color profile.
// elements maps output element names (see config.OutputElements) to styles.
func NewOutput(w io.Writer, elements map[string]palette.Style, profile termenv.Profile) *Output {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	if elements == nil {
		elements = map[string]palette.Style{}
	}
	return &Output{r: r, elements: elements}
}

// Profile picks the color profile for w. NO_COLOR turns color off, force
// turns truecolor on, and otherwise only terminals get color.
func Profile(w io.Writer, force bool) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if force {
		return termenv.TrueColor
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return termenv.NewOutput(f).EnvColorProfile()
	}
	return termenv.Ascii
}

// Colored reports whether the output emits any color at all.
func (o *Output) Colored() bool {
	return o.r.ColorProfile() != termenv.Ascii
}

// Element returns the lipgloss style for an output element. Unstyled
// elements get a plain style.
func (o *Output) Element(name string) lipgloss.Style {
	return o.Style(o.elements[name])
}

// Render renders text as an output element.
func (o *Output) Render(element, text string) string {
	if _, ok := o.elements[element]; !ok {
		return text
	}
	return o.Element(element).Render(text)
}

// Style converts a resolved palette style to a lipgloss style bound to this
// output's renderer.
func (o *Output) Style(st palette.Style) lipgloss.Style {
	s := o.r.NewStyle()
	if st.Foreground.IsSet() {
		s = s.Foreground(TerminalColor(st.Foreground))
	}
	if st.Background.IsSet() {
		s = s.Background(TerminalColor(st.Background))
	}
	return s.
		Bold(st.Has(palette.AttrBold)).
		Faint(st.Has(palette.AttrDim)).
		Italic(st.Has(palette.AttrItalic)).
		Underline(st.Has(palette.AttrUnderline)).
		Blink(st.Has(palette.AttrBlink)).
		Reverse(st.Has(palette.AttrReverse)).
		Strikethrough(st.Has(palette.AttrStrike))
}

// TerminalColor maps a palette color to its lipgloss equivalent.
func TerminalColor(c palette.Color) lipgloss.TerminalColor {
	switch c.Kind {
	case palette.ColorTrue:
		return lipgloss.Color(c.Hex)
	case palette.ColorStandard, palette.ColorEightBit:
		return lipgloss.Color(strconv.Itoa(c.Number))
	default:
		return lipgloss.NoColor{}
	}
}

// Swatch renders a block of the color, or an empty string without color.
func (o *Output) Swatch(c palette.Color) string {
	if !o.Colored() || !c.IsSet() || c.Kind == palette.ColorDefault {
		return ""
	}
	return o.r.NewStyle().Background(TerminalColor(c)).Render("    ")
}
