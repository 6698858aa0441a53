package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// ColorKind identifies how a color is addressed on the terminal.
type ColorKind int

const (
	ColorNone     ColorKind = iota // not set
	ColorDefault                   // the terminal's default color
	ColorStandard                  // one of the 16 named ANSI colors
	ColorEightBit                  // xterm 256-color index
	ColorTrue                      // 24-bit RGB
)

// Color is a concrete, fully resolved color. The zero value means "unset".
type Color struct {
	Kind   ColorKind
	Number int    // ColorStandard, ColorEightBit
	Hex    string // ColorTrue, lowercase #rrggbb
}

// ansiNames lists the standard colors by ANSI index.
var ansiNames = []string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright_black", "bright_red", "bright_green", "bright_yellow",
	"bright_blue", "bright_magenta", "bright_cyan", "bright_white",
}

// xterm renders the 16 standard colors with these values.
var ansiHex = []string{
	"#000000", "#800000", "#008000", "#808000", "#000080", "#800080", "#008080", "#c0c0c0",
	"#808080", "#ff0000", "#00ff00", "#ffff00", "#0000ff", "#ff00ff", "#00ffff", "#ffffff",
}

var ansiIndex = func() map[string]int {
	m := make(map[string]int, len(ansiNames)*2)
	for i, name := range ansiNames {
		m[name] = i
		m[strings.ReplaceAll(name, "_", "-")] = i
	}
	return m
}()

// IsSet reports whether the color was given at all.
func (c Color) IsSet() bool { return c.Kind != ColorNone }

// String returns an unambiguous literal for the color, suitable for feeding
// back into a style declaration.
func (c Color) String() string {
	switch c.Kind {
	case ColorDefault:
		return "default"
	case ColorStandard, ColorEightBit:
		return fmt.Sprintf("color(%d)", c.Number)
	case ColorTrue:
		return c.Hex
	default:
		return ""
	}
}

// Name returns the ANSI name for standard colors and String() otherwise.
func (c Color) Name() string {
	if c.Kind == ColorStandard {
		return ansiNames[c.Number]
	}
	return c.String()
}

// HexValue returns the color as #rrggbb. Indexed colors are mapped through
// the xterm palette. The default color has no hex value.
func (c Color) HexValue() string {
	switch c.Kind {
	case ColorTrue:
		return c.Hex
	case ColorStandard, ColorEightBit:
		return xtermHex(c.Number)
	default:
		return ""
	}
}

// RGB returns the 8-bit channels of HexValue.
func (c Color) RGB() (r, g, b uint8, ok bool) {
	hex := c.HexValue()
	if hex == "" {
		return 0, 0, 0, false
	}
	cf, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0, false
	}
	r, g, b = cf.RGB255()
	return r, g, b, true
}

// Sequence returns the SGR parameters selecting this color as foreground or,
// with bg set, as background ("38;2;255;0;0", "41", "38;5;200").
func (c Color) Sequence(bg bool) string {
	switch c.Kind {
	case ColorDefault:
		if bg {
			return "49"
		}
		return "39"
	case ColorStandard:
		return termenv.ANSIColor(c.Number).Sequence(bg)
	case ColorEightBit:
		return termenv.ANSI256Color(c.Number).Sequence(bg)
	case ColorTrue:
		r, g, b, _ := c.RGB()
		prefix := termenv.Foreground
		if bg {
			prefix = termenv.Background
		}
		return fmt.Sprintf("%s;2;%d;%d;%d", prefix, r, g, b)
	default:
		return ""
	}
}

// ParseColor parses a literal color: "#rrggbb", "#rgb", "color(N)", "N",
// "default", or an ANSI name such as "red" or "bright_blue".
func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if c, ok := parseUnambiguous(v); ok {
		return c, nil
	}
	if n, ok := ansiIndex[v]; ok {
		return Color{Kind: ColorStandard, Number: n}, nil
	}
	return Color{}, fmt.Errorf("%w: '%s'", ErrInvalidColor, s)
}

// isUnambiguousLiteral reports whether s can only be read as a color, never
// as a reference: hex values, indexed colors and "default".
func isUnambiguousLiteral(s string) bool {
	v := strings.ToLower(s)
	if v == "default" || strings.HasPrefix(v, "#") || strings.HasPrefix(v, "color(") {
		return true
	}
	_, err := strconv.Atoi(v)
	return err == nil
}

func parseUnambiguous(v string) (Color, bool) {
	switch {
	case v == "default":
		return Color{Kind: ColorDefault}, true
	case strings.HasPrefix(v, "#"):
		return parseHex(v)
	case strings.HasPrefix(v, "color(") && strings.HasSuffix(v, ")"):
		return indexed(strings.TrimSuffix(strings.TrimPrefix(v, "color("), ")"))
	default:
		return indexed(v)
	}
}

func parseHex(v string) (Color, bool) {
	if len(v) == 4 {
		v = "#" + string([]byte{v[1], v[1], v[2], v[2], v[3], v[3]})
	}
	if len(v) != 7 {
		return Color{}, false
	}
	cf, err := colorful.Hex(v)
	if err != nil {
		return Color{}, false
	}
	return Color{Kind: ColorTrue, Hex: cf.Hex()}, true
}

func indexed(v string) (Color, bool) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > 255 {
		return Color{}, false
	}
	if n < 16 {
		return Color{Kind: ColorStandard, Number: n}, true
	}
	return Color{Kind: ColorEightBit, Number: n}, true
}

func xtermHex(n int) string {
	switch {
	case n < 16:
		return ansiHex[n]
	case n < 232:
		levels := [6]int{0, 95, 135, 175, 215, 255}
		i := n - 16
		return fmt.Sprintf("#%02x%02x%02x", levels[i/36], levels[(i/6)%6], levels[i%6])
	default:
		v := 8 + (n-232)*10
		return fmt.Sprintf("#%02x%02x%02x", v, v, v)
	}
}
