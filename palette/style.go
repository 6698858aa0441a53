package palette

import (
	"strconv"
	"strings"
)

// Attr is a set of text attributes.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrStrike
)

type attrInfo struct {
	attr Attr
	name string
	sgr  int
}

// attrTable is ordered by SGR code, which is also the rendering order.
var attrTable = []attrInfo{
	{AttrBold, "bold", 1},
	{AttrDim, "dim", 2},
	{AttrItalic, "italic", 3},
	{AttrUnderline, "underline", 4},
	{AttrBlink, "blink", 5},
	{AttrReverse, "reverse", 7},
	{AttrStrike, "strike", 9},
}

var attrAliases = map[string]Attr{
	"bold": AttrBold, "b": AttrBold,
	"dim": AttrDim, "d": AttrDim,
	"italic": AttrItalic, "i": AttrItalic,
	"underline": AttrUnderline, "u": AttrUnderline,
	"blink":   AttrBlink,
	"reverse": AttrReverse, "r": AttrReverse,
	"strike": AttrStrike, "s": AttrStrike, "strikethrough": AttrStrike,
}

// Style is a resolved style: two colors and a set of attributes. It never
// holds a symbolic reference.
type Style struct {
	Foreground Color
	Background Color
	Attrs      Attr
}

// Has reports whether every attribute in a is set.
func (s Style) Has(a Attr) bool { return s.Attrs&a == a }

// IsZero reports whether the style sets nothing at all.
func (s Style) IsZero() bool {
	return !s.Foreground.IsSet() && !s.Background.IsSet() && s.Attrs == 0
}

// Merge applies the settings of o on top of s.
func (s Style) Merge(o Style) Style {
	if o.Foreground.IsSet() {
		s.Foreground = o.Foreground
	}
	if o.Background.IsSet() {
		s.Background = o.Background
	}
	s.Attrs |= o.Attrs
	return s
}

// Codes returns the SGR parameters for the style, attributes first, then
// foreground, then background, joined with ";".
func (s Style) Codes() string {
	var codes []string
	for _, a := range attrTable {
		if s.Has(a.attr) {
			codes = append(codes, strconv.Itoa(a.sgr))
		}
	}
	if seq := s.Foreground.Sequence(false); seq != "" {
		codes = append(codes, seq)
	}
	if seq := s.Background.Sequence(true); seq != "" {
		codes = append(codes, seq)
	}
	return strings.Join(codes, ";")
}

// Sequence returns the escape sequence that switches the terminal to this
// style, or "" for an empty style.
func (s Style) Sequence() string {
	codes := s.Codes()
	if codes == "" {
		return ""
	}
	return "\x1b[" + codes + "m"
}

// Render wraps text in the style's escape sequence and a reset.
func (s Style) Render(text string) string {
	seq := s.Sequence()
	if seq == "" {
		return text
	}
	return seq + text + Reset
}

// Reset is the SGR sequence that clears every attribute and color.
const Reset = "\x1b[0m"

// String returns the canonical declaration of the style, e.g.
// "bold #50fa7b on #282a36". Parsing it again yields the same style.
func (s Style) String() string {
	var words []string
	for _, a := range attrTable {
		if s.Has(a.attr) {
			words = append(words, a.name)
		}
	}
	if s.Foreground.IsSet() {
		words = append(words, s.Foreground.String())
	}
	if s.Background.IsSet() {
		words = append(words, "on", s.Background.String())
	}
	return strings.Join(words, " ")
}

// AttrNames returns the names of the set attributes in rendering order.
func (s Style) AttrNames() []string {
	var names []string
	for _, a := range attrTable {
		if s.Has(a.attr) {
			names = append(names, a.name)
		}
	}
	return names
}

// ParseStyle parses a declaration that contains only literals. ANSI color
// names are accepted as colors. It is used for dye's own DYE_COLORS, where
// there is no palette to reference.
func ParseStyle(decl string) (Style, error) {
	return parseDecl(decl, literalLookup{})
}

// lookup resolves the bare words of a declaration.
type lookup interface {
	style(name string) (Style, bool, error)
	color(name string) (Color, bool, error)
}

type literalLookup struct{}

func (literalLookup) style(string) (Style, bool, error) { return Style{}, false, nil }

func (literalLookup) color(name string) (Color, bool, error) {
	c, err := ParseColor(name)
	if err != nil {
		return Color{}, false, nil
	}
	return c, true, nil
}

// parseDecl reads the shorthand grammar:
//
//	[not] attr ... [fg] [on bg]
//
// A bare word in the foreground position may name a style, which is merged in.
func parseDecl(decl string, lk lookup) (Style, error) {
	var (
		st    Style
		clear Attr
	)
	words := strings.Fields(decl)
	for i := 0; i < len(words); i++ {
		word := words[i]
		lower := strings.ToLower(word)
		switch {
		case lower == "on":
			i++
			if i >= len(words) {
				return Style{}, syntaxErrorf("'%s': expected a color after 'on'", decl)
			}
			c, err := resolveColorWord(words[i], lk)
			if err != nil {
				return Style{}, err
			}
			st.Background = c
		case lower == "not":
			i++
			if i >= len(words) {
				return Style{}, syntaxErrorf("'%s': expected an attribute after 'not'", decl)
			}
			a, ok := attrAliases[strings.ToLower(words[i])]
			if !ok {
				return Style{}, syntaxErrorf("'%s': unknown attribute '%s'", decl, words[i])
			}
			clear |= a
		case lower == "none":
			// explicit empty style
		default:
			if a, ok := attrAliases[lower]; ok {
				st.Attrs |= a
				continue
			}
			if isUnambiguousLiteral(word) {
				c, err := ParseColor(word)
				if err != nil {
					return Style{}, err
				}
				st.Foreground = c
				continue
			}
			inherited, ok, err := lk.style(word)
			if err != nil {
				return Style{}, err
			}
			if ok {
				st = st.Merge(inherited)
				continue
			}
			c, err := resolveColorWord(word, lk)
			if err != nil {
				return Style{}, err
			}
			st.Foreground = c
		}
	}
	st.Attrs &^= clear
	return st, nil
}

func resolveColorWord(word string, lk lookup) (Color, error) {
	if isUnambiguousLiteral(word) {
		return ParseColor(word)
	}
	c, ok, err := lk.color(word)
	if err != nil {
		return Color{}, err
	}
	if !ok {
		return Color{}, &ResolveError{Key: word}
	}
	return c, nil
}
