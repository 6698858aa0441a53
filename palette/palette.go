package palette

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Palette is the merged view of a theme and a pattern with every color
// resolved. Styles are resolved on first use and cached.
type Palette struct {
	colors     map[string]Color
	colorOrder []string
	colorDefs  map[string]colorSource

	styleDefs  map[string]any
	styleOrder []string
	styleFrom  map[string]string

	styles    map[string]Style
	resolving map[string]bool
}

type colorSource struct {
	def  string
	from string
}

// New merges theme and pattern (either may be nil) and resolves the colors.
// A color value may be a literal or the name of another color in the palette.
func New(theme *Theme, pattern *Pattern) (*Palette, error) {
	p := &Palette{
		colors:    map[string]Color{},
		colorDefs: map[string]colorSource{},
		styleDefs: map[string]any{},
		styleFrom: map[string]string{},
		styles:    map[string]Style{},
		resolving: map[string]bool{},
	}
	if theme != nil {
		p.addColors(theme.colors, "theme")
		p.addStyles(theme.styles, "theme")
	}
	if pattern != nil {
		p.addColors(pattern.colors, "pattern")
		p.addStyles(pattern.styles, "pattern")
	}

	for _, name := range p.colorOrder {
		if _, err := p.resolveColor(name, map[string]bool{}); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Palette) addColors(o *ordered[string], from string) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		if _, ok := p.colorDefs[k]; !ok {
			p.colorOrder = append(p.colorOrder, k)
		}
		p.colorDefs[k] = colorSource{def: o.values[k], from: from}
	}
}

func (p *Palette) addStyles(o *ordered[any], from string) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		if _, ok := p.styleDefs[k]; !ok {
			p.styleOrder = append(p.styleOrder, k)
		}
		p.styleDefs[k] = o.values[k]
		p.styleFrom[k] = from
	}
}

func (p *Palette) resolveColor(name string, visiting map[string]bool) (Color, error) {
	if c, ok := p.colors[name]; ok {
		return c, nil
	}
	src, ok := p.colorDefs[name]
	if !ok {
		return Color{}, &ResolveError{Key: name}
	}
	if visiting[name] {
		return Color{}, &ResolveError{Entry: name, Key: name, Cycle: true}
	}
	visiting[name] = true

	def := strings.TrimSpace(src.def)
	var (
		c   Color
		err error
	)
	if _, alias := p.colorDefs[def]; alias && def != name {
		c, err = p.resolveColor(def, visiting)
		var rerr *ResolveError
		if errors.As(err, &rerr) && rerr.Entry == "" {
			rerr.Entry = name
		}
	} else {
		c, err = ParseColor(def)
		if errors.Is(err, ErrInvalidColor) {
			if isUnambiguousLiteral(def) {
				err = fmt.Errorf("'colors.%s': %w", name, err)
			} else {
				err = &ResolveError{Entry: "colors." + name, Key: def}
			}
		}
	}
	if err != nil {
		return Color{}, err
	}
	p.colors[name] = c
	return c, nil
}

// Color returns a resolved color by name.
func (p *Palette) Color(name string) (Color, bool) {
	c, ok := p.colors[name]
	return c, ok
}

// ColorNames returns all color names, theme colors first, in declaration order.
func (p *Palette) ColorNames() []string {
	return append([]string(nil), p.colorOrder...)
}

// ColorSource returns the raw definition of a color and where it came from
// ("theme" or "pattern").
func (p *Palette) ColorSource(name string) (def, from string, ok bool) {
	src, ok := p.colorDefs[name]
	return src.def, src.from, ok
}

// StyleNames returns all named styles in declaration order.
func (p *Palette) StyleNames() []string {
	return append([]string(nil), p.styleOrder...)
}

// StyleSource returns the declaration of a named style as written and where
// it came from.
func (p *Palette) StyleSource(name string) (def, from string, ok bool) {
	raw, ok := p.styleDefs[name]
	if !ok {
		return "", "", false
	}
	text, err := declText(raw)
	if err != nil {
		return fmt.Sprint(raw), p.styleFrom[name], true
	}
	return text, p.styleFrom[name], true
}

// Style resolves a named style.
func (p *Palette) Style(name string) (Style, error) {
	if st, ok := p.styles[name]; ok {
		return st, nil
	}
	raw, ok := p.styleDefs[name]
	if !ok {
		return Style{}, &ResolveError{Key: name}
	}
	if p.resolving[name] {
		return Style{}, &ResolveError{Entry: "styles." + name, Key: name, Cycle: true}
	}
	p.resolving[name] = true
	defer delete(p.resolving, name)

	text, err := declText(raw)
	if err != nil {
		return Style{}, fmt.Errorf("styles: '%s': %w", name, err)
	}
	text, err = p.render("styles."+name, text)
	if err != nil {
		return Style{}, annotate(err, "", "styles."+name)
	}
	st, err := parseDecl(text, p)
	if err != nil {
		return Style{}, annotate(err, "", "styles."+name)
	}
	p.styles[name] = st
	return st, nil
}

// Validate resolves every named style in declaration order and returns the
// first error. Styles no scope uses are checked too.
func (p *Palette) Validate() error {
	for _, name := range p.styleOrder {
		if _, err := p.Style(name); err != nil {
			return err
		}
	}
	return nil
}

// ResolveStyle resolves a declaration (string or attribute table) against
// the palette.
func (p *Palette) ResolveStyle(decl any) (Style, error) {
	text, err := declText(decl)
	if err != nil {
		return Style{}, err
	}
	return parseDecl(text, p)
}

// style and color make Palette a lookup for parseDecl.
func (p *Palette) style(name string) (Style, bool, error) {
	if _, ok := p.styleDefs[name]; !ok {
		return Style{}, false, nil
	}
	st, err := p.Style(name)
	return st, err == nil, err
}

func (p *Palette) color(name string) (Color, bool, error) {
	c, ok := p.colors[name]
	return c, ok, nil
}

// annotate fills in the scope and entry of resolution errors that were
// raised deep inside a declaration.
func annotate(err error, scope, entry string) error {
	var rerr *ResolveError
	if errors.As(err, &rerr) {
		if rerr.Scope == "" {
			rerr.Scope = scope
		}
		if rerr.Entry == "" {
			rerr.Entry = entry
		}
		return err
	}
	var terr *TemplateError
	if errors.As(err, &terr) {
		if terr.Scope == "" {
			terr.Scope = scope
		}
		return err
	}
	if scope == "" {
		return fmt.Errorf("'%s': %w", entry, err)
	}
	return fmt.Errorf("scope '%s': '%s': %w", scope, entry, err)
}

// declText turns a declaration into shorthand text. A table declaration
// { fg = "red", bg = "navy", bold = true } becomes "bold red on navy".
func declText(decl any) (string, error) {
	switch v := decl.(type) {
	case string:
		return v, nil
	case map[string]any:
		return tableDecl(v)
	default:
		return "", syntaxErrorf("style must be a string or a table, not %T", decl)
	}
}

var colorKeys = map[string]string{"fg": "fg", "foreground": "fg", "color": "fg", "bg": "bg", "background": "bg", "bgcolor": "bg"}

func isDeclTable(m map[string]any) bool {
	for k := range m {
		if _, ok := colorKeys[k]; ok {
			return true
		}
		if _, ok := attrAliases[k]; ok {
			return true
		}
	}
	return false
}

func tableDecl(m map[string]any) (string, error) {
	var (
		words  []string
		fg, bg string
	)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := m[k]
		if slot, ok := colorKeys[k]; ok {
			s, ok := v.(string)
			if !ok {
				return "", syntaxErrorf("style key '%s' must be a string", k)
			}
			if slot == "fg" {
				fg = s
			} else {
				bg = s
			}
			continue
		}
		if _, ok := attrAliases[k]; ok {
			b, ok := v.(bool)
			if !ok {
				return "", syntaxErrorf("style key '%s' must be true or false", k)
			}
			if b {
				words = append(words, k)
			} else {
				words = append(words, "not", k)
			}
			continue
		}
		return "", syntaxErrorf("unknown style key '%s'", k)
	}
	if fg != "" {
		words = append(words, fg)
	}
	if bg != "" {
		words = append(words, "on", bg)
	}
	return strings.Join(words, " "), nil
}
