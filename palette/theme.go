package palette

import (
	"strings"
)

// Meta is the descriptive information a theme or pattern may carry.
type Meta struct {
	Description string
	Type        string
	Version     string
}

// Theme is a palette of named colors plus optional named styles. It is
// immutable once loaded.
type Theme struct {
	File string
	Meta

	colors *ordered[string]
	styles *ordered[any]
}

var metaKeys = map[string]bool{"description": true, "type": true, "version": true, "name": true}

// LoadTheme reads a theme file.
func LoadTheme(path string) (*Theme, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	return themeFromDocument(doc)
}

// ParseTheme parses theme text; file is only used in error messages.
func ParseTheme(file, text string) (*Theme, error) {
	doc, err := parseDocument(file, text)
	if err != nil {
		return nil, err
	}
	return themeFromDocument(doc)
}

func themeFromDocument(doc *document) (*Theme, error) {
	th := &Theme{File: doc.file, colors: newOrdered[string](), styles: newOrdered[any]()}
	meta, err := readCommon(doc, th.colors, th.styles)
	if err != nil {
		return nil, wrapFile(doc.file, err)
	}
	th.Meta = meta

	// A theme may also be a bare palette: top-level strings are colors.
	for _, k := range doc.keys(nil, doc.data) {
		if metaKeys[k] {
			continue
		}
		if v, ok := doc.data[k].(string); ok {
			th.colors.set(k, v)
		}
	}
	return th, nil
}

// EmptyTheme returns a theme with no colors and no styles.
func EmptyTheme() *Theme {
	return &Theme{colors: newOrdered[string](), styles: newOrdered[any]()}
}

// IsEmpty reports whether the theme defines nothing.
func (t *Theme) IsEmpty() bool {
	return t == nil || (t.colors.len() == 0 && t.styles.len() == 0)
}

// ColorNames returns the theme's color keys in declaration order.
func (t *Theme) ColorNames() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.colors.keys...)
}

// ColorDef returns the raw definition of a color.
func (t *Theme) ColorDef(name string) (string, bool) {
	if t == nil {
		return "", false
	}
	return t.colors.get(name)
}

// StyleNames returns the theme's style keys in declaration order.
func (t *Theme) StyleNames() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.styles.keys...)
}

// readCommon extracts metadata, [colors] and [styles], which themes and
// patterns share.
func readCommon(doc *document, colors *ordered[string], styles *ordered[any]) (Meta, error) {
	var meta Meta
	for key, dst := range map[string]*string{"description": &meta.Description, "type": &meta.Type, "version": &meta.Version} {
		if v, ok := doc.data[key]; ok {
			s, ok := v.(string)
			if !ok {
				return Meta{}, syntaxErrorf("'%s' must be a string", key)
			}
			*dst = s
		}
	}

	ct, err := table(doc.data, "colors")
	if err != nil {
		return Meta{}, err
	}
	if ct != nil {
		if err := doc.flatten([]string{"colors"}, ct, colors); err != nil {
			return Meta{}, err
		}
	}

	st, err := table(doc.data, "styles")
	if err != nil {
		return Meta{}, err
	}
	if st != nil {
		if err := doc.flattenStyles([]string{"styles"}, st, styles); err != nil {
			return Meta{}, err
		}
	}
	return meta, nil
}

// flattenStyles is like flatten, but a table made of style attributes is a
// declaration rather than a group of nested styles.
func (d *document) flattenStyles(path []string, m map[string]any, into *ordered[any]) error {
	for _, k := range d.keys(path, m) {
		full := append(append([]string{}, path...), k)
		name := strings.Join(full[1:], ".")
		switch v := m[k].(type) {
		case string:
			into.set(name, v)
		case map[string]any:
			if isDeclTable(v) {
				into.set(name, v)
				continue
			}
			if err := d.flattenStyles(full, v, into); err != nil {
				return err
			}
		default:
			return syntaxErrorf("%s: '%s' must be a string or a table", full[0], name)
		}
	}
	return nil
}

func wrapFile(file string, err error) error {
	if file == "" {
		return err
	}
	return &ParseError{File: file, Err: err}
}
