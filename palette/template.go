package palette

import (
	"errors"
	"os"
	"strings"
	"text/template"
)

// FuncMap returns the formatting functions available to templates. They
// are pure: the same palette and arguments always give the same text.
//
//	color "name"      literal color ("#ff0000", "color(1)", "default")
//	hex "name"        #rrggbb, indexed colors mapped through the xterm palette
//	fg "name"         escape sequence selecting the foreground color
//	bg "name"         escape sequence selecting the background color
//	on "fg" "bg"      one escape sequence for both
//	style "name"      canonical declaration of a named style
//	ansi "name"       escape sequence for a named style
//	reset             the SGR reset sequence
func (p *Palette) FuncMap() template.FuncMap {
	return template.FuncMap{
		"color": func(name string) (string, error) {
			c, err := p.templateColor(name)
			return c.String(), err
		},
		"hex": func(name string) (string, error) {
			c, err := p.templateColor(name)
			return c.HexValue(), err
		},
		"fg": func(name string) (string, error) {
			c, err := p.templateColor(name)
			if err != nil {
				return "", err
			}
			return Style{Foreground: c}.Sequence(), nil
		},
		"bg": func(name string) (string, error) {
			c, err := p.templateColor(name)
			if err != nil {
				return "", err
			}
			return Style{Background: c}.Sequence(), nil
		},
		"on": func(fgName, bgName string) (string, error) {
			fg, err := p.templateColor(fgName)
			if err != nil {
				return "", err
			}
			bg, err := p.templateColor(bgName)
			if err != nil {
				return "", err
			}
			return Style{Foreground: fg, Background: bg}.Sequence(), nil
		},
		"style": func(name string) (string, error) {
			st, err := p.Style(name)
			return st.String(), err
		},
		"ansi": func(name string) (string, error) {
			st, err := p.Style(name)
			return st.Sequence(), err
		},
		"reset": func() string { return Reset },
	}
}

// templateColor accepts a palette name or an unambiguous literal.
func (p *Palette) templateColor(name string) (Color, error) {
	if c, ok := p.colors[name]; ok {
		return c, nil
	}
	if isUnambiguousLiteral(name) {
		return ParseColor(name)
	}
	return Color{}, &ResolveError{Key: name}
}

// templateData is the dot of every template: .colors, .styles and .env.
// A style that fails to resolve fails the template. Styles already being
// resolved further up the stack are left out; referencing one is a cycle.
func (p *Palette) templateData() (map[string]any, error) {
	colors := make(map[string]string, len(p.colors))
	for name, c := range p.colors {
		colors[name] = c.String()
	}
	styles := make(map[string]string, len(p.styleDefs))
	for _, name := range p.styleOrder {
		if p.resolving[name] {
			continue
		}
		st, err := p.Style(name)
		var rerr *ResolveError
		if errors.As(err, &rerr) && rerr.Cycle {
			continue
		}
		if err != nil {
			return nil, err
		}
		styles[name] = st.String()
	}
	env := map[string]string{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return map[string]any{"colors": colors, "styles": styles, "env": env}, nil
}

// Render expands the template text, if any. Strings without "{{" are
// returned untouched.
func (p *Palette) Render(entry, text string) (string, error) {
	return p.render(entry, text)
}

func (p *Palette) render(entry, text string) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}
	return renderTemplate(entry, text, p.FuncMap(), p.templateData)
}

// renderTemplate is the substitution step. The functions are passed in
// explicitly; nothing is registered globally.
func renderTemplate(entry, text string, funcs template.FuncMap, data func() (map[string]any, error)) (string, error) {
	tmpl, err := template.New(entry).Option("missingkey=error").Funcs(funcs).Parse(text)
	if err != nil {
		return "", &TemplateError{Entry: entry, Err: err}
	}
	dot, err := data()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, dot); err != nil {
		var rerr *ResolveError
		if errors.As(err, &rerr) {
			if rerr.Entry == "" {
				rerr.Entry = entry
			}
			return "", rerr
		}
		return "", &TemplateError{Entry: entry, Err: err}
	}
	return b.String(), nil
}
