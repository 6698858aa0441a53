package palette

import (
	"fmt"
	"strings"
)

// NamedStyle is one resolved entry of a scope's style table.
type NamedStyle struct {
	Name  string
	Style Style
}

// Entry is one key of a scope sub-table, in declaration order.
type Entry struct {
	Key   string
	Value any
}

// Scope is a scope ready for an agent: every string rendered and every
// style resolved.
type Scope struct {
	Name      string
	Agent     string
	Comment   string
	Enabled   bool
	EnabledIf string

	styles []NamedStyle
	values map[string]any
	def    *ScopeDef
}

// reserved keys are consumed by the orchestrator, not by agents.
var reservedKeys = map[string]bool{"agent": true, "enabled": true, "enabled_if": true, "comment": true, "style": true}

// ResolveScope renders every template in the scope and resolves its style
// table. Any undefined reference is an error naming the scope.
func (p *Palette) ResolveScope(def *ScopeDef) (*Scope, error) {
	sc := &Scope{Name: def.Name, Agent: def.Agent, Enabled: true, def: def, values: map[string]any{}}

	for _, key := range def.keys(nil, def.raw) {
		raw := def.raw[key]
		if key == "style" {
			continue
		}
		v, err := p.renderValue(def.Name, key, raw)
		if err != nil {
			return nil, annotate(err, def.Name, key)
		}
		switch key {
		case "enabled":
			b, ok := v.(bool)
			if !ok {
				return nil, syntaxErrorf("scope '%s' requires 'enabled' to be true or false", def.Name)
			}
			sc.Enabled = b
		case "enabled_if":
			s, ok := v.(string)
			if !ok {
				return nil, syntaxErrorf("scope '%s' requires 'enabled_if' to be a string", def.Name)
			}
			sc.EnabledIf = s
		case "comment":
			s, ok := v.(string)
			if !ok {
				return nil, syntaxErrorf("scope '%s' requires 'comment' to be a string", def.Name)
			}
			sc.Comment = s
		}
		if !reservedKeys[key] {
			sc.values[key] = v
		}
	}

	styles, ok := def.raw["style"]
	if !ok {
		return sc, nil
	}
	st, ok := styles.(map[string]any)
	if !ok {
		return nil, syntaxErrorf("scope '%s' requires 'style' to be a table", def.Name)
	}
	if err := p.resolveScopeStyles(sc, []string{"style"}, st); err != nil {
		return nil, err
	}
	return sc, nil
}

func (p *Palette) resolveScopeStyles(sc *Scope, path []string, table map[string]any) error {
	for _, key := range sc.def.keys(path, table) {
		raw := table[key]
		name := strings.Join(append(append([]string{}, path[1:]...), key), ".")
		entry := "style." + name
		if sub, ok := raw.(map[string]any); ok && !isDeclTable(sub) {
			if err := p.resolveScopeStyles(sc, append(append([]string{}, path...), key), sub); err != nil {
				return err
			}
			continue
		}
		text, err := declText(raw)
		if err != nil {
			return fmt.Errorf("scope '%s': '%s': %w", sc.Name, entry, err)
		}
		text, err = p.render(entry, text)
		if err != nil {
			return annotate(err, sc.Name, entry)
		}
		st, err := parseDecl(text, p)
		if err != nil {
			return annotate(err, sc.Name, entry)
		}
		sc.styles = append(sc.styles, NamedStyle{Name: name, Style: st})
	}
	return nil
}

// renderValue renders templates in strings, recursing into tables and arrays.
func (p *Palette) renderValue(scope, entry string, v any) (any, error) {
	switch t := v.(type) {
	case string:
		return p.render(entry, t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, sub := range t {
			r, err := p.renderValue(scope, entry+"."+k, sub)
			if err != nil {
				return nil, err
			}
			out[k] = r
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, sub := range t {
			r, err := p.renderValue(scope, fmt.Sprintf("%s[%d]", entry, i), sub)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	default:
		return v, nil
	}
}

// Styles returns the scope's resolved styles in declaration order.
func (s *Scope) Styles() []NamedStyle {
	return append([]NamedStyle(nil), s.styles...)
}

// Style returns a resolved style of this scope by name.
func (s *Scope) Style(name string) (Style, bool) {
	for _, ns := range s.styles {
		if ns.Name == name {
			return ns.Style, true
		}
	}
	return Style{}, false
}

// Has reports whether the scope sets key.
func (s *Scope) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// String returns a string setting. A value of another type is an error.
func (s *Scope) String(key string) (string, bool, error) {
	v, ok := s.values[key]
	if !ok {
		return "", false, nil
	}
	str, ok := v.(string)
	if !ok {
		return "", true, syntaxErrorf("scope '%s' requires '%s' to be a string", s.Name, key)
	}
	return str, true, nil
}

// StringOr returns a string setting or fallback when it is not set.
func (s *Scope) StringOr(key, fallback string) (string, error) {
	v, ok, err := s.String(key)
	if err != nil || !ok {
		return fallback, err
	}
	return v, nil
}

// Bool returns a boolean setting. A value of another type is an error.
func (s *Scope) Bool(key string) (bool, bool, error) {
	v, ok := s.values[key]
	if !ok {
		return false, false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, true, syntaxErrorf("scope '%s' requires '%s' to be true or false", s.Name, key)
	}
	return b, true, nil
}

// Strings returns a setting that may be a single string or an array of strings.
func (s *Scope) Strings(key string) ([]string, error) {
	v, ok := s.values[key]
	if !ok {
		return nil, nil
	}
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			str, ok := item.(string)
			if !ok {
				return nil, syntaxErrorf("scope '%s' requires '%s' to contain only strings", s.Name, key)
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, syntaxErrorf("scope '%s' requires '%s' to be a string or an array of strings", s.Name, key)
	}
}

// Entries returns the keys of a sub-table in declaration order.
func (s *Scope) Entries(key string) ([]Entry, error) {
	v, ok := s.values[key]
	if !ok {
		return nil, nil
	}
	t, ok := v.(map[string]any)
	if !ok {
		return nil, syntaxErrorf("scope '%s' requires '%s' to be a table", s.Name, key)
	}
	raw, _ := s.def.raw[key].(map[string]any)
	entries := make([]Entry, 0, len(t))
	for _, k := range s.def.keys([]string{key}, raw) {
		entries = append(entries, Entry{Key: k, Value: t[k]})
	}
	return entries, nil
}
