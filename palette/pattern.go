package palette

// Pattern holds styling rules organized into scopes, each aimed at one agent.
// Its [colors] and [styles] extend and override those of the theme.
type Pattern struct {
	File string
	Meta

	colors *ordered[string]
	styles *ordered[any]
	scopes []*ScopeDef
}

// ScopeDef is a scope as written in the pattern file, before templates are
// rendered and styles resolved.
type ScopeDef struct {
	Name  string
	Agent string
	raw   map[string]any
	doc   *document
}

// LoadPattern reads a pattern file.
func LoadPattern(path string) (*Pattern, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	return patternFromDocument(doc)
}

// ParsePattern parses pattern text; file is only used in error messages.
func ParsePattern(file, text string) (*Pattern, error) {
	doc, err := parseDocument(file, text)
	if err != nil {
		return nil, err
	}
	return patternFromDocument(doc)
}

// EmptyPattern returns a pattern with no scopes.
func EmptyPattern() *Pattern {
	return &Pattern{colors: newOrdered[string](), styles: newOrdered[any]()}
}

func patternFromDocument(doc *document) (*Pattern, error) {
	p := &Pattern{File: doc.file, colors: newOrdered[string](), styles: newOrdered[any]()}
	meta, err := readCommon(doc, p.colors, p.styles)
	if err != nil {
		return nil, wrapFile(doc.file, err)
	}
	p.Meta = meta

	scopes, err := table(doc.data, "scopes")
	if err != nil {
		return nil, wrapFile(doc.file, err)
	}
	for _, name := range doc.keys([]string{"scopes"}, scopes) {
		raw, ok := scopes[name].(map[string]any)
		if !ok {
			return nil, wrapFile(doc.file, syntaxErrorf("scope '%s' must be a table", name))
		}
		agent, ok := raw["agent"].(string)
		if !ok || agent == "" {
			return nil, wrapFile(doc.file, syntaxErrorf("scope '%s' does not have an agent", name))
		}
		p.scopes = append(p.scopes, &ScopeDef{Name: name, Agent: agent, raw: raw, doc: doc})
	}
	return p, nil
}

// Scopes returns the scopes in declaration order.
func (p *Pattern) Scopes() []*ScopeDef {
	if p == nil {
		return nil
	}
	return append([]*ScopeDef(nil), p.scopes...)
}

// Scope returns the named scope.
func (p *Pattern) Scope(name string) (*ScopeDef, bool) {
	if p == nil {
		return nil, false
	}
	for _, s := range p.scopes {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// ScopeNames returns the scope names in declaration order.
func (p *Pattern) ScopeNames() []string {
	if p == nil {
		return nil
	}
	names := make([]string, len(p.scopes))
	for i, s := range p.scopes {
		names[i] = s.Name
	}
	return names
}

// IsEmpty reports whether the pattern defines nothing.
func (p *Pattern) IsEmpty() bool {
	return p == nil || (p.colors.len() == 0 && p.styles.len() == 0 && len(p.scopes) == 0)
}

// ColorDef returns the raw definition of a color declared in the pattern.
func (p *Pattern) ColorDef(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	return p.colors.get(name)
}

// keys returns the keys of a table inside this scope in declaration order.
func (d *ScopeDef) keys(sub []string, m map[string]any) []string {
	path := append([]string{"scopes", d.Name}, sub...)
	return d.doc.keys(path, m)
}
