package palette

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a theme or pattern file does not exist.
	ErrNotFound = errors.New("no such file")
	// ErrInvalidColor is returned for a color value that cannot be parsed.
	ErrInvalidColor = errors.New("invalid color")
	// ErrSyntax marks a structurally valid TOML file that dye cannot use,
	// e.g. a scope without an agent or a value of the wrong type.
	ErrSyntax = errors.New("syntax error")
)

// ParseError wraps a TOML decoding failure with the file it came from.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ResolveError reports a reference that names neither a color nor a style.
// Scope is empty for references made from the [colors] or [styles] tables.
type ResolveError struct {
	Scope string
	Entry string
	Key   string
	Cycle bool
}

func (e *ResolveError) Error() string {
	what := fmt.Sprintf("undefined reference '%s'", e.Key)
	if e.Cycle {
		what = fmt.Sprintf("circular reference '%s'", e.Key)
	}
	switch {
	case e.Scope != "" && e.Entry != "":
		return fmt.Sprintf("scope '%s': '%s': %s", e.Scope, e.Entry, what)
	case e.Scope != "":
		return fmt.Sprintf("scope '%s': %s", e.Scope, what)
	case e.Entry != "":
		return fmt.Sprintf("'%s': %s", e.Entry, what)
	default:
		return what
	}
}

// TemplateError reports a failure while rendering a templated value.
type TemplateError struct {
	Scope string
	Entry string
	Err   error
}

func (e *TemplateError) Error() string {
	if e.Scope == "" {
		return fmt.Sprintf("'%s': template: %v", e.Entry, e.Err)
	}
	return fmt.Sprintf("scope '%s': '%s': template: %v", e.Scope, e.Entry, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

func syntaxErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))
}
