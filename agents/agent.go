// Package agents turns resolved scopes into shell code for one tool each.
package agents

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kastheco/dye/internal/suggest"
	"github.com/kastheco/dye/palette"
)

var (
	// ErrUnknownAgent is returned for a scope whose agent is not registered.
	ErrUnknownAgent = errors.New("unknown agent")
	// ErrDuplicateAgent is returned when two entries share a name.
	ErrDuplicateAgent = errors.New("duplicate agent")
)

// AgentError is a failure inside an agent while it formats a scope.
type AgentError struct {
	Agent string
	Scope string
	Err   error
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("scope '%s': %s: %v", e.Scope, e.Agent, e.Err)
}

func (e *AgentError) Unwrap() error { return e.Err }

// RunOptions are the per-invocation settings every agent receives.
type RunOptions struct {
	Shell Shell
}

// Agent renders one resolved scope. The returned text is sourced by the
// shell; it has no trailing newline and may be empty.
type Agent interface {
	Run(scope *palette.Scope, opts RunOptions) (string, error)
}

// Entry is one row of the registry.
type Entry struct {
	Name        string
	Description string
	New         func() Agent
}

// Registry holds the known agents keyed by name.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry builds a registry from an explicit table. Two entries with the
// same name are an error.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if e.Name == "" || e.New == nil {
			return nil, fmt.Errorf("agent entry %q is incomplete", e.Name)
		}
		if _, ok := r.entries[e.Name]; ok {
			return nil, fmt.Errorf("%w '%s'", ErrDuplicateAgent, e.Name)
		}
		r.entries[e.Name] = e
	}
	return r, nil
}

// Builtin is the table of agents that ship with dye.
func Builtin() []Entry {
	return []Entry{
		{Name: "dye", Description: "Set DYE_COLORS, the colors of dye's own output", New: func() Agent { return dyeAgent{} }},
		{Name: "environment_variables", Description: "Export and unset environment variables", New: func() Agent { return envAgent{} }},
		{Name: "eza", Description: "Create EZA_COLORS for the ls replacement eza", New: func() Agent { return ezaAgent{} }},
		{Name: "fzf", Description: "Set fzf options and colors in FZF_DEFAULT_OPTS", New: func() Agent { return fzfAgent{} }},
		{Name: "iterm", Description: "Send escape sequences to the iTerm terminal emulator", New: func() Agent { return itermAgent{} }},
		{Name: "ls_colors", Description: "Create LS_COLORS for GNU ls", New: func() Agent { return lsColorsAgent{} }},
		{Name: "shell", Description: "Run arbitrary shell commands", New: func() Agent { return shellAgent{} }},
	}
}

// Default returns a registry with the built-in agents.
func Default() *Registry {
	r, err := NewRegistry(Builtin()...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the entry for name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Get constructs the agent registered under name.
func (r *Registry) Get(name string) (Agent, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w '%s'%s", ErrUnknownAgent, name, suggest.Hint(name, r.Names()))
	}
	return e.New(), nil
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all entries sorted by name.
func (r *Registry) All() []Entry {
	all := make([]Entry, 0, len(r.entries))
	for _, name := range r.Names() {
		all = append(all, r.entries[name])
	}
	return all
}

// Run dispatches scope to its agent. Failures inside the agent are wrapped
// in an AgentError naming the scope.
func (r *Registry) Run(scope *palette.Scope, opts RunOptions) (string, error) {
	a, err := r.Get(scope.Agent)
	if err != nil {
		return "", fmt.Errorf("scope '%s': %w", scope.Name, err)
	}
	out, err := a.Run(scope, opts)
	if err != nil {
		return "", &AgentError{Agent: scope.Agent, Scope: scope.Name, Err: err}
	}
	return out, nil
}

// targetVar returns the variable an agent writes, honoring the scope's
// environment_variable override.
func targetVar(scope *palette.Scope, fallback string) (string, error) {
	name, err := scope.StringOr("environment_variable", fallback)
	if err != nil {
		return "", fmt.Errorf("%w: 'environment_variable' must be a string", palette.ErrSyntax)
	}
	if !ValidName(name) {
		return "", fmt.Errorf("%w: '%s' is not a valid variable name", palette.ErrSyntax, name)
	}
	return name, nil
}

// boolSetting reads an optional true/false key.
func boolSetting(scope *palette.Scope, key string) (bool, error) {
	v, _, err := scope.Bool(key)
	if err != nil {
		return false, fmt.Errorf("%w: '%s' must be true or false", palette.ErrSyntax, key)
	}
	return v, nil
}
