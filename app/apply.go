package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kastheco/dye/agents"
	"github.com/kastheco/dye/internal/condition"
	"github.com/kastheco/dye/internal/suggest"
	"github.com/kastheco/dye/log"
	"github.com/kastheco/dye/palette"
)

// ApplyOptions control which scopes run and how their output looks.
type ApplyOptions struct {
	// Scopes limits the run to these scope names, in this order.
	Scopes []string
	// Agents limits the run to scopes handled by these agents.
	Agents  []string
	Shell   agents.Shell
	Comment bool
	// Env is the environment enabled_if sees. Nil means the process
	// environment.
	Env []string
}

// ScopeResult is one scope after resolution and dispatch.
type ScopeResult struct {
	Name    string
	Agent   string
	Comment string
	Enabled bool
	// Reason says why a scope was skipped.
	Reason string
	Output string
}

// SelectScopes returns the scopes to process: the named ones in the order
// given, or every scope in declaration order. agentNames, when set, filters
// by agent.
func SelectScopes(pattern *palette.Pattern, names, agentNames []string) ([]*palette.ScopeDef, error) {
	var defs []*palette.ScopeDef
	if len(names) == 0 {
		defs = pattern.Scopes()
	} else {
		for _, name := range names {
			def, ok := pattern.Scope(name)
			if !ok {
				return nil, fmt.Errorf("%s: no such scope%s", name, suggest.Hint(name, pattern.ScopeNames()))
			}
			defs = append(defs, def)
		}
	}
	if len(agentNames) == 0 {
		return defs, nil
	}
	keep := map[string]bool{}
	for _, a := range agentNames {
		keep[a] = true
	}
	var filtered []*palette.ScopeDef
	for _, def := range defs {
		if keep[def.Agent] {
			filtered = append(filtered, def)
		}
	}
	return filtered, nil
}

// ProcessScope resolves one scope, evaluates enabled and enabled_if, and
// runs its agent when the scope is enabled.
func ProcessScope(ctx context.Context, reg *agents.Registry, pal *palette.Palette, def *palette.ScopeDef, opts ApplyOptions) (ScopeResult, error) {
	sc, err := pal.ResolveScope(def)
	if err != nil {
		return ScopeResult{}, err
	}
	res := ScopeResult{Name: sc.Name, Agent: sc.Agent, Comment: sc.Comment, Enabled: sc.Enabled}
	if !sc.Enabled {
		res.Reason = "enabled is false"
		log.Debugf("skipping scope '%s' because enabled is false", sc.Name)
		return res, nil
	}
	if sc.EnabledIf != "" {
		env := opts.Env
		if env == nil {
			env = os.Environ()
		}
		ok, err := condition.Eval(ctx, sc.EnabledIf, env)
		if err != nil {
			return ScopeResult{}, fmt.Errorf("scope '%s': %w", sc.Name, err)
		}
		if !ok {
			res.Enabled = false
			res.Reason = fmt.Sprintf("enabled_if '%s' is false", sc.EnabledIf)
			log.Debugf("skipping scope '%s' because enabled_if '%s' is false", sc.Name, sc.EnabledIf)
			return res, nil
		}
	}
	out, err := reg.Run(sc, agents.RunOptions{Shell: opts.Shell})
	if err != nil {
		return ScopeResult{}, err
	}
	res.Output = out
	return res, nil
}

// Apply processes the selected scopes and returns the text to be sourced by
// the shell. Nothing is returned unless every scope succeeds.
func Apply(ctx context.Context, reg *agents.Registry, in *Inputs, opts ApplyOptions) (string, error) {
	if err := in.Palette.Validate(); err != nil {
		return "", err
	}
	defs, err := SelectScopes(in.Pattern, opts.Scopes, opts.Agents)
	if err != nil {
		return "", err
	}
	var blocks []string
	for _, def := range defs {
		res, err := ProcessScope(ctx, reg, in.Palette, def, opts)
		if err != nil {
			return "", err
		}
		if block := renderBlock(res, opts); block != "" {
			blocks = append(blocks, block)
		}
	}
	if len(blocks) == 0 {
		return "", nil
	}
	return strings.Join(blocks, "\n") + "\n", nil
}

func renderBlock(res ScopeResult, opts ApplyOptions) string {
	if !opts.Comment {
		return res.Output
	}
	header := fmt.Sprintf("scope '%s' (agent %s)", res.Name, res.Agent)
	if !res.Enabled {
		return opts.Shell.Comment(header + " skipped: " + res.Reason)
	}
	lines := []string{opts.Shell.Comment(header)}
	if res.Comment != "" {
		lines = append(lines, opts.Shell.Comment(res.Comment))
	}
	if res.Output != "" {
		lines = append(lines, res.Output)
	}
	return strings.Join(lines, "\n")
}
