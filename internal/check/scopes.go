package check

import (
	"context"

	"github.com/kastheco/dye/agents"
	"github.com/kastheco/dye/app"
)

// AuditScopes runs every scope in declaration order through the same
// pipeline as apply and records the outcome.
func AuditScopes(ctx context.Context, reg *agents.Registry, in *app.Inputs, env []string) []Entry {
	var entries []Entry
	for _, def := range in.Pattern.Scopes() {
		entry := Entry{Name: def.Name, Agent: def.Agent}
		res, err := app.ProcessScope(ctx, reg, in.Palette, def, app.ApplyOptions{Env: env})
		switch {
		case err != nil:
			entry.Status = StatusFailed
			entry.Detail = err.Error()
		case !res.Enabled:
			entry.Status = StatusDisabled
			entry.Detail = res.Reason
		default:
			entry.Status = StatusOK
		}
		entries = append(entries, entry)
	}
	return entries
}
