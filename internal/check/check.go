package check

import (
	"context"

	"github.com/kastheco/dye/agents"
	"github.com/kastheco/dye/app"
)

// Status represents the state of a single audited entry.
type Status int

const (
	StatusOK       Status = iota // resolved and formatted
	StatusDisabled               // resolved, skipped by enabled or enabled_if
	StatusFailed                 // resolution or agent error
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDisabled:
		return "disabled"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Entry is one scope's or one named style's audit result.
type Entry struct {
	Name   string
	Agent  string // empty for named styles
	Status Status
	Detail string // e.g. skip reason, error message
}

// AuditResult is the complete output of dye check.
type AuditResult struct {
	Styles []Entry
	Scopes []Entry
}

// Audit resolves every named style and every scope of the loaded inputs
// without emitting anything. Failures are recorded, not returned.
func Audit(ctx context.Context, reg *agents.Registry, in *app.Inputs, env []string) *AuditResult {
	return &AuditResult{
		Styles: AuditStyles(in),
		Scopes: AuditScopes(ctx, reg, in, env),
	}
}

// Summary returns (ok, total) counts across all checks.
func (r *AuditResult) Summary() (int, int) {
	ok, total := 0, 0
	for _, group := range [][]Entry{r.Styles, r.Scopes} {
		for _, e := range group {
			if e.Status == StatusDisabled {
				continue // don't count intentional skips
			}
			total++
			if e.Status == StatusOK {
				ok++
			}
		}
	}
	return ok, total
}

// Failed returns the failed entries in audit order.
func (r *AuditResult) Failed() []Entry {
	var failed []Entry
	for _, group := range [][]Entry{r.Styles, r.Scopes} {
		for _, e := range group {
			if e.Status == StatusFailed {
				failed = append(failed, e)
			}
		}
	}
	return failed
}
