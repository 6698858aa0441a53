// Package condition evaluates the enabled_if expressions of pattern scopes.
package condition

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ErrInvalid is returned when an expression is not valid shell syntax.
var ErrInvalid = errors.New("invalid enabled_if expression")

// Eval runs expr with an in-process POSIX shell interpreter and reports
// whether it exited with status zero. Output of the expression is discarded.
// env is a list of KEY=value pairs and is the only environment it sees.
func Eval(ctx context.Context, expr string, env []string) (bool, error) {
	if strings.TrimSpace(expr) == "" {
		return true, nil
	}
	file, err := syntax.NewParser().Parse(strings.NewReader(expr), "enabled_if")
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	runner, err := interp.New(
		interp.StdIO(nil, io.Discard, io.Discard),
		interp.Env(expand.ListEnviron(env...)),
	)
	if err != nil {
		return false, err
	}
	err = runner.Run(ctx, file)
	if err == nil {
		return true, nil
	}
	var status interp.ExitStatus
	if errors.As(err, &status) {
		return false, nil
	}
	return false, err
}
