package condition

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	ctx := context.Background()
	env := []string{"TERM_PROGRAM=iTerm.app", "EMPTY="}

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"true builtin", "true", true},
		{"false builtin", "false", false},
		{"blank is enabled", "  ", true},
		{"variable comparison", `[ "$TERM_PROGRAM" = "iTerm.app" ]`, true},
		{"variable mismatch", `[ "$TERM_PROGRAM" = "WezTerm" ]`, false},
		{"empty variable", `[ -n "$EMPTY" ]`, false},
		{"unset variable", `[ -z "$NOT_SET" ]`, true},
		{"non-zero exit", "exit 3", false},
		{"compound", `[ -n "$TERM_PROGRAM" ] && echo ok`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Eval(ctx, tt.expr, env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("syntax error", func(t *testing.T) {
		_, err := Eval(ctx, "if then", env)
		assert.ErrorIs(t, err, ErrInvalid)
	})
}
