package agents

import (
	"fmt"
	"strings"

	"github.com/kastheco/dye/palette"
)

type shellAgent struct{}

// Run emits each command.NAME string verbatim, in declaration order.
func (shellAgent) Run(scope *palette.Scope, _ RunOptions) (string, error) {
	commands, err := scope.Entries("command")
	if err != nil {
		return "", err
	}
	var out []string
	for _, c := range commands {
		cmd, ok := c.Value.(string)
		if !ok {
			return "", fmt.Errorf("%w: 'command.%s' must be a string", palette.ErrSyntax, c.Key)
		}
		out = append(out, cmd)
	}
	return strings.Join(out, "\n"), nil
}
