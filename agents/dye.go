package agents

import (
	"fmt"
	"strings"

	"github.com/kastheco/dye/config"
	"github.com/kastheco/dye/internal/suggest"
	"github.com/kastheco/dye/palette"
)

type dyeAgent struct{}

// Run writes DYE_COLORS. Each style is written in canonical form, so the
// value parses without a theme.
func (dyeAgent) Run(scope *palette.Scope, opts RunOptions) (string, error) {
	var out []string
	for _, ns := range scope.Styles() {
		if !config.IsOutputElement(ns.Name) {
			return "", fmt.Errorf("unknown element '%s'%s", ns.Name, suggest.Hint(ns.Name, config.OutputElements))
		}
		out = append(out, ns.Name+"="+ns.Style.String())
	}
	name, err := targetVar(scope, config.EnvColors)
	if err != nil {
		return "", err
	}
	return opts.Shell.Export(name, strings.Join(out, ":")), nil
}
