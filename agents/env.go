package agents

import (
	"fmt"
	"strings"

	"github.com/kastheco/dye/palette"
)

type envAgent struct{}

// Run unsets the variables listed in unset, exports every export.NAME, and
// exports each style as the escape sequence that switches to it.
func (envAgent) Run(scope *palette.Scope, opts RunOptions) (string, error) {
	var out []string

	unset, err := scope.Strings("unset")
	if err != nil {
		return "", err
	}
	for _, name := range unset {
		if !ValidName(name) {
			return "", fmt.Errorf("'%s' is not a valid variable name", name)
		}
		out = append(out, opts.Shell.Unset(name))
	}

	exports, err := scope.Entries("export")
	if err != nil {
		return "", err
	}
	for _, e := range exports {
		if !ValidName(e.Key) {
			return "", fmt.Errorf("'%s' is not a valid variable name", e.Key)
		}
		var value string
		switch v := e.Value.(type) {
		case string:
			value = v
		case bool, int64, float64:
			value = fmt.Sprint(v)
		default:
			return "", fmt.Errorf("%w: 'export.%s' must be a string, a number or true/false", palette.ErrSyntax, e.Key)
		}
		out = append(out, opts.Shell.Export(e.Key, value))
	}

	for _, ns := range scope.Styles() {
		if !ValidName(ns.Name) {
			return "", fmt.Errorf("style '%s' is not a valid variable name", ns.Name)
		}
		out = append(out, opts.Shell.Export(ns.Name, ns.Style.Sequence()))
	}
	return strings.Join(out, "\n"), nil
}
