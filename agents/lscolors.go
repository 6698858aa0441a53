package agents

import (
	"fmt"
	"strings"

	"github.com/kastheco/dye/palette"
)

type codePair struct {
	friendly string
	code     string
}

// lsColorsBase lists the GNU ls file kinds in the order dircolors uses.
var lsColorsBase = []codePair{
	{"text", "no"},
	{"file", "fi"},
	{"directory", "di"},
	{"symlink", "ln"},
	{"multi_hard_link", "mh"},
	{"pipe", "pi"},
	{"socket", "so"},
	{"door", "do"},
	{"block_device", "bd"},
	{"character_device", "cd"},
	{"broken_symlink", "or"},
	{"missing_symlink_target", "mi"},
	{"setuid", "su"},
	{"setgid", "sg"},
	{"sticky", "st"},
	{"other_writable", "ow"},
	{"sticky_other_writable", "tw"},
	{"executable_file", "ex"},
	{"file_with_capability", "ca"},
}

// codeMap accepts both the friendly name and the native code.
func codeMap(pairs []codePair) map[string]string {
	m := make(map[string]string, len(pairs)*2)
	for _, p := range pairs {
		m[p.friendly] = p.code
		m[p.code] = p.code
	}
	return m
}

// lsEntry renders "code=sgr" for one style. The default foreground maps to
// "0". Names missing from codes are used as-is when allowUnknown is set.
func lsEntry(name string, st palette.Style, codes map[string]string, allowUnknown bool) (string, string, error) {
	code, ok := codes[name]
	if !ok {
		if !allowUnknown {
			return "", "", fmt.Errorf("unknown style '%s'", name)
		}
		code = name
	}
	sgr := st.Codes()
	if st.Foreground.Kind == palette.ColorDefault {
		sgr = "0"
	}
	return code, code + "=" + sgr, nil
}

type lsColorsAgent struct{}

func (lsColorsAgent) Run(scope *palette.Scope, opts RunOptions) (string, error) {
	clearBuiltin, err := boolSetting(scope, "clear_builtin")
	if err != nil {
		return "", err
	}
	codes := codeMap(lsColorsBase)

	var out []string
	have := map[string]bool{}
	for _, ns := range scope.Styles() {
		if ns.Style.IsZero() {
			continue
		}
		code, entry, err := lsEntry(ns.Name, ns.Style, codes, false)
		if err != nil {
			return "", err
		}
		have[code] = true
		out = append(out, entry)
	}
	if clearBuiltin {
		for _, p := range lsColorsBase {
			if !have[p.code] {
				out = append(out, p.code+"=0")
			}
		}
	}

	name, err := targetVar(scope, "LS_COLORS")
	if err != nil {
		return "", err
	}
	return opts.Shell.Export(name, strings.Join(out, ":")), nil
}
