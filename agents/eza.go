package agents

import (
	"strings"

	"github.com/kastheco/dye/palette"
)

// ezaCodes uses the key names of eza's theme.yml as friendly names.
var ezaCodes = codeMap([]codePair{
	{"filekinds:normal", "fi"},
	{"filekinds:directory", "di"},
	{"filekinds:symlink", "ln"},
	{"filekinds:pipe", "pi"},
	{"filekinds:block_device", "bd"},
	{"filekinds:char_device", "cd"},
	{"filekinds:socket", "so"},
	{"filekinds:special", "sp"},
	{"filekinds:executable", "ex"},
	{"filekinds:mount_point", "mp"},

	{"perms:user_read", "ur"},
	{"perms:user_write", "uw"},
	{"perms:user_executable_file", "ux"},
	{"perms:user_execute_other", "ue"},
	{"perms:group_read", "gr"},
	{"perms:group_write", "gw"},
	{"perms:group_execute", "gx"},
	{"perms:other_read", "tr"},
	{"perms:other_write", "tw"},
	{"perms:other_execute", "tx"},
	{"perms:special_user_file", "su"},
	{"perms:special_other", "sf"},
	{"perms:attribute", "xa"},

	{"size:major", "df"},
	{"size:minor", "ds"},
	{"size:number_style", "sn"},
	{"size:number_byte", "nb"},
	{"size:number_kilo", "nk"},
	{"size:number_mega", "nm"},
	{"size:number_giga", "ng"},
	{"size:number_huge", "nt"},
	{"size:unit_style", "sb"},
	{"size:unit_byte", "ub"},
	{"size:unit_kilo", "uk"},
	{"size:unit_mega", "um"},
	{"size:unit_giga", "ug"},
	{"size:unit_huge", "ut"},

	{"users:user_you", "uu"},
	{"users:user_other", "un"},
	{"users:user_root", "uR"},
	{"users:group_yours", "gu"},
	{"users:group_other", "gn"},
	{"users:group_root", "gR"},

	{"links:normal", "lc"},
	{"links:multi_link_file", "lm"},

	{"git:new", "ga"},
	{"git:modified", "gm"},
	{"git:deleted", "gd"},
	{"git:renamed", "gv"},
	{"git:typechange", "gt"},
	{"git:ignored", "gi"},
	{"git:conflicted", "gc"},

	{"git_repo:branch_main", "Gm"},
	{"git_repo:branch_other", "Go"},
	{"git_repo:git_clean", "Gc"},
	{"git_repo:git_dirty", "Gd"},

	{"selinux:colon", "Sn"},
	{"selinux:user", "Su"},
	{"selinux:role", "Sr"},
	{"selinux:typ", "St"},
	{"selinux:range", "Sl"},

	{"file_type:image", "im"},
	{"file_type:video", "vi"},
	{"file_type:music", "mu"},
	{"file_type:lossless", "lo"},
	{"file_type:crypto", "cr"},
	{"file_type:document", "do"},
	{"file_type:compressed", "co"},
	{"file_type:temp", "tm"},
	{"file_type:compiled", "cm"},
	{"file_type:build", "bu"},
	{"file_type:source", "sc"},

	{"punctuation", "xx"},
	{"date", "da"},
	{"inode", "in"},
	{"blocks", "bl"},
	{"header", "hd"},
	{"octal", "oc"},
	{"flags", "ff"},
	{"symlink_path", "lp"},
	{"control_char", "cc"},
	{"broken_path_overlay", "b0"},
	{"broken_symlink", "or"},
})

type ezaAgent struct{}

// Run writes EZA_COLORS. Names eza does not list, such as glob patterns
// ("*.md"), pass through untouched.
func (ezaAgent) Run(scope *palette.Scope, opts RunOptions) (string, error) {
	clearBuiltin, err := boolSetting(scope, "clear_builtin")
	if err != nil {
		return "", err
	}

	var out []string
	if clearBuiltin {
		out = append(out, "reset")
	}
	for _, ns := range scope.Styles() {
		if ns.Style.IsZero() {
			continue
		}
		_, entry, err := lsEntry(ns.Name, ns.Style, ezaCodes, true)
		if err != nil {
			return "", err
		}
		out = append(out, entry)
	}

	name, err := targetVar(scope, "EZA_COLORS")
	if err != nil {
		return "", err
	}
	return opts.Shell.Export(name, strings.Join(out, ":")), nil
}
