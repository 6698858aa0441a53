package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Kinds of files dye loads.
const (
	KindTheme   = "theme"
	KindPattern = "pattern"
)

// Selection is what the command line asked for.
type Selection struct {
	// File is an explicit path (-t / -f).
	File string
	// Name is a file under the themes/ or patterns/ directory (--theme / --pattern).
	Name string
}

// Source is a resolved theme or pattern file and what selected it.
type Source struct {
	Path   string
	Origin string
}

// ResolveTheme picks the theme file: -t, then --theme, then $DYE_THEME_FILE,
// then the theme in config.toml. ok is false when nothing selects a theme.
func (c *Config) ResolveTheme(sel Selection) (Source, bool, error) {
	return resolveFile(KindTheme, sel, EnvThemeFile, c.Theme)
}

// ResolvePattern picks the pattern file: -f, then --pattern, then
// $DYE_PATTERN_FILE, then the pattern in config.toml.
func (c *Config) ResolvePattern(sel Selection) (Source, bool, error) {
	return resolveFile(KindPattern, sel, EnvPatternFile, c.Pattern)
}

func resolveFile(kind string, sel Selection, envVar, configured string) (Source, bool, error) {
	if sel.File != "" {
		return Source{Path: ExpandHome(sel.File), Origin: "--" + kind + "-file"}, true, nil
	}
	if sel.Name != "" {
		path, err := NamedFile(kind, sel.Name)
		if err != nil {
			return Source{}, false, err
		}
		return Source{Path: path, Origin: "--" + kind}, true, nil
	}
	if env := os.Getenv(envVar); env != "" {
		return Source{Path: ExpandHome(env), Origin: "$" + envVar}, true, nil
	}
	if configured != "" {
		origin := ConfigFileName
		if isPath(configured) {
			return Source{Path: ExpandHome(configured), Origin: origin}, true, nil
		}
		path, err := NamedFile(kind, configured)
		if err != nil {
			return Source{}, false, err
		}
		return Source{Path: path, Origin: origin}, true, nil
	}
	return Source{}, false, nil
}

// isPath tells a file path from a bare name in config.toml.
func isPath(s string) bool {
	return strings.HasPrefix(s, "~") || filepath.IsAbs(s) || strings.HasSuffix(s, ".toml")
}

// KindDir returns the directory holding files of a kind: <config dir>/themes
// or <config dir>/patterns.
func KindDir(kind string) (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, kind+"s"), nil
}

// NamedFile maps a theme or pattern name to its file.
func NamedFile(kind, name string) (string, error) {
	dir, err := KindDir(kind)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.FromSlash(name)+".toml"), nil
}
