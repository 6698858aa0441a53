package agents

import (
	"fmt"
	"regexp"
	"strings"
)

// Shell selects the syntax of the emitted assignments.
type Shell int

const (
	// Posix emits export/unset, understood by sh, bash and zsh.
	Posix Shell = iota
	// Fish emits set -gx / set -e.
	Fish
)

// ParseShell maps a --shell value to a Shell.
func ParseShell(name string) (Shell, error) {
	switch strings.ToLower(name) {
	case "", "posix", "sh", "bash", "zsh":
		return Posix, nil
	case "fish":
		return Fish, nil
	default:
		return Posix, fmt.Errorf("unknown shell '%s': must be posix or fish", name)
	}
}

func (s Shell) String() string {
	if s == Fish {
		return "fish"
	}
	return "posix"
}

var varName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidName reports whether name can be used as an environment variable.
func ValidName(name string) bool {
	return varName.MatchString(name)
}

// Export returns the statement that sets and exports name. Values holding
// control characters, such as escape sequences, are written with the
// shell's escape syntax so the variable receives the raw bytes.
func (s Shell) Export(name, value string) string {
	if s == Fish {
		return fmt.Sprintf("set -gx %s %s", name, fishQuote(value))
	}
	return fmt.Sprintf("export %s=%s", name, posixQuote(value))
}

// Unset returns the statement that removes name from the environment.
func (s Shell) Unset(name string) string {
	if s == Fish {
		return "set -e " + name
	}
	return "unset " + name
}

// Comment returns text as shell comment lines.
func (s Shell) Comment(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("# "+l, " ")
	}
	return strings.Join(lines, "\n")
}

func hasControl(v string) bool {
	return strings.IndexFunc(v, isControl) >= 0
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}

// controlEscape spells a control character the way both $'...' and fish
// understand it.
func controlEscape(r rune) string {
	switch r {
	case 0x1b:
		return `\e`
	case '\a':
		return `\a`
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	default:
		return fmt.Sprintf(`\x%02x`, r)
	}
}

func posixQuote(v string) string {
	var b strings.Builder
	if hasControl(v) {
		b.WriteString("$'")
		for _, r := range v {
			switch {
			case isControl(r):
				b.WriteString(controlEscape(r))
			case r == '\\' || r == '\'':
				b.WriteByte('\\')
				b.WriteRune(r)
			default:
				b.WriteRune(r)
			}
		}
		b.WriteByte('\'')
		return b.String()
	}
	b.WriteByte('"')
	for _, r := range v {
		switch r {
		case '\\', '"', '$', '`':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// fishQuote double-quotes printable runs and writes control characters as
// bare escapes; fish joins adjacent tokens into one argument.
func fishQuote(v string) string {
	if v == "" {
		return `""`
	}
	var b strings.Builder
	open := false
	for _, r := range v {
		if isControl(r) {
			if open {
				b.WriteByte('"')
				open = false
			}
			b.WriteString(controlEscape(r))
			continue
		}
		if !open {
			b.WriteByte('"')
			open = true
		}
		switch r {
		case '\\', '"', '$':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	if open {
		b.WriteByte('"')
	}
	return b.String()
}
