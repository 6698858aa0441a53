package config

import (
	"os"
	"strings"

	"github.com/kastheco/dye/log"
	"github.com/kastheco/dye/palette"
)

// OutputElements are the parts of dye's own output that DYE_COLORS can style.
var OutputElements = []string{
	"usage_args",
	"usage_groups",
	"usage_help",
	"usage_metavar",
	"usage_prog",
	"usage_syntax",
	"usage_text",
	"ui_border",
	"ui_column_header",
	"error_progname",
	"error_text",
	"debug_label",
	"debug_text",
	"comment_begin",
	"comment_text",
}

// IsOutputElement reports whether name is one of OutputElements.
func IsOutputElement(name string) bool {
	for _, e := range OutputElements {
		if e == name {
			return true
		}
	}
	return false
}

// ParseColorSpec parses "element=style:element=style". Clauses with an
// unknown element, no "=", or a style that does not parse are skipped.
func ParseColorSpec(spec string) map[string]palette.Style {
	styles := map[string]palette.Style{}
	for _, clause := range strings.Split(spec, ":") {
		if clause == "" {
			continue
		}
		element, decl, ok := strings.Cut(clause, "=")
		if !ok {
			log.Debugf("skipping invalid expression in %s: '%s'", EnvColors, clause)
			continue
		}
		if !IsOutputElement(element) {
			log.Debugf("skipping invalid element in %s: '%s'", EnvColors, element)
			continue
		}
		st, err := palette.ParseStyle(decl)
		if err != nil {
			log.Debugf("skipping invalid style in %s: '%s': %v", EnvColors, clause, err)
			continue
		}
		styles[element] = st
	}
	return styles
}

// OutputStyles returns the styles for dye's own output from the
// environment. $NO_COLOR wins over $DYE_COLORS.
func OutputStyles() map[string]palette.Style {
	if os.Getenv(EnvNoColor) != "" {
		log.Debugf("no color output because %s is set", EnvNoColor)
		return map[string]palette.Style{}
	}
	spec, set := os.LookupEnv(EnvColors)
	switch {
	case !set:
		log.Debugf("no color output because $%s is not set", EnvColors)
		return map[string]palette.Style{}
	case spec == "":
		log.Debugf("no color output because $%s is an empty string", EnvColors)
		return map[string]palette.Style{}
	}
	log.Debugf("output colors set from $%s", EnvColors)
	return ParseColorSpec(spec)
}
