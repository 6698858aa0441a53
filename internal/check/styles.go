package check

import "github.com/kastheco/dye/app"

// AuditStyles resolves every named style of the theme and the pattern.
// Colors need no audit here; they are all resolved when the palette is built.
func AuditStyles(in *app.Inputs) []Entry {
	var entries []Entry
	for _, name := range in.Palette.StyleNames() {
		entry := Entry{Name: name, Status: StatusOK}
		if _, err := in.Palette.Style(name); err != nil {
			entry.Status = StatusFailed
			entry.Detail = err.Error()
		}
		entries = append(entries, entry)
	}
	return entries
}
