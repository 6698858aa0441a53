package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kastheco/dye/app"
	"github.com/kastheco/dye/config"
	"github.com/kastheco/dye/internal/check"
	"github.com/spf13/cobra"
)

// errUnhealthy is returned when health < 100% to signal exit code 1 without printing a message.
var errUnhealthy = errors.New("unhealthy")

type checkFlags struct {
	files   fileFlags
	verbose bool
}

func newCheckCmd() *cobra.Command {
	f := &checkFlags{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve every style and scope without printing shell code",
		Long: `Resolves the named styles of the theme and the pattern, then runs every
scope through its agent and reports the result:

  ✓ resolved and formatted
  ⊘ disabled by enabled or enabled_if
  ✗ failed

Exit code 0 if 100% healthy, exit code 1 otherwise.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, f)
		},
		// Suppress usage on error; health failures are not usage errors.
		SilenceUsage: true,
		// Suppress cobra's "Error: ..." line for the unhealthy sentinel.
		SilenceErrors: true,
	}
	f.files.register(cmd)
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "show why disabled scopes were skipped")
	return cmd
}

func runCheck(cmd *cobra.Command, f *checkFlags) error {
	opts, err := f.files.loadOptions()
	if err != nil {
		return err
	}
	opts.RequirePattern = true

	in, err := app.Load(config.LoadConfig(), opts)
	if err != nil {
		return err
	}
	result := check.Audit(cmd.Context(), registry, in, nil)

	out := cmd.OutOrStdout()
	if len(result.Styles) > 0 {
		fmt.Fprintf(out, "\nStyles:\n")
		renderEntries(out, result.Styles, f.verbose)
	}
	fmt.Fprintf(out, "\nScopes (%s):\n", in.PatternSource.Path)
	if len(result.Scopes) == 0 {
		fmt.Fprintf(out, "  (no scopes)\n")
	}
	renderEntries(out, result.Scopes, f.verbose)

	ok, total := result.Summary()
	pct := 100
	if total > 0 {
		pct = ok * 100 / total
	}

	fmt.Fprintf(out, "\nHealth: %d/%d OK (%d%%)\n", ok, total, pct)

	if pct < 100 {
		return errUnhealthy
	}
	return nil
}

func renderEntries(out io.Writer, entries []check.Entry, verbose bool) {
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Name))
	}
	for _, e := range entries {
		line := fmt.Sprintf("  %s %-*s", statusGlyph(e.Status), width, e.Name)
		if e.Agent != "" {
			line += "  " + e.Agent
		}
		if e.Detail != "" && (e.Status == check.StatusFailed || verbose) {
			line += " (" + e.Detail + ")"
		}
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}
}

func statusGlyph(s check.Status) string {
	switch s {
	case check.StatusOK:
		return "✓"
	case check.StatusDisabled:
		return "⊘"
	case check.StatusFailed:
		return "✗"
	default:
		return "?"
	}
}

func init() {
	rootCmd.AddCommand(newCheckCmd())
}
