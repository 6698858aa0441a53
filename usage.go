package main

import (
	"fmt"

	"github.com/kastheco/dye/app"
	"github.com/kastheco/dye/config"
	"github.com/spf13/cobra"
)

// usageError marks a command line the user got wrong. It exits with 2.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// usageArgs turns argument validation failures into usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// fileFlags are the theme and pattern selection flags shared by apply,
// check, preview and print.
type fileFlags struct {
	themeFile   string
	themeName   string
	noTheme     bool
	patternFile string
	patternName string
}

func (f *fileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.themeFile, "theme-file", "t", "", "read the theme from this file")
	cmd.Flags().StringVar(&f.themeName, "theme", "", "use the named theme from the themes directory")
	cmd.Flags().BoolVar(&f.noTheme, "no-theme", false, "do not load any theme")
	cmd.Flags().StringVarP(&f.patternFile, "pattern-file", "f", "", "read the pattern from this file")
	cmd.Flags().StringVar(&f.patternName, "pattern", "", "use the named pattern from the patterns directory")
}

// loadOptions validates the flags and turns them into app.LoadOptions.
func (f *fileFlags) loadOptions() (app.LoadOptions, error) {
	set := 0
	for _, on := range []bool{f.themeFile != "", f.themeName != "", f.noTheme} {
		if on {
			set++
		}
	}
	if set > 1 {
		return app.LoadOptions{}, usageErrorf("--theme-file, --theme and --no-theme are mutually exclusive")
	}
	if f.patternFile != "" && f.patternName != "" {
		return app.LoadOptions{}, usageErrorf("--pattern-file and --pattern are mutually exclusive")
	}
	return app.LoadOptions{
		Theme:   config.Selection{File: f.themeFile, Name: f.themeName},
		Pattern: config.Selection{File: f.patternFile, Name: f.patternName},
		NoTheme: f.noTheme,
	}, nil
}

const usageTemplate = `{{style "usage_groups" "Usage:"}}{{if .Runnable}}
  {{style "usage_prog" .UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{style "usage_prog" .CommandPath}} {{style "usage_metavar" "[command]"}}{{end}}{{if .HasExample}}

{{style "usage_groups" "Examples:"}}
{{style "usage_syntax" .Example}}{{end}}{{if .HasAvailableSubCommands}}

{{style "usage_groups" "Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{style "usage_args" (rpad .Name .NamePadding)}} {{style "usage_help" .Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{style "usage_groups" "Flags:"}}
{{style "usage_text" (.LocalFlags.FlagUsages | trimTrailingWhitespaces)}}{{end}}{{if .HasAvailableInheritedFlags}}

{{style "usage_groups" "Global Flags:"}}
{{style "usage_text" (.InheritedFlags.FlagUsages | trimTrailingWhitespaces)}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
