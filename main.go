package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/kastheco/dye/agents"
	"github.com/kastheco/dye/config"
	"github.com/kastheco/dye/log"
	"github.com/kastheco/dye/ui"
	"github.com/spf13/cobra"
)

var (
	version        = "0.1.0"
	debugFlag      bool
	forceColorFlag bool
	registry       = agents.Default()
	rootCmd        = &cobra.Command{
		Use:   "dye",
		Short: "dye - generate shell color configuration from a theme and a pattern",
		Long: `dye reads a theme (named colors and styles) and a pattern (scopes that
say which program gets which colors) and prints shell code that configures
ls, eza, fzf, iTerm2 and arbitrary environment variables.

  eval "$(dye apply)"`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dye",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dye version %s\n", version)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "print debug messages to stderr")
	rootCmd.PersistentFlags().BoolVarP(&forceColorFlag, "force-color", "F", false,
		"color dye's own output even when it is not a terminal")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})
	usageOutput := sync.OnceValue(func() *ui.Output { return outputFor(os.Stdout) })
	cobra.AddTemplateFunc("style", func(element, text string) string {
		return usageOutput().Render(element, text)
	})
	rootCmd.SetUsageTemplate(usageTemplate)

	rootCmd.AddCommand(versionCmd)
}

// initLogging wires the loggers once the flags are parsed. The log file comes
// from $DYE_LOG_FILE or config.toml, so the config is read with logging
// already on.
func initLogging() {
	envLog := os.Getenv(config.EnvLogFile)
	log.Initialize(debugFlag, envLog)
	if path := config.LoadConfig().LogFilePath(); path != envLog {
		log.Close()
		log.Initialize(debugFlag, path)
	}
	stderr := outputFor(os.Stderr)
	log.SetDecorator(func(label, msg string) (string, string) {
		return stderr.Render("debug_label", label), stderr.Render("debug_text", msg)
	})
}

// outputFor styles dye's own output on w from $DYE_COLORS.
func outputFor(w io.Writer) *ui.Output {
	return ui.NewOutput(w, config.OutputStyles(), ui.Profile(w, forceColorFlag))
}

// formatError renders "dye: message" with the error_progname and
// error_text elements.
func formatError(o *ui.Output, err error) string {
	return o.Render("error_progname", "dye:") + " " + o.Render("error_text", err.Error())
}

// exitCode maps a command error to the process exit status: 0 on success,
// 2 for usage errors and 1 for everything else.
func exitCode(err error) int {
	var uerr *usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &uerr):
		return 2
	default:
		return 1
	}
}

// execute runs cmd and reports any error on stderr.
func execute(cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.Execute()
	if err != nil && !errors.Is(err, errUnhealthy) {
		fmt.Fprintln(stderr, formatError(outputFor(stderr), err))
		var uerr *usageError
		if errors.As(err, &uerr) {
			fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.Name())
		}
	}
	return exitCode(err)
}

func main() {
	code := execute(rootCmd, os.Stderr)
	log.Close()
	os.Exit(code)
}
