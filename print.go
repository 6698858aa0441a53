package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/kastheco/dye/app"
	"github.com/kastheco/dye/config"
	"github.com/spf13/cobra"
)

type printFlags struct {
	files     fileFlags
	style     string
	noNewline bool
}

func newPrintCmd() *cobra.Command {
	f := &printFlags{}
	cmd := &cobra.Command{
		Use:   "print [flags] [text...]",
		Short: "Print text in a style from the theme",
		Example: `  dye print -s warning "disk almost full"
  dye print -n -s "bold accent on background" ">"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd, f, args)
		},
	}
	f.files.register(cmd)
	cmd.Flags().StringVarP(&f.style, "style", "s", "", "style name or declaration, e.g. 'bold red'")
	cmd.Flags().BoolVarP(&f.noNewline, "no-newline", "n", false, "do not print the trailing newline")
	return cmd
}

func runPrint(cmd *cobra.Command, f *printFlags, args []string) error {
	text := strings.Join(args, " ")
	o := outputFor(cmd.OutOrStdout())

	if f.style != "" {
		opts, err := f.files.loadOptions()
		if err != nil {
			return err
		}
		in, err := app.Load(config.LoadConfig(), opts)
		if err != nil {
			return err
		}
		st, err := in.Palette.ResolveStyle(f.style)
		if err != nil {
			return err
		}
		text = o.Style(st).Render(text)
	}
	if !o.Colored() {
		text = ansi.Strip(text)
	}
	if !f.noNewline {
		text += "\n"
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), text)
	return err
}

func init() {
	rootCmd.AddCommand(newPrintCmd())
}
