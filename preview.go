package main

import (
	"fmt"
	"strings"

	"github.com/kastheco/dye/app"
	"github.com/kastheco/dye/config"
	"github.com/kastheco/dye/palette"
	"github.com/kastheco/dye/ui"
	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	f := &fileFlags{}
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the colors, styles and scopes of a theme and a pattern",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, f)
		},
	}
	f.register(cmd)
	return cmd
}

func runPreview(cmd *cobra.Command, f *fileFlags) error {
	opts, err := f.loadOptions()
	if err != nil {
		return err
	}
	in, err := app.Load(config.LoadConfig(), opts)
	if err != nil {
		return err
	}
	if !in.HasTheme() && !in.HasPattern() {
		return app.ErrNothingToPreview
	}

	w := cmd.OutOrStdout()
	o := outputFor(w)
	var sections []string
	sections = append(sections, o.Table([]string{"INPUT", "FILE", "FROM"}, inputRows(in)))
	if names := in.Palette.ColorNames(); len(names) > 0 {
		sections = append(sections, o.Table([]string{"COLOR", "VALUE", "DEFINITION", "FROM", ""}, colorRows(o, in.Palette)))
	}
	if names := in.Palette.StyleNames(); len(names) > 0 {
		sections = append(sections, o.Table([]string{"STYLE", "DECLARATION", "FROM", "SAMPLE"}, styleRows(o, in.Palette)))
	}
	if in.HasPattern() {
		sections = append(sections, o.Table([]string{"SCOPE", "AGENT", "COMMENT"}, scopeRows(o, in)))
	}
	_, err = fmt.Fprintln(w, strings.Join(sections, "\n"))
	return err
}

func inputRows(in *app.Inputs) [][]string {
	row := func(kind string, src config.Source, meta palette.Meta) []string {
		if src.Path == "" {
			return []string{kind, "-", "-"}
		}
		file := src.Path
		if meta.Description != "" {
			file += " (" + meta.Description + ")"
		}
		return []string{kind, file, src.Origin}
	}
	return [][]string{
		row("theme", in.ThemeSource, in.Theme.Meta),
		row("pattern", in.PatternSource, in.Pattern.Meta),
	}
}

func colorRows(o *ui.Output, pal *palette.Palette) [][]string {
	var rows [][]string
	for _, name := range pal.ColorNames() {
		c, _ := pal.Color(name)
		def, from, _ := pal.ColorSource(name)
		rows = append(rows, []string{name, c.String(), def, from, o.Swatch(c)})
	}
	return rows
}

func styleRows(o *ui.Output, pal *palette.Palette) [][]string {
	var rows [][]string
	for _, name := range pal.StyleNames() {
		decl, from, _ := pal.StyleSource(name)
		sample := ""
		if st, err := pal.Style(name); err != nil {
			sample = "error: " + err.Error()
		} else {
			sample = o.Style(st).Render(st.String())
		}
		rows = append(rows, []string{name, decl, from, sample})
	}
	return rows
}

func scopeRows(o *ui.Output, in *app.Inputs) [][]string {
	var rows [][]string
	for _, def := range in.Pattern.Scopes() {
		comment := ""
		if sc, err := in.Palette.ResolveScope(def); err == nil {
			comment = o.Render("comment_text", strings.ReplaceAll(sc.Comment, "\n", " "))
		}
		rows = append(rows, []string{def.Name, def.Agent, comment})
	}
	return rows
}

func init() {
	rootCmd.AddCommand(newPreviewCmd())
}
