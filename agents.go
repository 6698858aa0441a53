package main

import (
	"fmt"

	"github.com/kastheco/dye/ui"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

func newAgentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List the agents a pattern scope can use",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  runAgents,
	}
}

func runAgents(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	entries := registry.All()

	nameWidth := 0
	for _, e := range entries {
		nameWidth = max(nameWidth, runewidth.StringWidth(e.Name))
	}
	// Three borders and four padding cells around two columns.
	descWidth := 0
	if width := ui.Width(w); width > 0 {
		descWidth = max(width-nameWidth-7, 10)
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Name, ui.Truncate(e.Description, descWidth)})
	}
	_, err := fmt.Fprintln(w, outputFor(w).Table([]string{"AGENT", "DESCRIPTION"}, rows))
	return err
}

func init() {
	rootCmd.AddCommand(newAgentsCmd())
}
