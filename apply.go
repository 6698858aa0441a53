package main

import (
	"fmt"

	"github.com/kastheco/dye/agents"
	"github.com/kastheco/dye/app"
	"github.com/kastheco/dye/config"
	"github.com/kastheco/dye/log"
	"github.com/spf13/cobra"
)

type applyFlags struct {
	files   fileFlags
	scopes  []string
	agents  []string
	shell   string
	comment bool
	output  string
}

func newApplyCmd() *cobra.Command {
	f := &applyFlags{}
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Print shell code that applies the pattern",
		Long: `Resolves every scope of the pattern against the theme and prints the
shell code of each scope's agent, in declaration order. Nothing is printed
unless every scope succeeds.`,
		Example: `  eval "$(dye apply)"
  dye apply --theme dracula -s ls,fzf
  dye apply --shell fish | source`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, f)
		},
	}
	f.files.register(cmd)
	cmd.Flags().StringSliceVarP(&f.scopes, "scope", "s", nil, "only apply these scopes, in this order")
	cmd.Flags().StringSliceVarP(&f.agents, "agent", "a", nil, "only apply scopes handled by these agents")
	cmd.Flags().StringVar(&f.shell, "shell", "", "shell syntax of the output: posix or fish")
	cmd.Flags().BoolVarP(&f.comment, "comment", "c", false, "annotate the output with scope comments")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the output to this file instead of stdout")
	return cmd
}

func runApply(cmd *cobra.Command, f *applyFlags) error {
	opts, err := f.files.loadOptions()
	if err != nil {
		return err
	}
	opts.RequirePattern = true

	cfg := config.LoadConfig()
	shellName := cfg.Shell
	if f.shell != "" {
		shellName = f.shell
	}
	shell, err := agents.ParseShell(shellName)
	if err != nil {
		return usageErrorf("%v", err)
	}
	for _, name := range f.agents {
		if _, err := registry.Get(name); err != nil {
			return usageErrorf("%v", err)
		}
	}

	in, err := app.Load(cfg, opts)
	if err != nil {
		return err
	}
	out, err := app.Apply(cmd.Context(), registry, in, app.ApplyOptions{
		Scopes:  f.scopes,
		Agents:  f.agents,
		Shell:   shell,
		Comment: f.comment || cfg.Comment,
	})
	if err != nil {
		return err
	}

	if f.output != "" {
		path := config.ExpandHome(f.output)
		log.Debugf("writing output to '%s'", path)
		return app.WriteOutput(path, []byte(out))
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

func init() {
	rootCmd.AddCommand(newApplyCmd())
}
