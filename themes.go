package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/kastheco/dye/config"
	"github.com/kastheco/dye/log"
	"github.com/spf13/cobra"
)

func newListCmd(kind string) *cobra.Command {
	return &cobra.Command{
		Use:   kind + "s",
		Short: fmt.Sprintf("List the %ss in the %ss directory", kind, kind),
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.KindDir(kind)
			if err != nil {
				return err
			}
			names, err := listNames(dir)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

// listNames returns the names of the .toml files below dir, as accepted by
// --theme and --pattern. A missing directory has no names.
func listNames(dir string) ([]string, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		log.Debugf("'%s' does not exist", dir)
		return nil, nil
	}
	matches, err := doublestar.Glob(os.DirFS(dir), "**/*.toml", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to list '%s': %w", dir, err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(m, ".toml"))
	}
	sort.Strings(names)
	return names, nil
}

func init() {
	rootCmd.AddCommand(newListCmd(config.KindTheme))
	rootCmd.AddCommand(newListCmd(config.KindPattern))
}
