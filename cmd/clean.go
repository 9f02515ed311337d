package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shapenote/shapenote/internal/domain"
)

var cleanParallelFlag int
var cleanExcludeFlags []string

// cleanCmd represents the clean command.
var cleanCmd = newCleanCmd()

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [paths...]",
		Short: "Remove shape annotations from source files",
		Long:  "Strip every shape descriptor comment under the given paths, rewriting files in place.",
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Clean(domain.CleanArgs{
				ScanArgs: domain.ScanArgs{
					Paths:   parsePaths(args),
					Exclude: cleanExcludeFlags,
				},
				Threads: cleanParallelFlag,
			})
		},
	}
	cmd.Flags().IntVarP(&cleanParallelFlag, "parallel", "p", 1, "number of parallel workers for cleaning")
	cmd.Flags().StringArrayVarP(&cleanExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
