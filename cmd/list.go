package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shapenote/shapenote/internal/domain"
)

var listExcludeFlags []string

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List shape annotations in source files",
		Long:  "List every line carrying a shape descriptor comment under the given paths.",
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Scan(domain.ScanArgs{
				Paths:   parsePaths(args),
				Exclude: listExcludeFlags,
			})
		},
	}
	cmd.Flags().StringArrayVarP(&listExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
