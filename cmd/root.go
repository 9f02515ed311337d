// Package cmd provides the root command and CLI setup for shapenote.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/shapenote/shapenote/internal/adapter"
	"github.com/shapenote/shapenote/internal/controller"
	"github.com/shapenote/shapenote/internal/domain"
	m "github.com/shapenote/shapenote/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var ui controller.UI
var workflow domain.Workflow

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	workflow = domain.NewWorkflow(fsAdapter, ui)
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shapenote",
		Short: "Shape annotation helper for data scripts",
		Long: `Shapenote manages the "# dtype(shape)" comments that the trace
library appends to source lines: list where they are, or strip them
out again.

Supports Go-style path patterns:
  - ./...            recursively scan current directory
  - ./scripts/...    recursively scan scripts directory
  - ./a ./b          scan multiple directories`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	return cmd
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to
// happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{"./..."}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
