// Package cli is the cobra command surface.
package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "prlens",
		Short:         "Review-grade analysis for changed files",
		Long:          "PRLens analyzes the changed files of a pull request across languages and produces structural summaries, style findings, and per-file scores in one validated report.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
