package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Adarsh1999/combine-files-gpt/pkg/clock"
	"github.com/Adarsh1999/combine-files-gpt/pkg/logging"
)

// NewRootCommand assembles the CLI. Subcommands receive their
// dependencies here, so tests can wire their own.
func NewRootCommand(logger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "combinefiles",
		Short: "combinefiles merges selected files into a single document",
		Long: `combinefiles collects files and folders, filters out binary and
excluded content, and writes everything into one timestamped text or PDF
document, ready to be shared or pasted into an AI chat.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().Bool("debug", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if debug, err := cmd.Flags().GetBool("debug"); err == nil && debug {
			logging.SetDebugLevel()
		}
	}

	root.AddCommand(newExportCommand(logger, clock.System{}))
	root.AddCommand(newVersionCommand())
	return root
}
