package main

import (
	"os"

	"github.com/akeren/creatorchain/config"
	"github.com/akeren/creatorchain/internal/log"
	"github.com/spf13/cobra"
)

func main() {
	logger := log.NewLoggerFromEnv()

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error("Command failed", "error", err.Error())
		os.Exit(1)
	}
}

func newRootCmd(logger *log.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "cli",
		Short: "CreatorChain landing operations",
		Long: `Operational commands for the CreatorChain landing service.

Examples:
  cli migrate
  cli validate someone@example.com
  cli feedback --kind success --out success.wav
  cli submit --email someone@example.com --creator-type youtuber`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateCmd(logger),
		newValidateCmd(),
		newFeedbackCmd(),
		newSubmitCmd(logger),
	)
	return root
}
