package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:           "wealth-builder",
		Short:         "Gradebook, quiz grading and budgeting tools for the Wealth Builder course",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(newSeedCmd(&configPath))
	cmd.AddCommand(newGradeCmd(&configPath))
	cmd.AddCommand(newQuizCmd(&configPath))
	cmd.AddCommand(newBudgetCmd(&configPath))
	cmd.AddCommand(newNetWorthCmd(&configPath))
	return cmd
}
