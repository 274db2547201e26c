package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docketctl",
	Short: "Select tax collection dockets under a workforce hour budget",
	Long: `docketctl prepares the docket export and selects the subset of
cases that maximizes recoverable value within the available collector
hours. Preprocess the raw export once, then solve with the greedy,
dp, or ga algorithm.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(preprocessCmd)
	rootCmd.AddCommand(solveCmd)
}
