package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "linkguard",
	Short: "Workflow policy hooks for AI coding agents",
	Long:  "Linkguard mediates an agent's tool calls against the project's chainlink workflow: it gates writes and shell commands behind active work items, injects behavioral rules, and flags stub code after edits.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(installCmd)
}
