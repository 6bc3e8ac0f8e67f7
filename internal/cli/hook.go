package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wsmoak/linkguard/internal/hooks"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Handle Claude Code hook events",
}

var hookPreToolCmd = &cobra.Command{
	Use:   "pretool",
	Short: "Handle PreToolUse for Write|Edit|Bash (the policy gate)",
	Run: func(cmd *cobra.Command, args []string) {
		hooks.Handle("pretool", os.Stdin)
	},
}

var hookPostToolCmd = &cobra.Command{
	Use:   "posttool",
	Short: "Handle PostToolUse for Write|Edit (stub scan, lint, test reminder)",
	Run: func(cmd *cobra.Command, args []string) {
		hooks.Handle("posttool", os.Stdin)
	},
}

var hookPromptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Handle UserPromptSubmit (behavioral rules injection)",
	Run: func(cmd *cobra.Command, args []string) {
		hooks.Handle("prompt", os.Stdin)
	},
}

var hookSessionStartCmd = &cobra.Command{
	Use:   "session-start",
	Short: "Handle SessionStart (session recovery and context)",
	Run: func(cmd *cobra.Command, args []string) {
		hooks.Handle("session-start", os.Stdin)
	},
}

var hookPreWebCmd = &cobra.Command{
	Use:   "preweb",
	Short: "Handle PreToolUse for WebFetch|WebSearch (injection defense)",
	Run: func(cmd *cobra.Command, args []string) {
		hooks.Handle("preweb", os.Stdin)
	},
}

func init() {
	hookCmd.AddCommand(hookPreToolCmd)
	hookCmd.AddCommand(hookPostToolCmd)
	hookCmd.AddCommand(hookPromptCmd)
	hookCmd.AddCommand(hookSessionStartCmd)
	hookCmd.AddCommand(hookPreWebCmd)
}
