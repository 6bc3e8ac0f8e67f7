package hooks

import (
	"encoding/json"
	"fmt"
	"os"
)

// Exit codes of the hook contract: 0 lets the host runtime proceed, 2 tells
// it to block the action and surface the printed message to the agent.
const (
	ExitAllow = 0
	ExitDeny  = 2
)

// PostToolOutput is the JSON envelope Claude Code expects on stdout from the
// PostToolUse hook's advisory channel.
type PostToolOutput struct {
	HookSpecificOutput struct {
		HookEventName     string `json:"hookEventName"`
		AdditionalContext string `json:"additionalContext"`
	} `json:"hookSpecificOutput"`
}

// EncodePostTool wraps advisory context in the PostToolUse envelope.
func EncodePostTool(context string) string {
	out := PostToolOutput{}
	out.HookSpecificOutput.HookEventName = "PostToolUse"
	out.HookSpecificOutput.AdditionalContext = context
	data, err := json.Marshal(out)
	if err != nil {
		return ""
	}
	return string(data)
}

// ExitError logs to stderr and exits 0 — hooks must never crash the host
// runtime; a broken hook fails open.
func ExitError(err error) {
	fmt.Fprintf(os.Stderr, "linkguard hook: %v\n", err)
	os.Exit(ExitAllow)
}
