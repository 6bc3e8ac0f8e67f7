package hooks

import (
	"encoding/json"
	"io"
)

// Input represents the JSON that Claude Code sends on stdin to hook handlers.
// Different events populate different subsets; all fields are optional.
type Input struct {
	SessionID     string `json:"session_id"`
	CWD           string `json:"cwd"`
	HookEventName string `json:"hook_event_name"`

	// UserPromptSubmit
	Prompt string `json:"prompt,omitempty"`

	// PreToolUse / PostToolUse
	ToolName  string    `json:"tool_name,omitempty"`
	ToolInput ToolInput `json:"tool_input,omitempty"`
}

// ToolInput carries the fields the hooks care about from the tool payload.
type ToolInput struct {
	FilePath string `json:"file_path,omitempty"`
	Command  string `json:"command,omitempty"`
}

// Decode reads an Input from r. Malformed or missing JSON degrades to the
// zero-value Input — an empty event, never an error.
func Decode(r io.Reader) Input {
	var in Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return Input{}
	}
	return in
}
