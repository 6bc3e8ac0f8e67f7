package hooks

import (
	"context"

	"github.com/wsmoak/linkguard/internal/gate"
	"github.com/wsmoak/linkguard/internal/tracker"
)

// PreTool runs the policy gate for one tool invocation. Returns the text to
// print (deny or warn message, "" on silent allow) and the exit code.
func PreTool(ctx context.Context, env Env, in Input) (string, int) {
	ev := gate.Event{
		Tool:     in.ToolName,
		FilePath: in.ToolInput.FilePath,
		Command:  in.ToolInput.Command,
	}

	// Query the backend only when the decision actually depends on it. With
	// no state directory at all there is no tracked project — the zero State
	// reads as unreachable and the gate fails open.
	var sess tracker.State
	if env.StateDir != "" && gate.NeedsSession(ev, env.Config) {
		sess = env.Tracker.Status(ctx)
	}

	d := gate.Decide(ev, env.Config, sess)
	switch d.Verdict {
	case gate.Deny:
		return d.Message, ExitDeny
	case gate.Warn:
		return d.Message, ExitAllow
	}
	return "", ExitAllow
}
