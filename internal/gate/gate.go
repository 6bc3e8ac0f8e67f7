// Package gate decides whether a tool invocation may proceed. Decide is a
// pure function of the event, the loaded config, and the session state — all
// printing and exiting belongs to the hooks boundary.
package gate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/wsmoak/linkguard/internal/config"
	"github.com/wsmoak/linkguard/internal/tracker"
)

// Verdict is the gate's control decision.
type Verdict int

const (
	// Allow lets the tool call proceed silently.
	Allow Verdict = iota
	// Warn lets it proceed but surfaces a reminder.
	Warn
	// Deny blocks the tool call.
	Deny
)

func (v Verdict) String() string {
	switch v {
	case Warn:
		return "warn"
	case Deny:
		return "deny"
	}
	return "allow"
}

// Denial reasons.
const (
	ReasonGitMutation  = "git-mutation-forbidden"
	ReasonNoActiveWork = "no-active-work-item"
)

// Decision is the gate's result. Message is the text to surface for Warn and
// Deny; empty for Allow.
type Decision struct {
	Verdict Verdict
	Reason  string
	Message string
}

var allow = Decision{Verdict: Allow}

// Event is one tool invocation as seen by the gate.
type Event struct {
	Tool     string // Write, Edit, Bash, WebFetch, ...
	FilePath string // Write/Edit target
	Command  string // Bash command line
}

// gated tools are the only ones the gate examines at all.
func gated(tool string) bool {
	return tool == "Write" || tool == "Edit" || tool == "Bash"
}

// Decide evaluates the event against the policy. Rules apply in order; the
// first match wins.
func Decide(ev Event, cfg config.Config, sess tracker.State) Decision {
	if d, decided := decideEarly(ev, cfg); decided {
		return d
	}

	// Tracker missing or errored: fail open, never closed.
	if !sess.Reachable {
		return allow
	}

	if sess.WorkingIssue != "" {
		return allow
	}

	if cfg.TrackingMode == config.Strict {
		return Decision{Verdict: Deny, Reason: ReasonNoActiveWork, Message: strictBlockMessage}
	}
	return Decision{Verdict: Warn, Reason: ReasonNoActiveWork, Message: normalReminderMessage}
}

// decideEarly evaluates the rules that do not consult session state. decided
// is false when the outcome depends on the tracker.
func decideEarly(ev Event, cfg config.Config) (Decision, bool) {
	if !gated(ev.Tool) {
		return allow, true
	}

	// The agent manages its own memory/config under ~/.claude unconditionally.
	if (ev.Tool == "Write" || ev.Tool == "Edit") && isAgentConfigPath(ev.FilePath) {
		return allow, true
	}

	// Git mutations are blocked in every mode and cannot be configured away
	// by session state.
	if ev.Tool == "Bash" && isBlockedGit(ev.Command, cfg.BlockedGitCommands) {
		return Decision{Verdict: Deny, Reason: ReasonGitMutation, Message: gitBlockMessage}, true
	}

	if ev.Tool == "Bash" && isAllowedBash(ev.Command, cfg.AllowedBashPrefixes) {
		return allow, true
	}

	if cfg.TrackingMode == config.Relaxed {
		return allow, true
	}

	return Decision{}, false
}

// NeedsSession reports whether deciding this event requires querying the
// session backend at all. The boundary uses it to skip the subprocess call
// when the outcome is already determined.
func NeedsSession(ev Event, cfg config.Config) bool {
	_, decided := decideEarly(ev, cfg)
	return !decided
}

// isBlockedGit reports whether the command starts with a blocked prefix, or
// runs one after a shell conjunction or pipe. Literal prefix matching only —
// no semantic command analysis.
func isBlockedGit(command string, blocked []string) bool {
	command = strings.TrimSpace(command)
	for _, b := range blocked {
		if strings.HasPrefix(command, b) {
			return true
		}
	}
	for _, b := range blocked {
		if strings.Contains(command, "&& "+b) ||
			strings.Contains(command, "; "+b) ||
			strings.Contains(command, "| "+b) {
			return true
		}
	}
	return false
}

func isAllowedBash(command string, allowed []string) bool {
	command = strings.TrimSpace(command)
	for _, prefix := range allowed {
		if strings.HasPrefix(command, prefix) {
			return true
		}
	}
	return false
}

// isAgentConfigPath reports whether filePath lies under ~/.claude.
func isAgentConfigPath(filePath string) bool {
	if filePath == "" {
		return false
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return false
	}
	return pathWithin(filePath, filepath.Join(home, ".claude"))
}

// pathWithin reports whether path is inside (or is) the root directory.
func pathWithin(path, root string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(rootAbs, abs)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
