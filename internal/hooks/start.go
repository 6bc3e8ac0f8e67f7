package hooks

import (
	"context"
	"fmt"
	"strings"

	"github.com/wsmoak/linkguard/internal/tracker"
)

const workflowReminder = `## Chainlink Workflow Reminder
- Use ` + "`chainlink session start`" + ` at the beginning of work
- Use ` + "`chainlink session work <id>`" + ` to mark current focus
- Use ` + "`chainlink session action \"...\"`" + ` to record breadcrumbs before context compression
- Add comments as you discover things: ` + "`chainlink comment <id> \"...\"`" + `
- End with handoff notes: ` + "`chainlink session end --notes \"...\"`" + `
</chainlink-session-context>`

// SessionStart drives session lifecycle recovery and composes the
// session-context advisory: stale-session auto-end, resume breadcrumbs,
// previous handoff, current status, and ready/open issue summaries.
func SessionStart(ctx context.Context, env Env, _ Input) (string, int) {
	if env.StateDir == "" {
		return "", ExitAllow
	}

	parts := []string{"<chainlink-session-context>"}

	// An already-active session at startup means this is a resume (the host
	// restarted or compressed context mid-session), unless it turns out to be
	// stale and gets force-ended.
	isResume := env.Tracker.Status(ctx).Active

	if isResume && env.Tracker.EndIfStale(ctx, tracker.DefaultStaleAge) {
		isResume = false
		parts = append(parts, fmt.Sprintf(
			"## Stale Session Warning\nPrevious session was auto-ended (open > %d hours). Handoff notes may be incomplete.",
			int(tracker.DefaultStaleAge.Hours())))
	}

	// Grab handoff notes before a new session displaces them.
	lastHandoff := env.Tracker.LastHandoff(ctx)

	env.Tracker.EnsureStarted(ctx)

	if isResume {
		st := env.Tracker.Status(ctx)
		recordResume(ctx, env.Tracker, st)
		parts = append(parts, resumeBreadcrumb(st))
	}

	if lastHandoff != "" {
		parts = append(parts, "## Previous Session Handoff\n"+lastHandoff)
	}

	if status := env.Tracker.RawStatus(ctx); status != "" {
		parts = append(parts, "## Current Session\n"+status)
	}
	if ready := env.Tracker.Ready(ctx); ready != "" {
		parts = append(parts, "## Ready Issues (unblocked)\n"+ready)
	}
	if open := env.Tracker.OpenIssues(ctx); open != "" {
		parts = append(parts, "## Open Issues\n"+open)
	}

	parts = append(parts, workflowReminder)
	return strings.Join(parts, "\n\n"), ExitAllow
}

// recordResume leaves an auto-comment on the working issue so the resumed
// context has a breadcrumb in the tracker.
func recordResume(ctx context.Context, t *tracker.Client, st tracker.State) {
	if st.WorkingIssue == "" {
		return
	}
	comment := "[auto] Session resumed after context compression."
	if st.LastAction != "" {
		comment = "[auto] Session resumed after context compression. Last action: " + st.LastAction
	}
	t.Comment(ctx, st.WorkingIssue, comment)
}

func resumeBreadcrumb(st tracker.State) string {
	if st.LastAction != "" {
		return "## Context Compression Breadcrumb\nThis session resumed after context compression.\nLast recorded action: " + st.LastAction
	}
	return "## Context Compression Breadcrumb\nThis session resumed after context compression.\n" +
		"No last action was recorded. Use `chainlink session action \"...\"` to track progress."
}
