package gate

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/wsmoak/linkguard/internal/config"
	"github.com/wsmoak/linkguard/internal/tracker"
)

func genMode() *rapid.Generator[config.Mode] {
	return rapid.SampledFrom([]config.Mode{config.Strict, config.Normal, config.Relaxed})
}

func genSession() *rapid.Generator[tracker.State] {
	return rapid.Custom(func(t *rapid.T) tracker.State {
		st := tracker.State{
			Reachable:  rapid.Bool().Draw(t, "reachable"),
			Active:     rapid.Bool().Draw(t, "active"),
			AgeMinutes: rapid.IntRange(-1, 600).Draw(t, "age"),
		}
		if rapid.Bool().Draw(t, "hasIssue") {
			st.WorkingIssue = rapid.StringMatching(`[1-9][0-9]{0,3}`).Draw(t, "issue")
		}
		return st
	})
}

// Any command that leads with a blocked prefix, or runs one after a shell
// conjunction, is denied no matter the mode or session state.
func TestBlockedGitDeniedForAllModesAndSessions(t *testing.T) {
	blocked := config.Default().BlockedGitCommands
	rapid.Check(t, func(rt *rapid.T) {
		cfg := config.Default()
		cfg.TrackingMode = genMode().Draw(rt, "mode")
		sess := genSession().Draw(rt, "sess")

		prefix := rapid.SampledFrom(blocked).Draw(rt, "prefix")
		suffix := rapid.StringMatching(`[ a-z0-9./-]{0,20}`).Draw(rt, "suffix")
		joiner := rapid.SampledFrom([]string{"", "make build && ", "echo hi; ", "cat x | "}).Draw(rt, "joiner")
		cmd := joiner + prefix + suffix

		d := Decide(Event{Tool: "Bash", Command: cmd}, cfg, sess)
		if d.Verdict != Deny || d.Reason != ReasonGitMutation {
			rt.Fatalf("Decide(%q) = %+v, want git-mutation deny", cmd, d)
		}
	})
}

// Tools outside {Write, Edit, Bash} are never gated, whatever the state.
func TestUngatedToolsAllowedForAllStates(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := config.Default()
		cfg.TrackingMode = genMode().Draw(rt, "mode")
		sess := genSession().Draw(rt, "sess")
		tool := rapid.SampledFrom([]string{"Read", "Glob", "Grep", "WebFetch", "WebSearch", "NotebookEdit", "Task"}).Draw(rt, "tool")

		d := Decide(Event{Tool: tool, Command: "git push"}, cfg, sess)
		if d.Verdict != Allow {
			rt.Fatalf("Decide(tool=%q) = %+v, want allow", tool, d)
		}
	})
}

// Relaxed mode never denies for a missing work item.
func TestRelaxedNeverDeniesForMissingWorkItem(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := config.Default()
		cfg.TrackingMode = config.Relaxed
		sess := genSession().Draw(rt, "sess")
		tool := rapid.SampledFrom([]string{"Write", "Edit", "Bash"}).Draw(rt, "tool")
		// Arbitrary command that is not a git mutation.
		cmd := "make " + rapid.StringMatching(`[a-z]{1,10}`).Draw(rt, "target")

		d := Decide(Event{Tool: tool, FilePath: "/tmp/f.go", Command: cmd}, cfg, sess)
		if d.Verdict == Deny && d.Reason == ReasonNoActiveWork {
			rt.Fatalf("relaxed mode denied for missing work item: %+v", d)
		}
	})
}

// An unreachable tracker always fails open for non-blocked events.
func TestUnreachableTrackerFailsOpenForAllModes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := config.Default()
		cfg.TrackingMode = genMode().Draw(rt, "mode")

		d := Decide(Event{Tool: "Write", FilePath: "/tmp/f.go"}, cfg, tracker.State{})
		if d.Verdict != Allow {
			rt.Fatalf("unreachable tracker: %+v, want allow", d)
		}
	})
}
