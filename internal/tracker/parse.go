package tracker

import (
	"regexp"
	"strconv"
	"strings"
)

// Recognized substrings/patterns in `chainlink session status` output:
//
//	Session #12 (started 2025-06-01 09:30)
//	Working on: #34 fix the widget
//	Duration: 17 minutes
//	Last action: wired the widget to the frobnicator
//
// "No active session." appears when nothing is open.
var (
	workingIssueRe = regexp.MustCompile(`Working on: #(\d+)`)
	durationRe     = regexp.MustCompile(`Duration:\s*(\d+)\s*minutes`)
	lastActionRe   = regexp.MustCompile(`Last action:\s*(.+)`)
)

// parseStatus extracts a State from status output. Text that only partially
// matches reads as "no active session" rather than an error.
func parseStatus(out string) State {
	st := State{Reachable: true, AgeMinutes: -1}

	// Both markers must be present for an active session.
	st.Active = strings.Contains(out, "Session #") && strings.Contains(out, "(started")

	if m := workingIssueRe.FindStringSubmatch(out); m != nil {
		st.WorkingIssue = m[1]
	}
	if m := durationRe.FindStringSubmatch(out); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			st.AgeMinutes = n
		}
	}
	if m := lastActionRe.FindStringSubmatch(out); m != nil {
		st.LastAction = strings.TrimSpace(m[1])
	}
	return st
}
