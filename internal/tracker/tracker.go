// Package tracker adapts the chainlink CLI into a normalized session view.
//
// The backend speaks human-readable text, so everything here is substring and
// regex matching against output this package does not own. All parsing lives
// in parse.go so a format change is a one-place fix. Any output that fails to
// match reads as "no session" — the gate fails open on tracker trouble.
package tracker

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultStaleAge is the session age beyond which EndIfStale force-ends.
const DefaultStaleAge = 240 * time.Minute

// Runner executes one tracker subcommand and returns its stdout.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// CLIRunner invokes the chainlink binary with a per-call timeout.
type CLIRunner struct {
	binary  string
	timeout time.Duration
}

// NewCLIRunner returns a runner for the chainlink binary. The timeout bounds
// every call so a hung backend cannot stall the gate.
func NewCLIRunner(timeout time.Duration) *CLIRunner {
	return &CLIRunner{binary: "chainlink", timeout: timeout}
}

// Run executes `chainlink args...`. A non-zero exit, missing binary, or
// timeout all surface as errors; callers treat every error as "unreachable".
func (r *CLIRunner) Run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s: %w", r.binary, strings.Join(args, " "), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// State is the normalized session view derived from one status query.
// Authoritative state lives in the backend; this is never cached across
// invocations.
type State struct {
	// Reachable is false when the backend is missing, timed out, or errored.
	Reachable bool
	// Active is true when a session is open.
	Active bool
	// WorkingIssue is the active work item id ("" when none).
	WorkingIssue string
	// AgeMinutes is the session duration, -1 when not reported.
	AgeMinutes int
	// LastAction is the most recent recorded breadcrumb ("" when none).
	LastAction string
}

// Client drives the tracker through a Runner.
type Client struct {
	run Runner
}

// NewClient wraps a Runner.
func NewClient(r Runner) *Client {
	return &Client{run: r}
}

// Status queries `session status` and parses the result. Backend failure
// yields State{Reachable: false}; unparseable output yields a reachable but
// inactive state.
func (c *Client) Status(ctx context.Context) State {
	out, err := c.run.Run(ctx, "session", "status")
	if err != nil {
		return State{}
	}
	return parseStatus(out)
}

// EnsureStarted starts a session when none is active. Idempotent — the
// backend's own start is a no-op on an already-open session, and this checks
// first anyway. Returns true when a new session was started.
func (c *Client) EnsureStarted(ctx context.Context) bool {
	if c.Status(ctx).Active {
		return false
	}
	_, err := c.run.Run(ctx, "session", "start")
	return err == nil
}

// EndIfStale force-ends the session when its age exceeds maxAge, recording an
// auto-generated handoff note. Returns true when a session was ended. The
// next Status read then reports no session, so a fresh one gets started.
func (c *Client) EndIfStale(ctx context.Context, maxAge time.Duration) bool {
	st := c.Status(ctx)
	if !st.Reachable || !st.Active || st.AgeMinutes < 0 {
		return false
	}
	if time.Duration(st.AgeMinutes)*time.Minute <= maxAge {
		return false
	}
	note := fmt.Sprintf("Session auto-ended (stale after %d minutes). No handoff notes provided.", st.AgeMinutes)
	_, err := c.run.Run(ctx, "session", "end", "--notes", note)
	return err == nil
}

// LastHandoff returns the previous session's handoff notes, or "" when there
// are none (the backend prints "No previous ..." sentinels for that case).
func (c *Client) LastHandoff(ctx context.Context) string {
	out, err := c.run.Run(ctx, "session", "last-handoff")
	if err != nil || out == "" || strings.Contains(out, "No previous") {
		return ""
	}
	return out
}

// Comment adds a comment to an issue. Best effort.
func (c *Client) Comment(ctx context.Context, issueID, text string) {
	c.run.Run(ctx, "comment", issueID, text) //nolint:errcheck // advisory breadcrumb only
}

// Ready returns the unblocked-issues listing, "" on failure.
func (c *Client) Ready(ctx context.Context) string {
	out, err := c.run.Run(ctx, "ready")
	if err != nil {
		return ""
	}
	return out
}

// OpenIssues returns the open-issues listing, "" on failure.
func (c *Client) OpenIssues(ctx context.Context) string {
	out, err := c.run.Run(ctx, "list", "-s", "open")
	if err != nil {
		return ""
	}
	return out
}

// RawStatus returns the status text verbatim for advisory display.
func (c *Client) RawStatus(ctx context.Context) string {
	out, err := c.run.Run(ctx, "session", "status")
	if err != nil {
		return ""
	}
	return out
}
