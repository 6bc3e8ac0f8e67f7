package tracker

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// fakeRunner serves canned output per subcommand and records calls.
type fakeRunner struct {
	outputs map[string]string // keyed by space-joined args
	err     error
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (string, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	if f.err != nil {
		return "", f.err
	}
	return f.outputs[key], nil
}

func (f *fakeRunner) called(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

const activeStatus = `Session #12 (started 2025-06-01 09:30)
Working on: #34 fix the widget
Duration: 17 minutes
Last action: wired the widget`

func TestStatusParsesActiveSession(t *testing.T) {
	f := &fakeRunner{outputs: map[string]string{"session status": activeStatus}}
	c := NewClient(f)

	st := c.Status(context.Background())
	if !st.Reachable {
		t.Fatal("expected reachable")
	}
	if !st.Active {
		t.Error("expected active session")
	}
	if st.WorkingIssue != "34" {
		t.Errorf("WorkingIssue = %q, want 34", st.WorkingIssue)
	}
	if st.AgeMinutes != 17 {
		t.Errorf("AgeMinutes = %d, want 17", st.AgeMinutes)
	}
	if st.LastAction != "wired the widget" {
		t.Errorf("LastAction = %q", st.LastAction)
	}
}

func TestStatusNoSession(t *testing.T) {
	f := &fakeRunner{outputs: map[string]string{"session status": "No active session."}}
	st := NewClient(f).Status(context.Background())
	if !st.Reachable {
		t.Fatal("expected reachable")
	}
	if st.Active {
		t.Error("expected no active session")
	}
	if st.WorkingIssue != "" {
		t.Errorf("WorkingIssue = %q, want empty", st.WorkingIssue)
	}
	if st.AgeMinutes != -1 {
		t.Errorf("AgeMinutes = %d, want -1", st.AgeMinutes)
	}
}

func TestStatusUnreachable(t *testing.T) {
	f := &fakeRunner{err: errors.New("exec: chainlink: not found")}
	st := NewClient(f).Status(context.Background())
	if st.Reachable {
		t.Error("expected unreachable on runner error")
	}
	if st.Active {
		t.Error("unreachable must not read as active")
	}
}

func TestStatusPartialMatchReadsAsNoSession(t *testing.T) {
	// A reformat that drops "(started" must degrade to "no session", not error.
	f := &fakeRunner{outputs: map[string]string{"session status": "Session #12 is running fine"}}
	st := NewClient(f).Status(context.Background())
	if !st.Reachable {
		t.Fatal("expected reachable")
	}
	if st.Active {
		t.Error("partial match should read as no session")
	}
}

func TestStatusWorkingOnNone(t *testing.T) {
	out := "Session #3 (started 2025-06-01 10:00)\nWorking on: (none)\nDuration: 5 minutes"
	f := &fakeRunner{outputs: map[string]string{"session status": out}}
	st := NewClient(f).Status(context.Background())
	if st.WorkingIssue != "" {
		t.Errorf("WorkingIssue = %q, want empty", st.WorkingIssue)
	}
	if !st.Active {
		t.Error("expected active")
	}
}

func TestEnsureStartedIdempotent(t *testing.T) {
	f := &fakeRunner{outputs: map[string]string{"session status": "No active session."}}
	c := NewClient(f)

	if !c.EnsureStarted(context.Background()) {
		t.Error("first call should start a session")
	}

	// Session now active: second call is a no-op.
	f.outputs["session status"] = activeStatus
	if c.EnsureStarted(context.Background()) {
		t.Error("second call should not start another session")
	}
	if got := f.called("session start"); got != 1 {
		t.Errorf("session start invoked %d times, want 1", got)
	}
}

func TestEndIfStale(t *testing.T) {
	tests := []struct {
		name    string
		minutes string
		want    bool
	}{
		{"over threshold", "241", true},
		{"under threshold", "239", false},
		{"at threshold", "240", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := "Session #9 (started 2025-06-01 02:00)\nDuration: " + tt.minutes + " minutes"
			f := &fakeRunner{outputs: map[string]string{"session status": out}}
			c := NewClient(f)

			got := c.EndIfStale(context.Background(), DefaultStaleAge)
			if got != tt.want {
				t.Fatalf("EndIfStale = %v, want %v", got, tt.want)
			}
			ended := f.called("session end --notes")
			if tt.want && ended != 1 {
				t.Errorf("session end invoked %d times, want 1", ended)
			}
			if !tt.want && ended != 0 {
				t.Errorf("session end invoked %d times, want 0", ended)
			}
		})
	}
}

func TestEndIfStaleNoteMentionsAge(t *testing.T) {
	out := "Session #9 (started 2025-06-01 02:00)\nDuration: 301 minutes"
	f := &fakeRunner{outputs: map[string]string{"session status": out}}
	NewClient(f).EndIfStale(context.Background(), DefaultStaleAge)

	var note string
	for _, call := range f.calls {
		if strings.HasPrefix(call, "session end --notes ") {
			note = strings.TrimPrefix(call, "session end --notes ")
		}
	}
	if note == "" {
		t.Fatal("no end call recorded")
	}
	if !strings.Contains(note, "301 minutes") {
		t.Errorf("handoff note should mention the stale age, got %q", note)
	}
}

func TestEndIfStaleUnreachable(t *testing.T) {
	f := &fakeRunner{err: errors.New("timeout")}
	if NewClient(f).EndIfStale(context.Background(), DefaultStaleAge) {
		t.Error("unreachable backend should not report an ended session")
	}
}

func TestLastHandoff(t *testing.T) {
	tests := []struct {
		out  string
		want string
	}{
		{"Finished the parser; next up is the composer.", "Finished the parser; next up is the composer."},
		{"No previous handoff notes.", ""},
		{"No previous session found.", ""},
		{"", ""},
	}
	for _, tt := range tests {
		f := &fakeRunner{outputs: map[string]string{"session last-handoff": tt.out}}
		if got := NewClient(f).LastHandoff(context.Background()); got != tt.want {
			t.Errorf("LastHandoff(%q) = %q, want %q", tt.out, got, tt.want)
		}
	}
}

func TestCLIRunnerTimeout(t *testing.T) {
	r := &CLIRunner{binary: "sleep", timeout: 50 * time.Millisecond}
	start := time.Now()
	_, err := r.Run(context.Background(), "5")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %v, want ~50ms", elapsed)
	}
}

func TestCLIRunnerMissingBinary(t *testing.T) {
	r := &CLIRunner{binary: "definitely-not-a-real-binary-xyz", timeout: time.Second}
	if _, err := r.Run(context.Background(), "session", "status"); err == nil {
		t.Fatal("expected error for missing binary")
	}
}
