package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/wsmoak/linkguard/internal/config"
	"github.com/wsmoak/linkguard/internal/markers"
	"github.com/wsmoak/linkguard/internal/tracker"
	"github.com/wsmoak/linkguard/internal/workspace"
)

// Subprocess timeouts. The gate path stays tight so a hung backend cannot
// stall tool calls; session-start tolerates a slower backend.
const (
	gateTimeout    = 3 * time.Second
	sessionTimeout = 5 * time.Second
)

// Env is the per-invocation environment shared by the handlers. All
// cross-invocation state lives behind Markers and Tracker; nothing here
// survives the process.
type Env struct {
	Dir      string // working directory
	StateDir string // .chainlink directory, "" when absent
	Config   config.Config
	Markers  markers.Store
	Tracker  *tracker.Client
}

// NewEnv discovers the state directory from cwd and wires the real
// filesystem store and chainlink runner.
func NewEnv(cwd string, trackerTimeout time.Duration) Env {
	stateDir, _ := workspace.FindStateDir(cwd)
	cacheDir := ""
	if stateDir != "" {
		cacheDir = workspace.CacheDir(stateDir)
	}
	return Env{
		Dir:      cwd,
		StateDir: stateDir,
		Config:   config.Load(stateDir),
		Markers:  markers.NewFSStore(cacheDir),
		Tracker:  tracker.NewClient(tracker.NewCLIRunner(trackerTimeout)),
	}
}

// Handle reads the event payload from stdin, dispatches, prints the handler's
// output, and exits with its code. Every path ends in an explicit exit; no
// hook failure may hang or crash the host runtime.
func Handle(event string, stdin io.Reader) {
	in := Decode(stdin)
	cwd, err := os.Getwd()
	if err != nil {
		ExitError(fmt.Errorf("getwd: %w", err))
		return
	}
	ctx := context.Background()

	var out string
	var code int
	switch event {
	case "pretool":
		out, code = PreTool(ctx, NewEnv(cwd, gateTimeout), in)
	case "posttool":
		out, code = PostTool(ctx, NewEnv(cwd, gateTimeout), in)
	case "prompt":
		out, code = Prompt(NewEnv(cwd, gateTimeout), in)
	case "session-start":
		out, code = SessionStart(ctx, NewEnv(cwd, sessionTimeout), in)
	case "preweb":
		out, code = PreWeb(NewEnv(cwd, gateTimeout), in)
	default:
		ExitError(fmt.Errorf("unknown hook event: %s", event))
		return
	}

	if out != "" {
		fmt.Println(out)
	}
	if code != ExitAllow {
		os.Exit(code)
	}
}
