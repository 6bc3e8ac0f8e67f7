package hooks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wsmoak/linkguard/internal/markers"
	"github.com/wsmoak/linkguard/internal/scan"
	"github.com/wsmoak/linkguard/internal/workspace"
)

// lintDebounce suppresses linting when another edit landed within the window,
// so rapid-fire edits don't trigger a linter run each time.
const lintDebounce = 10 * time.Second

// projectMarkers identify a project root when walking up from an edited file.
var projectMarkers = []string{
	"Cargo.toml", "package.json", "go.mod", "setup.py", "pyproject.toml", ".git",
}

// PostTool inspects a completed Write/Edit: stub scan always, linting when
// not debounced, and a test reminder. Advisory only — always exits 0.
func PostTool(ctx context.Context, env Env, in Input) (string, int) {
	if in.ToolName != "Write" && in.ToolName != "Edit" {
		return "", ExitAllow
	}

	path := in.ToolInput.FilePath
	if !scan.IsCodeFile(path) {
		return "", ExitAllow
	}
	// Never scan the hook machinery itself.
	if strings.Contains(path, ".claude") && strings.Contains(path, "hooks") {
		return "", ExitAllow
	}

	projectRoot := workspace.FindProjectRoot(path, projectMarkers...)

	var messages []string

	content, err := os.ReadFile(path)
	if err == nil {
		if findings := scan.Scan(string(content)); len(findings) > 0 {
			messages = append(messages, scan.FormatFindings(path, findings))
		}
	}

	if shouldLint(lintStore(env, projectRoot)) {
		if errors := scan.RunLinter(ctx, path); len(errors) > 0 {
			messages = append(messages, "LINTER ISSUES:\n  "+strings.Join(errors, "\n  "))
		}
	}

	if projectRoot != "" {
		marker := filepath.Join(projectRoot, workspace.StateDirName, markers.LastTestRun)
		if reminder := scan.TestReminder(path, projectRoot, marker); reminder != "" {
			messages = append(messages, reminder)
		}
	}

	if len(messages) == 0 {
		return EncodePostTool("✓ " + filepath.Base(path) + " - no issues detected"), ExitAllow
	}
	return EncodePostTool(strings.Join(messages, "\n\n")), ExitAllow
}

// lintStore returns the marker store rooted at the edited file's project,
// which may differ from the invocation's state dir. Falls back to the
// environment's store when no project root is found.
func lintStore(env Env, projectRoot string) markers.Store {
	if projectRoot == "" {
		return env.Markers
	}
	return markers.NewFSStore(workspace.CacheDir(filepath.Join(projectRoot, workspace.StateDirName)))
}

// shouldLint reports whether linting is due, then touches the last-edit
// marker either way. A racing concurrent edit merely causes one extra lint.
func shouldLint(store markers.Store) bool {
	age, ok := store.Age(markers.LastEditTime)
	due := !ok || age >= lintDebounce
	store.Touch(markers.LastEditTime) //nolint:errcheck // fail-open
	return due
}
