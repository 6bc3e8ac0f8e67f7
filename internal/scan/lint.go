package scan

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/wsmoak/linkguard/internal/workspace"
)

const maxLintFindings = 10

// RunLinter invokes the language-appropriate linter for the file and returns
// up to maxLintFindings output lines. Best effort: a missing tool is silently
// tolerated, a timeout yields one synthetic finding, any other failure yields
// nothing.
func RunLinter(ctx context.Context, path string) []string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".rs":
		root := workspace.FindProjectRoot(path, "Cargo.toml")
		if root == "" {
			return nil
		}
		return runTool(ctx, root, 30*time.Second, stderrIssueLines,
			"cargo", "clippy", "--message-format=short", "--quiet")
	case ".py":
		return pythonLint(ctx, path)
	case ".js", ".ts", ".tsx", ".jsx":
		root := workspace.FindProjectRoot(path, "package.json", ".eslintrc", ".eslintrc.js", ".eslintrc.json")
		if root == "" {
			return nil
		}
		return runTool(ctx, root, 30*time.Second, stdoutColonLines,
			"npx", "eslint", "--format=compact", path)
	case ".go":
		root := workspace.FindProjectRoot(path, "go.mod")
		if root == "" {
			return nil
		}
		return runTool(ctx, root, 30*time.Second, stderrAllLines,
			"go", "vet", "./...")
	}
	return nil
}

// pythonLint prefers flake8, falling back to a syntax check when it is not
// installed.
func pythonLint(ctx context.Context, path string) []string {
	if _, err := exec.LookPath("flake8"); err == nil {
		return runTool(ctx, "", 10*time.Second, stdoutAllLines,
			"flake8", "--max-line-length=120", path)
	}
	return runTool(ctx, "", 10*time.Second, stderrAllLines,
		"python", "-m", "py_compile", path)
}

// lineFilter selects which output lines count as findings.
type lineFilter func(stdout, stderr string) []string

// runTool executes one linter with a timeout and applies the filter.
func runTool(ctx context.Context, dir string, timeout time.Duration, filter lineFilter, name string, args ...string) []string {
	if _, err := exec.LookPath(name); err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return []string{"(linter timed out)"}
	}
	// Linters exit non-zero when they find problems; the output still counts.
	_ = err

	return filter(stdout.String(), stderr.String())
}

func clip(line string) string {
	line = strings.TrimSpace(line)
	if len(line) > 100 {
		return line[:100]
	}
	return line
}

func collect(text string, keep func(string) bool) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" || !keep(line) {
			continue
		}
		out = append(out, clip(line))
		if len(out) >= maxLintFindings {
			break
		}
	}
	return out
}

func stderrIssueLines(_, stderr string) []string {
	return collect(stderr, func(l string) bool {
		lower := strings.ToLower(l)
		return strings.Contains(lower, "error") || strings.Contains(lower, "warning")
	})
}

func stderrAllLines(_, stderr string) []string {
	return collect(stderr, func(string) bool { return true })
}

func stdoutAllLines(stdout, _ string) []string {
	return collect(stdout, func(string) bool { return true })
}

func stdoutColonLines(stdout, _ string) []string {
	return collect(stdout, func(l string) bool { return strings.Contains(l, ":") })
}
