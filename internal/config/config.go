package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Mode is the issue-tracking enforcement level.
type Mode string

const (
	// Strict blocks Write/Edit/Bash without an active issue.
	Strict Mode = "strict"
	// Normal reminds (prints a warning) but doesn't block.
	Normal Mode = "normal"
	// Relaxed skips issue-tracking enforcement entirely; only git blocks apply.
	Relaxed Mode = "relaxed"
)

// ParseMode validates a mode string, falling back to Strict for anything unknown.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case Strict, Normal, Relaxed:
		return Mode(s)
	}
	return Strict
}

// Config holds the hook enforcement settings loaded from
// .chainlink/hook-config.json. It is read fresh on every invocation and
// never written back.
type Config struct {
	TrackingMode        Mode     `json:"tracking_mode"`
	BlockedGitCommands  []string `json:"blocked_git_commands"`
	AllowedBashPrefixes []string `json:"allowed_bash_prefixes"`
}

// defaultBlockedGit lists git mutations the agent may never run. The human
// performs all git write operations.
var defaultBlockedGit = []string{
	"git push", "git commit", "git merge", "git rebase", "git cherry-pick",
	"git reset", "git checkout .", "git restore .", "git clean",
	"git stash", "git tag", "git am", "git apply",
	"git branch -d", "git branch -D", "git branch -m",
}

// defaultAllowedBash lists read-only and infrastructure command prefixes that
// pass the gate regardless of session state.
var defaultAllowedBash = []string{
	"chainlink ",
	"git status", "git diff", "git log", "git branch", "git show",
	"cargo test", "cargo build", "cargo check", "cargo clippy", "cargo fmt",
	"npm test", "npm run", "npx ",
	"go test", "go build", "go vet",
	"tsc", "node ", "python ",
	"ls", "dir", "pwd", "echo",
}

// Default returns the built-in configuration used when no config file exists
// or the file cannot be parsed.
func Default() Config {
	return Config{
		TrackingMode:        Strict,
		BlockedGitCommands:  append([]string(nil), defaultBlockedGit...),
		AllowedBashPrefixes: append([]string(nil), defaultAllowedBash...),
	}
}

// FileName is the config file name inside the state directory.
const FileName = "hook-config.json"

// Load reads hook-config.json from the given state directory. Any missing
// file, read error, or malformed JSON silently yields Default() — config
// problems must never block the agent.
func Load(stateDir string) Config {
	cfg := Default()
	if stateDir == "" {
		return cfg
	}

	data, err := os.ReadFile(filepath.Join(stateDir, FileName))
	if err != nil {
		return cfg
	}

	var raw struct {
		TrackingMode        string    `json:"tracking_mode"`
		BlockedGitCommands  *[]string `json:"blocked_git_commands"`
		AllowedBashPrefixes *[]string `json:"allowed_bash_prefixes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return cfg
	}

	if raw.TrackingMode != "" {
		cfg.TrackingMode = ParseMode(raw.TrackingMode)
	}
	// A present-but-empty list is an explicit choice, unlike an absent key.
	if raw.BlockedGitCommands != nil {
		cfg.BlockedGitCommands = *raw.BlockedGitCommands
	}
	if raw.AllowedBashPrefixes != nil {
		cfg.AllowedBashPrefixes = *raw.AllowedBashPrefixes
	}
	return cfg
}
