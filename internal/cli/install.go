package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wsmoak/linkguard/internal/config"
	"github.com/wsmoak/linkguard/internal/workspace"
)

var installForce bool

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register the hooks in .claude/settings.json",
	Long: `Register linkguard's five hook commands in the project's
.claude/settings.json and scaffold .chainlink/hook-config.json with defaults.

Existing hook groups from other tools are preserved; linkguard's own entries
are replaced in place. --force rewrites the managed events wholesale.`,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&installForce, "force", false, "Replace all hook groups on managed events")
}

// hookEntry is one hook command in Claude settings.
type hookEntry struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout int    `json:"timeout,omitempty"`
}

// hookGroup is a matcher plus its hook commands.
type hookGroup struct {
	Matcher string      `json:"matcher,omitempty"`
	Hooks   []hookEntry `json:"hooks"`
}

// managedHooks describes every registration linkguard owns.
var managedHooks = []struct {
	event   string
	matcher string
	command string
}{
	{"PreToolUse", "Write|Edit|Bash", "linkguard hook pretool"},
	{"PreToolUse", "WebFetch|WebSearch", "linkguard hook preweb"},
	{"PostToolUse", "Write|Edit", "linkguard hook posttool"},
	{"UserPromptSubmit", "", "linkguard hook prompt"},
	{"SessionStart", "", "linkguard hook session-start"},
}

func runInstall(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	settingsPath := filepath.Join(cwd, ".claude", "settings.json")
	if err := installSettings(settingsPath); err != nil {
		return err
	}
	fmt.Printf("Registered %d hooks in %s\n", len(managedHooks), settingsPath)

	configPath, created, err := scaffoldConfig(cwd)
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("Created %s with defaults\n", configPath)
	} else {
		fmt.Printf("Kept existing %s\n", configPath)
	}
	return nil
}

// installSettings merges linkguard's hook groups into settings.json,
// preserving unrelated settings keys and foreign hook groups.
func installSettings(path string) error {
	settings := make(map[string]json.RawMessage)
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &settings); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	events := make(map[string][]hookGroup)
	if raw, ok := settings["hooks"]; ok {
		if err := json.Unmarshal(raw, &events); err != nil {
			return fmt.Errorf("parse hooks in %s: %w", path, err)
		}
	}

	// Strip previous linkguard registrations (or everything, with --force),
	// then append the current set.
	for _, m := range managedHooks {
		if installForce {
			events[m.event] = nil
			continue
		}
		events[m.event] = withoutOwnGroups(events[m.event])
	}
	for _, m := range managedHooks {
		events[m.event] = append(events[m.event], hookGroup{
			Matcher: m.matcher,
			Hooks:   []hookEntry{{Type: "command", Command: m.command}},
		})
	}

	raw, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode hooks: %w", err)
	}
	settings["hooks"] = raw

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	out, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return os.WriteFile(path, append(out, '\n'), 0o644)
}

// withoutOwnGroups drops hook groups that invoke linkguard, keeping foreign
// ones untouched.
func withoutOwnGroups(groups []hookGroup) []hookGroup {
	var kept []hookGroup
	for _, g := range groups {
		ours := false
		for _, h := range g.Hooks {
			if strings.Contains(h.Command, "linkguard hook") {
				ours = true
				break
			}
		}
		if !ours {
			kept = append(kept, g)
		}
	}
	return kept
}

// scaffoldConfig writes a default hook-config.json unless one already exists.
func scaffoldConfig(cwd string) (string, bool, error) {
	stateDir, ok := workspace.FindStateDir(cwd)
	if !ok {
		stateDir = filepath.Join(cwd, workspace.StateDirName)
	}
	path := filepath.Join(stateDir, config.FileName)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return "", false, fmt.Errorf("create %s: %w", stateDir, err)
	}
	data, err := json.MarshalIndent(config.Default(), "", "  ")
	if err != nil {
		return "", false, fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", false, fmt.Errorf("write %s: %w", path, err)
	}
	return path, true, nil
}
