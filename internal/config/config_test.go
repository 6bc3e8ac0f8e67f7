package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg := Load(t.TempDir())
	if cfg.TrackingMode != Strict {
		t.Errorf("TrackingMode = %q, want strict", cfg.TrackingMode)
	}
	if len(cfg.BlockedGitCommands) == 0 {
		t.Error("expected default blocked git commands")
	}
	if len(cfg.AllowedBashPrefixes) == 0 {
		t.Error("expected default allowed bash prefixes")
	}
}

func TestLoadEmptyStateDir(t *testing.T) {
	cfg := Load("")
	if cfg.TrackingMode != Strict {
		t.Errorf("TrackingMode = %q, want strict", cfg.TrackingMode)
	}
}

func TestLoadMalformedJSONUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{not json`)

	cfg := Load(dir)
	if cfg.TrackingMode != Strict {
		t.Errorf("TrackingMode = %q, want strict", cfg.TrackingMode)
	}
	if len(cfg.BlockedGitCommands) != len(defaultBlockedGit) {
		t.Errorf("blocked list = %d entries, want defaults", len(cfg.BlockedGitCommands))
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{
		"tracking_mode": "relaxed",
		"blocked_git_commands": ["git push"],
		"allowed_bash_prefixes": ["make "]
	}`)

	cfg := Load(dir)
	if cfg.TrackingMode != Relaxed {
		t.Errorf("TrackingMode = %q, want relaxed", cfg.TrackingMode)
	}
	if len(cfg.BlockedGitCommands) != 1 || cfg.BlockedGitCommands[0] != "git push" {
		t.Errorf("BlockedGitCommands = %v", cfg.BlockedGitCommands)
	}
	if len(cfg.AllowedBashPrefixes) != 1 || cfg.AllowedBashPrefixes[0] != "make " {
		t.Errorf("AllowedBashPrefixes = %v", cfg.AllowedBashPrefixes)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"tracking_mode": "normal"}`)

	cfg := Load(dir)
	if cfg.TrackingMode != Normal {
		t.Errorf("TrackingMode = %q, want normal", cfg.TrackingMode)
	}
	if len(cfg.BlockedGitCommands) != len(defaultBlockedGit) {
		t.Error("absent blocked list should keep defaults")
	}
}

func TestLoadExplicitEmptyListHonored(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"allowed_bash_prefixes": []}`)

	cfg := Load(dir)
	if len(cfg.AllowedBashPrefixes) != 0 {
		t.Errorf("explicit empty allow list should be honored, got %v", cfg.AllowedBashPrefixes)
	}
}

func TestLoadInvalidModeFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"tracking_mode": "paranoid"}`)

	cfg := Load(dir)
	if cfg.TrackingMode != Strict {
		t.Errorf("TrackingMode = %q, want strict fallback", cfg.TrackingMode)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"strict", Strict},
		{"normal", Normal},
		{"relaxed", Relaxed},
		{"", Strict},
		{"RELAXED", Strict},
		{"bogus", Strict},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
