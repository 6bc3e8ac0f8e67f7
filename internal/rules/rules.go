// Package rules composes the behavioral advisory injected on prompt
// submission. Rule content lives in .chainlink/rules/*.md and is treated as
// opaque text; this package only decides what to merge and in what order.
package rules

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/wsmoak/linkguard/internal/config"
)

// Set holds the rule text loaded for one invocation. Content is read fresh
// every time — only the full-vs-condensed decision is cached, via the marker
// store.
type Set struct {
	Global     string
	Project    string
	ByLanguage map[string]string
}

// languageFiles maps rule file names to the language names used by detection.
var languageFiles = []struct {
	file string
	lang string
}{
	{"rust.md", "Rust"},
	{"python.md", "Python"},
	{"javascript.md", "JavaScript"},
	{"typescript.md", "TypeScript"},
	{"typescript-react.md", "TypeScript/React"},
	{"javascript-react.md", "JavaScript/React"},
	{"go.md", "Go"},
	{"java.md", "Java"},
	{"c.md", "C"},
	{"cpp.md", "C++"},
	{"csharp.md", "C#"},
	{"ruby.md", "Ruby"},
	{"php.md", "PHP"},
	{"swift.md", "Swift"},
	{"kotlin.md", "Kotlin"},
	{"scala.md", "Scala"},
	{"zig.md", "Zig"},
	{"odin.md", "Odin"},
}

// loadFile returns a rule file's trimmed content, "" when absent or unreadable.
func loadFile(rulesDir, name string) string {
	if rulesDir == "" {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(rulesDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// LoadDir reads global, project, and language rule files from a rules
// directory. An absent directory yields an empty Set.
func LoadDir(rulesDir string) Set {
	s := Set{ByLanguage: make(map[string]string)}
	if rulesDir == "" {
		return s
	}
	s.Global = loadFile(rulesDir, "global.md")
	s.Project = loadFile(rulesDir, "project.md")
	for _, lf := range languageFiles {
		if content := loadFile(rulesDir, lf.file); content != "" {
			s.ByLanguage[lf.lang] = content
		}
	}
	return s
}

// TrackingRules loads the per-mode tracking rules file (tracking-strict.md etc).
func TrackingRules(rulesDir string, mode config.Mode) string {
	return loadFile(rulesDir, "tracking-"+string(mode)+".md")
}
