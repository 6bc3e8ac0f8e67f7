package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Tree and dependency snapshots ground the agent in real paths and versions
// so it doesn't hallucinate either.

const (
	treeMaxDepth    = 3
	treeMaxEntries  = 50
	treeMaxFilesPer = 10
	depsMaxEntries  = 30
)

// skipDirs are never descended into when building the project tree.
var skipDirs = map[string]bool{
	".git": true, "node_modules": true, "target": true, "venv": true,
	".venv": true, "env": true, ".env": true, "__pycache__": true,
	".chainlink": true, ".claude": true, "dist": true, "build": true,
	".next": true, ".nuxt": true, "vendor": true, ".idea": true,
	".vscode": true, "coverage": true, ".pytest_cache": true,
	".mypy_cache": true, ".tox": true, "eggs": true, ".sass-cache": true,
}

func skipTreeDir(name string) bool {
	if strings.HasPrefix(name, ".") && name != ".github" && name != ".claude" {
		return true
	}
	return skipDirs[name] || strings.HasSuffix(name, ".egg-info")
}

// ProjectTree renders a compact indented listing of dir, bounded in depth and
// size. Returns "" when the directory is unreadable or empty.
func ProjectTree(dir string) string {
	var entries []string
	var walk func(path, prefix string, depth int)
	walk = func(path, prefix string, depth int) {
		if depth > treeMaxDepth || len(entries) >= treeMaxEntries {
			return
		}
		items, err := os.ReadDir(path)
		if err != nil {
			return
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Name() < items[j].Name() })

		var dirs []string
		var files []string
		for _, item := range items {
			if item.IsDir() {
				if !skipTreeDir(item.Name()) {
					dirs = append(dirs, item.Name())
				}
			} else if !strings.HasPrefix(item.Name(), ".") {
				files = append(files, item.Name())
			}
		}

		for i, f := range files {
			if i >= treeMaxFilesPer {
				entries = append(entries, fmt.Sprintf("%s... (%d more files)", prefix, len(files)-treeMaxFilesPer))
				break
			}
			if len(entries) >= treeMaxEntries {
				return
			}
			entries = append(entries, prefix+f)
		}

		for _, d := range dirs {
			if len(entries) >= treeMaxEntries {
				return
			}
			entries = append(entries, prefix+d+"/")
			walk(filepath.Join(path, d), prefix+"  ", depth+1)
		}
	}
	walk(dir, "", 0)

	if len(entries) == 0 {
		return ""
	}
	if len(entries) >= treeMaxEntries {
		entries = append(entries, fmt.Sprintf("... (tree truncated at %d entries)", treeMaxEntries))
	}
	return strings.Join(entries, "\n")
}

// Dependencies returns a snapshot of direct dependencies from the first
// recognized manifest in dir: Cargo.toml, package.json, requirements.txt,
// then go.mod. Returns "" when none is found or parseable.
func Dependencies(dir string) string {
	if deps := cargoDeps(filepath.Join(dir, "Cargo.toml")); deps != "" {
		return deps
	}
	if deps := npmDeps(filepath.Join(dir, "package.json")); deps != "" {
		return deps
	}
	if deps := pipDeps(filepath.Join(dir, "requirements.txt")); deps != "" {
		return deps
	}
	if deps := goDeps(filepath.Join(dir, "go.mod")); deps != "" {
		return deps
	}
	return ""
}

func cargoDeps(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var deps []string
	inDeps := false
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[dependencies]") {
			inDeps = true
			continue
		}
		if inDeps && strings.HasPrefix(trimmed, "[") {
			break
		}
		if !inDeps || trimmed == "" || strings.HasPrefix(trimmed, "#") || !strings.Contains(trimmed, "=") {
			continue
		}
		name, rest, _ := strings.Cut(trimmed, "=")
		name = strings.TrimSpace(name)
		rest = strings.TrimSpace(rest)
		if version := cargoVersion(rest); version != "" {
			deps = append(deps, fmt.Sprintf("  %s = %q", name, version))
		}
		if len(deps) >= depsMaxEntries {
			break
		}
	}
	if len(deps) == 0 {
		return ""
	}
	return "Rust (Cargo.toml):\n" + strings.Join(deps, "\n")
}

// cargoVersion extracts the version from either `"1.2"` or
// `{ version = "1.2", features = [...] }` forms.
func cargoVersion(rest string) string {
	if strings.HasPrefix(rest, "{") {
		_, after, ok := strings.Cut(rest, "version")
		if !ok {
			return ""
		}
		return quotedValue(after)
	}
	return strings.Trim(rest, `"'`)
}

func quotedValue(s string) string {
	start := strings.IndexAny(s, `"'`)
	if start < 0 {
		return ""
	}
	quote := s[start]
	end := strings.IndexByte(s[start+1:], quote)
	if end < 0 {
		return ""
	}
	return s[start+1 : start+1+end]
}

func npmDeps(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return ""
	}
	var deps []string
	for _, set := range []map[string]string{pkg.Dependencies, pkg.DevDependencies} {
		names := make([]string, 0, len(set))
		for name := range set {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			deps = append(deps, fmt.Sprintf("  %s: %s", name, set[name]))
			if len(deps) >= depsMaxEntries {
				break
			}
		}
		if len(deps) >= depsMaxEntries {
			break
		}
	}
	if len(deps) == 0 {
		return ""
	}
	return "Node.js (package.json):\n" + strings.Join(deps, "\n")
}

func pipDeps(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var deps []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		deps = append(deps, "  "+line)
		if len(deps) >= depsMaxEntries {
			break
		}
	}
	if len(deps) == 0 {
		return ""
	}
	return "Python (requirements.txt):\n" + strings.Join(deps, "\n")
}

func goDeps(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var deps []string
	inRequire := false
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "require (") {
			inRequire = true
			continue
		}
		if inRequire && line == ")" {
			break
		}
		if inRequire && line != "" {
			deps = append(deps, "  "+line)
			if len(deps) >= depsMaxEntries {
				break
			}
		}
	}
	if len(deps) == 0 {
		return ""
	}
	return "Go (go.mod):\n" + strings.Join(deps, "\n")
}
