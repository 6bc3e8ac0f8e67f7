package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// testNamePatterns mark a file as a test by name.
var testNamePatterns = []string{
	"test_", "_test.", ".test.", "spec.", "_spec.",
	"tests.", "testing.", "mock.", "_mock.",
}

// testDirs mark a file as a test by location.
var testDirs = map[string]bool{
	"test": true, "tests": true, "__tests__": true,
	"spec": true, "specs": true, "testing": true,
}

// IsTestFile reports whether the path looks like a test file.
func IsTestFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	for _, p := range testNamePatterns {
		if strings.Contains(base, p) {
			return true
		}
	}
	for _, part := range strings.Split(strings.ToLower(filepath.Dir(path)), string(filepath.Separator)) {
		if testDirs[part] {
			return true
		}
	}
	return false
}

// TestReminder returns a reminder message when the edited file is newer than
// the last recorded test run, or "" when no reminder is due. The last-test
// marker is a file whose mtime records the last test run; absence means tests
// have never run.
func TestReminder(path, projectRoot, markerPath string) string {
	if IsTestFile(path) {
		return ""
	}
	if !IsCodeFile(path) {
		return ""
	}

	stale := true
	if markerInfo, err := os.Stat(markerPath); err == nil {
		if fileInfo, err := os.Stat(path); err == nil {
			stale = fileInfo.ModTime().After(markerInfo.ModTime())
		}
	}
	if !stale {
		return ""
	}

	testCmd := suggestedTestCommand(path, projectRoot)
	related := relatedTestFiles(path, projectRoot)
	if testCmd == "" && len(related) == 0 {
		return ""
	}

	msg := "TEST REMINDER: Code modified since last test run."
	if testCmd != "" {
		msg += "\n   Run: " + testCmd
	}
	if len(related) > 0 {
		names := make([]string, 0, 3)
		for i, r := range related {
			if i == 3 {
				break
			}
			names = append(names, filepath.Base(r))
		}
		msg += "\n   Related tests: " + strings.Join(names, ", ")
	}
	return msg
}

// suggestedTestCommand picks the test runner for the file's ecosystem.
func suggestedTestCommand(path, projectRoot string) string {
	ext := strings.ToLower(filepath.Ext(path))
	exists := func(name string) bool {
		if projectRoot == "" {
			return false
		}
		_, err := os.Stat(filepath.Join(projectRoot, name))
		return err == nil
	}
	switch ext {
	case ".rs":
		if exists("Cargo.toml") {
			return "cargo test"
		}
	case ".py":
		if exists("pytest.ini") {
			return "pytest"
		}
		if exists("setup.py") {
			return "python -m pytest"
		}
	case ".js", ".ts", ".tsx", ".jsx":
		if exists("package.json") {
			return "npm test"
		}
	case ".go":
		if projectRoot != "" {
			return "go test ./..."
		}
	}
	return ""
}

// relatedTestFiles finds up to five test files matching the edited file's name.
func relatedTestFiles(path, projectRoot string) []string {
	ext := strings.ToLower(filepath.Ext(path))
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var candidates []string
	switch ext {
	case ".go":
		candidates = append(candidates, filepath.Join(filepath.Dir(path), name+"_test.go"))
	case ".py":
		if projectRoot != "" {
			candidates = append(candidates,
				filepath.Join(projectRoot, "tests", "test_"+name+".py"),
				filepath.Join(filepath.Dir(path), "test_"+name+".py"),
				filepath.Join(filepath.Dir(path), name+"_test.py"),
			)
		}
	case ".js", ".ts", ".tsx", ".jsx":
		base := strings.TrimSuffix(strings.TrimSuffix(name, ".test"), ".spec")
		dir := filepath.Dir(path)
		candidates = append(candidates,
			filepath.Join(dir, base+".test"+ext),
			filepath.Join(dir, base+".spec"+ext),
			filepath.Join(dir, "__tests__", base+ext),
		)
	case ".rs":
		if projectRoot != "" {
			matches, _ := filepath.Glob(filepath.Join(projectRoot, "tests", "*"+name+"*"))
			candidates = append(candidates, matches...)
		}
	}

	var found []string
	seen := make(map[string]bool)
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		if _, err := os.Stat(c); err == nil {
			found = append(found, c)
			if len(found) == 5 {
				break
			}
		}
	}
	return found
}

// FormatFindings renders stub findings for the advisory channel, capping the
// list at five with a trailing count.
func FormatFindings(path string, findings []Finding) string {
	if len(findings) == 0 {
		return ""
	}
	var lines []string
	for i, f := range findings {
		if i == 5 {
			lines = append(lines, fmt.Sprintf("  ... and %d more", len(findings)-5))
			break
		}
		lines = append(lines, fmt.Sprintf("  Line %d: %s - `%s`", f.Line, f.Kind, f.Excerpt))
	}
	return fmt.Sprintf("STUB PATTERNS DETECTED in %s:\n%s\n\nFix these NOW - replace with real implementation.",
		path, strings.Join(lines, "\n"))
}
