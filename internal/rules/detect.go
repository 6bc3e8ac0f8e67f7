package rules

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FallbackSubject is substituted when no language is detected, so templates
// never render an empty subject.
const FallbackSubject = "the project"

// extLanguages maps source extensions to language names.
var extLanguages = map[string]string{
	".rs":    "Rust",
	".py":    "Python",
	".js":    "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript/React",
	".jsx":   "JavaScript/React",
	".go":    "Go",
	".java":  "Java",
	".c":     "C",
	".cpp":   "C++",
	".cs":    "C#",
	".rb":    "Ruby",
	".php":   "PHP",
	".swift": "Swift",
	".kt":    "Kotlin",
	".scala": "Scala",
	".zig":   "Zig",
	".odin":  "Odin",
}

// configIndicators maps project-marker files to languages. More reliable than
// extension scanning, so these are checked first.
var configIndicators = map[string]string{
	"Cargo.toml":       "Rust",
	"package.json":     "JavaScript",
	"tsconfig.json":    "TypeScript",
	"pyproject.toml":   "Python",
	"requirements.txt": "Python",
	"go.mod":           "Go",
	"pom.xml":          "Java",
	"build.gradle":     "Java",
	"Gemfile":          "Ruby",
	"composer.json":    "PHP",
	"Package.swift":    "Swift",
}

// DetectLanguages scans dir (and immediate subdirectories) for project-marker
// files, then scans dir and any src/ directories for recognized source
// extensions. Returns a sorted list, or [FallbackSubject] when nothing is
// found.
func DetectLanguages(dir string) []string {
	found := make(map[string]bool)

	checkDirs := []string{dir}
	if entries, err := os.ReadDir(dir); err == nil {
		for _, e := range entries {
			if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
				checkDirs = append(checkDirs, filepath.Join(dir, e.Name()))
			}
		}
	}

	for _, d := range checkDirs {
		for marker, lang := range configIndicators {
			if _, err := os.Stat(filepath.Join(d, marker)); err == nil {
				found[lang] = true
			}
		}
	}

	scanDirs := []string{dir}
	for _, d := range checkDirs {
		src := filepath.Join(d, "src")
		if info, err := os.Stat(src); err == nil && info.IsDir() {
			scanDirs = append(scanDirs, src)
		}
	}

	for _, d := range scanDirs {
		entries, err := os.ReadDir(d)
		if err != nil {
			continue
		}
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if lang, ok := extLanguages[ext]; ok {
				found[lang] = true
			}
		}
	}

	if len(found) == 0 {
		return []string{FallbackSubject}
	}
	langs := make([]string, 0, len(found))
	for lang := range found {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
