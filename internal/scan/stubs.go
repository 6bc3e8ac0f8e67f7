// Package scan inspects edited files for stub patterns, runs best-effort
// linters, and produces test reminders. Everything here is advisory — the
// scanner never blocks a tool call.
package scan

import (
	"regexp"
	"strings"
)

// Finding is one stub-pattern hit. Ephemeral; produced and consumed within a
// single invocation.
type Finding struct {
	Line    int
	Kind    string
	Excerpt string
}

// stubPatterns is the fixed ordered table of pattern/label pairs. A line may
// match several patterns; each match is reported in table order.
var stubPatterns = []struct {
	re   *regexp.Regexp
	kind string
}{
	{regexp.MustCompile(`(?i)\bTODO\b`), "TODO comment"},
	{regexp.MustCompile(`(?i)\bFIXME\b`), "FIXME comment"},
	{regexp.MustCompile(`(?i)\bXXX\b`), "XXX marker"},
	{regexp.MustCompile(`(?i)\bHACK\b`), "HACK marker"},
	{regexp.MustCompile(`(?i)^\s*pass\s*$`), "bare pass statement"},
	{regexp.MustCompile(`^\s*\.\.\.\s*$`), "ellipsis placeholder"},
	{regexp.MustCompile(`(?i)\bunimplemented!\s*\(\s*\)`), "unimplemented!() macro"},
	{regexp.MustCompile(`(?i)\btodo!\s*\(\s*\)`), "todo!() macro"},
	{regexp.MustCompile(`(?i)\bpanic!\s*\(\s*"not implemented`), "panic not implemented"},
	{regexp.MustCompile(`(?i)raise\s+NotImplementedError\s*\(\s*\)`), "bare NotImplementedError"},
	{regexp.MustCompile(`(?i)#\s*implement\s*(later|this|here)`), "implement later comment"},
	{regexp.MustCompile(`(?i)//\s*implement\s*(later|this|here)`), "implement later comment"},
	{regexp.MustCompile(`(?i)def\s+\w+\s*\([^)]*\)\s*:\s*(pass|\.\.\.)\s*$`), "empty function"},
	{regexp.MustCompile(`(?i)fn\s+\w+\s*\([^)]*\)\s*\{\s*\}`), "empty function body"},
	{regexp.MustCompile(`(?i)return\s+None\s*#.*stub`), "stub return"},
}

// documentedDeferral matches a not-implemented signal carrying a non-empty
// message literal. Those are deliberate deferred-work markers, not stubs.
var documentedDeferral = regexp.MustCompile(`NotImplementedError\s*\(\s*["'][^"']+["']`)

const excerptLimit = 60

// Scan applies the stub table line by line and returns findings in order.
func Scan(content string) []Finding {
	var findings []Finding
	for i, line := range strings.Split(content, "\n") {
		for _, p := range stubPatterns {
			if !p.re.MatchString(line) {
				continue
			}
			if strings.Contains(line, "NotImplementedError") && documentedDeferral.MatchString(line) {
				continue
			}
			excerpt := strings.TrimSpace(line)
			if len(excerpt) > excerptLimit {
				excerpt = excerpt[:excerptLimit]
			}
			findings = append(findings, Finding{Line: i + 1, Kind: p.kind, Excerpt: excerpt})
		}
	}
	return findings
}

// codeExtensions are the file types worth scanning at all.
var codeExtensions = []string{
	".rs", ".py", ".js", ".ts", ".tsx", ".jsx", ".go", ".java",
	".c", ".cpp", ".h", ".hpp", ".cs", ".rb", ".php", ".swift",
	".kt", ".scala", ".zig", ".odin",
}

// IsCodeFile reports whether the path has a recognized source extension.
func IsCodeFile(path string) bool {
	for _, ext := range codeExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
