package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/wsmoak/linkguard/internal/config"
	"github.com/wsmoak/linkguard/internal/markers"
)

// FullTTL is how long the guard-full-sent marker suppresses the full
// advisory. Four hours approximates a session boundary.
const FullTTL = 4 * time.Hour

// Composer builds the prompt-submission advisory.
type Composer struct {
	RulesDir string        // .chainlink/rules, "" when absent
	Dir      string        // project working directory
	Mode     config.Mode   //
	Markers  markers.Store //
}

// Compose returns the advisory text and whether the full form was chosen.
// Full form is sent when the guard-full-sent marker is absent or older than
// FullTTL; the marker is touched only after composing the full form, so a
// crash mid-compose re-sends rather than skips.
func (c *Composer) Compose() (string, bool) {
	languages := DetectLanguages(c.Dir)

	if !c.shouldSendFull() {
		return c.condensed(languages), false
	}

	text := c.full(languages)
	c.Markers.Touch(markers.GuardFullSent) //nolint:errcheck // fail-open: re-send beats skip
	return text, true
}

func (c *Composer) shouldSendFull() bool {
	age, ok := c.Markers.Age(markers.GuardFullSent)
	return !ok || age > FullTTL
}

// full concatenates, in order: project tree, dependency snapshot, global
// rules (or the built-in fallback), tracking-mode rules, per-language rules,
// project rules. Absent sources contribute nothing.
func (c *Composer) full(languages []string) string {
	set := LoadDir(c.RulesDir)
	langList := strings.Join(languages, ", ")

	var b strings.Builder
	b.WriteString("<chainlink-behavioral-guard>\n")
	b.WriteString("## Code Quality Requirements\n\n")
	fmt.Fprintf(&b, "You are working on a %s project. Follow these requirements strictly:\n", langList)

	if tree := ProjectTree(c.Dir); tree != "" {
		fmt.Fprintf(&b, "\n### Project Structure (use these exact paths)\n```\n%s\n```\n", tree)
	}
	if deps := Dependencies(c.Dir); deps != "" {
		fmt.Fprintf(&b, "\n### Installed Dependencies (use these exact versions)\n```\n%s\n```\n", deps)
	}

	if set.Global != "" {
		fmt.Fprintf(&b, "\n%s\n", set.Global)
	} else {
		fmt.Fprintf(&b, "\n%s\n", fallbackGlobalRules())
	}

	if tracking := TrackingRules(c.RulesDir, c.Mode); tracking != "" {
		fmt.Fprintf(&b, "\n%s\n", tracking)
	}

	for _, lang := range languages {
		content, ok := set.ByLanguage[lang]
		if !ok {
			continue
		}
		if strings.HasPrefix(content, "#") {
			fmt.Fprintf(&b, "\n%s\n", content)
		} else {
			fmt.Fprintf(&b, "\n### %s Best Practices\n%s\n", lang, content)
		}
	}

	if set.Project != "" {
		fmt.Fprintf(&b, "\n### Project-Specific Rules\n%s\n", set.Project)
	}

	b.WriteString("</chainlink-behavioral-guard>")
	return b.String()
}

// condensedReminders holds the short per-mode tracking lines used once the
// full guard has already been sent this session.
var condensedReminders = map[config.Mode]string{
	config.Strict: `- **MANDATORY — Chainlink Issue Tracking**: You MUST create a chainlink issue BEFORE writing ANY code. NO EXCEPTIONS. Use ` + "`chainlink quick \"title\" -p <priority> -l <label>`" + ` BEFORE your first Write/Edit/Bash. If you skip this, the PreToolUse hook WILL block you. Do NOT treat this as optional.
- **Session**: ALWAYS use ` + "`chainlink session work <id>`" + ` to mark focus. End with ` + "`chainlink session end --notes \"...\"`" + `. This is NOT optional.`,
	config.Normal: `- **Chainlink**: Create issues before work. Use ` + "`chainlink quick`" + ` for create+label+work. Close with ` + "`chainlink close`" + `.
- **Session**: Use ` + "`chainlink session work <id>`" + `. End with ` + "`chainlink session end --notes \"...\"`" + `.`,
	config.Relaxed: "",
}

func (c *Composer) condensed(languages []string) string {
	langList := strings.Join(languages, ", ")
	tracking := condensedReminders[c.Mode]
	if tracking != "" {
		tracking += "\n"
	}

	return fmt.Sprintf(`<chainlink-behavioral-guard>
## Quick Reminder (%s)

%s- **Security**: Parameterized queries only. No hardcoded secrets.
- **Quality**: No stubs/TODOs. Read before write. Complete features fully. Proper error handling.
- **Testing**: Run tests after changes. Fix warnings, don't suppress them.

Full rules were injected on first prompt. Use `+"`chainlink list -s open`"+` to see current issues.
</chainlink-behavioral-guard>`, langList, tracking)
}

// fallbackGlobalRules is used when rules/global.md is absent.
func fallbackGlobalRules() string {
	year := time.Now().Year()
	return fmt.Sprintf(`### Pre-Coding Grounding (PREVENT HALLUCINATIONS)
Before writing code that uses external libraries, APIs, or unfamiliar patterns:
1. **VERIFY IT EXISTS**: Use WebSearch to confirm the crate/package/module exists and check its actual API
2. **CHECK THE DOCS**: Fetch documentation to see real function signatures, not imagined ones
3. **CONFIRM SYNTAX**: If unsure about language features or library usage, search first
4. **USE LATEST VERSIONS**: Always check for and use the latest stable version of dependencies
5. **NO GUESSING**: If you can't verify it, tell the user you need to research it

Examples of when to search:
- Using a crate/package you haven't used recently → search "[package] [language] docs %d"
- Uncertain about function parameters → search for actual API reference
- New language feature or syntax → verify it exists in the version being used
- Adding a dependency → search "[package] latest version %d" to get current release

### General Requirements
1. **NO STUBS - ABSOLUTE RULE**:
   - NEVER write TODO, FIXME, pass, ..., or unimplemented macros as implementation
   - NEVER write empty function bodies or placeholder returns
   - If logic is genuinely too complex for one turn, raise a descriptive not-implemented error and create a chainlink issue
   - The PostToolUse hook WILL detect and flag stub patterns - write real code the first time
2. **NO DEAD CODE**: Discover if dead code is truly dead or an incomplete feature. If incomplete, complete it. If truly dead, remove it.
3. **FULL FEATURES**: Implement the complete feature as requested. Don't stop partway.
4. **ERROR HANDLING**: Proper error handling everywhere. No panics/crashes on bad input.
5. **SECURITY**: Validate input, use parameterized queries, no command injection, no hardcoded secrets.
6. **READ BEFORE WRITE**: Always read a file before editing it. Never guess at contents.

### Context Window Management
If the conversation is getting long OR the task requires many more steps:
1. Create a chainlink issue to track remaining work: chainlink create "Continue: <task summary>" -p high
2. Add detailed notes as a comment: chainlink comment <id> "<what's done, what's next>"
3. Inform the user that remaining work is tracked in the issue.

Use chainlink session work <id> to mark what you're working on.`, year, year)
}
