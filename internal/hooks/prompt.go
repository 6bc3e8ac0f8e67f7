package hooks

import (
	"github.com/wsmoak/linkguard/internal/rules"
	"github.com/wsmoak/linkguard/internal/workspace"
)

// Prompt composes the behavioral advisory injected on prompt submission.
// Full or condensed form is chosen by the guard-full-sent marker.
func Prompt(env Env, _ Input) (string, int) {
	rulesDir := ""
	if env.StateDir != "" {
		rulesDir = workspace.RulesDir(env.StateDir)
	}

	c := &rules.Composer{
		RulesDir: rulesDir,
		Dir:      env.Dir,
		Mode:     env.Config.TrackingMode,
		Markers:  env.Markers,
	}
	text, _ := c.Compose()
	return text, ExitAllow
}
