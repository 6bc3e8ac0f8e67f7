package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wsmoak/linkguard/internal/config"
	"github.com/wsmoak/linkguard/internal/markers"
	"github.com/wsmoak/linkguard/internal/tracker"
	"github.com/wsmoak/linkguard/internal/workspace"
)

var statusOutput string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show resolved hook configuration and session state",
	Long: `Show the configuration, tracker session, and marker state the hooks
would see if invoked right now, from the current directory.

Examples:
  linkguard status
  linkguard status -o json
  linkguard status -o yaml`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "table", "Output format: table, json, or yaml")
}

// statusReport is the serializable operator view.
type statusReport struct {
	StateDir         string            `json:"state_dir" yaml:"state_dir"`
	TrackingMode     string            `json:"tracking_mode" yaml:"tracking_mode"`
	BlockedCommands  int               `json:"blocked_commands" yaml:"blocked_commands"`
	AllowedPrefixes  int               `json:"allowed_prefixes" yaml:"allowed_prefixes"`
	TrackerReachable bool              `json:"tracker_reachable" yaml:"tracker_reachable"`
	SessionActive    bool              `json:"session_active" yaml:"session_active"`
	WorkingIssue     string            `json:"working_issue,omitempty" yaml:"working_issue,omitempty"`
	SessionMinutes   int               `json:"session_minutes" yaml:"session_minutes"`
	MarkerAges       map[string]string `json:"marker_ages" yaml:"marker_ages"`
}

func buildReport(cwd string) statusReport {
	stateDir, _ := workspace.FindStateDir(cwd)
	cfg := config.Load(stateDir)

	client := tracker.NewClient(tracker.NewCLIRunner(3 * time.Second))
	sess := client.Status(context.Background())

	ages := make(map[string]string)
	if stateDir != "" {
		store := markers.NewFSStore(workspace.CacheDir(stateDir))
		for _, key := range []string{markers.GuardFullSent, markers.LastEditTime} {
			if age, ok := store.Age(key); ok {
				ages[key] = age.Round(time.Second).String()
			} else {
				ages[key] = "absent"
			}
		}
	}

	return statusReport{
		StateDir:         stateDir,
		TrackingMode:     string(cfg.TrackingMode),
		BlockedCommands:  len(cfg.BlockedGitCommands),
		AllowedPrefixes:  len(cfg.AllowedBashPrefixes),
		TrackerReachable: sess.Reachable,
		SessionActive:    sess.Active,
		WorkingIssue:     sess.WorkingIssue,
		SessionMinutes:   sess.AgeMinutes,
		MarkerAges:       ages,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	report := buildReport(cwd)

	switch statusOutput {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(report)
	default:
		return printStatusTable(report)
	}
}

func printStatusTable(r statusReport) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	stateDir := r.StateDir
	if stateDir == "" {
		stateDir = "(not found)"
	}
	fmt.Fprintf(w, "State dir\t%s\n", stateDir)
	fmt.Fprintf(w, "Tracking mode\t%s\n", r.TrackingMode)
	fmt.Fprintf(w, "Blocked commands\t%d\n", r.BlockedCommands)
	fmt.Fprintf(w, "Allowed prefixes\t%d\n", r.AllowedPrefixes)
	fmt.Fprintf(w, "Tracker reachable\t%v\n", r.TrackerReachable)
	fmt.Fprintf(w, "Session active\t%v\n", r.SessionActive)
	if r.WorkingIssue != "" {
		fmt.Fprintf(w, "Working issue\t#%s\n", r.WorkingIssue)
	}
	if r.SessionMinutes >= 0 {
		fmt.Fprintf(w, "Session age\t%d minutes\n", r.SessionMinutes)
	}
	for key, age := range r.MarkerAges {
		fmt.Fprintf(w, "Marker %s\t%s\n", key, age)
	}
	return w.Flush()
}
