package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Pass-The-Butter/willow/cmd/willow/internal"
	"github.com/Pass-The-Butter/willow/internal/organogram"
)

// pathFlags lets callers name a task without typing the separator.
type pathFlags struct {
	domain    string
	component string
	task      string
}

func (p *pathFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.domain, "domain", "", "Domain name (alternative to the path argument)")
	cmd.Flags().StringVar(&p.component, "component", "", "Component name (alternative to the path argument)")
	cmd.Flags().StringVar(&p.task, "task", "", "Task name (alternative to the path argument)")
}

// resolve returns the task path from either the positional argument or the flags,
// rejecting malformed paths before any connection is opened.
// The argument is passed through untouched so the assembler can echo it.
func (p *pathFlags) resolve(args []string) (string, error) {
	var path string
	usedFlags := p.domain != "" || p.component != "" || p.task != ""
	switch {
	case len(args) == 1 && usedFlags:
		return "", internal.NewCLIError(internal.ExitInvalidInput, "give either a task path or --domain/--component/--task, not both")
	case len(args) == 1:
		path = args[0]
	case usedFlags:
		path = organogram.JoinPath(p.domain, p.component, p.task)
	default:
		return "", internal.NewCLIError(internal.ExitInvalidInput,
			"a task path is required, e.g. 'Population "+organogram.Separator+" Generator "+organogram.Separator+" Faker Integration'")
	}

	if _, err := organogram.ParseTaskPath(path); err != nil {
		return "", err
	}
	return path, nil
}

var contextPath pathFlags

var contextCmd = &cobra.Command{
	Use:   "context [task-path]",
	Short: "Show the scoped context for one task",
	Long: `Show everything an agent needs to work on one task: the task and its parents,
specification, acceptance criteria, direct dependencies, diary entries from the
configured window, unread messages and open RFCs on the component.`,
	Example: `  willow context "Population → Generator → Faker Integration"
  willow context --domain Population --component Generator --task "Faker Integration" -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runContext,
}

func init() {
	contextPath.register(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) error {
	path, err := contextPath.resolve(args)
	if err != nil {
		return err
	}

	return withServices(cmd.Context(), func(ctx context.Context, s *services) error {
		bundle, err := s.assembler().GetContext(ctx, path)
		if err != nil {
			return err
		}

		if globalFlags.GetOutputFormat() == internal.FormatText {
			internal.RenderContext(cmd.OutOrStdout(), bundle)
			return nil
		}
		return formatter(cmd).PrintData(bundle)
	})
}

var (
	logPath   pathFlags
	logNotes  string
	logStatus string
	logAgent  string
)

var logCmd = &cobra.Command{
	Use:   "log [task-path]",
	Short: "Append a diary entry to a task",
	Example: `  willow log "Population → Generator → Faker Integration" -m "added en_GB locale"
  willow log "Population → Generator → Faker Integration" -m "waiting on schema" --status Blocked`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLog,
}

func init() {
	logPath.register(logCmd)
	logCmd.Flags().StringVarP(&logNotes, "message", "m", "", "What was done (required)")
	logCmd.Flags().StringVar(&logStatus, "status", "", "Status to record on the entry (default: In Progress)")
	logCmd.Flags().StringVar(&logAgent, "agent", "", "Agent name (default: core.agent_name)")
}

func runLog(cmd *cobra.Command, args []string) error {
	path, err := logPath.resolve(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(logNotes) == "" {
		return internal.NewCLIError(internal.ExitInvalidInput, "--message is required")
	}

	return withServices(cmd.Context(), func(ctx context.Context, s *services) error {
		entry, err := s.journal().LogWork(ctx, path, organogram.WorkLog{
			Agent:  logAgent,
			Notes:  logNotes,
			Status: logStatus,
		})
		if err != nil {
			return err
		}

		if globalFlags.GetOutputFormat() == internal.FormatText {
			return formatter(cmd).PrintSuccess("Logged to diary of " + entry.TaskPath + " (" + entry.ID + ")")
		}
		return formatter(cmd).PrintData(entry)
	})
}

var completePath pathFlags

var completeCmd = &cobra.Command{
	Use:     "complete [task-path]",
	Short:   "Mark a task Complete",
	Example: `  willow complete "Population → Generator → Faker Integration"`,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runComplete,
}

func init() {
	completePath.register(completeCmd)
}

func runComplete(cmd *cobra.Command, args []string) error {
	path, err := completePath.resolve(args)
	if err != nil {
		return err
	}

	return withServices(cmd.Context(), func(ctx context.Context, s *services) error {
		if err := s.journal().MarkComplete(ctx, path); err != nil {
			return err
		}
		return formatter(cmd).PrintSuccess("Task marked complete: " + path)
	})
}
