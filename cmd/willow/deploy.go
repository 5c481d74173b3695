package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Pass-The-Butter/willow/cmd/willow/internal"
	"github.com/Pass-The-Butter/willow/internal/organogram/deploy"
)

var deployDryRun bool

var deployCmd = &cobra.Command{
	Use:   "deploy [script.cypher]",
	Short: "Load an organogram Cypher script into the graph",
	Long: `Run every statement of a Cypher script, one write transaction per statement.
Comments are stripped and statements are split on ';'. A failing statement is
reported and the remaining statements still run.

Without an argument the script is read from schemas/organogram.cypher.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDeploy,
}

func init() {
	deployCmd.Flags().BoolVar(&deployDryRun, "dry-run", false, "Parse and list statements without executing them")
}

func runDeploy(cmd *cobra.Command, args []string) error {
	path := defaultScriptPath()
	if len(args) == 1 {
		path = args[0]
	}

	if deployDryRun {
		f, err := os.Open(path)
		if err != nil {
			return internal.WrapError(internal.ExitInvalidInput, "cannot open script", err)
		}
		defer f.Close()

		stmts, err := deploy.Parse(f)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(stmts))
		for _, s := range stmts {
			rows = append(rows, []string{strconv.Itoa(s.Index), strconv.Itoa(s.Line), s.Summary()})
		}
		return formatter(cmd).PrintTable([]string{"#", "line", "statement"}, rows)
	}

	return withServices(cmd.Context(), func(ctx context.Context, s *services) error {
		result, err := deploy.NewDeployer(s.client, s.logger).ApplyFile(ctx, path)
		if result == nil {
			return err
		}

		out := formatter(cmd)
		for _, o := range result.Outcomes {
			if o.Err != nil {
				_ = out.PrintError(o.Err.Error())
			}
		}
		summary := fmt.Sprintf("%d applied, %d failed, %d skipped", result.Applied, result.Failed, result.Skipped)
		if err != nil {
			return internal.WrapError(internal.ExitCodeFor(err), "deployment finished with errors ("+summary+")", err)
		}
		return out.PrintSuccess("Deployed " + path + ": " + summary)
	})
}
