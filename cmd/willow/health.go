package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Pass-The-Butter/willow/cmd/willow/internal"
	"github.com/Pass-The-Butter/willow/internal/organogram"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the graph connection and count nodes per label",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd.Context(), func(ctx context.Context, s *services) error {
			status := s.client.Health(ctx)
			if !status.IsHealthy() {
				return internal.NewCLIError(internal.ExitDatabaseError, "graph store unhealthy: "+status.Message)
			}

			counts, err := s.overview().Inventory(ctx)
			if err != nil {
				return err
			}

			out := formatter(cmd)
			if globalFlags.GetOutputFormat() != internal.FormatText {
				byLabel := make(map[string]int64, len(counts))
				for label, n := range counts {
					byLabel[label.String()] = n
				}
				return out.PrintData(map[string]any{
					"state":   status.State.String(),
					"message": status.Message,
					"labels":  byLabel,
				})
			}

			if err := out.PrintSuccess(status.Message); err != nil {
				return err
			}
			rows := make([][]string, 0, len(counts))
			for _, label := range organogram.Labels() {
				rows = append(rows, []string{label.String(), strconv.FormatInt(counts[label], 10)})
			}
			return out.PrintTable([]string{"label", "nodes"}, rows)
		})
	},
}
