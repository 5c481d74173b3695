package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Pass-The-Butter/willow/cmd/willow/internal"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show project progress, unread messages, open RFCs and ready tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd.Context(), func(ctx context.Context, s *services) error {
			report, err := s.overview().Report(ctx)
			if err != nil {
				return err
			}

			if globalFlags.GetOutputFormat() == internal.FormatText {
				internal.RenderStatus(cmd.OutOrStdout(), report)
				return nil
			}
			return formatter(cmd).PrintData(report)
		})
	},
}
