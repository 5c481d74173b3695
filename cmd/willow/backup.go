package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pass-The-Butter/willow/cmd/willow/internal"
	"github.com/Pass-The-Butter/willow/internal/organogram/backup"
	"github.com/Pass-The-Butter/willow/internal/util"
)

var backupDir string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export every node and relationship to a JSONL snapshot",
	Long: `Write nodes.jsonl and relationships.jsonl into a new
snapshot_YYYYMMDD_HHMMSS directory under the backup directory.`,
	Args: cobra.NoArgs,
	RunE: runBackup,
}

func init() {
	backupCmd.Flags().StringVar(&backupDir, "dir", "", "Backup directory (default: backup.dir from config)")
}

func runBackup(cmd *cobra.Command, args []string) error {
	dir := backupDir
	if dir == "" {
		dir = appConfig.Backup.Dir
	}

	dir, err := util.ExpandPath(dir)
	if err != nil {
		return internal.WrapError(internal.ExitInvalidInput, "invalid backup directory", err)
	}

	return withServices(cmd.Context(), func(ctx context.Context, s *services) error {
		manifest, err := backup.NewExporter(s.client, s.logger).Snapshot(ctx, dir)
		if err != nil {
			return err
		}

		if globalFlags.GetOutputFormat() == internal.FormatText {
			return formatter(cmd).PrintSuccess(fmt.Sprintf("Saved %d nodes and %d relationships to %s",
				manifest.Nodes, manifest.Relationships, manifest.Path))
		}
		return formatter(cmd).PrintData(manifest)
	})
}
