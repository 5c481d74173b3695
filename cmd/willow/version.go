package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pass-The-Butter/willow/cmd/willow/internal"
	"github.com/Pass-The-Butter/willow/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if globalFlags.GetOutputFormat() == internal.FormatText {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		}
		return formatter(cmd).PrintData(version.Info())
	},
}
