package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Pass-The-Butter/willow/cmd/willow/internal"
	"github.com/Pass-The-Butter/willow/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the Willow configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration with secrets masked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := globalFlags.GetOutputFormat()
		if format == internal.FormatText {
			format = internal.FormatYAML
		}
		return internal.NewFormatter(format, cmd.OutOrStdout()).PrintData(appConfig.Redacted())
	},
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a config file with default values. The Neo4j password is written as
${NEO4J_PASSWORD} so the secret itself stays in the environment.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath(globalFlags)
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return internal.NewCLIError(internal.ExitConfigError,
				fmt.Sprintf("config file already exists at %s (use --force to overwrite)", path))
		}

		cfg := config.DefaultConfig()
		cfg.Core.HomeDir = homeDir(globalFlags)
		cfg.Backup.Dir = filepath.Join(cfg.Core.HomeDir, "backups")
		cfg.Neo4j.Password = "${NEO4J_PASSWORD}"
		if err := config.WriteFile(path, cfg); err != nil {
			return internal.WrapError(internal.ExitConfigError, "failed to write config", err)
		}
		return formatter(cmd).PrintSuccess("Wrote " + path)
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
