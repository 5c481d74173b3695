package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Pass-The-Butter/willow/cmd/willow/internal"
	"github.com/Pass-The-Butter/willow/internal/config"
	"github.com/Pass-The-Butter/willow/internal/util"
)

// appConfig is populated by loadConfig before any command that needs it runs.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "willow",
	Short: "Willow - scoped task context for autonomous agents",
	Long: `Willow keeps the project organogram (Domain → Component → Task) in Neo4j
and hands agents the context for exactly one task instead of the whole graph.

Run 'willow serve' to expose the same operations as MCP tools.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command with signal handling
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// skipsConfig lists commands that must work before a config file exists.
var skipsConfig = map[string]bool{
	"version": true,
	"init":    true,
	"help":    true,
}

// loadConfig is called before any command runs to load configuration
func loadConfig(cmd *cobra.Command, args []string) error {
	flags, err := ParseGlobalFlags(cmd)
	if err != nil {
		return err
	}
	internal.ConfigureColor(cmd.OutOrStdout())

	if skipsConfig[cmd.Name()] {
		return nil
	}

	cfg, err := config.NewConfigLoader(config.NewValidator()).LoadWithDefaults(configPath(flags))
	if err != nil {
		return internal.WrapError(internal.ExitConfigError, "failed to load configuration", err)
	}

	switch {
	case flags.IsVerbose():
		cfg.Logging.Level = "debug"
	case flags.IsQuiet():
		cfg.Logging.Level = "error"
	}

	appConfig = cfg
	return nil
}

func homeDir(flags *GlobalFlags) string {
	dir := flags.HomeDir
	if dir == "" {
		dir = os.Getenv("WILLOW_HOME")
	}
	if dir == "" {
		return config.DefaultHomeDir()
	}
	if expanded, err := util.ExpandPath(dir); err == nil {
		return expanded
	}
	return dir
}

func configPath(flags *GlobalFlags) string {
	if flags.ConfigFile != "" {
		return flags.ConfigFile
	}
	return config.DefaultConfigPath(homeDir(flags))
}

func defaultScriptPath() string {
	return filepath.Join("schemas", "organogram.cypher")
}

func init() {
	RegisterGlobalFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(healthCmd)
}
