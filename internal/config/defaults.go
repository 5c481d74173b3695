package config

import (
	"path/filepath"
	"time"
)

// DefaultConfig returns a Config with sensible default values.
// Neo4j credentials are left empty: they have to come from the config file
// or the WILLOW_NEO4J_* environment variables.
func DefaultConfig() *Config {
	homeDir := DefaultHomeDir()

	return &Config{
		Core: CoreConfig{
			HomeDir:   homeDir,
			Timeout:   2 * time.Minute,
			AgentName: "Feature Agent",
		},
		Neo4j: Neo4jConfig{
			URI:               "bolt://localhost:7687",
			Username:          "neo4j",
			MaxConnections:    50,
			ConnectionTimeout: 30 * time.Second,
			MaxRetryTime:      30 * time.Second,
		},
		Context: ContextConfig{
			DiaryWindow:    7 * 24 * time.Hour,
			MessageLimit:   5,
			ReadyTaskLimit: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Tracing: TracingConfig{
			ServiceName: "willow",
			SampleRate:  1.0,
		},
		Backup: BackupConfig{
			Dir: filepath.Join(homeDir, "backups"),
		},
	}
}
