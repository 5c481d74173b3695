package config

import (
	"time"
)

// Config is the root configuration for Willow.
type Config struct {
	Core    CoreConfig    `mapstructure:"core" yaml:"core"`
	Neo4j   Neo4jConfig   `mapstructure:"neo4j" yaml:"neo4j"`
	Context ContextConfig `mapstructure:"context" yaml:"context"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Tracing TracingConfig `mapstructure:"tracing" yaml:"tracing"`
	Backup  BackupConfig  `mapstructure:"backup" yaml:"backup"`
}

// CoreConfig contains process-wide settings.
type CoreConfig struct {
	HomeDir string `mapstructure:"home_dir" yaml:"home_dir"`
	// Timeout bounds a single CLI command, including every graph round trip it makes.
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=1s"`
	AgentName string        `mapstructure:"agent_name" yaml:"agent_name" validate:"required"`
}

// Neo4jConfig contains the organogram store connection settings.
type Neo4jConfig struct {
	URI               string        `mapstructure:"uri" yaml:"uri" validate:"required"`
	Username          string        `mapstructure:"username" yaml:"username" validate:"required"`
	Password          string        `mapstructure:"password" yaml:"password" validate:"required"`
	Database          string        `mapstructure:"database" yaml:"database"`
	MaxConnections    int           `mapstructure:"max_connections" yaml:"max_connections" validate:"min=1,max=500"`
	ConnectionTimeout time.Duration `mapstructure:"connection_timeout" yaml:"connection_timeout" validate:"min=1s"`
	MaxRetryTime      time.Duration `mapstructure:"max_retry_time" yaml:"max_retry_time" validate:"min=1s"`
}

// ContextConfig tunes what the context assembler and overview gather.
type ContextConfig struct {
	DiaryWindow    time.Duration `mapstructure:"diary_window" yaml:"diary_window" validate:"min=1h"`
	MessageLimit   int           `mapstructure:"message_limit" yaml:"message_limit" validate:"min=1,max=100"`
	ReadyTaskLimit int           `mapstructure:"ready_task_limit" yaml:"ready_task_limit" validate:"min=1,max=100"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=json text"`
}

// TracingConfig contains OpenTelemetry export configuration.
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled" yaml:"enabled"`
	Endpoint    string  `mapstructure:"endpoint" yaml:"endpoint"`
	Insecure    bool    `mapstructure:"insecure" yaml:"insecure"`
	ServiceName string  `mapstructure:"service_name" yaml:"service_name"`
	SampleRate  float64 `mapstructure:"sample_rate" yaml:"sample_rate" validate:"min=0,max=1"`
}

// BackupConfig contains graph snapshot settings.
type BackupConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.Neo4j.Password != "" {
		c.Neo4j.Password = "********"
	}
	return c
}
