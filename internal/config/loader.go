package config

import (
	"errors"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/Pass-The-Butter/willow/internal/types"
	"github.com/Pass-The-Butter/willow/internal/util"
)

// EnvPrefix is the prefix for environment overrides, e.g. WILLOW_NEO4J_PASSWORD.
const EnvPrefix = "WILLOW"

// ConfigLoader handles loading configuration from files.
type ConfigLoader interface {
	Load(path string) (*Config, error)
	LoadWithDefaults(path string) (*Config, error)
}

// viperConfigLoader implements ConfigLoader using Viper.
type viperConfigLoader struct {
	validator ConfigValidator
}

// NewConfigLoader creates a new ConfigLoader instance.
func NewConfigLoader(validator ConfigValidator) ConfigLoader {
	return &viperConfigLoader{
		validator: validator,
	}
}

// Load loads configuration from the specified file path.
// Returns an error if the file doesn't exist or cannot be parsed.
func (l *viperConfigLoader) Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil, types.WrapError(types.CONFIG_NOT_FOUND, "config file not found: "+path, err)
		}
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to read config file", err)
	}

	return l.finish(v)
}

// LoadWithDefaults loads configuration from the specified file path.
// If the file doesn't exist, defaults plus environment overrides are used.
func (l *viperConfigLoader) LoadWithDefaults(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return l.Load(path)
		}
	}

	return l.finish(newViper())
}

func (l *viperConfigLoader) finish(v *viper.Viper) (*Config, error) {
	// ${VAR} references are resolved before decoding so durations and numbers
	// can come from the environment too.
	for _, key := range v.AllKeys() {
		if s, ok := v.Get(key).(string); ok && strings.Contains(s, "${") {
			v.Set(key, interpolateString(s))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to unmarshal config", err)
	}

	if err := util.ExpandPaths(&cfg.Core.HomeDir, &cfg.Backup.Dir); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to expand config paths", err)
	}

	if err := l.validator.Validate(&cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_VALIDATION_FAILED, "configuration validation failed", err)
	}

	return &cfg, nil
}

// newViper returns a viper instance seeded with defaults and bound to WILLOW_* variables.
// Every key needs a default for AutomaticEnv to see it during Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultConfig()
	defaults := map[string]any{
		"core.home_dir":            d.Core.HomeDir,
		"core.timeout":             d.Core.Timeout,
		"core.agent_name":          d.Core.AgentName,
		"neo4j.uri":                d.Neo4j.URI,
		"neo4j.username":           d.Neo4j.Username,
		"neo4j.password":           d.Neo4j.Password,
		"neo4j.database":           d.Neo4j.Database,
		"neo4j.max_connections":    d.Neo4j.MaxConnections,
		"neo4j.connection_timeout": d.Neo4j.ConnectionTimeout,
		"neo4j.max_retry_time":     d.Neo4j.MaxRetryTime,
		"context.diary_window":     d.Context.DiaryWindow,
		"context.message_limit":    d.Context.MessageLimit,
		"context.ready_task_limit": d.Context.ReadyTaskLimit,
		"logging.level":            d.Logging.Level,
		"logging.format":           d.Logging.Format,
		"tracing.enabled":          d.Tracing.Enabled,
		"tracing.endpoint":         d.Tracing.Endpoint,
		"tracing.insecure":         d.Tracing.Insecure,
		"tracing.service_name":     d.Tracing.ServiceName,
		"tracing.sample_rate":      d.Tracing.SampleRate,
		"backup.dir":               d.Backup.Dir,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	return v
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// interpolateString replaces ${VAR_NAME} with environment variable values.
// Unset variables are left as written so validation can point at them.
func interpolateString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if envValue, ok := os.LookupEnv(varName); ok {
			return envValue
		}
		return match
	})
}
