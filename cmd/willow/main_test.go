package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pass-The-Butter/willow/cmd/willow/internal"
	"github.com/Pass-The-Butter/willow/internal/config"
	"github.com/Pass-The-Butter/willow/internal/organogram"
)

// executeCommand runs the root command with args against a fresh home directory.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	*globalFlags = GlobalFlags{OutputFormat: "text"}
	deployDryRun = false
	configInitForce = false
	backupDir = ""
	contextPath, logPath, completePath = pathFlags{}, pathFlags{}, pathFlags{}
	logNotes, logStatus, logAgent = "", "", ""
	appConfig = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version", "--home", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Willow dev")

	out, err = executeCommand(t, "version", "-o", "json", "--home", t.TempDir())
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "dev", info["version"])
}

func TestGlobalFlagConflicts(t *testing.T) {
	_, err := executeCommand(t, "version", "-v", "-q")
	require.Error(t, err)
	assert.Equal(t, internal.ExitInvalidInput, internal.ExitCodeFor(err))

	_, err = executeCommand(t, "version", "-o", "xml")
	require.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "config.yaml")

	out, err := executeCommand(t, "config", "init", "--home", home)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "${NEO4J_PASSWORD}")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	t.Run("refuses to overwrite", func(t *testing.T) {
		_, err := executeCommand(t, "config", "init", "--home", home)
		require.Error(t, err)
		assert.Equal(t, internal.ExitConfigError, internal.ExitCodeFor(err))
	})

	t.Run("force overwrites", func(t *testing.T) {
		_, err := executeCommand(t, "config", "init", "--force", "--home", home)
		require.NoError(t, err)
	})

	t.Run("written file loads", func(t *testing.T) {
		t.Setenv("NEO4J_PASSWORD", "s3cret")
		cfg, err := config.NewConfigLoader(config.NewValidator()).Load(path)
		require.NoError(t, err)
		assert.Equal(t, "s3cret", cfg.Neo4j.Password)
		assert.Equal(t, home, cfg.Core.HomeDir)
	})
}

func TestConfigShowMasksPassword(t *testing.T) {
	t.Setenv("WILLOW_NEO4J_PASSWORD", "hunter2")

	out, err := executeCommand(t, "config", "show", "--home", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "********")
	assert.NotContains(t, out, "hunter2")
}

func TestConfigShowFailsWithoutPassword(t *testing.T) {
	t.Setenv("WILLOW_NEO4J_PASSWORD", "")

	_, err := executeCommand(t, "config", "show", "--home", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, internal.ExitConfigError, internal.ExitCodeFor(err))
}

func TestDeployDryRun(t *testing.T) {
	t.Setenv("WILLOW_NEO4J_PASSWORD", "unused")

	script := filepath.Join(t.TempDir(), "seed.cypher")
	require.NoError(t, os.WriteFile(script, []byte(`// seed
MERGE (d:Domain {name: 'Population'});
MERGE (d:Domain {name: 'Interface'}); // trailing
`), 0o644))

	out, err := executeCommand(t, "deploy", script, "--dry-run", "-o", "json", "--home", t.TempDir())
	require.NoError(t, err)

	var table struct {
		Headers []string            `json:"headers"`
		Data    []map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &table))
	require.Len(t, table.Data, 2)
	assert.Equal(t, "1", table.Data[0]["#"])
	assert.Equal(t, "2", table.Data[0]["line"])
	assert.Equal(t, "MERGE (d:Domain {name: 'Population'})", table.Data[0]["statement"])
	assert.Equal(t, "MERGE (d:Domain {name: 'Interface'})", table.Data[1]["statement"])
}

func TestDeployDryRunMissingScript(t *testing.T) {
	t.Setenv("WILLOW_NEO4J_PASSWORD", "unused")

	_, err := executeCommand(t, "deploy", filepath.Join(t.TempDir(), "nope.cypher"), "--dry-run", "--home", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, internal.ExitInvalidInput, internal.ExitCodeFor(err))
}

func TestInputErrorsFailBeforeConnecting(t *testing.T) {
	t.Setenv("WILLOW_NEO4J_PASSWORD", "unused")
	t.Setenv("WILLOW_NEO4J_URI", "bolt://127.0.0.1:1")

	tests := []struct {
		name string
		args []string
	}{
		{name: "context without path", args: []string{"context"}},
		{name: "context with path and flags", args: []string{"context", "A → B → C", "--domain", "A"}},
		{name: "log without message", args: []string{"log", "A → B → C"}},
		{name: "log with blank message", args: []string{"log", "A → B → C", "-m", "   "}},
		{name: "complete without path", args: []string{"complete"}},
	}
	for _, cmd := range []string{"context", "log", "complete"} {
		for _, path := range []string{"Population", "A → B", "A → B → C → D", "A →  → C"} {
			args := []string{cmd, path}
			if cmd == "log" {
				args = append(args, "-m", "notes")
			}
			tests = append(tests, struct {
				name string
				args []string
			}{name: cmd + " " + path, args: args})
		}
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, append(tt.args, "--home", t.TempDir())...)
			require.Error(t, err)
			assert.Equal(t, internal.ExitInvalidInput, internal.ExitCodeFor(err))
		})
	}
}

func TestPathFlagsResolve(t *testing.T) {
	tests := []struct {
		name    string
		flags   pathFlags
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "positional argument",
			args: []string{"Population → Generator → Faker Integration"},
			want: "Population → Generator → Faker Integration",
		},
		{
			name:  "flags",
			flags: pathFlags{domain: "Population", component: "Generator", task: "Faker Integration"},
			want:  "Population → Generator → Faker Integration",
		},
		{
			name:    "both",
			flags:   pathFlags{domain: "Population"},
			args:    []string{"Population → Generator → Faker Integration"},
			wantErr: true,
		},
		{
			name:    "neither",
			wantErr: true,
		},
		{
			name:    "one segment",
			args:    []string{"Population"},
			wantErr: true,
		},
		{
			name:    "four segments",
			args:    []string{"A → B → C → D"},
			wantErr: true,
		},
		{
			name:    "flags with missing task",
			flags:   pathFlags{domain: "Population", component: "Generator"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.resolve(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, internal.ExitInvalidInput, internal.ExitCodeFor(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			_, err = organogram.ParseTaskPath(got)
			assert.NoError(t, err)
		})
	}
}

func TestGraphConfig(t *testing.T) {
	cfg := config.Neo4jConfig{
		URI:               "neo4j+s://example.databases.neo4j.io",
		Username:          "neo4j",
		Password:          "pw",
		Database:          "organogram",
		MaxConnections:    10,
		ConnectionTimeout: 5 * time.Second,
		MaxRetryTime:      15 * time.Second,
	}

	got := graphConfig(cfg)
	assert.Equal(t, cfg.URI, got.URI)
	assert.Equal(t, cfg.Username, got.Username)
	assert.Equal(t, cfg.Password, got.Password)
	assert.Equal(t, cfg.Database, got.Database)
	assert.Equal(t, 10, got.MaxConnectionPoolSize)
	assert.Equal(t, 5*time.Second, got.ConnectionTimeout)
	assert.Equal(t, 15*time.Second, got.MaxTransactionRetryTime)
	assert.NoError(t, got.Validate())
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"version", "config", "context", "log", "complete", "status", "deploy", "backup", "serve", "health"}

	names := make(map[string]*cobra.Command)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = c
	}
	for _, name := range want {
		assert.Contains(t, names, name)
	}
}
