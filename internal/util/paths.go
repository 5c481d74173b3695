// Package util holds small filesystem helpers shared by the config layer and the CLI.
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading "~" to the user home directory, expands
// $VAR and ${VAR} references and cleans the result. An empty path stays empty.
//
//	"~/.willow/backups" -> "/home/user/.willow/backups"
//	"${WILLOW_HOME}/config.yaml" -> "/srv/willow/config.yaml"
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
	}

	return filepath.Clean(os.ExpandEnv(path)), nil
}

// ExpandPaths expands every path in place, stopping at the first failure.
func ExpandPaths(paths ...*string) error {
	for _, p := range paths {
		expanded, err := ExpandPath(*p)
		if err != nil {
			return fmt.Errorf("expand %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}
