package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/flashlearn/flashlearn/internal/config"
	"github.com/flashlearn/flashlearn/internal/testutil"
)

// setConfigFile sets the package-level configFile variable and restores it after the test.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// setupTestEnvironment writes a config for a fresh SQLite database and selects it.
// It returns the loaded config and an open, migrated handle to the same database.
func setupTestEnvironment(t *testing.T) (*config.Config, *sqlx.DB) {
	t.Helper()
	cfgPath := testutil.SetupTestConfig(t, t.TempDir())
	setConfigFile(t, cfgPath)

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	db, err := openDatabase(t.Context(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return cfg, db
}

// runCommand executes cmd with args and stdin, and returns what it printed
func runCommand(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		// cobra falls back to os.Args for nil args
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
