// Package testutil provides shared test helpers for isolating configuration from the host.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ConfigEnvVars lists every environment variable the config loader reads.
var ConfigEnvVars = []string{
	"OPENROUTER_API_KEY",
	"OPENROUTER_BASE_URL",
	"OPENROUTER_MODEL",
	"QUICKEXPLAIN_PORT",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"LOG_DEBUG_PAYLOADS",
}

// IsolateConfig unsets the config environment variables and moves the test into an
// empty directory, so neither a developer's .env nor config.yml is picked up.
// Everything is restored when the test ends. Returns the directory.
func IsolateConfig(t *testing.T) string {
	t.Helper()

	for _, env := range ConfigEnvVars {
		// Setenv registers the restore; the variable must then be absent, not empty,
		// for dotenv files to apply.
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

// SetupTestConfig writes config.yml into tmpDir and returns its path.
func SetupTestConfig(t *testing.T, tmpDir, content string) string {
	t.Helper()

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	return cfgPath
}

// SetupTestDotEnv writes a .env file with the given variables into tmpDir and returns its path.
func SetupTestDotEnv(t *testing.T, tmpDir string, vars map[string]string) string {
	t.Helper()

	var content string
	for key, value := range vars {
		content += fmt.Sprintf("%s=%s\n", key, value)
	}
	path := filepath.Join(tmpDir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
