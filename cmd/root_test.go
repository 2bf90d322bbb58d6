package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexmanie/sk-tracing-utils/internal/config"
	"github.com/alexmanie/sk-tracing-utils/internal/constants"
)

const testBaseConfigContent = `
endpoint: "https://config.openai.azure.com"
api_key: "config_key"
api_version: "2024-06-01"
deployment: "gpt-4o"
embedding_deployment: "text-embedding-3-small"
log_level: "info"
max_capture_log_length: "64KB"
request_timeout: "2m"
retry_attempts_count: 3
min_retry_pause: "1s"
max_retry_pause: "3s"
report_format: "text"
`

// TestFlagOverrides tests that command-line flags correctly override configuration file values.
//
//nolint:tparallel // Cannot run in parallel due to Viper global state.
func TestFlagOverrides(t *testing.T) {
	tests := []struct {
		name           string
		flags          map[string]string
		expectedConfig func(*testing.T, *config.Config)
	}{
		{
			name:  "no flags - use config values",
			flags: map[string]string{},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, config.ReportFormatText, cfg.ReportFormat)
				assert.Equal(t, "gpt-4o", cfg.Deployment)
				assert.Equal(t, "2024-06-01", cfg.APIVersion)
				assert.Equal(t, 2*time.Minute, cfg.ParsedRequestTimeout)
			},
		},
		{
			name: "format flag only - override report format",
			flags: map[string]string{
				"format": "json",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, config.ReportFormatJSON, cfg.ReportFormat)
				assert.Equal(t, "gpt-4o", cfg.Deployment)
			},
		},
		{
			name: "deployment flag only - override deployment",
			flags: map[string]string{
				"deployment": "gpt-4o-mini",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "gpt-4o-mini", cfg.Deployment)
				assert.Equal(t, config.ReportFormatText, cfg.ReportFormat)
			},
		},
		{
			name: "api-version flag only - override API version",
			flags: map[string]string{
				"api-version": "2024-10-21",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "2024-10-21", cfg.APIVersion)
			},
		},
		{
			name: "timeout flag only - override request timeout",
			flags: map[string]string{
				"timeout": "30s",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, 30*time.Second, cfg.ParsedRequestTimeout)
			},
		},
		{
			name: "all flags - override everything",
			flags: map[string]string{
				"format":      "yaml",
				"deployment":  "gpt-35-turbo",
				"api-version": "2023-05-15",
				"timeout":     "45s",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, config.ReportFormatYAML, cfg.ReportFormat)
				assert.Equal(t, "gpt-35-turbo", cfg.Deployment)
				assert.Equal(t, "2023-05-15", cfg.APIVersion)
				assert.Equal(t, 45*time.Second, cfg.ParsedRequestTimeout)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temporary directory and config file.
			tempDir := t.TempDir()
			configPath := filepath.Join(tempDir, "test-config.yaml")

			err := os.WriteFile(
				configPath,
				[]byte(testBaseConfigContent),
				constants.DefaultFilePermissions,
			) //nolint:gosec // It's a test file.
			require.NoError(t, err)

			// Load configuration.
			cfg, err := config.LoadConfig(configPath)
			require.NoError(t, err)

			// Create a test command with flags.
			testCmd := &cobra.Command{
				Use: "test",
			}

			// Add the same flags as root command.
			testCmd.Flags().StringP("format", "f", "", "report format")
			testCmd.Flags().StringP("deployment", "d", "", "deployment name")
			testCmd.Flags().String("api-version", "", "API version")
			testCmd.Flags().StringP("timeout", "t", "", "request timeout")

			// Set flag values.
			for flagName, flagValue := range tt.flags {
				require.NoError(t, testCmd.Flags().Set(flagName, flagValue),
					"failed to set flag %s", flagName)
			}

			// Bind flags to config.
			err = bindFlagsToConfig(testCmd.Flags(), cfg)
			require.NoError(t, err)

			// Verify expectations.
			tt.expectedConfig(t, cfg)
		})
	}
}

// TestFlagOverrides_InvalidFormat tests that an unknown report format is rejected.
//
//nolint:paralleltest // Cannot run in parallel due to Viper global state.
func TestFlagOverrides_InvalidFormat(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test-config.yaml")

	err := os.WriteFile(configPath, []byte(testBaseConfigContent), constants.DefaultFilePermissions)
	require.NoError(t, err)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)

	testCmd := &cobra.Command{Use: "test"}
	testCmd.Flags().StringP("format", "f", "", "report format")
	require.NoError(t, testCmd.Flags().Set("format", "xml"))

	err = bindFlagsToConfig(testCmd.Flags(), cfg)
	require.ErrorIs(t, err, config.ErrUnknownReportFormat)
}

// TestCommandStructure tests that all subcommands are registered on the root command.
func TestCommandStructure(t *testing.T) {
	t.Parallel()

	names := make(map[string]bool)
	for _, command := range rootCmd.Commands() {
		names[command.Name()] = true
	}

	assert.True(t, names["embed"], "embed command should be registered")
	assert.True(t, names["models"], "models command should be registered")
	assert.True(t, names["auth"], "auth command should be registered")
}
