package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "csv", cfg.Data.Source)
	assert.Equal(t, "data.csv", cfg.Data.Path)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("EPS_SERVER_PORT", "9090")
	t.Setenv("EPS_DATA_SOURCE", "xlsx")
	t.Setenv("EPS_DATA_PATH", "input.xlsx")
	t.Setenv("EPS_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "xlsx", cfg.Data.Source)
	assert.Equal(t, "input.xlsx", cfg.Data.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := "data:\n  spreadsheet_id: sheet-123\n  api_key: key-456\n"
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("EPS_CONFIG_FILE", path)
	t.Setenv("EPS_DATA_SOURCE", "sheets")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sheets", cfg.Data.Source)
	assert.Equal(t, "sheet-123", cfg.Data.SpreadsheetID)
	assert.Equal(t, "key-456", cfg.Data.APIKey)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad source", func(c *Config) { c.Data.Source = "ftp" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"sheets without id", func(c *Config) { c.Data.Source = "sheets"; c.Data.SpreadsheetID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Server:  ServerConfig{Port: 8080},
				Logging: LoggingConfig{Level: "info", Format: "json", Output: "console"},
				Data:    DataConfig{Source: "csv", Path: "data.csv"},
			}
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
