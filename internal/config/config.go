// Package config loads application configuration from environment variables,
// an optional YAML file and an optional .env file. Environment variables take
// precedence over the file; both are validated before use.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix namespaces the environment variables, e.g. EPS_SERVER_PORT.
const envPrefix = "EPS"

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Data    DataConfig    `yaml:"data" envconfig:"DATA"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"100"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"50"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/epspulse.log"`
}

// DataConfig describes where the wide-format grid comes from.
type DataConfig struct {
	// Source selects the grid loader.
	Source string `yaml:"source" envconfig:"SOURCE" default:"csv" validate:"oneof=csv xlsx sheets"`
	// Path is the input file for csv and xlsx sources.
	Path string `yaml:"path" envconfig:"PATH" default:"data.csv"`
	// Sheet is the workbook sheet name for the xlsx source; empty selects
	// the first sheet.
	Sheet string `yaml:"sheet" envconfig:"SHEET"`
	// SpreadsheetID, Range and APIKey configure the Google Sheets source.
	SpreadsheetID string `yaml:"spreadsheet_id" envconfig:"SPREADSHEET_ID"`
	Range         string `yaml:"range" envconfig:"RANGE" default:"A1:ZZ"`
	APIKey        string `yaml:"api_key" envconfig:"API_KEY"`
}

// Load loads configuration from environment variables (with struct defaults)
// and an optional YAML file named by EPS_CONFIG_FILE (default config.yaml).
// A .env file in the working directory is folded into the environment first
// when it exists. Environment variables take precedence; the file supplies
// values the environment left empty.
func Load() (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	configFile := os.Getenv(envPrefix + "_CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg.merge(fileCfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// merge fills fields the environment left empty from the config file. Only
// fields without envconfig defaults can genuinely be empty here, which is
// exactly the set worth merging.
func (c *Config) merge(file *Config) {
	if c.Data.Sheet == "" {
		c.Data.Sheet = file.Data.Sheet
	}
	if c.Data.SpreadsheetID == "" {
		c.Data.SpreadsheetID = file.Data.SpreadsheetID
	}
	if c.Data.APIKey == "" {
		c.Data.APIKey = file.Data.APIKey
	}
}

// Validate checks the configuration for structural and cross-field errors.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config validation failed: invalid server port %d", c.Server.Port)
	}
	if c.Data.Source == "sheets" && c.Data.SpreadsheetID == "" {
		return fmt.Errorf("config validation failed: sheets source requires a spreadsheet id")
	}
	return nil
}
