package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the Bluesky reporter
type Config struct {
	// Bluesky public API settings
	API APIConfig `yaml:"api" json:"api"`

	// Report generation settings
	Report ReportConfig `yaml:"report" json:"report"`

	// Web front end settings
	Server ServerConfig `yaml:"server" json:"server"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// APIConfig holds settings for the upstream Bluesky API
type APIConfig struct {
	BaseURL           string        `yaml:"base_url" json:"base_url"`
	Timeout           time.Duration `yaml:"timeout" json:"timeout"`
	PageSize          int           `yaml:"page_size" json:"page_size"`
	RequestsPerMinute int           `yaml:"requests_per_minute" json:"requests_per_minute"`
	UserAgent         string        `yaml:"user_agent" json:"user_agent"`
}

// ReportConfig holds report generation settings
type ReportConfig struct {
	DefaultLimit  int    `yaml:"default_limit" json:"default_limit"`
	DefaultFormat string `yaml:"default_format" json:"default_format"`
}

// ServerConfig holds web front end settings
type ServerConfig struct {
	Addr         string `yaml:"addr" json:"addr"`
	DefaultLimit int    `yaml:"default_limit" json:"default_limit"`
	MaxLimit     int    `yaml:"max_limit" json:"max_limit"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           "https://public.api.bsky.app/xrpc",
			Timeout:           10 * time.Second,
			PageSize:          100,
			RequestsPerMinute: 120,
			UserAgent:         "bskyreport/1.0",
		},
		Report: ReportConfig{
			DefaultLimit:  100,
			DefaultFormat: "json",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			DefaultLimit: 50,
			MaxLimit:     500,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if baseURL := os.Getenv("BSKYREPORT_API_BASE_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if timeout := os.Getenv("BSKYREPORT_API_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			c.API.Timeout = d
		}
	}
	if rpm := os.Getenv("BSKYREPORT_REQUESTS_PER_MINUTE"); rpm != "" {
		var val int
		fmt.Sscanf(rpm, "%d", &val)
		if val > 0 {
			c.API.RequestsPerMinute = val
		}
	}
	if limit := os.Getenv("BSKYREPORT_DEFAULT_LIMIT"); limit != "" {
		var val int
		fmt.Sscanf(limit, "%d", &val)
		if val > 0 {
			c.Report.DefaultLimit = val
		}
	}
	if addr := os.Getenv("BSKYREPORT_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if logLevel := os.Getenv("BSKYREPORT_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv("BSKYREPORT_LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".bskyreport.yaml",
		".bskyreport.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "bskyreport", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "bskyreport", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".bskyreport.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("API base URL is required"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("API timeout must be positive"))
	}
	if c.API.PageSize <= 0 || c.API.PageSize > 100 {
		errs = append(errs, errors.New("page size must be between 1 and 100"))
	}
	if c.API.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("requests per minute must be positive"))
	}

	if c.Report.DefaultLimit <= 0 {
		errs = append(errs, errors.New("default limit must be positive"))
	}
	validFormats := map[string]bool{"json": true, "csv": true}
	if !validFormats[strings.ToLower(c.Report.DefaultFormat)] {
		errs = append(errs, errors.New("default format must be json or csv"))
	}

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server address is required"))
	}
	if c.Server.DefaultLimit <= 0 {
		errs = append(errs, errors.New("server default limit must be positive"))
	}
	if c.Server.MaxLimit < c.Server.DefaultLimit {
		errs = append(errs, errors.New("server max limit must be at least the default limit"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Load loads configuration from all sources with proper precedence.
// Precedence order: flags > environment variables > .env file > config file > defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".bskyreport.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.mergeFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// mergeFlags merges command line flag values into the configuration
func (c *Config) mergeFlags(flags map[string]interface{}) {
	if limit, ok := flags["limit"].(int); ok && limit > 0 {
		c.Report.DefaultLimit = limit
	}
	if format, ok := flags["format"].(string); ok && format != "" {
		c.Report.DefaultFormat = format
	}
	if addr, ok := flags["addr"].(string); ok && addr != "" {
		c.Server.Addr = addr
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}
