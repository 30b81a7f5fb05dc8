package config

import (
	"os"
	"strconv"

	"avalonreport/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Paths  PathConfig
	Render RenderConfig
}

// PathConfig holds the fixed input and output file paths. The defaults
// reproduce the canonical run; env overrides exist for local setups only.
type PathConfig struct {
	DataFile      string // source observation CSV
	ReportFile    string // dashboard PNG
	StatsWorkbook string // aggregate-table XLSX
	SummaryHTML   string // statistics summary HTML
}

// RenderConfig holds the dashboard canvas settings
type RenderConfig struct {
	WidthInches  float64
	HeightInches float64
	DPI          int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Paths:  loadPathConfig(),
		Render: loadRenderConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadPathConfig() PathConfig {
	return PathConfig{
		DataFile:      getEnvOrDefault("AVALON_DATA_FILE", "avalon_nuclear.csv"),
		ReportFile:    getEnvOrDefault("AVALON_REPORT_FILE", "avalon_data_overview.png"),
		StatsWorkbook: getEnvOrDefault("AVALON_STATS_FILE", "avalon_data_overview.xlsx"),
		SummaryHTML:   getEnvOrDefault("AVALON_SUMMARY_FILE", "avalon_data_overview.html"),
	}
}

func loadRenderConfig() RenderConfig {
	return RenderConfig{
		WidthInches:  16,
		HeightInches: 10,
		DPI:          getEnvIntOrDefault("AVALON_REPORT_DPI", 300),
	}
}

func validateConfig(config *Config) error {
	if config.Paths.DataFile == "" {
		return errors.ConfigInvalid("data file path is required")
	}
	if config.Paths.ReportFile == "" {
		return errors.ConfigInvalid("report file path is required")
	}
	if config.Render.DPI <= 0 {
		return errors.ConfigInvalid("render DPI must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
