package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config holds application configuration
type Config struct {
	Port          string        `yaml:"port"`
	DBConn        string        `yaml:"db_conn"`
	LogLevel      string        `yaml:"log_level"`
	ECBURL        string        `yaml:"ecb_url"`
	RatesSchedule string        `yaml:"rates_schedule"`
	HTTPTimeout   time.Duration `yaml:"http_timeout"`
}

func defaults() *Config {
	return &Config{
		Port:          "8080",
		LogLevel:      "INFO",
		ECBURL:        "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml",
		RatesSchedule: "@every 1h",
		HTTPTimeout:   10 * time.Second,
	}
}

// NewConfig loads configuration from an optional YAML file named by
// CONFIG_FILE, then from environment variables, which take precedence.
// An empty DB_CONN disables rate persistence.
func NewConfig() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DBConn = getEnv("DB_CONN", cfg.DBConn)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.ECBURL = getEnv("ECB_URL", cfg.ECBURL)
	cfg.RatesSchedule = getEnv("RATES_SCHEDULE", cfg.RatesSchedule)

	if raw, exists := os.LookupEnv("HTTP_TIMEOUT"); exists {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = timeout
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.ECBURL == "" {
		return fmt.Errorf("ECB_URL is required")
	}
	if c.RatesSchedule == "" {
		return fmt.Errorf("RATES_SCHEDULE is required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
