package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`

	// Database
	DatabasePath string `mapstructure:"DATABASE_PATH"`

	// Draft board
	Season          int     `mapstructure:"SEASON"`
	InflationFactor float64 `mapstructure:"INFLATION_FACTOR"`

	// LLM analysis
	LLMAPIKey  string `mapstructure:"LLM_API_KEY"`
	LLMBaseURL string `mapstructure:"LLM_BASE_URL"`
	LLMModel   string `mapstructure:"LLM_MODEL"`

	// Scraper
	ScraperBaseURL string        `mapstructure:"SCRAPER_BASE_URL"`
	ScraperDelay   time.Duration `mapstructure:"SCRAPER_DELAY"`

	// Logging
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DATABASE_PATH", "football_stats.db")
	v.SetDefault("SEASON", 2025)
	v.SetDefault("INFLATION_FACTOR", 1.11)
	v.SetDefault("LLM_API_KEY", "")
	v.SetDefault("LLM_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("LLM_MODEL", "gpt-4o")
	v.SetDefault("SCRAPER_BASE_URL", "https://www.pro-football-reference.com")
	v.SetDefault("SCRAPER_DELAY", 2*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	// A missing .env file is fine; env vars and defaults still apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Season <= 0 {
		return nil, fmt.Errorf("SEASON must be a positive year, got %d", cfg.Season)
	}
	if cfg.InflationFactor <= 0 {
		return nil, fmt.Errorf("INFLATION_FACTOR must be positive, got %v", cfg.InflationFactor)
	}

	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
