// Package common provides shared utilities for Folio
package common

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Folio
type Config struct {
	Environment string          `toml:"environment"`
	Storage     StorageConfig   `toml:"storage"`
	Market      MarketConfig    `toml:"market"`
	Clients     ClientsConfig   `toml:"clients"`
	Portfolio   PortfolioConfig `toml:"portfolio"`
	Following   map[string]string `toml:"following"` // investor name -> 13F filer symbol
	Logging     LoggingConfig   `toml:"logging"`
}

// StorageConfig holds the flat-file data path.
type StorageConfig struct {
	Path string `toml:"path"`
}

// MarketConfig describes the reference exchange schedule.
type MarketConfig struct {
	Timezone   string `toml:"timezone"`    // exchange timezone (default America/New_York)
	SearchDays int    `toml:"search_days"` // calendar search window (default 7)
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	AlphaVantage AlphaVantageConfig `toml:"alphavantage"`
	Finnhub      FinnhubConfig      `toml:"finnhub"`
	Dataroma     DataromaConfig     `toml:"dataroma"`
}

// AlphaVantageConfig holds Alpha Vantage API configuration
type AlphaVantageConfig struct {
	BaseURL   string  `toml:"base_url"`
	APIKey    string  `toml:"api_key"`
	RateLimit float64 `toml:"rate_limit"` // requests per second; free tier is 5/minute
	Timeout   string  `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *AlphaVantageConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// FinnhubConfig holds Finnhub API configuration
type FinnhubConfig struct {
	BaseURL   string  `toml:"base_url"`
	APIKey    string  `toml:"api_key"`
	RateLimit float64 `toml:"rate_limit"`
	Timeout   string  `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *FinnhubConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// DataromaConfig holds the holdings scraper configuration
type DataromaConfig struct {
	BaseURL   string  `toml:"base_url"`
	RateLimit float64 `toml:"rate_limit"`
	Timeout   string  `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *DataromaConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// PortfolioConfig holds the default portfolio composition.
type PortfolioConfig struct {
	Tickers []string  `toml:"tickers"`
	Weights []float64 `toml:"weights"` // empty = equal split
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string `toml:"level"`
	FilePath string `toml:"file_path"` // empty = console only
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Storage: StorageConfig{
			Path: "data",
		},
		Market: MarketConfig{
			Timezone:   "America/New_York",
			SearchDays: 7,
		},
		Clients: ClientsConfig{
			AlphaVantage: AlphaVantageConfig{
				BaseURL:   "https://www.alphavantage.co/query",
				RateLimit: 5.0 / 60.0, // free tier: 5 calls/minute
				Timeout:   "30s",
			},
			Finnhub: FinnhubConfig{
				BaseURL:   "https://finnhub.io/api/v1",
				RateLimit: 1,
				Timeout:   "30s",
			},
			Dataroma: DataromaConfig{
				BaseURL:   "https://dataroma.com/m/holdings.php",
				RateLimit: 0.5,
				Timeout:   "30s",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Apply environment overrides
	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FOLIO_ENV"); env != "" {
		config.Environment = env
	}

	if path := os.Getenv("FOLIO_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if level := os.Getenv("FOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if tz := os.Getenv("FOLIO_MARKET_TIMEZONE"); tz != "" {
		config.Market.Timezone = tz
	}

	if v := os.Getenv("FOLIO_ALPHAVANTAGE_API_KEY"); v != "" {
		config.Clients.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" && config.Clients.AlphaVantage.APIKey == "" {
		config.Clients.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("FOLIO_FINNHUB_API_KEY"); v != "" {
		config.Clients.Finnhub.APIKey = v
	}
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" && config.Clients.Finnhub.APIKey == "" {
		config.Clients.Finnhub.APIKey = v
	}

	if v := os.Getenv("FOLIO_TICKERS"); v != "" {
		config.Portfolio.Tickers = splitList(v)
		config.Portfolio.Weights = nil
	}

	if v := os.Getenv("FOLIO_SEARCH_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.Market.SearchDays = n
		}
	}
}

// Validate checks cross-field consistency once at process start.
func (c *Config) Validate() error {
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path must not be empty")
	}
	if c.Market.SearchDays <= 0 {
		return fmt.Errorf("market.search_days must be positive (got %d)", c.Market.SearchDays)
	}
	if len(c.Portfolio.Weights) > 0 {
		if len(c.Portfolio.Weights) != len(c.Portfolio.Tickers) {
			return fmt.Errorf("portfolio.weights has %d entries for %d tickers", len(c.Portfolio.Weights), len(c.Portfolio.Tickers))
		}
		total := 0.0
		for _, w := range c.Portfolio.Weights {
			if w < 0 {
				return fmt.Errorf("portfolio.weights must be non-negative")
			}
			total += w
		}
		if math.Abs(total-1.0) > 1e-6 {
			return fmt.Errorf("portfolio.weights must sum to 1 (got %v)", total)
		}
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
