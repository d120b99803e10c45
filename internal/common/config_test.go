package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Storage.Path != "data" {
		t.Errorf("Storage.Path = %q, want %q", cfg.Storage.Path, "data")
	}
	if cfg.Market.Timezone != "America/New_York" {
		t.Errorf("Market.Timezone = %q, want America/New_York", cfg.Market.Timezone)
	}
	if cfg.Market.SearchDays != 7 {
		t.Errorf("Market.SearchDays = %d, want 7", cfg.Market.SearchDays)
	}
	if cfg.Clients.AlphaVantage.BaseURL == "" {
		t.Error("AlphaVantage.BaseURL should have a default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.toml")
	content := `
environment = "production"

[storage]
path = "/var/lib/folio"

[market]
timezone = "Australia/Sydney"
search_days = 10

[clients.alphavantage]
api_key = "demo"
rate_limit = 0.5

[portfolio]
tickers = ["VTI", "VGT"]
weights = [0.6, 0.4]

[following]
buffett = "BRK"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}
	if cfg.Storage.Path != "/var/lib/folio" {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if cfg.Market.SearchDays != 10 {
		t.Errorf("Market.SearchDays = %d, want 10", cfg.Market.SearchDays)
	}
	if cfg.Clients.AlphaVantage.APIKey != "demo" {
		t.Errorf("AlphaVantage.APIKey = %q, want demo", cfg.Clients.AlphaVantage.APIKey)
	}
	// Unset fields keep their defaults after merge.
	if cfg.Clients.Finnhub.BaseURL == "" {
		t.Error("Finnhub.BaseURL default should survive partial config")
	}
	if len(cfg.Portfolio.Tickers) != 2 || cfg.Portfolio.Tickers[0] != "VTI" {
		t.Errorf("Portfolio.Tickers = %v", cfg.Portfolio.Tickers)
	}
	if cfg.Following["buffett"] != "BRK" {
		t.Errorf("Following = %v", cfg.Following)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/folio.toml")
	if err != nil {
		t.Fatalf("missing files should be skipped: %v", err)
	}
	if cfg.Storage.Path != "data" {
		t.Errorf("expected defaults when no file present, got path %q", cfg.Storage.Path)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_DATA_PATH", "/tmp/folio-test")
	t.Setenv("FOLIO_LOG_LEVEL", "error")
	t.Setenv("FOLIO_ALPHAVANTAGE_API_KEY", "env-key")
	t.Setenv("FOLIO_TICKERS", "AAPL, MSFT ,VTI")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Storage.Path != "/tmp/folio-test" {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Clients.AlphaVantage.APIKey != "env-key" {
		t.Errorf("APIKey = %q", cfg.Clients.AlphaVantage.APIKey)
	}
	want := []string{"AAPL", "MSFT", "VTI"}
	if len(cfg.Portfolio.Tickers) != len(want) {
		t.Fatalf("Tickers = %v, want %v", cfg.Portfolio.Tickers, want)
	}
	for i, s := range want {
		if cfg.Portfolio.Tickers[i] != s {
			t.Errorf("Tickers[%d] = %q, want %q", i, cfg.Portfolio.Tickers[i], s)
		}
	}
}

func TestValidateRejectsBadWeights(t *testing.T) {
	tests := []struct {
		name    string
		tickers []string
		weights []float64
	}{
		{"length mismatch", []string{"VTI", "VGT"}, []float64{1.0}},
		{"negative weight", []string{"VTI", "VGT"}, []float64{1.5, -0.5}},
		{"sum not one", []string{"VTI", "VGT"}, []float64{0.5, 0.4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			cfg.Portfolio.Tickers = tt.tickers
			cfg.Portfolio.Weights = tt.weights
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGetTimeoutFallback(t *testing.T) {
	c := AlphaVantageConfig{Timeout: "bogus"}
	if got := c.GetTimeout().Seconds(); got != 30 {
		t.Errorf("GetTimeout fallback = %vs, want 30s", got)
	}
	c.Timeout = "5s"
	if got := c.GetTimeout().Seconds(); got != 5 {
		t.Errorf("GetTimeout = %vs, want 5s", got)
	}
}
