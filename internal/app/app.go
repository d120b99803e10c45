// Package app wires configuration, storage, clients, and services into one
// initialized application core shared by the CLI commands.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/folio/internal/calendar"
	"github.com/bobmcallan/folio/internal/clients/alphavantage"
	"github.com/bobmcallan/folio/internal/clients/dataroma"
	"github.com/bobmcallan/folio/internal/clients/finnhub"
	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/metrics"
	"github.com/bobmcallan/folio/internal/period"
	"github.com/bobmcallan/folio/internal/services/portfolio"
	"github.com/bobmcallan/folio/internal/services/ticker"
	"github.com/bobmcallan/folio/internal/storage/seriesfs"
)

// App holds all initialized services and clients. It is the shared core
// behind every CLI command.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Store            interfaces.SeriesStore
	Calendar         interfaces.MarketCalendar
	PriceClient      interfaces.PriceClient
	HoldingsClient   interfaces.HoldingsClient
	NewsClient       interfaces.NewsClient
	Parser           *period.Parser
	Metrics          *metrics.Engine
	TickerService    interfaces.TickerService
	PortfolioService interfaces.PortfolioService
	StartupTime      time.Time
}

// NewApp initializes configuration, storage, clients, and services.
// configPath may be empty; FOLIO_CONFIG and ./folio.toml are then tried.
func NewApp(configPath string) (*App, error) {
	startup := time.Now()

	if configPath == "" {
		configPath = os.Getenv("FOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = "folio.toml"
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := common.NewLoggerFromConfig(config.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := seriesfs.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	cal, err := calendar.New(config.Market.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize market calendar: %w", err)
	}

	if config.Clients.AlphaVantage.APIKey == "" {
		logger.Warn().Msg("Alpha Vantage API key not configured - price refresh will be unavailable")
	}
	priceClient := alphavantage.NewClient(config.Clients.AlphaVantage.APIKey,
		alphavantage.WithLogger(logger),
		alphavantage.WithBaseURL(config.Clients.AlphaVantage.BaseURL),
		alphavantage.WithRateLimit(config.Clients.AlphaVantage.RateLimit),
		alphavantage.WithTimeout(config.Clients.AlphaVantage.GetTimeout()),
	)

	holdingsClient := dataroma.NewClient(
		dataroma.WithLogger(logger),
		dataroma.WithBaseURL(config.Clients.Dataroma.BaseURL),
		dataroma.WithRateLimit(config.Clients.Dataroma.RateLimit),
		dataroma.WithTimeout(config.Clients.Dataroma.GetTimeout()),
	)

	if config.Clients.Finnhub.APIKey == "" {
		logger.Warn().Msg("Finnhub API key not configured - news and sentiment will be unavailable")
	}
	newsClient := finnhub.NewClient(config.Clients.Finnhub.APIKey,
		finnhub.WithLogger(logger),
		finnhub.WithBaseURL(config.Clients.Finnhub.BaseURL),
		finnhub.WithRateLimit(config.Clients.Finnhub.RateLimit),
		finnhub.WithTimeout(config.Clients.Finnhub.GetTimeout()),
	)

	parser := period.NewParser()
	engine := metrics.NewEngine(parser, logger)

	tickerService := ticker.NewService(store, priceClient, holdingsClient, cal, logger,
		ticker.WithSearchDays(config.Market.SearchDays))
	portfolioService := portfolio.NewService(tickerService, engine, logger)

	logger.Info().
		Str("version", common.GetFullVersion()).
		Str("data", config.Storage.Path).
		Dur("startup", time.Since(startup)).
		Msg("Folio initialized")

	return &App{
		Config:           config,
		Logger:           logger,
		Store:            store,
		Calendar:         cal,
		PriceClient:      priceClient,
		HoldingsClient:   holdingsClient,
		NewsClient:       newsClient,
		Parser:           parser,
		Metrics:          engine,
		TickerService:    tickerService,
		PortfolioService: portfolioService,
		StartupTime:      startup,
	}, nil
}

// DefaultSymbols returns the configured portfolio tickers, or nil when none
// are configured.
func (a *App) DefaultSymbols() []string {
	return a.Config.Portfolio.Tickers
}

// ChartDir returns the directory chart artifacts are written to.
func (a *App) ChartDir() string {
	return filepath.Join(a.Store.DataPath(), "charts")
}
