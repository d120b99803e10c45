// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/folio/internal/models"
)

// MarketCalendar resolves completed trading days against an exchange
// schedule.
type MarketCalendar interface {
	// Resolve returns the closest completed market day to the reference in
	// the given direction, searching ±searchDays around it.
	Resolve(direction models.Direction, reference time.Time, searchDays int) (time.Time, error)

	// LatestCompleted resolves the most recent completed session as of now.
	LatestCompleted(searchDays int) (time.Time, error)
}

// TickerService owns the instrument lifecycle: loading local data,
// refreshing it from the price provider, and rendering derived artifacts.
type TickerService interface {
	// Load constructs a ticker from local storage; the series is empty when
	// nothing is stored. The remote provider is never contacted.
	Load(ctx context.Context, symbol string) (*models.Ticker, error)

	// LoadRelative loads a ticker along with a relative price series
	// against a base symbol's stored history.
	LoadRelative(ctx context.Context, symbol, base string) (*models.Ticker, error)

	// IsCurrent reports whether the ticker's series already covers the most
	// recent completed market day.
	IsCurrent(t *models.Ticker) (bool, error)

	// Refresh fetches, merges, and persists price data for the ticker. It
	// is a no-op when the series is already current. With holdings set, the
	// instrument's holdings table is re-downloaded and replaced as well.
	Refresh(ctx context.Context, t *models.Ticker, holdings bool) error

	// RefreshAll refreshes a batch of symbols, skipping instruments whose
	// provider fetch fails and reporting per-item outcomes.
	RefreshAll(ctx context.Context, symbols []string, holdings bool) []models.RefreshResult

	// SaveChart renders the ticker's price history to a PNG artifact and
	// returns the path it was written to.
	SaveChart(t *models.Ticker) (string, error)
}

// PortfolioService composes instruments into weighted portfolios and runs
// portfolio-level analytics.
type PortfolioService interface {
	// Compose loads each symbol from local storage and builds a portfolio.
	// A nil weights slice selects an equal split.
	Compose(ctx context.Context, symbols []string, weights []float64) (*models.Portfolio, error)

	// ExpectedReturn runs a Monte-Carlo resampling of each holding's
	// rolling-return distribution for the period.
	ExpectedReturn(p *models.Portfolio, periodExpr string, trials int) (*models.SimulationResult, error)
}
