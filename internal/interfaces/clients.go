// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"

	"github.com/bobmcallan/folio/internal/models"
)

// FetchMode selects how much history a price download covers.
type FetchMode string

const (
	// FetchCompact retrieves the recent window only (about 100 sessions).
	FetchCompact FetchMode = "compact"
	// FetchFull retrieves the complete available history.
	FetchFull FetchMode = "full"
)

// PriceClient fetches daily closing prices from a remote provider. Failures
// carry models.ErrProvider in their chain; batch callers skip the affected
// instrument and continue.
type PriceClient interface {
	// GetTimeSeries retrieves daily closes for a symbol.
	GetTimeSeries(ctx context.Context, symbol string, mode FetchMode) (models.PriceSeries, error)
}

// HoldingsClient fetches an instrument's constituent holdings table.
type HoldingsClient interface {
	// GetHoldings retrieves the full holdings table, sorted descending by
	// weight. Tables are replaced wholesale; there is no incremental merge.
	GetHoldings(ctx context.Context, symbol string) (models.HoldingsTable, error)
}

// NewsClient fetches market news and sentiment scores.
type NewsClient interface {
	// GetNews retrieves recent articles for a symbol, or general market
	// news for an empty symbol.
	GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error)

	// GetSentiment retrieves the 0-1 news sentiment score for a symbol,
	// 1 being bullish.
	GetSentiment(ctx context.Context, symbol string) (float64, error)
}
