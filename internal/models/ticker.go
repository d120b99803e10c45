// Package models defines data structures for Folio
package models

import (
	"strings"
	"time"
)

// Ticker is one instrument: a canonical symbol, its local price history, and
// for funds a holdings table. Tickers are constructed by loading whatever
// exists on disk (an empty series if nothing does) and mutated only through
// the ticker service's refresh operation.
type Ticker struct {
	Symbol   string        `json:"symbol"`
	Series   PriceSeries   `json:"series"`
	Holdings HoldingsTable `json:"holdings,omitempty"`

	// Relative is the price history divided by a base instrument's history
	// on overlapping dates (e.g. priced in gold ounces). Populated only when
	// the ticker was loaded with a relative base.
	Relative PriceSeries `json:"relative,omitempty"`

	RefreshedAt time.Time `json:"refreshed_at,omitempty"`
}

// NewTicker returns a ticker with the canonical uppercase symbol and an
// empty series.
func NewTicker(symbol string) *Ticker {
	return &Ticker{Symbol: CanonicalSymbol(symbol)}
}

// CanonicalSymbol normalizes a case-insensitive user-supplied symbol.
func CanonicalSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Name returns the instrument's display name, or "Unknown" for symbols
// outside the static mapping.
func (t *Ticker) Name() string {
	if name, ok := tickerNames[t.Symbol]; ok {
		return name
	}
	return "Unknown"
}

// IsFund reports whether the ticker carries a holdings table (ETF, mutual
// fund, or 13F filer).
func (t *Ticker) IsFund() bool { return len(t.Holdings) > 0 }

// HasData reports whether any price history is loaded.
func (t *Ticker) HasData() bool { return len(t.Series) > 0 }
