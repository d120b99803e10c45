// Package interfaces defines service contracts for Folio
package interfaces

import "github.com/bobmcallan/folio/internal/models"

// SeriesStore persists price series and holdings tables as flat tabular
// files, one instrument per file. Writes are atomic: a reader never
// observes a partially written series.
type SeriesStore interface {
	// LoadSeries returns the stored series for a symbol, or an empty series
	// when none exists.
	LoadSeries(symbol string) (models.PriceSeries, error)

	// SaveSeries replaces the stored series for a symbol.
	SaveSeries(symbol string, series models.PriceSeries) error

	// HasSeries reports whether a series file exists for the symbol.
	HasSeries(symbol string) bool

	// LoadHoldings returns the stored holdings table for a symbol, sorted
	// descending by weight, or nil when the instrument is not a fund.
	LoadHoldings(symbol string) (models.HoldingsTable, error)

	// SaveHoldings replaces the stored holdings table for a symbol.
	SaveHoldings(symbol string, table models.HoldingsTable) error

	// WriteRaw writes an arbitrary artifact (chart PNG, snapshot) under a
	// subdirectory of the data path, atomically.
	WriteRaw(subdir, key string, data []byte) error

	// DataPath returns the base data directory.
	DataPath() string
}
