// Package models defines data structures for Folio
package models

import "errors"

// Sentinel errors for the analytics core. Callers classify failures with
// errors.Is, so every error produced by the core wraps one of these.
var (
	// ErrInvalidPeriod indicates a financial-period expression that does not
	// match the [<multiplier>-]<keyword> grammar or uses an unknown keyword.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrNoMarketData indicates a calendar search window containing no valid
	// trading days. Callers should retry with a larger window.
	ErrNoMarketData = errors.New("no market data in search window")

	// ErrDateNotFound indicates an exact-match price lookup on a date the
	// series does not contain.
	ErrDateNotFound = errors.New("date not found in series")

	// ErrUnsupportedMetric indicates a metric type with no registered handler.
	ErrUnsupportedMetric = errors.New("unsupported metric type")

	// ErrInvalidMetricName indicates a metric name that does not match the
	// metric_type/period[/option] grammar.
	ErrInvalidMetricName = errors.New("invalid metric name")

	// ErrNoDataAvailable indicates a metric request against a ticker with an
	// empty price series.
	ErrNoDataAvailable = errors.New("no data available")

	// ErrUnknownSymbol indicates an exposure lookup for a company with zero
	// contributions in the portfolio.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrInsufficientData indicates a simulation input whose rolling-return
	// distribution is empty for the requested period.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrProvider indicates a failure originating in an external data
	// provider. Batch operations skip the affected instrument and continue.
	ErrProvider = errors.New("provider error")
)
