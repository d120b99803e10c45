// Package models defines data structures for Folio
package models

// RefreshResult reports the outcome of one instrument within a batch
// refresh. Batch operations continue past individual failures and surface
// them here instead of aborting.
type RefreshResult struct {
	Symbol  string `json:"symbol"`
	Skipped bool   `json:"skipped"` // already current, nothing fetched
	Err     error  `json:"-"`
}

// SimulationResult summarizes a Monte-Carlo portfolio return simulation.
//
// Holdings are sampled independently per trial: no cross-asset correlation
// is modeled, which overstates diversification for correlated assets. That
// is a deliberate simplification and is surfaced to users alongside the
// numbers.
type SimulationResult struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`

	// MinSampleCount is the smallest raw rolling-return distribution among
	// the holdings: a data-sufficiency signal, not the trial count.
	MinSampleCount int `json:"min_sample_count"`

	Trials int `json:"trials"`
}
