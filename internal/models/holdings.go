// Package models defines data structures for Folio
package models

import "sort"

// HoldingsRow is one constituent of a fund: the held company's symbol and
// its fraction of the fund in [0,1].
type HoldingsRow struct {
	Symbol string  `json:"symbol"`
	Pct    float64 `json:"pct"`
}

// HoldingsTable lists a fund's constituents sorted descending by weight.
// Source data is rounded, so weights need not sum exactly to 1. Tables are
// replaced wholesale on each holdings download; there is no incremental
// merge. A nil table means the instrument is not a fund.
type HoldingsTable []HoldingsRow

// Sort orders the table descending by weight in place.
func (h HoldingsTable) Sort() {
	sort.SliceStable(h, func(i, j int) bool { return h[i].Pct > h[j].Pct })
}

// TotalPct returns the sum of constituent weights. Useful as a sanity check
// on scraped data; values a few percent off 1.0 are normal.
func (h HoldingsTable) TotalPct() float64 {
	total := 0.0
	for _, row := range h {
		total += row.Pct
	}
	return total
}
