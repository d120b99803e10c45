// Package models defines data structures for Folio
package models

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// weightTolerance is the allowed floating-point drift when validating that
// portfolio weights sum to 1. Exact equality would reject e.g. three
// equal-weight holdings.
const weightTolerance = 1e-6

// CompanyPosition records one path by which a company enters the portfolio:
// directly (Source == the company itself, SourceWeight == 1) or through a
// fund (SourceWeight == the company's fraction of that fund).
type CompanyPosition struct {
	Source          string  `json:"source"`
	SourceWeight    float64 `json:"source_weight"`
	PortfolioWeight float64 `json:"portfolio_weight"`
}

// CompanyPositions maps company-level symbols to every contribution record
// that reaches them.
type CompanyPositions map[string][]CompanyPosition

// Portfolio is a weighted composition of tickers. Weights are non-negative
// and sum to 1 within tolerance; the default is an equal split.
type Portfolio struct {
	Tickers []*Ticker
	Weights []float64

	// positions memoizes the fund look-through, which can be large for
	// several ETFs. Invalidated only by constructing a new Portfolio.
	positions CompanyPositions
}

// NewPortfolio composes tickers with the given weights. A nil weights slice
// selects an equal split across the tickers.
func NewPortfolio(tickers []*Ticker, weights []float64) (*Portfolio, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("portfolio requires at least one ticker")
	}

	if weights == nil {
		weights = make([]float64, len(tickers))
		for i := range weights {
			weights[i] = 1.0 / float64(len(tickers))
		}
	}
	if len(weights) != len(tickers) {
		return nil, fmt.Errorf("mismatch between number of tickers (%d) and weights (%d)", len(tickers), len(weights))
	}

	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("weights must be non-negative (got %v)", w)
		}
		total += w
	}
	if math.Abs(total-1.0) > weightTolerance {
		return nil, fmt.Errorf("weights must sum to 1 (got %v instead)", total)
	}

	return &Portfolio{Tickers: tickers, Weights: weights}, nil
}

// String lists the holdings as "SYM=0.25, ..." pairs.
func (p *Portfolio) String() string {
	parts := make([]string, len(p.Tickers))
	for i, t := range p.Tickers {
		parts[i] = fmt.Sprintf("%s=%.2f", t.Symbol, p.Weights[i])
	}
	return strings.Join(parts, ", ")
}

// CompanyPositions expands every fund holding into its constituent
// companies. Expansion is exactly one level deep: a fund held inside
// another fund is recorded as-is rather than expanded further. The result
// is computed once and cached for the portfolio's lifetime.
func (p *Portfolio) CompanyPositions() CompanyPositions {
	if p.positions != nil {
		return p.positions
	}

	positions := make(CompanyPositions)
	for i, t := range p.Tickers {
		weight := p.Weights[i]
		if !t.IsFund() {
			positions[t.Symbol] = append(positions[t.Symbol], CompanyPosition{
				Source:          t.Symbol,
				SourceWeight:    1.0,
				PortfolioWeight: weight,
			})
			continue
		}
		for _, row := range t.Holdings {
			symbol := CanonicalSymbol(row.Symbol)
			positions[symbol] = append(positions[symbol], CompanyPosition{
				Source:          t.Symbol,
				SourceWeight:    row.Pct,
				PortfolioWeight: row.Pct * weight,
			})
		}
	}

	p.positions = positions
	return positions
}

// Exposure returns the company's total weight across all direct and
// fund-mediated sources. A symbol with zero contributions is an
// ErrUnknownSymbol failure rather than a silent zero.
func (p *Portfolio) Exposure(symbol string) (float64, error) {
	symbol = CanonicalSymbol(symbol)
	sources, ok := p.CompanyPositions()[symbol]
	if !ok {
		return 0, fmt.Errorf("%w: %s not found in company positions", ErrUnknownSymbol, symbol)
	}

	total := 0.0
	for _, s := range sources {
		total += s.PortfolioWeight
	}
	return total, nil
}

// SymbolExposure pairs a company symbol with its total portfolio weight.
type SymbolExposure struct {
	Symbol   string  `json:"symbol"`
	Exposure float64 `json:"exposure"`
}

// MaxExposure ranks all companies by total exposure descending and returns
// the top limit entries.
func (p *Portfolio) MaxExposure(limit int) []SymbolExposure {
	positions := p.CompanyPositions()
	exposures := make([]SymbolExposure, 0, len(positions))
	for symbol, sources := range positions {
		var total float64
		for _, s := range sources {
			total += s.PortfolioWeight
		}
		exposures = append(exposures, SymbolExposure{Symbol: symbol, Exposure: total})
	}

	sort.SliceStable(exposures, func(i, j int) bool { return exposures[i].Exposure > exposures[j].Exposure })
	if limit > 0 && len(exposures) > limit {
		exposures = exposures[:limit]
	}
	return exposures
}

// DuplicatePositions returns companies held through more than one distinct
// source where at least one source weight meets the threshold. Requiring a
// meaningful source weight filters out the long tail of negligible overlaps
// that any two broad funds share.
func (p *Portfolio) DuplicatePositions(threshold float64) CompanyPositions {
	duplicates := make(CompanyPositions)
	for company, sources := range p.CompanyPositions() {
		heldBy := make(map[string]struct{}, len(sources))
		for _, s := range sources {
			heldBy[s.Source] = struct{}{}
		}
		if len(heldBy) < 2 {
			continue
		}
		for _, s := range sources {
			if s.SourceWeight >= threshold {
				duplicates[company] = sources
				break
			}
		}
	}
	return duplicates
}
