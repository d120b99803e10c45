package models

import (
	"errors"
	"math"
	"testing"
)

func fundTicker(symbol string, rows ...HoldingsRow) *Ticker {
	t := NewTicker(symbol)
	t.Holdings = HoldingsTable(rows)
	t.Holdings.Sort()
	return t
}

func TestNewPortfolio_Weights(t *testing.T) {
	tickers := []*Ticker{NewTicker("AAPL"), NewTicker("MSFT"), NewTicker("AMZN")}

	t.Run("equal weight default", func(t *testing.T) {
		p, err := NewPortfolio(tickers, nil)
		if err != nil {
			t.Fatalf("NewPortfolio: %v", err)
		}
		for _, w := range p.Weights {
			if math.Abs(w-1.0/3.0) > 1e-12 {
				t.Errorf("weight = %v, want 1/3", w)
			}
		}
	})

	t.Run("thirds pass the tolerance check", func(t *testing.T) {
		third := 1.0 / 3.0
		if _, err := NewPortfolio(tickers, []float64{third, third, third}); err != nil {
			t.Errorf("three equal thirds rejected: %v", err)
		}
	})

	t.Run("bad sum rejected", func(t *testing.T) {
		if _, err := NewPortfolio(tickers, []float64{0.5, 0.5, 0.5}); err == nil {
			t.Error("weights summing to 1.5 accepted")
		}
	})

	t.Run("negative weight rejected", func(t *testing.T) {
		if _, err := NewPortfolio(tickers, []float64{1.5, -0.5, 0}); err == nil {
			t.Error("negative weight accepted")
		}
	})

	t.Run("length mismatch rejected", func(t *testing.T) {
		if _, err := NewPortfolio(tickers, []float64{0.5, 0.5}); err == nil {
			t.Error("2 weights for 3 tickers accepted")
		}
	})
}

func TestCompanyPositions_DirectHoldings(t *testing.T) {
	p, err := NewPortfolio([]*Ticker{NewTicker("AAPL"), NewTicker("MSFT")}, []float64{0.6, 0.4})
	if err != nil {
		t.Fatalf("NewPortfolio: %v", err)
	}

	positions := p.CompanyPositions()
	if len(positions) != 2 {
		t.Fatalf("positions = %d companies, want 2", len(positions))
	}
	for symbol, sources := range positions {
		if len(sources) != 1 {
			t.Errorf("%s has %d records, want exactly 1 for non-fund holdings", symbol, len(sources))
		}
		if sources[0].SourceWeight != 1.0 {
			t.Errorf("%s source_weight = %v, want 1.0", symbol, sources[0].SourceWeight)
		}
	}

	// Total exposure across a fund-free portfolio is the full weight budget.
	total := 0.0
	for symbol := range positions {
		exp, err := p.Exposure(symbol)
		if err != nil {
			t.Fatalf("Exposure(%s): %v", symbol, err)
		}
		total += exp
	}
	if math.Abs(total-1.0) > 1e-9 {
		t.Errorf("total exposure = %v, want 1.0", total)
	}
}

func TestCompanyPositions_FundLookThrough(t *testing.T) {
	vgt := fundTicker("VGT",
		HoldingsRow{Symbol: "AAPL", Pct: 0.21},
		HoldingsRow{Symbol: "MSFT", Pct: 0.18},
		HoldingsRow{Symbol: "MU", Pct: 0.0077},
	)
	p, err := NewPortfolio([]*Ticker{vgt, NewTicker("AMZN")}, []float64{0.5, 0.5})
	if err != nil {
		t.Fatalf("NewPortfolio: %v", err)
	}

	positions := p.CompanyPositions()

	aapl := positions["AAPL"]
	if len(aapl) != 1 {
		t.Fatalf("AAPL records = %d, want 1", len(aapl))
	}
	if aapl[0].Source != "VGT" || aapl[0].SourceWeight != 0.21 {
		t.Errorf("AAPL contribution = %+v, want source VGT at 0.21", aapl[0])
	}
	if math.Abs(aapl[0].PortfolioWeight-0.105) > 1e-12 {
		t.Errorf("AAPL portfolio_weight = %v, want 0.105", aapl[0].PortfolioWeight)
	}

	// Per-source portfolio weights sum to the instrument's own weight.
	vgtTotal := 0.0
	for _, sources := range positions {
		for _, s := range sources {
			if s.Source == "VGT" {
				vgtTotal += s.PortfolioWeight
			}
		}
	}
	want := 0.5 * vgt.Holdings.TotalPct()
	if math.Abs(vgtTotal-want) > 1e-9 {
		t.Errorf("VGT-sourced weight = %v, want %v", vgtTotal, want)
	}
}

func TestCompanyPositions_Memoized(t *testing.T) {
	vti := fundTicker("VTI", HoldingsRow{Symbol: "AAPL", Pct: 0.058})
	p, err := NewPortfolio([]*Ticker{vti}, nil)
	if err != nil {
		t.Fatalf("NewPortfolio: %v", err)
	}

	first := p.CompanyPositions()
	// Mutating the holdings after first computation must not change the
	// cached expansion; only a new Portfolio recomputes.
	vti.Holdings = append(vti.Holdings, HoldingsRow{Symbol: "MSFT", Pct: 0.05})
	second := p.CompanyPositions()

	if len(first) != len(second) {
		t.Error("company positions recomputed after first access")
	}
}

func TestExposure_UnknownSymbol(t *testing.T) {
	p, err := NewPortfolio([]*Ticker{NewTicker("AAPL")}, nil)
	if err != nil {
		t.Fatalf("NewPortfolio: %v", err)
	}
	if _, err := p.Exposure("ZZZZ"); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("err = %v, want ErrUnknownSymbol", err)
	}
}

func TestMaxExposure(t *testing.T) {
	vgt := fundTicker("VGT",
		HoldingsRow{Symbol: "AAPL", Pct: 0.21},
		HoldingsRow{Symbol: "MSFT", Pct: 0.18},
	)
	vti := fundTicker("VTI",
		HoldingsRow{Symbol: "AAPL", Pct: 0.058},
		HoldingsRow{Symbol: "XOM", Pct: 0.012},
	)
	p, err := NewPortfolio([]*Ticker{vgt, vti}, nil)
	if err != nil {
		t.Fatalf("NewPortfolio: %v", err)
	}

	top := p.MaxExposure(2)
	if len(top) != 2 {
		t.Fatalf("top = %d entries, want 2", len(top))
	}
	if top[0].Symbol != "AAPL" {
		t.Errorf("top exposure = %s, want AAPL", top[0].Symbol)
	}
	if top[0].Exposure < top[1].Exposure {
		t.Error("exposures not sorted descending")
	}

	// Every reported exposure matches the per-symbol Exposure total.
	for _, e := range p.MaxExposure(0) {
		want, err := p.Exposure(e.Symbol)
		if err != nil {
			t.Fatalf("Exposure(%s): %v", e.Symbol, err)
		}
		if math.Abs(e.Exposure-want) > 1e-12 {
			t.Errorf("MaxExposure[%s] = %v, want %v", e.Symbol, e.Exposure, want)
		}
	}
}

func TestDuplicatePositions(t *testing.T) {
	// AAPL is 21% of VGT and 5.8% of VTI: flagged under the default 1%
	// threshold. MU is only 0.77% / 0.22%: shared, but negligible.
	vgt := fundTicker("VGT",
		HoldingsRow{Symbol: "AAPL", Pct: 0.21},
		HoldingsRow{Symbol: "MU", Pct: 0.0077},
	)
	vti := fundTicker("VTI",
		HoldingsRow{Symbol: "AAPL", Pct: 0.058},
		HoldingsRow{Symbol: "MU", Pct: 0.0022},
		HoldingsRow{Symbol: "XOM", Pct: 0.012},
	)
	p, err := NewPortfolio([]*Ticker{vgt, vti}, nil)
	if err != nil {
		t.Fatalf("NewPortfolio: %v", err)
	}

	duplicates := p.DuplicatePositions(0.01)

	if _, ok := duplicates["AAPL"]; !ok {
		t.Error("AAPL not flagged as duplicate")
	}
	if _, ok := duplicates["MU"]; ok {
		t.Error("MU flagged despite all source weights below threshold")
	}
	if _, ok := duplicates["XOM"]; ok {
		t.Error("XOM flagged despite a single source")
	}
}
