// Package portfolio composes instruments into weighted portfolios and runs
// portfolio-level analytics over their stored price histories.
package portfolio

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/metrics"
	"github.com/bobmcallan/folio/internal/models"
)

// Service implements PortfolioService
type Service struct {
	tickers interfaces.TickerService
	engine  *metrics.Engine
	logger  *common.Logger
	rng     *rand.Rand
}

var _ interfaces.PortfolioService = (*Service)(nil)

// Option configures the service.
type Option func(*Service)

// WithRand injects the random source used by simulations. Tests pass a
// seeded source for reproducible draws.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// NewService creates a new portfolio service
func NewService(
	tickers interfaces.TickerService,
	engine *metrics.Engine,
	logger *common.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		tickers: tickers,
		engine:  engine,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return s
}

// Compose loads every symbol from local storage and builds a portfolio. A
// nil weights slice selects an equal split.
func (s *Service) Compose(ctx context.Context, symbols []string, weights []float64) (*models.Portfolio, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("portfolio requires at least one symbol")
	}

	tickers := make([]*models.Ticker, 0, len(symbols))
	for _, symbol := range symbols {
		t, err := s.tickers.Load(ctx, symbol)
		if err != nil {
			return nil, err
		}
		tickers = append(tickers, t)
	}

	return models.NewPortfolio(tickers, weights)
}

// ExpectedReturn estimates the portfolio's return distribution for a period
// by resampling each holding's historical rolling returns.
//
// Each holding contributes its full rolling-return distribution; trials
// samples are drawn from each with replacement, scaled by the holding's
// weight, and summed elementwise into one composite vector. Draws are
// independent across holdings, so cross-asset correlation is not modeled.
func (s *Service) ExpectedReturn(p *models.Portfolio, periodExpr string, trials int) (*models.SimulationResult, error) {
	if trials <= 0 {
		return nil, fmt.Errorf("trials must be positive (got %d)", trials)
	}

	metricName := fmt.Sprintf("rolling/%s", periodExpr)

	distributions := make([][]float64, len(p.Tickers))
	minSamples := 0
	var insufficient []string

	for i, t := range p.Tickers {
		if !t.HasData() {
			insufficient = append(insufficient, t.Symbol)
			continue
		}
		result, err := s.engine.Compute(t.Series, metricName, metrics.Options{})
		if err != nil {
			return nil, fmt.Errorf("rolling returns for %s: %w", t.Symbol, err)
		}
		if len(result.Values) == 0 {
			insufficient = append(insufficient, t.Symbol)
			continue
		}
		distributions[i] = result.Values
		if minSamples == 0 || len(result.Values) < minSamples {
			minSamples = len(result.Values)
		}
	}

	if len(insufficient) > 0 {
		return nil, fmt.Errorf("no rolling-return data for %s: %w",
			strings.Join(insufficient, ", "), models.ErrInsufficientData)
	}

	composite := make([]float64, trials)
	for i, dist := range distributions {
		weight := p.Weights[i]
		for trial := 0; trial < trials; trial++ {
			composite[trial] += weight * dist[s.rng.Intn(len(dist))]
		}
	}

	stats := &metrics.Result{Values: composite}
	result := &models.SimulationResult{
		Mean:           stats.Mean(),
		StdDev:         stats.Std(),
		MinSampleCount: minSamples,
		Trials:         trials,
	}

	s.logger.Debug().
		Str("portfolio", p.String()).
		Str("period", periodExpr).
		Int("trials", trials).
		Float64("mean", result.Mean).
		Float64("std", result.StdDev).
		Msg("Simulation complete")

	return result, nil
}
