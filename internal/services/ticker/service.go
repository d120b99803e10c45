// Package ticker manages the instrument lifecycle: loading local price
// history, refreshing it from the remote provider, and rendering charts.
package ticker

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// A series older than this gets a full-history fetch instead of the compact
// recent window.
const fullFetchStaleDays = 100

// Service implements TickerService
type Service struct {
	store      interfaces.SeriesStore
	prices     interfaces.PriceClient
	holdings   interfaces.HoldingsClient
	calendar   interfaces.MarketCalendar
	logger     *common.Logger
	searchDays int
	now        func() time.Time
}

var _ interfaces.TickerService = (*Service)(nil)

// Option configures the service.
type Option func(*Service)

// WithClock overrides the staleness clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithSearchDays sets the calendar search window.
func WithSearchDays(days int) Option {
	return func(s *Service) { s.searchDays = days }
}

// NewService creates a new ticker service
func NewService(
	store interfaces.SeriesStore,
	prices interfaces.PriceClient,
	holdings interfaces.HoldingsClient,
	calendar interfaces.MarketCalendar,
	logger *common.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		store:      store,
		prices:     prices,
		holdings:   holdings,
		calendar:   calendar,
		logger:     logger,
		searchDays: 7,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load constructs a ticker from local storage only.
func (s *Service) Load(_ context.Context, symbol string) (*models.Ticker, error) {
	t := models.NewTicker(symbol)

	series, err := s.store.LoadSeries(t.Symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to load series for %s: %w", t.Symbol, err)
	}
	t.Series = series

	holdings, err := s.store.LoadHoldings(t.Symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings for %s: %w", t.Symbol, err)
	}
	t.Holdings = holdings

	return t, nil
}

// LoadRelative loads a ticker and prices it relative to a base instrument's
// stored history on overlapping dates.
func (s *Service) LoadRelative(ctx context.Context, symbol, base string) (*models.Ticker, error) {
	t, err := s.Load(ctx, symbol)
	if err != nil {
		return nil, err
	}

	baseSeries, err := s.store.LoadSeries(models.CanonicalSymbol(base))
	if err != nil {
		return nil, fmt.Errorf("failed to load base series for %s: %w", base, err)
	}
	if baseSeries.Len() == 0 {
		return nil, fmt.Errorf("base %s: %w", base, models.ErrNoDataAvailable)
	}

	t.Relative = t.Series.RelativeTo(baseSeries)
	return t, nil
}

// IsCurrent reports whether the series covers the most recent completed
// market day. An empty series is never current.
func (s *Service) IsCurrent(t *models.Ticker) (bool, error) {
	if !t.HasData() {
		return false, nil
	}
	latest, err := s.calendar.LatestCompleted(s.searchDays)
	if err != nil {
		return false, err
	}
	return !t.Series.MaxDate().Before(latest), nil
}

// Refresh fetches, merges, and persists price data for a ticker. Refreshing
// an already-current ticker is a no-op; invoking refresh twice in a row
// fetches at most once.
func (s *Service) Refresh(ctx context.Context, t *models.Ticker, holdings bool) error {
	current, err := s.IsCurrent(t)
	if err != nil {
		return err
	}

	if !current {
		mode := s.fetchMode(t)
		s.logger.Info().Str("symbol", t.Symbol).Str("mode", string(mode)).Msg("Refreshing price series")

		incoming, err := s.prices.GetTimeSeries(ctx, t.Symbol, mode)
		if err != nil {
			return fmt.Errorf("failed to fetch prices for %s: %w", t.Symbol, err)
		}

		t.Series = t.Series.Merge(incoming)
		if err := s.store.SaveSeries(t.Symbol, t.Series); err != nil {
			return err
		}
		t.RefreshedAt = s.now()
	} else {
		s.logger.Debug().Str("symbol", t.Symbol).Msg("Series already current, skipping fetch")
	}

	if holdings {
		table, err := s.holdings.GetHoldings(ctx, t.Symbol)
		if err != nil {
			return fmt.Errorf("failed to fetch holdings for %s: %w", t.Symbol, err)
		}
		t.Holdings = table
		if err := s.store.SaveHoldings(t.Symbol, table); err != nil {
			return err
		}
	}

	return nil
}

// fetchMode picks full history when nothing is stored locally or the local
// maximum date is more than fullFetchStaleDays old.
func (s *Service) fetchMode(t *models.Ticker) interfaces.FetchMode {
	if !t.HasData() {
		return interfaces.FetchFull
	}
	staleness := s.now().Sub(t.Series.MaxDate())
	if staleness > fullFetchStaleDays*24*time.Hour {
		return interfaces.FetchFull
	}
	return interfaces.FetchCompact
}

// RefreshAll refreshes a batch of symbols. Provider failures are recorded
// per item and do not stop the batch.
func (s *Service) RefreshAll(ctx context.Context, symbols []string, holdings bool) []models.RefreshResult {
	results := make([]models.RefreshResult, 0, len(symbols))

	for _, symbol := range symbols {
		result := models.RefreshResult{Symbol: models.CanonicalSymbol(symbol)}

		t, err := s.Load(ctx, symbol)
		if err != nil {
			result.Err = err
			results = append(results, result)
			continue
		}

		if current, err := s.IsCurrent(t); err == nil && current && !holdings {
			result.Skipped = true
			results = append(results, result)
			continue
		}

		if err := s.Refresh(ctx, t, holdings); err != nil {
			if errors.Is(err, models.ErrProvider) {
				s.logger.Warn().Str("symbol", result.Symbol).Err(err).Msg("Provider failure, skipping instrument")
			}
			result.Err = err
		}
		results = append(results, result)
	}

	return results
}

// SaveChart renders the ticker's price history to a PNG under the charts
// subdirectory and returns the written path.
func (s *Service) SaveChart(t *models.Ticker) (string, error) {
	if !t.HasData() {
		return "", fmt.Errorf("%s: %w", t.Symbol, models.ErrNoDataAvailable)
	}

	png, err := RenderPriceChart(t)
	if err != nil {
		return "", err
	}

	key := t.Symbol + ".png"
	if err := s.store.WriteRaw("charts", key, png); err != nil {
		return "", err
	}

	path := filepath.Join(s.store.DataPath(), "charts", key)
	s.logger.Info().Str("symbol", t.Symbol).Str("path", path).Msg("Chart saved")
	return path, nil
}
