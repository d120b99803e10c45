// Package seriesfs implements flat-file CSV storage for price series and
// holdings tables, one instrument per file.
package seriesfs

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

const (
	seriesSuffix   = ".csv"
	holdingsSuffix = ".holdings.csv"
)

// Store provides file-based CSV storage for price series and holdings.
type Store struct {
	basePath string
	logger   *common.Logger
}

var _ interfaces.SeriesStore = (*Store)(nil)

// NewStore opens a series store rooted at path, creating it if needed.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create series store path %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("Series store opened")
	return &Store{basePath: path, logger: logger}, nil
}

// DataPath returns the base data path.
func (s *Store) DataPath() string {
	return s.basePath
}

func (s *Store) seriesPath(symbol string) string {
	return filepath.Join(s.basePath, sanitizeKey(symbol)+seriesSuffix)
}

func (s *Store) holdingsPath(symbol string) string {
	return filepath.Join(s.basePath, sanitizeKey(symbol)+holdingsSuffix)
}

// HasSeries reports whether a series file exists for the symbol.
func (s *Store) HasSeries(symbol string) bool {
	info, err := os.Stat(s.seriesPath(symbol))
	return err == nil && !info.IsDir() && info.Size() > 0
}

// LoadSeries reads the stored series for a symbol. A missing file yields an
// empty series, not an error.
func (s *Store) LoadSeries(symbol string) (models.PriceSeries, error) {
	rows, err := readCSV(s.seriesPath(symbol))
	if err != nil {
		if os.IsNotExist(err) {
			return models.PriceSeries{}, nil
		}
		return nil, fmt.Errorf("failed to read series for '%s': %w", symbol, err)
	}

	series := make(models.PriceSeries, 0, len(rows))
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("malformed series row %d for '%s'", i+1, symbol)
		}
		date, err := time.Parse(models.DateFormat, strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid date %q in series for '%s': %w", row[0], symbol, err)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q in series for '%s': %w", row[1], symbol, err)
		}
		series = append(series, models.PricePoint{Date: models.Day(date), Price: price})
	}
	series.Sort()
	return series, nil
}

// SaveSeries replaces the stored series for a symbol atomically.
func (s *Store) SaveSeries(symbol string, series models.PriceSeries) error {
	series.Sort()
	rows := make([][]string, 0, len(series)+1)
	rows = append(rows, []string{"date", "price"})
	for _, pt := range series {
		rows = append(rows, []string{
			pt.Date.Format(models.DateFormat),
			strconv.FormatFloat(pt.Price, 'f', -1, 64),
		})
	}
	if err := s.writeCSV(s.seriesPath(symbol), rows); err != nil {
		return fmt.Errorf("failed to save series for '%s': %w", symbol, err)
	}
	s.logger.Debug().Str("symbol", symbol).Int("points", series.Len()).Msg("Series saved")
	return nil
}

// LoadHoldings reads the stored holdings table for a symbol. A missing file
// yields nil: the instrument is not a fund.
func (s *Store) LoadHoldings(symbol string) (models.HoldingsTable, error) {
	rows, err := readCSV(s.holdingsPath(symbol))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read holdings for '%s': %w", symbol, err)
	}

	table := make(models.HoldingsTable, 0, len(rows))
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("malformed holdings row %d for '%s'", i+1, symbol)
		}
		pct, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q in holdings for '%s': %w", row[1], symbol, err)
		}
		table = append(table, models.HoldingsRow{
			Symbol: models.CanonicalSymbol(row[0]),
			Pct:    pct,
		})
	}
	table.Sort()
	return table, nil
}

// SaveHoldings replaces the stored holdings table for a symbol atomically.
func (s *Store) SaveHoldings(symbol string, table models.HoldingsTable) error {
	table.Sort()
	rows := make([][]string, 0, len(table)+1)
	rows = append(rows, []string{"symbol", "pct"})
	for _, h := range table {
		rows = append(rows, []string{
			h.Symbol,
			strconv.FormatFloat(h.Pct, 'f', -1, 64),
		})
	}
	if err := s.writeCSV(s.holdingsPath(symbol), rows); err != nil {
		return fmt.Errorf("failed to save holdings for '%s': %w", symbol, err)
	}
	s.logger.Debug().Str("symbol", symbol).Int("rows", len(table)).Msg("Holdings saved")
	return nil
}

// WriteRaw writes arbitrary binary data to a subdirectory atomically.
func (s *Store) WriteRaw(subdir, key string, data []byte) error {
	dir := filepath.Join(s.basePath, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return writeAtomic(filepath.Join(dir, sanitizeKey(key)), data)
}

// --- helpers ---

func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(strings.TrimSpace(key))
}

func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(row[len(row)-1]), 64)
	return err != nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

func (s *Store) writeCSV(target string, rows [][]string) error {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return writeAtomic(target, []byte(sb.String()))
}

func writeAtomic(target string, data []byte) error {
	dir := filepath.Dir(target)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
