// Package metrics computes return metrics over price series. Metric names
// follow the grammar "type/period[/option]", e.g. "rolling/6-month/a".
package metrics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/period"
)

const annualizeOption = "a"

// Options controls metric evaluation.
type Options struct {
	// Average collapses the result to a single mean value.
	Average bool
	// End sets the trailing-return end date; zero means now.
	End time.Time
}

// Result holds a metric's value distribution. A trailing return yields one
// value; a rolling return yields one value per window.
type Result struct {
	Values []float64
}

// Mean returns the arithmetic mean of the values, or NaN when empty.
func (r *Result) Mean() float64 {
	if len(r.Values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range r.Values {
		sum += v
	}
	return sum / float64(len(r.Values))
}

// Std returns the population standard deviation, or NaN when empty.
func (r *Result) Std() float64 {
	if len(r.Values) == 0 {
		return math.NaN()
	}
	mean := r.Mean()
	var ss float64
	for _, v := range r.Values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(r.Values)))
}

type handler func(series models.PriceSeries, periodExpr string, opts Options) ([]float64, error)

// Engine evaluates metric names against price series.
type Engine struct {
	parser   *period.Parser
	logger   *common.Logger
	now      func() time.Time
	handlers map[string]handler
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a metric engine backed by the given period parser.
func NewEngine(parser *period.Parser, logger *common.Logger, opts ...Option) *Engine {
	e := &Engine{
		parser: parser,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	// Closed dispatch table keyed by metric type.
	e.handlers = map[string]handler{
		"rolling":  e.rolling,
		"trailing": e.trailing,
	}
	return e
}

// Compute evaluates a metric name against a series. The series must have at
// least one point.
func (e *Engine) Compute(series models.PriceSeries, name string, opts Options) (*Result, error) {
	metricType, periodExpr, option, err := parseName(name)
	if err != nil {
		return nil, err
	}

	h, ok := e.handlers[metricType]
	if !ok {
		return nil, fmt.Errorf("metric type %q: %w", metricType, models.ErrUnsupportedMetric)
	}

	if series.Len() == 0 {
		return nil, fmt.Errorf("metric %q: %w", name, models.ErrNoDataAvailable)
	}

	values, err := h(series, periodExpr, opts)
	if err != nil {
		return nil, err
	}

	switch option {
	case "":
	case annualizeOption:
		values, err = e.annualize(values, periodExpr)
		if err != nil {
			return nil, err
		}
	default:
		e.logger.Warn().Str("metric", name).Str("option", option).Msg("Unknown metric option ignored")
	}

	if opts.Average && len(values) > 0 {
		r := &Result{Values: values}
		values = []float64{r.Mean()}
	}
	return &Result{Values: values}, nil
}

// parseName splits "type/period[/option]" into its parts.
func parseName(name string) (metricType, periodExpr, option string, err error) {
	parts := strings.Split(name, "/")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
		return "", "", "", fmt.Errorf("metric name %q: %w", name, models.ErrInvalidMetricName)
	}
	metricType, periodExpr = parts[0], parts[1]
	if len(parts) == 3 {
		option = parts[2]
	}
	return metricType, periodExpr, option, nil
}

// rolling computes (price[i+n] - price[i]) / price[i] for every valid index
// pair in the ascending series. Fewer than n+1 points yields an empty
// distribution, not an error.
func (e *Engine) rolling(series models.PriceSeries, periodExpr string, _ Options) ([]float64, error) {
	n, err := e.parser.Days(periodExpr)
	if err != nil {
		return nil, err
	}
	if series.Len() < n+1 {
		return nil, nil
	}

	values := make([]float64, 0, series.Len()-n)
	for i := 0; i+n < series.Len(); i++ {
		start := series[i].Price
		values = append(values, (series[i+n].Price-start)/start)
	}
	return values, nil
}

// trailing computes the point-to-point return from end-period to end, with
// nearest-date fallback on both endpoints. Calendar-unit keywords subtract
// calendar units so month and year boundaries land exactly.
func (e *Engine) trailing(series models.PriceSeries, periodExpr string, opts Options) ([]float64, error) {
	end := opts.End
	if end.IsZero() {
		end = e.now()
	}
	end = models.Day(end)

	start, err := e.trailingStart(end, periodExpr)
	if err != nil {
		return nil, err
	}

	startPt, stale, err := series.Nearest(start)
	if err != nil {
		return nil, err
	}
	if stale {
		e.logger.Warn().
			Str("date", start.Format(models.DateFormat)).
			Str("max", series.MaxDate().Format(models.DateFormat)).
			Msg("Target date exceeds max available data")
	}
	endPt, stale, err := series.Nearest(end)
	if err != nil {
		return nil, err
	}
	if stale {
		e.logger.Warn().
			Str("date", end.Format(models.DateFormat)).
			Str("max", series.MaxDate().Format(models.DateFormat)).
			Msg("Target date exceeds max available data")
	}
	return []float64{(endPt.Price - startPt.Price) / startPt.Price}, nil
}

// trailingStart subtracts the period from the end date.
func (e *Engine) trailingStart(end time.Time, periodExpr string) (time.Time, error) {
	if k, keyword, ok := period.Split(periodExpr); ok {
		switch keyword {
		case "day":
			return end.AddDate(0, 0, -k), nil
		case "month":
			return end.AddDate(0, -k, 0), nil
		case "year":
			return end.AddDate(-k, 0, 0), nil
		}
	}
	days, err := e.parser.Days(periodExpr)
	if err != nil {
		return time.Time{}, err
	}
	return end.AddDate(0, 0, -days), nil
}

// annualize converts raw period returns to compounding one-year rates.
func (e *Engine) annualize(values []float64, periodExpr string) ([]float64, error) {
	days, err := e.parser.Days(periodExpr)
	if err != nil {
		return nil, err
	}
	if days == 0 {
		return nil, fmt.Errorf("%w: cannot annualize a zero-day period", models.ErrInvalidPeriod)
	}
	exponent := 365.0 / float64(days)
	out := make([]float64, len(values))
	for i, r := range values {
		out[i] = math.Pow(1+r, exponent) - 1
	}
	return out, nil
}
