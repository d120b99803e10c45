// Package models defines data structures for Folio
package models

import (
	"fmt"
	"sort"
	"time"
)

// DateFormat is the on-disk and wire representation of calendar dates.
const DateFormat = "2006-01-02"

// Day truncates a timestamp to its calendar date (midnight UTC). All series
// dates are stored in this canonical form so equality checks are exact.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// PricePoint is a single closing price on a calendar date.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// PriceSeries is a date-ordered price history: ascending by date, strictly
// one point per calendar date. The zero value is an empty, usable series.
type PriceSeries []PricePoint

// Len returns the number of points in the series.
func (s PriceSeries) Len() int { return len(s) }

// MaxDate returns the most recent date in the series, or the zero time for
// an empty series.
func (s PriceSeries) MaxDate() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Date
}

// MinDate returns the earliest date in the series, or the zero time for an
// empty series.
func (s PriceSeries) MinDate() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[0].Date
}

// Sort orders the series ascending by date in place.
func (s PriceSeries) Sort() {
	sort.Slice(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
}

// Merge unions the series with incoming points by date. For dates present in
// both, the incoming value wins, which lets a fresh download correct
// preliminary near-term values. The result is sorted ascending with no
// duplicate dates, so merging the same incoming data twice is a no-op.
func (s PriceSeries) Merge(incoming PriceSeries) PriceSeries {
	byDate := make(map[time.Time]float64, len(s)+len(incoming))
	for _, pt := range s {
		byDate[Day(pt.Date)] = pt.Price
	}
	for _, pt := range incoming {
		byDate[Day(pt.Date)] = pt.Price
	}

	merged := make(PriceSeries, 0, len(byDate))
	for date, price := range byDate {
		merged = append(merged, PricePoint{Date: date, Price: price})
	}
	merged.Sort()
	return merged
}

// Nearest returns the point whose date is chronologically closest to target,
// breaking ties toward the earlier date. stale reports that the target falls
// after the last available date, which signals out-of-date local data rather
// than a programming error; callers surface it as a warning, not a failure.
func (s PriceSeries) Nearest(target time.Time) (pt PricePoint, stale bool, err error) {
	if len(s) == 0 {
		return PricePoint{}, false, fmt.Errorf("%w: empty series", ErrNoDataAvailable)
	}

	target = Day(target)
	stale = target.After(s.MaxDate())

	// First point at or after target.
	i := sort.Search(len(s), func(i int) bool { return !s[i].Date.Before(target) })
	switch {
	case i == len(s):
		return s[len(s)-1], stale, nil
	case i == 0:
		return s[0], stale, nil
	}
	if s[i].Date.Equal(target) {
		return s[i], stale, nil
	}

	// Equidistant targets resolve to the earlier date.
	before := target.Sub(s[i-1].Date)
	after := s[i].Date.Sub(target)
	if before <= after {
		return s[i-1], stale, nil
	}
	return s[i], stale, nil
}

// PriceAt returns the price on the given date. With exact set, a missing
// date is an ErrDateNotFound failure; otherwise the nearest date is used.
// Callers that need the out-of-range staleness signal on the non-exact
// path should use Nearest directly.
func (s PriceSeries) PriceAt(date time.Time, exact bool) (float64, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("%w: empty series", ErrNoDataAvailable)
	}

	date = Day(date)
	i := sort.Search(len(s), func(i int) bool { return !s[i].Date.Before(date) })
	if i < len(s) && s[i].Date.Equal(date) {
		return s[i].Price, nil
	}
	if exact {
		return 0, fmt.Errorf("%w: %s", ErrDateNotFound, date.Format(DateFormat))
	}

	pt, _, err := s.Nearest(date)
	if err != nil {
		return 0, err
	}
	return pt.Price, nil
}

// RelativeTo derives a relative price series against a base series (for
// example a stock priced in gold ounces) by dividing point-wise on the dates
// both series contain. Non-overlapping dates are dropped, never interpolated.
func (s PriceSeries) RelativeTo(base PriceSeries) PriceSeries {
	basePrices := make(map[time.Time]float64, len(base))
	for _, pt := range base {
		basePrices[Day(pt.Date)] = pt.Price
	}

	relative := make(PriceSeries, 0, len(s))
	for _, pt := range s {
		other, ok := basePrices[Day(pt.Date)]
		if !ok || other == 0 {
			continue
		}
		relative = append(relative, PricePoint{Date: Day(pt.Date), Price: pt.Price / other})
	}
	relative.Sort()
	return relative
}

// Prices returns the price column in date order.
func (s PriceSeries) Prices() []float64 {
	out := make([]float64, len(s))
	for i, pt := range s {
		out[i] = pt.Price
	}
	return out
}
