// Package calendar resolves completed trading days against an exchange
// schedule: weekends, market holidays, half days, and the session close
// time in the exchange's timezone.
package calendar

import (
	"fmt"
	"time"

	"github.com/bobmcallan/folio/internal/models"
)

const (
	// DefaultTimezone is the reference exchange's local timezone.
	DefaultTimezone = "America/New_York"

	regularClose = 16 * time.Hour // 4:00pm local
	earlyClose   = 13 * time.Hour // 1:00pm local on half days
)

// Calendar answers "which trading days are valid and when do they close".
// The clock is injectable so the in-progress-session rule is testable.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// Option configures the calendar.
type Option func(*Calendar)

// WithClock sets the wall clock used for same-day close checks.
func WithClock(now func() time.Time) Option {
	return func(c *Calendar) {
		c.now = now
	}
}

// New builds a calendar for the exchange timezone. An empty timezone selects
// the default.
func New(timezone string, opts ...Option) (*Calendar, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid market timezone %q: %w", timezone, err)
	}

	c := &Calendar{loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// IsTradingDay reports whether the exchange holds a session on the date.
func (c *Calendar) IsTradingDay(t time.Time) bool {
	d := models.Day(t)
	if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		return false
	}
	return !holidays(d.Year())[d]
}

// ValidDays lists every trading day in [start, end], ascending.
func (c *Calendar) ValidDays(start, end time.Time) []time.Time {
	var days []time.Time
	for d := models.Day(start); !d.After(models.Day(end)); d = d.AddDate(0, 0, 1) {
		if c.IsTradingDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// CloseTime returns the session close on the given trading day, in the
// exchange timezone. Half days close early.
func (c *Calendar) CloseTime(t time.Time) time.Time {
	d := models.Day(t)
	close := regularClose
	if halfDays(d.Year())[d] {
		close = earlyClose
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, c.loc).Add(close)
}

// Resolve returns the closest completed and valid market day relative to
// the reference date.
//
// The anchor is the latest trading day not after the reference. When the
// anchor is the current day and the session has not closed yet, the anchor
// steps back one trading day: an in-progress session's data is not
// complete, and reporting it "current" would mask stale local data. From
// the anchor, previous steps one trading day earlier, latest returns the
// anchor, and next steps one later.
//
// The search considers trading days within ±searchDays of the reference
// and fails with ErrNoMarketData when the window cannot satisfy the
// request; callers should retry with a larger window.
func (c *Calendar) Resolve(direction models.Direction, reference time.Time, searchDays int) (time.Time, error) {
	if _, err := models.ParseDirection(string(direction)); err != nil {
		return time.Time{}, err
	}

	ref := models.Day(reference)
	days := c.ValidDays(ref.AddDate(0, 0, -searchDays), ref.AddDate(0, 0, searchDays))
	if len(days) == 0 {
		return time.Time{}, fmt.Errorf("%w: no valid dates within %d days, try expanding window", models.ErrNoMarketData, searchDays)
	}

	// Latest valid day at or before the reference.
	idx := -1
	for i, d := range days {
		if d.After(ref) {
			break
		}
		idx = i
	}
	if idx < 0 {
		return time.Time{}, fmt.Errorf("%w: no valid dates at or before %s within %d days", models.ErrNoMarketData, ref.Format(models.DateFormat), searchDays)
	}

	// A same-day anchor only counts once its session has closed. Past
	// reference dates are assumed to be referenced after close.
	now := c.now().In(c.loc)
	if sameDate(days[idx], now) && now.Before(c.CloseTime(days[idx])) {
		idx--
	}

	switch direction {
	case models.DirectionPrevious:
		idx--
	case models.DirectionNext:
		idx++
	}

	if idx < 0 || idx >= len(days) {
		return time.Time{}, fmt.Errorf("%w: %s day falls outside the %d-day search window", models.ErrNoMarketData, direction, searchDays)
	}
	return days[idx], nil
}

// LatestCompleted is shorthand for resolving the most recent completed
// session relative to now, the "is local data current" anchor.
func (c *Calendar) LatestCompleted(searchDays int) (time.Time, error) {
	return c.Resolve(models.DirectionLatest, c.now().In(c.loc), searchDays)
}

func sameDate(day, now time.Time) bool {
	y1, m1, d1 := day.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
