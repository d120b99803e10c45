// Package period converts human financial-period expressions to day counts.
package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bobmcallan/folio/internal/models"
)

// DefaultDurations maps period keywords to their base day counts. The "ytd"
// entry is resolved against the clock at parse time. The set is a
// configuration value: construct a Parser with WithDurations to extend it.
var DefaultDurations = map[string]int{
	"day":     1,
	"week":    7,
	"month":   30,
	"quarter": 91,
	"year":    365,
}

// Parser converts expressions of the form "<n>", "<keyword>" or
// "<multiplier>-<keyword>" into day counts. Parsing is pure except for
// "ytd", which depends on the current date by design.
type Parser struct {
	durations map[string]int
	now       func() time.Time
}

// Option configures the parser.
type Option func(*Parser)

// WithDurations replaces the keyword duration table.
func WithDurations(durations map[string]int) Option {
	return func(p *Parser) {
		p.durations = durations
	}
}

// WithClock sets the clock used to resolve "ytd". Tests inject a fixed time.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// NewParser returns a parser with the default keyword table and wall clock.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		durations: DefaultDurations,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Days converts a period expression to a number of days. A bare integer is
// taken directly as a day count; otherwise the expression must match
// [<multiplier>-]<keyword> with a keyword from the duration table or "ytd".
func (p *Parser) Days(period string) (int, error) {
	period = strings.TrimSpace(period)
	if period == "" {
		return 0, fmt.Errorf("%w: empty period", models.ErrInvalidPeriod)
	}

	// Raw day counts pass straight through.
	if days, err := strconv.Atoi(period); err == nil {
		if days < 0 {
			return 0, fmt.Errorf("%w: negative day count %d", models.ErrInvalidPeriod, days)
		}
		return days, nil
	}

	multiplier := 1
	keyword := period
	if i := strings.Index(period, "-"); i >= 0 {
		m, err := strconv.Atoi(period[:i])
		if err != nil {
			return 0, fmt.Errorf("%w: %q does not match [<multiplier>-]<keyword>", models.ErrInvalidPeriod, period)
		}
		multiplier = m
		keyword = period[i+1:]
	}

	base, err := p.baseDays(keyword)
	if err != nil {
		return 0, err
	}
	return multiplier * base, nil
}

// Split separates a period expression into its multiplier and keyword
// parts. Bare keywords have multiplier 1; raw integers and malformed
// expressions report ok=false.
func Split(period string) (multiplier int, keyword string, ok bool) {
	if i := strings.Index(period, "-"); i >= 0 {
		m, err := strconv.Atoi(period[:i])
		if err != nil {
			return 0, "", false
		}
		return m, period[i+1:], true
	}
	if _, err := strconv.Atoi(period); err == nil {
		return 0, "", false
	}
	return 1, period, true
}

func (p *Parser) baseDays(keyword string) (int, error) {
	if keyword == "ytd" {
		now := p.now()
		jan1 := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return int(now.Sub(jan1).Hours() / 24), nil
	}
	base, ok := p.durations[keyword]
	if !ok {
		return 0, fmt.Errorf("%w: %q does not match supported formats", models.ErrInvalidPeriod, keyword)
	}
	return base, nil
}
