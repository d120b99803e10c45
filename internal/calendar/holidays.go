package calendar

import "time"

// Full-session market holidays for a given year, as calendar dates. Rules
// follow the NYSE schedule: fixed-date holidays shift to Friday when they
// fall on Saturday and to Monday when they fall on Sunday, except New
// Year's Day, which is never observed in the prior year.
func holidays(year int) map[time.Time]bool {
	h := make(map[time.Time]bool)
	add := func(t time.Time) { h[t] = true }

	// New Year's Day: Sunday rolls to Monday, Saturday is not observed.
	newYears := date(year, time.January, 1)
	if newYears.Weekday() == time.Sunday {
		add(newYears.AddDate(0, 0, 1))
	} else if newYears.Weekday() != time.Saturday {
		add(newYears)
	}

	add(nthWeekday(year, time.January, time.Monday, 3))  // Martin Luther King Jr. Day
	add(nthWeekday(year, time.February, time.Monday, 3)) // Washington's Birthday
	add(easter(year).AddDate(0, 0, -2))                  // Good Friday
	add(lastWeekday(year, time.May, time.Monday))        // Memorial Day
	if year >= 2022 {
		add(observed(date(year, time.June, 19))) // Juneteenth
	}
	add(observed(date(year, time.July, 4)))               // Independence Day
	add(nthWeekday(year, time.September, time.Monday, 1)) // Labor Day
	add(nthWeekday(year, time.November, time.Thursday, 4)) // Thanksgiving
	add(observed(date(year, time.December, 25)))          // Christmas

	return h
}

// halfDays returns early-close sessions for a year: July 3, the day after
// Thanksgiving, and Christmas Eve, when they land on a regular weekday.
func halfDays(year int) map[time.Time]bool {
	h := make(map[time.Time]bool)
	maybe := func(t time.Time) {
		if t.Weekday() != time.Saturday && t.Weekday() != time.Sunday {
			h[t] = true
		}
	}
	maybe(date(year, time.July, 3))
	maybe(nthWeekday(year, time.November, time.Thursday, 4).AddDate(0, 0, 1))
	maybe(date(year, time.December, 24))
	return h
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// observed shifts Saturday holidays to Friday and Sunday holidays to Monday.
func observed(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, -1)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	}
	return t
}

// nthWeekday returns the nth given weekday of a month (1-based).
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	t := date(year, month, 1)
	offset := (int(weekday) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset+(n-1)*7)
}

// lastWeekday returns the final given weekday of a month.
func lastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	t := date(year, month+1, 1).AddDate(0, 0, -1)
	offset := (int(t.Weekday()) - int(weekday) + 7) % 7
	return t.AddDate(0, 0, -offset)
}

// easter computes Easter Sunday using the Anonymous Gregorian algorithm.
func easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return date(year, time.Month(month), day)
}
