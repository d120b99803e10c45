package models

import (
	"errors"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seriesFixture() PriceSeries {
	return PriceSeries{
		{Date: day(2024, 1, 2), Price: 100},
		{Date: day(2024, 1, 3), Price: 101},
		{Date: day(2024, 1, 4), Price: 102},
		{Date: day(2024, 1, 8), Price: 104},
	}
}

func TestMerge_IncomingWins(t *testing.T) {
	existing := seriesFixture()
	incoming := PriceSeries{
		{Date: day(2024, 1, 8), Price: 105}, // corrected value
		{Date: day(2024, 1, 9), Price: 106},
	}

	merged := existing.Merge(incoming)

	if merged.Len() != 5 {
		t.Fatalf("merged len = %d, want 5", merged.Len())
	}
	got, err := merged.PriceAt(day(2024, 1, 8), true)
	if err != nil {
		t.Fatalf("PriceAt: %v", err)
	}
	if got != 105 {
		t.Errorf("price on overlapping date = %v, want incoming value 105", got)
	}
}

func TestMerge_SortsAndDeduplicates(t *testing.T) {
	// Incoming arrives most-recent-first, as downloads do.
	existing := PriceSeries{}
	incoming := PriceSeries{
		{Date: day(2024, 1, 9), Price: 106},
		{Date: day(2024, 1, 8), Price: 104},
		{Date: day(2024, 1, 8), Price: 104},
	}

	merged := existing.Merge(incoming)

	if merged.Len() != 2 {
		t.Fatalf("merged len = %d, want 2", merged.Len())
	}
	if !merged[0].Date.Before(merged[1].Date) {
		t.Errorf("merged series not ascending: %v, %v", merged[0].Date, merged[1].Date)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	existing := seriesFixture()
	incoming := PriceSeries{
		{Date: day(2024, 1, 4), Price: 103},
		{Date: day(2024, 1, 9), Price: 106},
	}

	once := existing.Merge(incoming)
	twice := once.Merge(incoming)

	if len(once) != len(twice) {
		t.Fatalf("second merge changed length: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("point %d changed on re-merge: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestMergeProperties(t *testing.T) {
	epoch := day(2020, 1, 1)
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	offsetsGen := gen.SliceOf(gen.IntRange(0, 400))

	// fromOffsets derives a series from day offsets; base shifts prices so
	// two series built from overlapping offsets disagree on shared dates.
	fromOffsets := func(offsets []int, base float64) PriceSeries {
		s := make(PriceSeries, 0, len(offsets))
		for _, off := range offsets {
			s = append(s, PricePoint{Date: epoch.AddDate(0, 0, off), Price: base + float64(off)})
		}
		return s
	}

	properties.Property("merge is idempotent", prop.ForAll(
		func(a, b []int) bool {
			existing := fromOffsets(a, 10)
			incoming := fromOffsets(b, 500)
			once := existing.Merge(incoming)
			twice := once.Merge(incoming)
			if len(once) != len(twice) {
				return false
			}
			for i := range once {
				if once[i] != twice[i] {
					return false
				}
			}
			return true
		},
		offsetsGen, offsetsGen,
	))

	properties.Property("merge result is ascending with unique dates", prop.ForAll(
		func(a, b []int) bool {
			merged := fromOffsets(a, 10).Merge(fromOffsets(b, 500))
			for i := 1; i < len(merged); i++ {
				if !merged[i-1].Date.Before(merged[i].Date) {
					return false
				}
			}
			return true
		},
		offsetsGen, offsetsGen,
	))

	properties.Property("nearest returns a member date within bounds", prop.ForAll(
		func(a []int, offset int) bool {
			merged := PriceSeries{}.Merge(fromOffsets(a, 10)) // normalize
			if merged.Len() == 0 {
				return true
			}
			target := epoch.AddDate(0, 0, offset)
			if target.Before(merged.MinDate()) || target.After(merged.MaxDate()) {
				return true
			}
			pt, _, err := merged.Nearest(target)
			if err != nil {
				return false
			}
			_, lookupErr := merged.PriceAt(pt.Date, true)
			return lookupErr == nil
		},
		offsetsGen, gen.IntRange(0, 400),
	))

	properties.TestingRun(t)
}

func TestNearest_TieBreaksEarlier(t *testing.T) {
	s := PriceSeries{
		{Date: day(2024, 1, 2), Price: 100},
		{Date: day(2024, 1, 4), Price: 102},
	}

	pt, stale, err := s.Nearest(day(2024, 1, 3))
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if stale {
		t.Error("in-range target reported stale")
	}
	if !pt.Date.Equal(day(2024, 1, 2)) {
		t.Errorf("equidistant target resolved to %s, want earlier date 2024-01-02", pt.Date.Format(DateFormat))
	}
}

func TestNearest_StaleBeyondMax(t *testing.T) {
	s := seriesFixture()

	pt, stale, err := s.Nearest(day(2024, 2, 1))
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if !stale {
		t.Error("target beyond max date not reported stale")
	}
	if !pt.Date.Equal(day(2024, 1, 8)) {
		t.Errorf("nearest = %s, want max date 2024-01-08", pt.Date.Format(DateFormat))
	}
}

func TestNearest_EmptySeries(t *testing.T) {
	_, _, err := PriceSeries{}.Nearest(day(2024, 1, 1))
	if !errors.Is(err, ErrNoDataAvailable) {
		t.Errorf("err = %v, want ErrNoDataAvailable", err)
	}
}

func TestPriceAt(t *testing.T) {
	s := seriesFixture()

	tests := []struct {
		name    string
		date    time.Time
		exact   bool
		want    float64
		wantErr error
	}{
		{"exact hit", day(2024, 1, 3), true, 101, nil},
		{"exact miss", day(2024, 1, 5), true, 0, ErrDateNotFound},
		{"fallback to nearest", day(2024, 1, 5), false, 102, nil},
		{"weekend falls back", day(2024, 1, 6), false, 102, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.PriceAt(tt.date, tt.exact)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("PriceAt: %v", err)
			}
			if got != tt.want {
				t.Errorf("price = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRelativeTo(t *testing.T) {
	stock := PriceSeries{
		{Date: day(2024, 1, 2), Price: 100},
		{Date: day(2024, 1, 3), Price: 110},
		{Date: day(2024, 1, 4), Price: 120},
	}
	gold := PriceSeries{
		{Date: day(2024, 1, 2), Price: 2000},
		{Date: day(2024, 1, 4), Price: 2400},
		{Date: day(2024, 1, 5), Price: 2500},
	}

	relative := stock.RelativeTo(gold)

	if relative.Len() != 2 {
		t.Fatalf("relative len = %d, want 2 (overlap only, no interpolation)", relative.Len())
	}
	if relative[0].Price != 100.0/2000.0 {
		t.Errorf("relative[0] = %v, want 0.05", relative[0].Price)
	}
	if relative[1].Price != 120.0/2400.0 {
		t.Errorf("relative[1] = %v, want 0.05", relative[1].Price)
	}
}
