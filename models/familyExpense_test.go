package models

import (
	"testing"
	"time"
)

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

func TestIntervalFor(t *testing.T) {
	cases := []struct {
		frequency ExpenseFrequency
		n         int
		days      int
		months    int
	}{
		{FrequencyDaily, 0, 1, 0},
		{FrequencyWeekly, 0, 7, 0},
		{FrequencyBiWeekly, 0, 14, 0},
		{FrequencyMonthly, 0, 0, 1},
		{FrequencyQuarterly, 0, 0, 3},
		{FrequencySemiAnnually, 0, 0, 6},
		{FrequencyYearly, 0, 0, 12},
		{FrequencyEveryNMonths, 5, 0, 5},
		{FrequencyEveryNYears, 2, 0, 24},
		{FrequencyEveryNMonths, 0, 0, 1},
	}
	for _, tc := range cases {
		interval, err := IntervalFor(tc.frequency, tc.n)
		if err != nil {
			t.Fatalf("IntervalFor(%s, %d) error: %v", tc.frequency, tc.n, err)
		}
		if interval.Days != tc.days || interval.Months != tc.months {
			t.Fatalf("IntervalFor(%s, %d) expected {%d %d}, got {%d %d}",
				tc.frequency, tc.n, tc.days, tc.months, interval.Days, interval.Months)
		}
	}
}

func TestIntervalFor_InvalidFrequency(t *testing.T) {
	if _, err := IntervalFor(ExpenseFrequency("Sometimes"), 1); err == nil {
		t.Fatal("expected an error for unknown frequency")
	}
}

func TestNextOccurrence(t *testing.T) {
	cases := []struct {
		name      string
		last      time.Time
		frequency ExpenseFrequency
		n         int
		expected  time.Time
	}{
		{"daily", day(2024, time.March, 10), FrequencyDaily, 0, day(2024, time.March, 11)},
		{"weekly", day(2024, time.March, 10), FrequencyWeekly, 0, day(2024, time.March, 17)},
		{"bi-weekly", day(2024, time.March, 10), FrequencyBiWeekly, 0, day(2024, time.March, 24)},
		{"monthly", day(2024, time.January, 31), FrequencyMonthly, 0, day(2024, time.March, 2)},
		{"quarterly", day(2024, time.January, 15), FrequencyQuarterly, 0, day(2024, time.April, 15)},
		{"yearly", day(2024, time.February, 29), FrequencyYearly, 0, day(2025, time.March, 1)},
		{"every 3 months", day(2024, time.May, 1), FrequencyEveryNMonths, 3, day(2024, time.August, 1)},
		{"every 2 years", day(2024, time.May, 1), FrequencyEveryNYears, 2, day(2026, time.May, 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := NextOccurrence(tc.last, tc.frequency, tc.n)
			if err != nil {
				t.Fatalf("NextOccurrence error: %v", err)
			}
			if !next.Equal(tc.expected) {
				t.Fatalf("expected %s, got %s", tc.expected.Format("2006-01-02"), next.Format("2006-01-02"))
			}
		})
	}
}

// The database returns stored timestamps as UTC instants, so an anchor
// written at business-timezone midnight reads back as late evening of the
// previous day. Due checks must not shift a day because of that.
func TestIsDue_AnchorReadBackAsUTC(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	anchor := time.Date(2026, time.August, 15, 0, 0, 0, 0, paris).UTC()
	today := time.Date(2026, time.September, 15, 0, 0, 0, 0, paris)
	due, err := IsDue(anchor, today, FrequencyMonthly, 0)
	if err != nil {
		t.Fatalf("IsDue error: %v", err)
	}
	if !due {
		t.Fatal("expected due on the monthly anniversary after a UTC round-trip")
	}

	due, err = IsDue(anchor, time.Date(2026, time.September, 14, 0, 0, 0, 0, paris), FrequencyMonthly, 0)
	if err != nil {
		t.Fatalf("IsDue error: %v", err)
	}
	if due {
		t.Fatal("expected not due the day before the anniversary")
	}
}

func TestIsDue_DailyAfterUTCRoundTrip(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	anchor := time.Date(2026, time.August, 30, 0, 0, 0, 0, paris).UTC()

	due, err := IsDue(anchor, time.Date(2026, time.August, 31, 0, 0, 0, 0, paris), FrequencyDaily, 0)
	if err != nil {
		t.Fatalf("IsDue error: %v", err)
	}
	if !due {
		t.Fatal("expected daily expense due the day after its anchor")
	}

	due, err = IsDue(anchor, time.Date(2026, time.August, 30, 0, 0, 0, 0, paris), FrequencyDaily, 0)
	if err != nil {
		t.Fatalf("IsDue error: %v", err)
	}
	if due {
		t.Fatal("expected daily expense not due on the anchor's own day")
	}
}

func TestIsDue(t *testing.T) {
	last := day(2024, time.March, 1)

	due, err := IsDue(last, day(2024, time.April, 1), FrequencyMonthly, 0)
	if err != nil {
		t.Fatalf("IsDue error: %v", err)
	}
	if !due {
		t.Fatal("expected due on the monthly anniversary")
	}

	due, err = IsDue(last, day(2024, time.March, 31), FrequencyMonthly, 0)
	if err != nil {
		t.Fatalf("IsDue error: %v", err)
	}
	if due {
		t.Fatal("expected not due the day before")
	}

	due, err = IsDue(last, day(2024, time.April, 2), FrequencyMonthly, 0)
	if err != nil {
		t.Fatalf("IsDue error: %v", err)
	}
	if due {
		t.Fatal("expected not due the day after")
	}
}
