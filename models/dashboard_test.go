package models

import (
	"testing"
	"time"
)

func TestCalculateProfitMargin(t *testing.T) {
	cases := []struct {
		name     string
		sales    string
		expenses string
		expected string
	}{
		{"typical month", "10000", "6500", "35"},
		{"loss month", "5000", "6000", "-20"},
		{"break even", "4200", "4200", "0"},
		{"rounded", "3000", "1000", "66.6667"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			margin := CalculateProfitMargin(d(tc.sales), d(tc.expenses))
			if !margin.Equal(d(tc.expected)) {
				t.Fatalf("expected margin %s, got %s", tc.expected, margin)
			}
		})
	}
}

func TestCalculateProfitMargin_NoSales(t *testing.T) {
	if margin := CalculateProfitMargin(d("0"), d("1200")); !margin.IsZero() {
		t.Fatalf("expected zero margin without sales, got %s", margin)
	}
	if margin := CalculateProfitMargin(d("-50"), d("0")); !margin.IsZero() {
		t.Fatalf("expected zero margin on negative sales, got %s", margin)
	}
}

func TestMonthBounds(t *testing.T) {
	start, end, err := monthBounds(time.Date(2024, time.March, 17, 14, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("monthBounds error: %v", err)
	}
	if start.Year() != 2024 || start.Month() != time.March || start.Day() != 1 {
		t.Fatalf("unexpected month start %s", start)
	}
	if end.Year() != 2024 || end.Month() != time.April || end.Day() != 1 {
		t.Fatalf("unexpected month end %s", end)
	}

	// A row dated the 1st is stored at business-timezone midnight, which
	// is the previous evening in UTC. It must still land inside the month.
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	firstOfMonth := time.Date(2024, time.March, 1, 0, 0, 0, 0, paris)
	if firstOfMonth.Before(start) || !firstOfMonth.Before(end) {
		t.Fatalf("row dated the 1st (%s) falls outside [%s, %s)", firstOfMonth, start, end)
	}
}

func TestMonthBounds_LateEveningUTC(t *testing.T) {
	// 23:30 UTC on Aug 31 is already Sep 1 in the business timezone.
	start, end, err := monthBounds(time.Date(2026, time.August, 31, 23, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("monthBounds error: %v", err)
	}
	if start.Month() != time.September || start.Day() != 1 {
		t.Fatalf("expected September bounds, got start %s", start)
	}
	if end.Month() != time.October || end.Day() != 1 {
		t.Fatalf("expected September bounds, got end %s", end)
	}
}

func TestUpcomingAgendaWindow_IncludesToday(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// Late evening UTC, already past midnight in the business timezone.
	now := time.Date(2026, time.August, 31, 23, 30, 0, 0, time.UTC)
	from, to, err := upcomingAgendaWindow(now, 7)
	if err != nil {
		t.Fatalf("upcomingAgendaWindow error: %v", err)
	}

	todayEvent := time.Date(2026, time.September, 1, 0, 0, 0, 0, paris)
	if todayEvent.Before(from) || todayEvent.After(to) {
		t.Fatalf("event stored today (%s) falls outside [%s, %s]", todayEvent, from, to)
	}

	lastDayEvent := todayEvent.AddDate(0, 0, 7)
	if lastDayEvent.Before(from) || lastDayEvent.After(to) {
		t.Fatalf("event on the horizon's last day (%s) falls outside [%s, %s]", lastDayEvent, from, to)
	}
}
