package models

import (
	"testing"
)

func TestStockTakeItemValue(t *testing.T) {
	cases := []struct {
		name       string
		countedQty string
		price      string
		expected   string
	}{
		{"whole units", "12", "2.50", "30"},
		{"fractional count", "0.75", "4", "3"},
		{"zero count", "0", "9.99", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value := StockTakeItemValue(d(tc.countedQty), d(tc.price))
			if !value.Equal(d(tc.expected)) {
				t.Fatalf("expected value %s, got %s", tc.expected, value)
			}
		})
	}
}

func TestSumStockTake(t *testing.T) {
	items := []*StockTakeItem{
		{ItemName: "Tomatoes", Value: d("30")},
		{ItemName: "Olive Oil", Value: d("18.50")},
		{ItemName: "Flour", Value: d("6.25")},
	}

	total, count := SumStockTake(items)
	if !total.Equal(d("54.75")) {
		t.Fatalf("expected total 54.75, got %s", total)
	}
	if count != 3 {
		t.Fatalf("expected 3 items, got %d", count)
	}
}

func TestSumStockTake_Empty(t *testing.T) {
	total, count := SumStockTake(nil)
	if !total.IsZero() {
		t.Fatalf("expected zero total, got %s", total)
	}
	if count != 0 {
		t.Fatalf("expected 0 items, got %d", count)
	}
}
