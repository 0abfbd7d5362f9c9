package models

import "testing"

func TestSaleTotalValue(t *testing.T) {
	if got := SaleTotalValue(d("3"), d("12.50")); !got.Equal(d("37.50")) {
		t.Fatalf("total_value_item expected 37.50, got %s", got)
	}
	if got := SaleTotalValue(d("0"), d("12.50")); !got.IsZero() {
		t.Fatalf("total_value_item expected 0, got %s", got)
	}
}

func TestCalculatePosTotals(t *testing.T) {
	lines := []PosOrderLine{
		{ItemName: "Burger", Quantity: d("2"), Price: d("8"), OriginalPrice: d("10")},
		{ItemName: "Fries", Quantity: d("1"), Price: d("4"), OriginalPrice: d("4")},
		{ItemName: "Soda", Quantity: d("3"), Price: d("2"), OriginalPrice: d("2")},
	}

	totals := CalculatePosTotals(lines)
	if !totals.Total.Equal(d("26")) {
		t.Fatalf("total expected 26, got %s", totals.Total)
	}
	if !totals.FullPriceTotal.Equal(d("30")) {
		t.Fatalf("full_price_total expected 30, got %s", totals.FullPriceTotal)
	}
	if !totals.DiscountTotal.Equal(d("4")) {
		t.Fatalf("discount_total expected 4, got %s", totals.DiscountTotal)
	}
	// 4 / 30 * 100
	if !totals.DiscountPct.Equal(d("13.3333")) {
		t.Fatalf("discount_pct expected 13.3333, got %s", totals.DiscountPct)
	}
}

func TestCalculatePosTotals_NoDiscount(t *testing.T) {
	lines := []PosOrderLine{
		{ItemName: "Menu", Quantity: d("2"), Price: d("15"), OriginalPrice: d("15")},
	}
	totals := CalculatePosTotals(lines)
	if !totals.DiscountTotal.IsZero() || !totals.DiscountPct.IsZero() {
		t.Fatalf("expected no discount, got total=%s pct=%s", totals.DiscountTotal, totals.DiscountPct)
	}
}

func TestCalculatePosTotals_PriceAboveOriginalAddsNoDiscount(t *testing.T) {
	lines := []PosOrderLine{
		{ItemName: "Special", Quantity: d("1"), Price: d("12"), OriginalPrice: d("10")},
	}
	totals := CalculatePosTotals(lines)
	if !totals.DiscountTotal.IsZero() {
		t.Fatalf("discount_total expected 0, got %s", totals.DiscountTotal)
	}
	if !totals.Total.Equal(d("12")) {
		t.Fatalf("total expected 12, got %s", totals.Total)
	}
}

func TestCalculatePosTotals_EmptyOrder(t *testing.T) {
	totals := CalculatePosTotals(nil)
	if !totals.Total.IsZero() || !totals.DiscountPct.IsZero() {
		t.Fatalf("expected zero totals, got total=%s pct=%s", totals.Total, totals.DiscountPct)
	}
}
