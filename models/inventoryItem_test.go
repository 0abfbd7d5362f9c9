package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCalculateInventoryPricing(t *testing.T) {
	cases := []struct {
		name          string
		qntyItemPack  string
		unitPerItm    string
		pricePerPack  string
		yieldPct      string
		totalUnits    string
		pricePerUnit  string
		effectiveUnit string
		pricePerItem  string
	}{
		{"catalog example", "10", "2", "20", "100", "20", "1", "1", "2"},
		{"yield below full", "10", "2", "20", "80", "20", "1", "1.25", "2"},
		{"fractional pack", "6", "0.75", "18", "100", "4.5", "4", "4", "3"},
		{"free item", "4", "1", "0", "100", "4", "0", "0", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := CalculateInventoryPricing(d(tc.qntyItemPack), d(tc.unitPerItm), d(tc.pricePerPack), d(tc.yieldPct))
			if err != nil {
				t.Fatalf("CalculateInventoryPricing error: %v", err)
			}
			if !p.TotalUnitsPerPack.Equal(d(tc.totalUnits)) {
				t.Fatalf("total_units_per_pack expected %s, got %s", tc.totalUnits, p.TotalUnitsPerPack)
			}
			if !p.PricePerUnit.Equal(d(tc.pricePerUnit)) {
				t.Fatalf("price_per_unit expected %s, got %s", tc.pricePerUnit, p.PricePerUnit)
			}
			if !p.EffectivePricePerUnit.Equal(d(tc.effectiveUnit)) {
				t.Fatalf("effective_price_per_unit expected %s, got %s", tc.effectiveUnit, p.EffectivePricePerUnit)
			}
			if !p.PricePerItem.Equal(d(tc.pricePerItem)) {
				t.Fatalf("price_per_item expected %s, got %s", tc.pricePerItem, p.PricePerItem)
			}
		})
	}
}

func TestCalculateInventoryPricing_RejectsBadDenominators(t *testing.T) {
	cases := []struct {
		name         string
		qntyItemPack string
		unitPerItm   string
		pricePerPack string
		yieldPct     string
	}{
		{"zero pack quantity", "0", "2", "20", "100"},
		{"zero units per item", "10", "0", "20", "100"},
		{"zero yield", "10", "2", "20", "0"},
		{"negative yield", "10", "2", "20", "-5"},
		{"negative price", "10", "2", "-20", "100"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CalculateInventoryPricing(d(tc.qntyItemPack), d(tc.unitPerItm), d(tc.pricePerPack), d(tc.yieldPct))
			if err == nil {
				t.Fatal("expected an error, got none")
			}
		})
	}
}
