package models

import (
	"testing"
)

func TestCalculateRecipeCosting(t *testing.T) {
	// two ingredients at 3.00 and 2.00, five portions, sold at 2.00
	totalCost := IngredientCost(d("1"), d("3")).Add(IngredientCost(d("1"), d("2")))
	if !totalCost.Equal(d("5")) {
		t.Fatalf("total_cost expected 5, got %s", totalCost)
	}

	costing := CalculateRecipeCosting(totalCost, 5, d("2"))
	if !costing.CostPerPortion.Equal(d("1")) {
		t.Fatalf("cost_per_portion expected 1, got %s", costing.CostPerPortion)
	}
	if !costing.MinSalePrice.Equal(d("4")) {
		t.Fatalf("min_sale_price expected 4, got %s", costing.MinSalePrice)
	}
	if !costing.ActualFoodCostPct.Equal(d("50")) {
		t.Fatalf("actual_food_cost_pct expected 50, got %s", costing.ActualFoodCostPct)
	}
}

func TestCalculateRecipeCosting_ZeroDenominators(t *testing.T) {
	costing := CalculateRecipeCosting(d("10"), 0, d("0"))
	if !costing.CostPerPortion.IsZero() {
		t.Fatalf("cost_per_portion expected 0 for zero portions, got %s", costing.CostPerPortion)
	}
	if !costing.MinSalePrice.IsZero() {
		t.Fatalf("min_sale_price expected 0 for zero portions, got %s", costing.MinSalePrice)
	}
	if !costing.ActualFoodCostPct.IsZero() {
		t.Fatalf("actual_food_cost_pct expected 0 for zero sale price, got %s", costing.ActualFoodCostPct)
	}
}

func TestCalculateRecipeCosting_MinSalePriceIsFourTimesPortionCost(t *testing.T) {
	costing := CalculateRecipeCosting(d("12.60"), 4, d("15"))
	if !costing.CostPerPortion.Equal(d("3.15")) {
		t.Fatalf("cost_per_portion expected 3.15, got %s", costing.CostPerPortion)
	}
	if !costing.MinSalePrice.Equal(d("12.60")) {
		t.Fatalf("min_sale_price expected 12.60, got %s", costing.MinSalePrice)
	}
	if !costing.ActualFoodCostPct.Equal(d("21")) {
		t.Fatalf("actual_food_cost_pct expected 21, got %s", costing.ActualFoodCostPct)
	}
}

func TestValidateRecipeSave(t *testing.T) {
	if err := ValidateRecipeSave(d("5"), 4); err != nil {
		t.Fatalf("valid recipe rejected: %v", err)
	}
	if err := ValidateRecipeSave(d("0"), 4); err == nil {
		t.Fatal("zero total cost accepted")
	}
	if err := ValidateRecipeSave(d("-1"), 4); err == nil {
		t.Fatal("negative total cost accepted")
	}
	if err := ValidateRecipeSave(d("5"), 0); err == nil {
		t.Fatal("zero portions accepted")
	}
	if err := ValidateRecipeSave(d("5"), -2); err == nil {
		t.Fatal("negative portions accepted")
	}
}
