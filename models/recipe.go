package models

import (
	"context"
	"errors"
	"time"

	"github.com/restobooks/backoffice_backend/config"
	"github.com/restobooks/backoffice_backend/utils"
	"github.com/shopspring/decimal"
)

type Recipe struct {
	ID               int             `gorm:"primary_key" json:"id"`
	BusinessId       string          `gorm:"index;not null" json:"business_id"`
	Name             string          `gorm:"index;size:255;not null" json:"name" binding:"required"`
	Type             string          `gorm:"size:100" json:"type"`
	NumberOfPortions int             `gorm:"not null;default:1" json:"number_of_portions"`
	ActualSalePrice  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"actual_sale_price"`
	// derived
	TotalCost         decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"total_cost"`
	CostPerPortion    decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"cost_per_portion"`
	MinSalePrice      decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"min_sale_price"`
	ActualFoodCostPct decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"actual_food_cost_pct"`
	Ingredients       []*RecipeIngredient `gorm:"foreignKey:RecipeId" json:"ingredients"`
	Documents         []*Document         `gorm:"polymorphic:Reference" json:"documents"`
	CreatedAt         time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

// RecipeIngredient snapshots the inventory unit price at the time the
// ingredient is added. Later inventory price changes never touch it.
type RecipeIngredient struct {
	ID           int             `gorm:"primary_key" json:"id"`
	BusinessId   string          `gorm:"index;not null" json:"business_id"`
	RecipeId     int             `gorm:"index;not null" json:"recipe_id"`
	ItemName     string          `gorm:"size:255;not null" json:"item_name"`
	QuantityUsed decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity_used"`
	UnitType     string          `gorm:"size:50" json:"unit_type"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"price_per_unit"`
	Cost         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cost"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewRecipe struct {
	Name             string                `json:"name" binding:"required"`
	Type             string                `json:"type"`
	NumberOfPortions int                   `json:"number_of_portions"`
	ActualSalePrice  decimal.Decimal       `json:"actual_sale_price"`
	Ingredients      []NewRecipeIngredient `json:"ingredients" binding:"required"`
}

type NewRecipeIngredient struct {
	InventoryItemId int             `json:"inventory_item_id" binding:"required"`
	QuantityUsed    decimal.Decimal `json:"quantity_used"`
}

// RecipeCosting holds the derived costing columns of a recipe.
type RecipeCosting struct {
	TotalCost         decimal.Decimal
	CostPerPortion    decimal.Decimal
	MinSalePrice      decimal.Decimal
	ActualFoodCostPct decimal.Decimal
}

// targetFoodCostMultiplier is the fixed 25% food-cost target: the minimum
// sale price is four times the cost per portion.
var targetFoodCostMultiplier = decimal.NewFromInt(4)

// IngredientCost is the snapshot price times the quantity used.
func IngredientCost(quantityUsed, pricePerUnit decimal.Decimal) decimal.Decimal {
	return quantityUsed.Mul(pricePerUnit)
}

// CalculateRecipeCosting derives the costing fields from the summed
// ingredient cost, the portion count and the menu sale price.
// cost_per_portion and actual_food_cost_pct fall back to zero when their
// denominators are not positive.
func CalculateRecipeCosting(totalCost decimal.Decimal, numberOfPortions int, actualSalePrice decimal.Decimal) *RecipeCosting {
	costing := &RecipeCosting{TotalCost: totalCost}

	if numberOfPortions > 0 {
		costing.CostPerPortion = totalCost.DivRound(decimal.NewFromInt(int64(numberOfPortions)), 4)
	}
	costing.MinSalePrice = costing.CostPerPortion.Mul(targetFoodCostMultiplier)
	if actualSalePrice.IsPositive() {
		costing.ActualFoodCostPct = costing.CostPerPortion.DivRound(actualSalePrice, 6).Mul(decimalOneHundred).Round(4)
	}
	return costing
}

// ValidateRecipeSave enforces the save guard: a recipe without a positive
// total cost or portion count is rejected outright, nothing is written.
func ValidateRecipeSave(totalCost decimal.Decimal, numberOfPortions int) error {
	if !totalCost.IsPositive() {
		return errors.New("recipe total cost must be greater than zero")
	}
	if numberOfPortions <= 0 {
		return errors.New("number of portions must be greater than zero")
	}
	return nil
}

// buildIngredients resolves each referenced inventory item and snapshots
// its current effective unit price into the ingredient row.
func buildIngredients(ctx context.Context, businessId string, input []NewRecipeIngredient) ([]*RecipeIngredient, decimal.Decimal, error) {
	totalCost := decimal.Zero
	var ingredients []*RecipeIngredient

	for _, ing := range input {
		item, err := utils.FetchModel[InventoryItem](ctx, businessId, ing.InventoryItemId)
		if err != nil {
			return nil, decimal.Zero, errors.New("inventory item not found")
		}
		if ing.QuantityUsed.IsNegative() {
			return nil, decimal.Zero, errors.New("ingredient quantity cannot be negative")
		}
		cost := IngredientCost(ing.QuantityUsed, item.EffectivePricePerUnit)
		ingredients = append(ingredients, &RecipeIngredient{
			BusinessId:   businessId,
			ItemName:     item.ItemName,
			QuantityUsed: ing.QuantityUsed,
			UnitType:     item.UnitType,
			PricePerUnit: item.EffectivePricePerUnit,
			Cost:         cost,
		})
		totalCost = totalCost.Add(cost)
	}
	return ingredients, totalCost, nil
}

// CreateRecipe stores the recipe and its ingredient rows in one transaction.
func CreateRecipe(ctx context.Context, input *NewRecipe) (*Recipe, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	if err := utils.ValidateUnique[Recipe](ctx, businessId, "name", input.Name, 0); err != nil {
		return nil, errors.New("a recipe with this name already exists")
	}

	ingredients, totalCost, err := buildIngredients(ctx, businessId, input.Ingredients)
	if err != nil {
		return nil, err
	}
	if err := ValidateRecipeSave(totalCost, input.NumberOfPortions); err != nil {
		return nil, err
	}

	costing := CalculateRecipeCosting(totalCost, input.NumberOfPortions, input.ActualSalePrice)

	recipe := Recipe{
		BusinessId:        businessId,
		Name:              input.Name,
		Type:              input.Type,
		NumberOfPortions:  input.NumberOfPortions,
		ActualSalePrice:   input.ActualSalePrice,
		TotalCost:         costing.TotalCost,
		CostPerPortion:    costing.CostPerPortion,
		MinSalePrice:      costing.MinSalePrice,
		ActualFoodCostPct: costing.ActualFoodCostPct,
		Ingredients:       ingredients,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&recipe).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if err := utils.RemoveRedisList[Recipe](businessId); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe replaces the ingredient list and recomputes the costing
// fields, all inside one transaction.
func UpdateRecipe(ctx context.Context, id int, input *NewRecipe) (*Recipe, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	recipe, err := utils.FetchModel[Recipe](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateUnique[Recipe](ctx, businessId, "name", input.Name, id); err != nil {
		return nil, errors.New("a recipe with this name already exists")
	}

	ingredients, totalCost, err := buildIngredients(ctx, businessId, input.Ingredients)
	if err != nil {
		return nil, err
	}
	if err := ValidateRecipeSave(totalCost, input.NumberOfPortions); err != nil {
		return nil, err
	}

	costing := CalculateRecipeCosting(totalCost, input.NumberOfPortions, input.ActualSalePrice)

	db := config.GetDB()
	tx := db.Begin()

	err = tx.WithContext(ctx).Model(recipe).Updates(map[string]interface{}{
		"Name":              input.Name,
		"Type":              input.Type,
		"NumberOfPortions":  input.NumberOfPortions,
		"ActualSalePrice":   input.ActualSalePrice,
		"TotalCost":         costing.TotalCost,
		"CostPerPortion":    costing.CostPerPortion,
		"MinSalePrice":      costing.MinSalePrice,
		"ActualFoodCostPct": costing.ActualFoodCostPct,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.WithContext(ctx).Where("recipe_id = ? AND business_id = ?", id, businessId).Delete(&RecipeIngredient{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for _, ing := range ingredients {
		ing.RecipeId = id
		if err := tx.WithContext(ctx).Create(ing).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if err := utils.RemoveRedisList[Recipe](businessId); err != nil {
		return nil, err
	}
	recipe.Ingredients = ingredients
	return recipe, nil
}

// GetRecipes reads the recipe list, redis or db, caching the result.
func GetRecipes(ctx context.Context) ([]*Recipe, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	recipes, err := utils.RetrieveRedisList[Recipe](businessId)
	if err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes, err = utils.FetchAllModels[Recipe](ctx, businessId, "Ingredients")
		if err != nil {
			return nil, err
		}
		if err := utils.StoreRedisList[Recipe](recipes, businessId); err != nil {
			return nil, err
		}
	}
	return recipes, nil
}

func GetRecipe(ctx context.Context, id int) (*Recipe, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	return utils.FetchModel[Recipe](ctx, businessId, id, "Ingredients", "Documents")
}

func DeleteRecipe(ctx context.Context, id int) (*Recipe, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	recipe, err := utils.FetchModel[Recipe](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Where("recipe_id = ? AND business_id = ?", id, businessId).Delete(&RecipeIngredient{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Delete(recipe).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if err := utils.RemoveRedisList[Recipe](businessId); err != nil {
		return nil, err
	}
	return recipe, nil
}
