package models

import (
	"context"
	"errors"
	"time"

	"github.com/restobooks/backoffice_backend/config"
	"github.com/restobooks/backoffice_backend/utils"
	"github.com/shopspring/decimal"
)

type StockTake struct {
	ID         int              `gorm:"primary_key" json:"id"`
	BusinessId string           `gorm:"index;not null" json:"business_id"`
	TakenAt    time.Time        `gorm:"index;not null" json:"taken_at"`
	Note       string           `gorm:"size:255" json:"note"`
	TotalValue decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"total_value"`
	TotalItems int              `gorm:"default:0" json:"total_items"`
	Items      []*StockTakeItem `gorm:"foreignKey:StockTakeId" json:"items"`
	CreatedAt  time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// StockTakeItem carries the unit price as counted, so a later inventory
// price change never rewrites a past valuation.
type StockTakeItem struct {
	ID           int             `gorm:"primary_key" json:"id"`
	BusinessId   string          `gorm:"index;not null" json:"business_id"`
	StockTakeId  int             `gorm:"index;not null" json:"stock_take_id"`
	ItemName     string          `gorm:"size:255;not null" json:"item_name"`
	UnitType     string          `gorm:"size:50" json:"unit_type"`
	CountedQty   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"counted_qty"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"price_per_unit"`
	Value        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"value"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewStockTake struct {
	TakenAt time.Time          `json:"taken_at" binding:"required"`
	Note    string             `json:"note"`
	Items   []NewStockTakeItem `json:"items" binding:"required"`
}

type NewStockTakeItem struct {
	InventoryItemId int             `json:"inventory_item_id" binding:"required"`
	CountedQty      decimal.Decimal `json:"counted_qty"`
}

// StockTakeItemValue is the counted quantity times the snapshot unit price.
func StockTakeItemValue(countedQty, pricePerUnit decimal.Decimal) decimal.Decimal {
	return countedQty.Mul(pricePerUnit)
}

// SumStockTake totals the line values. The item count is the number of
// lines counted.
func SumStockTake(items []*StockTakeItem) (decimal.Decimal, int) {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Value)
	}
	return total, len(items)
}

func buildStockTakeItems(ctx context.Context, businessId string, input []NewStockTakeItem) ([]*StockTakeItem, error) {
	var items []*StockTakeItem
	for _, line := range input {
		inv, err := utils.FetchModel[InventoryItem](ctx, businessId, line.InventoryItemId)
		if err != nil {
			return nil, errors.New("inventory item not found")
		}
		if line.CountedQty.IsNegative() {
			return nil, errors.New("counted quantity cannot be negative")
		}
		items = append(items, &StockTakeItem{
			BusinessId:   businessId,
			ItemName:     inv.ItemName,
			UnitType:     inv.UnitType,
			CountedQty:   line.CountedQty,
			PricePerUnit: inv.EffectivePricePerUnit,
			Value:        StockTakeItemValue(line.CountedQty, inv.EffectivePricePerUnit),
		})
	}
	return items, nil
}

// CreateStockTake snapshots the current effective unit price into each line
// and stores the header plus lines in one transaction.
func CreateStockTake(ctx context.Context, input *NewStockTake) (*StockTake, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if len(input.Items) == 0 {
		return nil, errors.New("a stock take needs at least one counted item")
	}

	items, err := buildStockTakeItems(ctx, businessId, input.Items)
	if err != nil {
		return nil, err
	}
	totalValue, totalItems := SumStockTake(items)

	takenAt, err := utils.ConvertToDate(input.TakenAt, "")
	if err != nil {
		return nil, err
	}

	st := StockTake{
		BusinessId: businessId,
		TakenAt:    takenAt,
		Note:       input.Note,
		TotalValue: totalValue,
		TotalItems: totalItems,
		Items:      items,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&st).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func GetStockTakes(ctx context.Context) ([]*StockTake, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	return utils.FetchAllModels[StockTake](ctx, businessId)
}

func GetStockTake(ctx context.Context, id int) (*StockTake, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	return utils.FetchModel[StockTake](ctx, businessId, id, "Items")
}

func DeleteStockTake(ctx context.Context, id int) (*StockTake, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	st, err := utils.FetchModel[StockTake](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Where("stock_take_id = ? AND business_id = ?", id, businessId).Delete(&StockTakeItem{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Delete(st).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return st, nil
}
