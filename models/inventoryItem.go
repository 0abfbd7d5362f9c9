package models

import (
	"context"
	"errors"
	"time"

	"github.com/restobooks/backoffice_backend/config"
	"github.com/restobooks/backoffice_backend/utils"
	"github.com/shopspring/decimal"
)

// InventoryItem is a purchasable stock item. The pricing columns
// (TotalUnitsPerPack, PricePerUnit, EffectivePricePerUnit, PricePerItem) are
// derived and recomputed on every save; values supplied by the client are ignored.
type InventoryItem struct {
	ID           int             `gorm:"primary_key" json:"id"`
	BusinessId   string          `gorm:"index;not null" json:"business_id"`
	ItemName     string          `gorm:"index;size:255;not null" json:"item_name" binding:"required"`
	Category     string          `gorm:"size:100" json:"category"`
	PackType     string          `gorm:"size:100" json:"pack_type"`
	QntyItemPack decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"qnty_item_pack"`
	UnitType     string          `gorm:"size:50" json:"unit_type"`
	UnitPerItm   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_per_itm"`
	PricePerPack decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"price_per_pack"`
	YieldPct     decimal.Decimal `gorm:"type:decimal(20,4);default:100" json:"yield_pct"`
	SupplierId   int             `gorm:"index" json:"supplier_id"`
	// derived
	TotalUnitsPerPack     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_units_per_pack"`
	PricePerUnit          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"price_per_unit"`
	EffectivePricePerUnit decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"effective_price_per_unit"`
	PricePerItem          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"price_per_item"`
	CreatedAt             time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInventoryItem struct {
	ItemName     string          `json:"item_name" binding:"required"`
	Category     string          `json:"category"`
	PackType     string          `json:"pack_type"`
	QntyItemPack decimal.Decimal `json:"qnty_item_pack"`
	UnitType     string          `json:"unit_type"`
	UnitPerItm   decimal.Decimal `json:"unit_per_itm"`
	PricePerPack decimal.Decimal `json:"price_per_pack"`
	YieldPct     decimal.Decimal `json:"yield_pct"`
	SupplierId   int             `json:"supplier_id"`
}

// InventoryPricing holds the derived pricing columns of an inventory item.
type InventoryPricing struct {
	TotalUnitsPerPack     decimal.Decimal
	PricePerUnit          decimal.Decimal
	EffectivePricePerUnit decimal.Decimal
	PricePerItem          decimal.Decimal
}

var decimalOneHundred = decimal.NewFromInt(100)

// CalculateInventoryPricing derives the pricing fields:
//
//	total_units_per_pack = qnty_item_pack * unit_per_itm
//	price_per_unit       = price_per_pack / total_units_per_pack
//	effective_price      = price_per_unit / (yield_pct / 100)
//	price_per_item       = price_per_pack / qnty_item_pack
//
// Denominators are validated up front; a zero pack quantity, unit count or
// yield is an error rather than a non-finite result.
func CalculateInventoryPricing(qntyItemPack, unitPerItm, pricePerPack, yieldPct decimal.Decimal) (*InventoryPricing, error) {
	if !qntyItemPack.IsPositive() {
		return nil, errors.New("pack quantity must be greater than zero")
	}
	if !unitPerItm.IsPositive() {
		return nil, errors.New("units per item must be greater than zero")
	}
	if !yieldPct.IsPositive() {
		return nil, errors.New("yield percentage must be greater than zero")
	}
	if pricePerPack.IsNegative() {
		return nil, errors.New("pack price cannot be negative")
	}

	totalUnits := qntyItemPack.Mul(unitPerItm)
	pricePerUnit := pricePerPack.DivRound(totalUnits, 4)
	effectivePrice := pricePerUnit.DivRound(yieldPct.DivRound(decimalOneHundred, 6), 4)
	pricePerItem := pricePerPack.DivRound(qntyItemPack, 4)

	return &InventoryPricing{
		TotalUnitsPerPack:     totalUnits,
		PricePerUnit:          pricePerUnit,
		EffectivePricePerUnit: effectivePrice,
		PricePerItem:          pricePerItem,
	}, nil
}

func (input *NewInventoryItem) validate(ctx context.Context, businessId string, exceptId int) error {
	if err := utils.ValidateUnique[InventoryItem](ctx, businessId, "item_name", input.ItemName, exceptId); err != nil {
		return errors.New("an item with this name already exists")
	}
	if input.SupplierId > 0 {
		if err := utils.ValidateResourceId[Supplier](ctx, businessId, input.SupplierId); err != nil {
			return errors.New("supplier not found")
		}
	}
	return nil
}

func CreateInventoryItem(ctx context.Context, input *NewInventoryItem) (*InventoryItem, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(ctx, businessId, 0); err != nil {
		return nil, err
	}

	yieldPct := input.YieldPct
	if yieldPct.IsZero() {
		yieldPct = decimalOneHundred
	}
	pricing, err := CalculateInventoryPricing(input.QntyItemPack, input.UnitPerItm, input.PricePerPack, yieldPct)
	if err != nil {
		return nil, err
	}

	item := InventoryItem{
		BusinessId:            businessId,
		ItemName:              input.ItemName,
		Category:              input.Category,
		PackType:              input.PackType,
		QntyItemPack:          input.QntyItemPack,
		UnitType:              input.UnitType,
		UnitPerItm:            input.UnitPerItm,
		PricePerPack:          input.PricePerPack,
		YieldPct:              yieldPct,
		SupplierId:            input.SupplierId,
		TotalUnitsPerPack:     pricing.TotalUnitsPerPack,
		PricePerUnit:          pricing.PricePerUnit,
		EffectivePricePerUnit: pricing.EffectivePricePerUnit,
		PricePerItem:          pricing.PricePerItem,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisList[InventoryItem](businessId); err != nil {
		return nil, err
	}
	return &item, nil
}

func UpdateInventoryItem(ctx context.Context, id int, input *NewInventoryItem) (*InventoryItem, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	item, err := utils.FetchModel[InventoryItem](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, businessId, id); err != nil {
		return nil, err
	}

	yieldPct := input.YieldPct
	if yieldPct.IsZero() {
		yieldPct = decimalOneHundred
	}
	pricing, err := CalculateInventoryPricing(input.QntyItemPack, input.UnitPerItm, input.PricePerPack, yieldPct)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(item).Updates(map[string]interface{}{
		"ItemName":              input.ItemName,
		"Category":              input.Category,
		"PackType":              input.PackType,
		"QntyItemPack":          input.QntyItemPack,
		"UnitType":              input.UnitType,
		"UnitPerItm":            input.UnitPerItm,
		"PricePerPack":          input.PricePerPack,
		"YieldPct":              yieldPct,
		"SupplierId":            input.SupplierId,
		"TotalUnitsPerPack":     pricing.TotalUnitsPerPack,
		"PricePerUnit":          pricing.PricePerUnit,
		"EffectivePricePerUnit": pricing.EffectivePricePerUnit,
		"PricePerItem":          pricing.PricePerItem,
	}).Error
	if err != nil {
		return nil, err
	}

	if err := utils.RemoveRedisList[InventoryItem](businessId); err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisInstance[InventoryItem](id); err != nil {
		return nil, err
	}
	return item, nil
}

// GetInventoryItems reads the item list, redis or db, caching the result.
func GetInventoryItems(ctx context.Context) ([]*InventoryItem, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	items, err := utils.RetrieveRedisList[InventoryItem](businessId)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items, err = utils.FetchAllModels[InventoryItem](ctx, businessId)
		if err != nil {
			return nil, err
		}
		if err := utils.StoreRedisList[InventoryItem](items, businessId); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func GetInventoryItem(ctx context.Context, id int) (*InventoryItem, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	// instance cache keys are not tenant-scoped, so the hit must be checked
	cached, err := utils.RetrieveRedis[InventoryItem](id)
	if err != nil {
		return nil, err
	}
	if cached != nil && cached.BusinessId == businessId {
		return cached, nil
	}

	item, err := utils.FetchModel[InventoryItem](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	if err := utils.StoreRedis[InventoryItem](item, id); err != nil {
		return nil, err
	}
	return item, nil
}

func DeleteInventoryItem(ctx context.Context, id int) (*InventoryItem, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	item, err := utils.FetchModel[InventoryItem](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(item).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisList[InventoryItem](businessId); err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisInstance[InventoryItem](id); err != nil {
		return nil, err
	}
	return item, nil
}
