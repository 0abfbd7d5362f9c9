package models

import (
	"context"
	"errors"
	"time"

	"github.com/restobooks/backoffice_backend/config"
	"github.com/restobooks/backoffice_backend/utils"
	"github.com/shopspring/decimal"
)

type Sale struct {
	ID           int             `gorm:"primary_key" json:"id"`
	BusinessId   string          `gorm:"index;not null" json:"business_id"`
	SaleDate     time.Time       `gorm:"index;not null" json:"sale_date"`
	ItemName     string          `gorm:"size:255;not null" json:"item_name"`
	ItemType     string          `gorm:"size:100" json:"item_type"`
	SalePrice    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sale_price"`
	QuantitySold decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity_sold"`
	// recomputed from price and quantity on every save
	TotalValueItem decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_value_item"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSale struct {
	SaleDate     time.Time       `json:"sale_date" binding:"required"`
	ItemName     string          `json:"item_name" binding:"required"`
	ItemType     string          `json:"item_type"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
}

// PosOrderLine is one line of a point-of-sale order. Price may sit below
// OriginalPrice when the cashier granted a line discount.
type PosOrderLine struct {
	ItemName      string          `json:"item_name" binding:"required"`
	ItemType      string          `json:"item_type"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
}

type PosCheckout struct {
	Lines []PosOrderLine `json:"lines" binding:"required"`
}

// PosTotals carries the computed order totals returned with a checkout.
type PosTotals struct {
	Total          decimal.Decimal `json:"total"`
	FullPriceTotal decimal.Decimal `json:"full_price_total"`
	DiscountTotal  decimal.Decimal `json:"discount_total"`
	DiscountPct    decimal.Decimal `json:"discount_pct"`
}

// SaleTotalValue is quantity times price.
func SaleTotalValue(quantity, price decimal.Decimal) decimal.Decimal {
	return quantity.Mul(price)
}

// CalculatePosTotals derives the order total, the total at full price, the
// discount granted and the discount percentage. Lines priced at or above
// the original price contribute no discount. discount_pct is zero when the
// full-price total is zero.
func CalculatePosTotals(lines []PosOrderLine) *PosTotals {
	totals := &PosTotals{
		Total:          decimal.Zero,
		FullPriceTotal: decimal.Zero,
		DiscountTotal:  decimal.Zero,
		DiscountPct:    decimal.Zero,
	}
	for _, line := range lines {
		totals.Total = totals.Total.Add(line.Price.Mul(line.Quantity))
		totals.FullPriceTotal = totals.FullPriceTotal.Add(line.OriginalPrice.Mul(line.Quantity))
		if line.Price.LessThan(line.OriginalPrice) {
			totals.DiscountTotal = totals.DiscountTotal.Add(line.OriginalPrice.Sub(line.Price).Mul(line.Quantity))
		}
	}
	if totals.FullPriceTotal.IsPositive() {
		totals.DiscountPct = totals.DiscountTotal.DivRound(totals.FullPriceTotal, 6).Mul(decimalOneHundred).Round(4)
	}
	return totals
}

func (input *NewSale) validate() error {
	if input.SalePrice.IsNegative() {
		return errors.New("sale price cannot be negative")
	}
	if input.QuantitySold.IsNegative() {
		return errors.New("quantity sold cannot be negative")
	}
	return nil
}

func CreateSale(ctx context.Context, input *NewSale) (*Sale, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	saleDate, err := utils.ConvertToDate(input.SaleDate, "")
	if err != nil {
		return nil, err
	}

	sale := Sale{
		BusinessId:     businessId,
		SaleDate:       saleDate,
		ItemName:       input.ItemName,
		ItemType:       input.ItemType,
		SalePrice:      input.SalePrice,
		QuantitySold:   input.QuantitySold,
		TotalValueItem: SaleTotalValue(input.QuantitySold, input.SalePrice),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&sale).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func UpdateSale(ctx context.Context, id int, input *NewSale) (*Sale, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	sale, err := utils.FetchModel[Sale](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	saleDate, err := utils.ConvertToDate(input.SaleDate, "")
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(sale).Updates(map[string]interface{}{
		"SaleDate":       saleDate,
		"ItemName":       input.ItemName,
		"ItemType":       input.ItemType,
		"SalePrice":      input.SalePrice,
		"QuantitySold":   input.QuantitySold,
		"TotalValueItem": SaleTotalValue(input.QuantitySold, input.SalePrice),
	}).Error
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func GetSales(ctx context.Context) ([]*Sale, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	return utils.FetchAllModels[Sale](ctx, businessId)
}

func GetSale(ctx context.Context, id int) (*Sale, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	return utils.FetchModel[Sale](ctx, businessId, id)
}

func DeleteSale(ctx context.Context, id int) (*Sale, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	sale, err := utils.FetchModel[Sale](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

// CheckoutPosOrder turns a point-of-sale order into Sale rows, one per line,
// inside a single transaction, and returns the rows plus the order totals.
func CheckoutPosOrder(ctx context.Context, input *PosCheckout) ([]*Sale, *PosTotals, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, nil, errors.New("business id is required")
	}
	if len(input.Lines) == 0 {
		return nil, nil, errors.New("an order needs at least one line")
	}
	for _, line := range input.Lines {
		if line.Quantity.IsNegative() || line.Price.IsNegative() || line.OriginalPrice.IsNegative() {
			return nil, nil, errors.New("order lines cannot carry negative values")
		}
	}

	totals := CalculatePosTotals(input.Lines)

	saleDate, err := utils.ConvertToDate(time.Now(), "")
	if err != nil {
		return nil, nil, err
	}

	var sales []*Sale
	for _, line := range input.Lines {
		sales = append(sales, &Sale{
			BusinessId:     businessId,
			SaleDate:       saleDate,
			ItemName:       line.ItemName,
			ItemType:       line.ItemType,
			SalePrice:      line.Price,
			QuantitySold:   line.Quantity,
			TotalValueItem: SaleTotalValue(line.Quantity, line.Price),
		})
	}

	db := config.GetDB()
	tx := db.Begin()
	for _, sale := range sales {
		if err := tx.WithContext(ctx).Create(sale).Error; err != nil {
			tx.Rollback()
			return nil, nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}
	return sales, totals, nil
}
