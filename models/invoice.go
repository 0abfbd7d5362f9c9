package models

import (
	"context"
	"errors"
	"time"

	"github.com/restobooks/backoffice_backend/config"
	"github.com/restobooks/backoffice_backend/utils"
	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID          int       `gorm:"primary_key" json:"id"`
	BusinessId  string    `gorm:"index;not null" json:"business_id"`
	InvoiceNumb string    `gorm:"index;size:100;not null" json:"invoice_numb"`
	InvoiceDate time.Time `gorm:"index;not null" json:"invoice_date"`
	// nil when the supplier set no payment deadline
	DueDate    *time.Time      `gorm:"index" json:"due_date"`
	SupplierId *int            `gorm:"index" json:"supplier_id"`
	Category   string          `gorm:"size:100" json:"category"`
	AmountHT   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount_ht"`
	AmountTTC  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount_ttc"`
	// tva_perct is derived from the two amounts, never taken from input
	TvaPerct  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tva_perct"`
	Paid      bool            `gorm:"default:false" json:"paid"`
	Note      string          `gorm:"size:255" json:"note"`
	Documents []*Document     `gorm:"polymorphic:Reference" json:"documents"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInvoice struct {
	InvoiceNumb string          `json:"invoice_numb" binding:"required"`
	InvoiceDate time.Time       `json:"invoice_date" binding:"required"`
	DueDate     time.Time       `json:"due_date"`
	SupplierId  *int            `json:"supplier_id"`
	Category    string          `json:"category"`
	AmountHT    decimal.Decimal `json:"amount_ht"`
	AmountTTC   decimal.Decimal `json:"amount_ttc"`
	Paid        bool            `json:"paid"`
	Note        string          `json:"note"`
}

// CalculateTvaPerct back-calculates the VAT rate from the gross (TTC) and
// net (HT) amounts: ((ttc - ht) / ht) * 100. Zero when ht is zero.
func CalculateTvaPerct(amountHT, amountTTC decimal.Decimal) decimal.Decimal {
	if amountHT.IsZero() {
		return decimal.Zero
	}
	return amountTTC.Sub(amountHT).DivRound(amountHT, 6).Mul(decimalOneHundred).Round(4)
}

// optionalDate maps the zero time to nil so an omitted due date is stored
// as NULL instead of a year-1 timestamp.
func optionalDate(t time.Time) (*time.Time, error) {
	if t.IsZero() {
		return nil, nil
	}
	date, err := utils.ConvertToDate(t, "")
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func (input *NewInvoice) validate(ctx context.Context, businessId string, exceptId int) error {
	if input.AmountHT.IsNegative() || input.AmountTTC.IsNegative() {
		return errors.New("invoice amounts cannot be negative")
	}
	if input.AmountTTC.LessThan(input.AmountHT) {
		return errors.New("amount ttc cannot be less than amount ht")
	}
	if err := utils.ValidateUnique[Invoice](ctx, businessId, "invoice_numb", input.InvoiceNumb, exceptId); err != nil {
		return errors.New("an invoice with this number already exists")
	}
	if input.SupplierId != nil {
		if err := utils.ValidateResourceId[Supplier](ctx, businessId, *input.SupplierId); err != nil {
			return errors.New("supplier not found")
		}
	}
	return nil
}

func CreateInvoice(ctx context.Context, input *NewInvoice) (*Invoice, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(ctx, businessId, 0); err != nil {
		return nil, err
	}

	invoiceDate, err := utils.ConvertToDate(input.InvoiceDate, "")
	if err != nil {
		return nil, err
	}
	dueDate, err := optionalDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	invoice := Invoice{
		BusinessId:  businessId,
		InvoiceNumb: input.InvoiceNumb,
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		SupplierId:  input.SupplierId,
		Category:    input.Category,
		AmountHT:    input.AmountHT,
		AmountTTC:   input.AmountTTC,
		TvaPerct:    CalculateTvaPerct(input.AmountHT, input.AmountTTC),
		Paid:        input.Paid,
		Note:        input.Note,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func UpdateInvoice(ctx context.Context, id int, input *NewInvoice) (*Invoice, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	invoice, err := utils.FetchModel[Invoice](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, businessId, id); err != nil {
		return nil, err
	}

	invoiceDate, err := utils.ConvertToDate(input.InvoiceDate, "")
	if err != nil {
		return nil, err
	}
	dueDate, err := optionalDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(invoice).Updates(map[string]interface{}{
		"InvoiceNumb": input.InvoiceNumb,
		"InvoiceDate": invoiceDate,
		"DueDate":     dueDate,
		"SupplierId":  input.SupplierId,
		"Category":    input.Category,
		"AmountHT":    input.AmountHT,
		"AmountTTC":   input.AmountTTC,
		"TvaPerct":    CalculateTvaPerct(input.AmountHT, input.AmountTTC),
		"Paid":        input.Paid,
		"Note":        input.Note,
	}).Error
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// MarkInvoicePaid flips the paid flag without touching anything else.
func MarkInvoicePaid(ctx context.Context, id int, paid bool) (*Invoice, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	invoice, err := utils.FetchModel[Invoice](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(invoice).Updates(map[string]interface{}{"Paid": paid}).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

func GetInvoices(ctx context.Context) ([]*Invoice, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	return utils.FetchAllModels[Invoice](ctx, businessId, "Documents")
}

func GetInvoice(ctx context.Context, id int) (*Invoice, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	return utils.FetchModel[Invoice](ctx, businessId, id, "Documents")
}

// GetDueSoonInvoices lists unpaid invoices due within the next horizon days,
// including ones already overdue.
func GetDueSoonInvoices(ctx context.Context, horizonDays int) ([]*Invoice, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if horizonDays <= 0 {
		horizonDays = 7
	}
	cutoff := time.Now().AddDate(0, 0, horizonDays)
	return utils.FetchModelsWhere[Invoice](ctx, businessId,
		"paid = ? AND due_date IS NOT NULL AND due_date <= ?", false, cutoff)
}

func DeleteInvoice(ctx context.Context, id int) (*Invoice, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	invoice, err := utils.FetchModel[Invoice](ctx, businessId, id, "Documents")
	if err != nil {
		return nil, err
	}
	for _, doc := range invoice.Documents {
		if _, err := DeleteDocument(ctx, doc.ID); err != nil {
			return nil, err
		}
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(invoice).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}
