package models_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/restobooks/backoffice_backend/config"
	"github.com/restobooks/backoffice_backend/models"
	"github.com/restobooks/backoffice_backend/utils"
	"github.com/shopspring/decimal"
)

// Regression: tva_perct must be derived on create and update, paid invoices
// must drop out of the due-soon list, and a POS checkout must persist one
// sale row per line with recomputed totals.
func TestInvoiceLifecycleAndPosCheckout(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests")
	}

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", filepath.Join(t.TempDir(), "backoffice_test.db"))
	config.ConnectDatabaseWithRetry()
	models.MigrateTable()

	ctx := context.Background()
	ctx = utils.SetUserIdInContext(ctx, 1)
	ctx = utils.SetUsernameInContext(ctx, "test@local")
	ctx = utils.SetUserNameInContext(ctx, "Test")

	biz, err := models.CreateBusiness(ctx, &models.NewBusiness{
		Name:  "Test Resto",
		Email: "owner@test.local",
	})
	if err != nil {
		t.Fatalf("CreateBusiness: %v", err)
	}
	ctx = utils.SetBusinessIdInContext(ctx, biz.ID.String())

	supplier, err := models.CreateSupplier(ctx, &models.NewSupplier{Name: "Metro"})
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}

	now := time.Now()
	invoice, err := models.CreateInvoice(ctx, &models.NewInvoice{
		InvoiceNumb: "FA-2024-001",
		InvoiceDate: now,
		DueDate:     now.AddDate(0, 0, 3),
		SupplierId:  &supplier.ID,
		Category:    "Food",
		AmountHT:    decimal.RequireFromString("100"),
		AmountTTC:   decimal.RequireFromString("120"),
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if !invoice.TvaPerct.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("expected tva_perct 20, got %s", invoice.TvaPerct)
	}

	if _, err := models.CreateInvoice(ctx, &models.NewInvoice{
		InvoiceNumb: "FA-2024-001",
		InvoiceDate: now,
		AmountHT:    decimal.RequireFromString("10"),
		AmountTTC:   decimal.RequireFromString("11"),
	}); err == nil {
		t.Fatal("expected duplicate invoice number to be rejected")
	}

	// An invoice without a payment deadline must never show up as due soon.
	if _, err := models.CreateInvoice(ctx, &models.NewInvoice{
		InvoiceNumb: "FA-2024-002",
		InvoiceDate: now,
		SupplierId:  &supplier.ID,
		Category:    "Food",
		AmountHT:    decimal.RequireFromString("50"),
		AmountTTC:   decimal.RequireFromString("55"),
	}); err != nil {
		t.Fatalf("CreateInvoice without due date: %v", err)
	}

	due, err := models.GetDueSoonInvoices(ctx, 7)
	if err != nil {
		t.Fatalf("GetDueSoonInvoices: %v", err)
	}
	if len(due) != 1 || due[0].ID != invoice.ID {
		t.Fatalf("expected only the dated unpaid invoice in the due-soon list, got %d rows", len(due))
	}

	if _, err := models.MarkInvoicePaid(ctx, invoice.ID, true); err != nil {
		t.Fatalf("MarkInvoicePaid: %v", err)
	}
	due, err = models.GetDueSoonInvoices(ctx, 7)
	if err != nil {
		t.Fatalf("GetDueSoonInvoices after payment: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("expected no due-soon invoices after payment, got %d", len(due))
	}

	sales, totals, err := models.CheckoutPosOrder(ctx, &models.PosCheckout{
		Lines: []models.PosOrderLine{
			{
				ItemName:      "Burger",
				ItemType:      "Food",
				Quantity:      decimal.RequireFromString("2"),
				Price:         decimal.RequireFromString("8"),
				OriginalPrice: decimal.RequireFromString("10"),
			},
			{
				ItemName:      "Soda",
				ItemType:      "Drink",
				Quantity:      decimal.RequireFromString("3"),
				Price:         decimal.RequireFromString("2"),
				OriginalPrice: decimal.RequireFromString("2"),
			},
		},
	})
	if err != nil {
		t.Fatalf("CheckoutPosOrder: %v", err)
	}
	if len(sales) != 2 {
		t.Fatalf("expected 2 sale rows, got %d", len(sales))
	}
	if !totals.Total.Equal(decimal.RequireFromString("22")) {
		t.Fatalf("expected order total 22, got %s", totals.Total)
	}
	if !totals.DiscountTotal.Equal(decimal.RequireFromString("4")) {
		t.Fatalf("expected discount total 4, got %s", totals.DiscountTotal)
	}
	for _, sale := range sales {
		if !sale.TotalValueItem.Equal(sale.SalePrice.Mul(sale.QuantitySold)) {
			t.Fatalf("sale %q total %s does not match price*qty", sale.ItemName, sale.TotalValueItem)
		}
		if sale.BusinessId != biz.ID.String() {
			t.Fatalf("sale %q saved under wrong business", sale.ItemName)
		}
	}
}
