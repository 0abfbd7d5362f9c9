package models

import (
	"context"
	"errors"
	"time"

	"github.com/restobooks/backoffice_backend/config"
	"github.com/restobooks/backoffice_backend/utils"
	"github.com/shopspring/decimal"
)

// DashboardSummary is the aggregated snapshot behind the landing page.
type DashboardSummary struct {
	MonthSalesTotal    decimal.Decimal `json:"month_sales_total"`
	MonthInvoiceTotal  decimal.Decimal `json:"month_invoice_total"`
	MonthFamilyTotal   decimal.Decimal `json:"month_family_total"`
	MonthExpenseTotal  decimal.Decimal `json:"month_expense_total"`
	ProfitMarginPct    decimal.Decimal `json:"profit_margin_pct"`
	DueSoonTotal       decimal.Decimal `json:"due_soon_total"`
	DueSoonCount       int64           `json:"due_soon_count"`
	UpcomingAgendaDays int             `json:"upcoming_agenda_days"`
	UpcomingAgenda     int64           `json:"upcoming_agenda"`
}

// CalculateProfitMargin is (sales - expenses) / sales * 100, zero when
// sales is not positive.
func CalculateProfitMargin(salesTotal, expenseTotal decimal.Decimal) decimal.Decimal {
	if !salesTotal.IsPositive() {
		return decimal.Zero
	}
	return salesTotal.Sub(expenseTotal).DivRound(salesTotal, 6).Mul(decimalOneHundred).Round(4)
}

// monthBounds brackets the current month in the business timezone. Rows
// are written at business-timezone midnight, so bounds computed in any
// other location would misfile dates near the month edge.
func monthBounds(now time.Time) (time.Time, time.Time, error) {
	local, err := utils.ConvertToDate(now, "")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, local.Location())
	return start, start.AddDate(0, 1, 0), nil
}

func sumColumn(ctx context.Context, businessId, table, column, condition string, values ...interface{}) (decimal.Decimal, error) {
	db := config.GetDB()
	var total decimal.NullDecimal
	err := db.WithContext(ctx).
		Table(table).
		Select("SUM("+column+")").
		Where("business_id = ?", businessId).
		Where(condition, values...).
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// GetDashboardSummary computes the month-to-date figures and badge counts
// with SQL aggregates.
func GetDashboardSummary(ctx context.Context, horizonDays int) (*DashboardSummary, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if horizonDays <= 0 {
		horizonDays = 7
	}

	now := time.Now()
	monthStart, monthEnd, err := monthBounds(now)
	if err != nil {
		return nil, err
	}

	salesTotal, err := sumColumn(ctx, businessId, "sales", "total_value_item",
		"sale_date >= ? AND sale_date < ?", monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	invoiceTotal, err := sumColumn(ctx, businessId, "invoices", "amount_ttc",
		"invoice_date >= ? AND invoice_date < ?", monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	familyTotal, err := sumColumn(ctx, businessId, "family_expenses", "amount",
		"date >= ? AND date < ?", monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	dueCutoff := now.AddDate(0, 0, horizonDays)
	dueSoonTotal, err := sumColumn(ctx, businessId, "invoices", "amount_ttc",
		"paid = ? AND due_date IS NOT NULL AND due_date <= ?", false, dueCutoff)
	if err != nil {
		return nil, err
	}
	dueSoonCount, err := utils.ResourceCountWhere[Invoice](ctx, businessId,
		"paid = ? AND due_date IS NOT NULL AND due_date <= ?", false, dueCutoff)
	if err != nil {
		return nil, err
	}
	upcomingAgenda, err := CountUpcomingAgendaEvents(ctx, horizonDays)
	if err != nil {
		return nil, err
	}

	expenseTotal := invoiceTotal.Add(familyTotal)

	return &DashboardSummary{
		MonthSalesTotal:    salesTotal,
		MonthInvoiceTotal:  invoiceTotal,
		MonthFamilyTotal:   familyTotal,
		MonthExpenseTotal:  expenseTotal,
		ProfitMarginPct:    CalculateProfitMargin(salesTotal, expenseTotal),
		DueSoonTotal:       dueSoonTotal,
		DueSoonCount:       dueSoonCount,
		UpcomingAgendaDays: horizonDays,
		UpcomingAgenda:     upcomingAgenda,
	}, nil
}
