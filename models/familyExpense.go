package models

import (
	"context"
	"errors"
	"time"

	"github.com/restobooks/backoffice_backend/config"
	"github.com/restobooks/backoffice_backend/utils"
	"github.com/shopspring/decimal"
)

// RecurringNoteMarker tags rows inserted by the recurrence projection so
// the duplicate check can tell them from manual entries.
const RecurringNoteMarker = "[recurring]"

type FamilyExpense struct {
	ID         int              `gorm:"primary_key" json:"id"`
	BusinessId string           `gorm:"index;not null" json:"business_id"`
	Amount     decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"amount"`
	Date       time.Time        `gorm:"index;not null" json:"date"`
	Category   string           `gorm:"index;size:100" json:"category"`
	Frequency  ExpenseFrequency `gorm:"size:20" json:"frequency"`
	// IntervalCount is the N of the Every-N frequencies, ignored otherwise.
	IntervalCount int       `gorm:"default:0" json:"interval_count"`
	Note          string    `gorm:"size:255" json:"note"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewFamilyExpense struct {
	Amount        decimal.Decimal  `json:"amount"`
	Date          time.Time        `json:"date" binding:"required"`
	Category      string           `json:"category" binding:"required"`
	Frequency     ExpenseFrequency `json:"frequency"`
	IntervalCount int              `json:"interval_count"`
	Note          string           `json:"note"`
}

// FrequencyInterval expresses a recurrence step as whole days or whole
// months, never both.
type FrequencyInterval struct {
	Days   int
	Months int
}

// IntervalFor maps a frequency to its step. The Every-N frequencies scale
// by n; n below 1 is treated as 1.
func IntervalFor(f ExpenseFrequency, n int) (FrequencyInterval, error) {
	if n < 1 {
		n = 1
	}
	switch f {
	case FrequencyDaily:
		return FrequencyInterval{Days: 1}, nil
	case FrequencyWeekly:
		return FrequencyInterval{Days: 7}, nil
	case FrequencyBiWeekly:
		return FrequencyInterval{Days: 14}, nil
	case FrequencyMonthly:
		return FrequencyInterval{Months: 1}, nil
	case FrequencyQuarterly:
		return FrequencyInterval{Months: 3}, nil
	case FrequencySemiAnnually:
		return FrequencyInterval{Months: 6}, nil
	case FrequencyYearly:
		return FrequencyInterval{Months: 12}, nil
	case FrequencyEveryNMonths:
		return FrequencyInterval{Months: n}, nil
	case FrequencyEveryNYears:
		return FrequencyInterval{Months: 12 * n}, nil
	}
	return FrequencyInterval{}, errors.New("invalid expense frequency")
}

// NextOccurrence returns lastDate advanced by one recurrence step.
func NextOccurrence(lastDate time.Time, f ExpenseFrequency, n int) (time.Time, error) {
	interval, err := IntervalFor(f, n)
	if err != nil {
		return time.Time{}, err
	}
	if interval.Days > 0 {
		return lastDate.AddDate(0, 0, interval.Days), nil
	}
	return lastDate.AddDate(0, interval.Months, 0), nil
}

// IsDue reports whether a recurring expense last recorded on lastDate is
// due on the given day. Both instants are rendered in the business
// / timezone before comparing: the database hands timestamps back as UTC,
// so a stored local midnight reads as late evening of the previous day.
func IsDue(lastDate, today time.Time, f ExpenseFrequency, n int) (bool, error) {
	anchor, err := utils.ConvertToDate(lastDate, "")
	if err != nil {
		return false, err
	}
	next, err := NextOccurrence(anchor, f, n)
	if err != nil {
		return false, err
	}
	day, err := utils.ConvertToDate(today, "")
	if err != nil {
		return false, err
	}
	ny, nm, nd := next.Date()
	ty, tm, td := day.Date()
	return ny == ty && nm == tm && nd == td, nil
}

func (input *NewFamilyExpense) validate() error {
	if input.Amount.IsNegative() {
		return errors.New("expense amount cannot be negative")
	}
	if err := input.Frequency.Validate(); err != nil {
		return err
	}
	if (input.Frequency == FrequencyEveryNMonths || input.Frequency == FrequencyEveryNYears) && input.IntervalCount < 1 {
		return errors.New("interval count must be at least 1")
	}
	return nil
}

func CreateFamilyExpense(ctx context.Context, input *NewFamilyExpense) (*FamilyExpense, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	date, err := utils.ConvertToDate(input.Date, "")
	if err != nil {
		return nil, err
	}

	expense := FamilyExpense{
		BusinessId:    businessId,
		Amount:        input.Amount,
		Date:          date,
		Category:      input.Category,
		Frequency:     input.Frequency,
		IntervalCount: input.IntervalCount,
		Note:          input.Note,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func UpdateFamilyExpense(ctx context.Context, id int, input *NewFamilyExpense) (*FamilyExpense, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	expense, err := utils.FetchModel[FamilyExpense](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	date, err := utils.ConvertToDate(input.Date, "")
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(expense).Updates(map[string]interface{}{
		"Amount":        input.Amount,
		"Date":          date,
		"Category":      input.Category,
		"Frequency":     input.Frequency,
		"IntervalCount": input.IntervalCount,
		"Note":          input.Note,
	}).Error
	if err != nil {
		return nil, err
	}
	return expense, nil
}

func GetFamilyExpenses(ctx context.Context) ([]*FamilyExpense, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	return utils.FetchAllModels[FamilyExpense](ctx, businessId)
}

func GetFamilyExpense(ctx context.Context, id int) (*FamilyExpense, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	return utils.FetchModel[FamilyExpense](ctx, businessId, id)
}

func DeleteFamilyExpense(ctx context.Context, id int) (*FamilyExpense, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	expense, err := utils.FetchModel[FamilyExpense](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(expense).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

// GetRecurringExpenseProfiles returns, per category+frequency, the most
// recent expense row that carries a recurring frequency. These rows act as
// the projection anchors.
func GetRecurringExpenseProfiles(ctx context.Context, businessId string) ([]*FamilyExpense, error) {
	db := config.GetDB()
	var profiles []*FamilyExpense
	err := db.WithContext(ctx).
		Raw(`SELECT fe.* FROM family_expenses fe
		     JOIN (SELECT category, frequency, MAX(date) AS max_date
		             FROM family_expenses
		            WHERE business_id = ? AND frequency <> ''
		            GROUP BY category, frequency) latest
		       ON fe.category = latest.category
		      AND fe.frequency = latest.frequency
		      AND fe.date = latest.max_date
		    WHERE fe.business_id = ?`, businessId, businessId).
		Scan(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// HasRecurringExpenseOn checks the duplicate-suppression key: same day,
// same category, recurring note marker.
func HasRecurringExpenseOn(ctx context.Context, businessId string, day time.Time, category string) (bool, error) {
	count, err := utils.ResourceCountWhere[FamilyExpense](ctx, businessId,
		"date = ? AND category = ? AND note LIKE ?", day, category, RecurringNoteMarker+"%")
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertProjectedExpense writes the projected row for a due recurring
// profile, tagged with the recurring marker.
func InsertProjectedExpense(ctx context.Context, profile *FamilyExpense, day time.Time) (*FamilyExpense, error) {
	expense := FamilyExpense{
		BusinessId:    profile.BusinessId,
		Amount:        profile.Amount,
		Date:          day,
		Category:      profile.Category,
		Frequency:     profile.Frequency,
		IntervalCount: profile.IntervalCount,
		Note:          RecurringNoteMarker + " " + profile.Category,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}
