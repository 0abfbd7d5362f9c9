package models

import "errors"

// ExpenseFrequency is the recurrence rule of a recurring family expense.
type ExpenseFrequency string

const (
	FrequencyDaily        ExpenseFrequency = "Daily"
	FrequencyWeekly       ExpenseFrequency = "Weekly"
	FrequencyBiWeekly     ExpenseFrequency = "Bi-Weekly"
	FrequencyMonthly      ExpenseFrequency = "Monthly"
	FrequencyQuarterly    ExpenseFrequency = "Quarterly"
	FrequencySemiAnnually ExpenseFrequency = "Semi-Annually"
	FrequencyYearly       ExpenseFrequency = "Yearly"
	FrequencyEveryNMonths ExpenseFrequency = "Every-N-Months"
	FrequencyEveryNYears  ExpenseFrequency = "Every-N-Years"
)

var allExpenseFrequencies = map[ExpenseFrequency]bool{
	FrequencyDaily:        true,
	FrequencyWeekly:       true,
	FrequencyBiWeekly:     true,
	FrequencyMonthly:      true,
	FrequencyQuarterly:    true,
	FrequencySemiAnnually: true,
	FrequencyYearly:       true,
	FrequencyEveryNMonths: true,
	FrequencyEveryNYears:  true,
}

func (f ExpenseFrequency) Validate() error {
	if f == "" {
		return nil
	}
	if !allExpenseFrequencies[f] {
		return errors.New("invalid expense frequency")
	}
	return nil
}

// IsRecurring reports whether the frequency triggers automatic projection.
func (f ExpenseFrequency) IsRecurring() bool {
	return f != "" && allExpenseFrequencies[f]
}

// UserRole is stored on the users table; admins bypass tenant scoping.
type UserRole string

const (
	UserRoleAdmin UserRole = "A"
	UserRoleStaff UserRole = "S"
)
