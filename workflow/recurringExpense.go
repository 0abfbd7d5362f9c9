package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/restobooks/backoffice_backend/config"
	"github.com/restobooks/backoffice_backend/models"
	"github.com/restobooks/backoffice_backend/utils"
)

// ProjectionResult reports what one projection run did.
type ProjectionResult struct {
	Inserted int                     `json:"inserted"`
	Skipped  int                     `json:"skipped"`
	Expenses []*models.FamilyExpense `json:"expenses"`
}

// ProjectRecurringExpenses walks the recurring expense profiles of the
// authenticated business and inserts a row for each profile due today.
// The run is serialized per business with a redis lock so two concurrent
// triggers cannot double-insert.
func ProjectRecurringExpenses(ctx context.Context) (*ProjectionResult, error) {
	logger := config.GetLogger()

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	locker := config.GetRedisLock()
	if locker == nil {
		config.LogError(logger, "recurringExpense.go", "ProjectRecurringExpenses", "Redis lock not initialized", businessId, errors.New("redis lock is nil"))
		return nil, errors.New("service not ready (redis lock not initialized)")
	}
	lockKey := fmt.Sprintf("recurring:%s", businessId)
	lock, err := locker.Obtain(ctx, lockKey, 30*time.Second, nil)
	if err == redislock.ErrNotObtained {
		return nil, errors.New("a projection run is already in progress")
	} else if err != nil {
		config.LogError(logger, "recurringExpense.go", "ProjectRecurringExpenses", "Error obtaining lock for businessID", businessId, err)
		return nil, err
	}
	defer func() {
		_ = lock.Release(ctx)
	}()

	return projectForBusiness(ctx, businessId)
}

func projectForBusiness(ctx context.Context, businessId string) (*ProjectionResult, error) {
	logger := config.GetLogger()

	today, err := utils.ConvertToDate(time.Now(), "")
	if err != nil {
		return nil, err
	}

	profiles, err := models.GetRecurringExpenseProfiles(ctx, businessId)
	if err != nil {
		return nil, err
	}

	result := &ProjectionResult{}
	for _, profile := range profiles {
		if !profile.Frequency.IsRecurring() {
			continue
		}
		due, err := models.IsDue(profile.Date, today, profile.Frequency, profile.IntervalCount)
		if err != nil {
			config.LogError(logger, "recurringExpense.go", "projectForBusiness", "Invalid recurrence profile", profile, err)
			continue
		}
		if !due {
			result.Skipped++
			continue
		}

		exists, err := models.HasRecurringExpenseOn(ctx, businessId, today, profile.Category)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Skipped++
			continue
		}

		expense, err := models.InsertProjectedExpense(ctx, profile, today)
		if err != nil {
			return nil, err
		}
		result.Inserted++
		result.Expenses = append(result.Expenses, expense)
	}
	return result, nil
}
