package models

import (
	"context"
	"errors"
	"time"

	"github.com/restobooks/backoffice_backend/config"
	"github.com/restobooks/backoffice_backend/utils"
)

type AgendaEvent struct {
	ID         int       `gorm:"primary_key" json:"id"`
	BusinessId string    `gorm:"index;not null" json:"business_id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	EventDate  time.Time `gorm:"index;not null" json:"event_date"`
	Note       string    `gorm:"size:255" json:"note"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewAgendaEvent struct {
	Title     string    `json:"title" binding:"required"`
	EventDate time.Time `json:"event_date" binding:"required"`
	Note      string    `json:"note"`
}

func CreateAgendaEvent(ctx context.Context, input *NewAgendaEvent) (*AgendaEvent, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	eventDate, err := utils.ConvertToDate(input.EventDate, "")
	if err != nil {
		return nil, err
	}

	event := AgendaEvent{
		BusinessId: businessId,
		Title:      input.Title,
		EventDate:  eventDate,
		Note:       input.Note,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func UpdateAgendaEvent(ctx context.Context, id int, input *NewAgendaEvent) (*AgendaEvent, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	event, err := utils.FetchModel[AgendaEvent](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	eventDate, err := utils.ConvertToDate(input.EventDate, "")
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(event).Updates(map[string]interface{}{
		"Title":     input.Title,
		"EventDate": eventDate,
		"Note":      input.Note,
	}).Error
	if err != nil {
		return nil, err
	}
	return event, nil
}

func GetAgendaEvents(ctx context.Context) ([]*AgendaEvent, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	return utils.FetchAllModels[AgendaEvent](ctx, businessId)
}

func GetAgendaEvent(ctx context.Context, id int) (*AgendaEvent, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	return utils.FetchModel[AgendaEvent](ctx, businessId, id)
}

func DeleteAgendaEvent(ctx context.Context, id int) (*AgendaEvent, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	event, err := utils.FetchModel[AgendaEvent](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// upcomingAgendaWindow is [today's business-timezone midnight, midnight +
// horizonDays]. Events are stored at that same midnight, so today's events
// sit exactly on the lower bound.
func upcomingAgendaWindow(now time.Time, horizonDays int) (time.Time, time.Time, error) {
	today, err := utils.ConvertToDate(now, "")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return today, today.AddDate(0, 0, horizonDays), nil
}

// CountUpcomingAgendaEvents counts events falling between today and
// today + horizonDays, feeding the notification badge.
func CountUpcomingAgendaEvents(ctx context.Context, horizonDays int) (int64, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return 0, errors.New("business id is required")
	}
	if horizonDays <= 0 {
		horizonDays = 7
	}
	from, to, err := upcomingAgendaWindow(time.Now(), horizonDays)
	if err != nil {
		return 0, err
	}
	return utils.ResourceCountWhere[AgendaEvent](ctx, businessId,
		"event_date >= ? AND event_date <= ?", from, to)
}
