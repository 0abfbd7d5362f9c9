package models

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/restobooks/backoffice_backend/config"
	"github.com/restobooks/backoffice_backend/utils"
	"gorm.io/gorm"
)

type Business struct {
	ID          uuid.UUID `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"index;size:100;not null" json:"name" binding:"required"`
	ContactName string    `gorm:"size:100" json:"contact_name"`
	Email       string    `gorm:"size:255" json:"email"`
	Phone       string    `gorm:"size:20" json:"phone"`
	Address     string    `gorm:"type:text" json:"address"`
	Timezone    string    `gorm:"size:50" json:"timezone"`
	// VAT registration number, printed on receipts
	TaxId     string    `gorm:"size:100" json:"tax_id"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewBusiness struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Timezone    string `json:"timezone"`
	TaxId       string `json:"tax_id"`
}

func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func CreateBusiness(ctx context.Context, input *NewBusiness) (*Business, error) {
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return nil, errors.New("invalid email")
	}
	timezone := input.Timezone
	if timezone == "" {
		timezone = "Europe/Paris"
	}

	business := Business{
		Name:        input.Name,
		ContactName: input.ContactName,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		Timezone:    timezone,
		TaxId:       input.TaxId,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

// GetBusinessById reads the business, redis first then db.
func GetBusinessById(ctx context.Context, businessId string) (*Business, error) {
	var business *Business
	exists, err := config.GetRedisObject("Business:"+businessId, &business)
	if err != nil {
		return nil, err
	}
	if exists {
		return business, nil
	}

	db := config.GetDB()
	business = &Business{}
	if err := db.WithContext(ctx).Where("id = ?", businessId).First(business).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := config.SetRedisObject("Business:"+businessId, business, 0); err != nil {
		return nil, err
	}
	return business, nil
}

func UpdateBusiness(ctx context.Context, businessId string, input *NewBusiness) (*Business, error) {
	db := config.GetDB()

	var business Business
	if err := db.WithContext(ctx).Where("id = ?", businessId).First(&business).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return nil, errors.New("invalid email")
	}

	err := db.WithContext(ctx).Model(&business).Updates(map[string]interface{}{
		"Name":        input.Name,
		"ContactName": input.ContactName,
		"Email":       input.Email,
		"Phone":       input.Phone,
		"Address":     input.Address,
		"Timezone":    input.Timezone,
		"TaxId":       input.TaxId,
	}).Error
	if err != nil {
		return nil, err
	}

	if err := config.RemoveRedisKey("Business:" + businessId); err != nil {
		return nil, err
	}
	return &business, nil
}
