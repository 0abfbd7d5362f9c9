package models

import (
	"context"
	"errors"
	"time"

	"github.com/restobooks/backoffice_backend/config"
	"github.com/restobooks/backoffice_backend/utils"
)

type Supplier struct {
	ID            int         `gorm:"primary_key" json:"id"`
	BusinessId    string      `gorm:"index;not null" json:"business_id"`
	Name          string      `gorm:"index;size:100;not null" json:"name" binding:"required"`
	ContactPerson string      `gorm:"size:100" json:"contact_person"`
	Phone         string      `gorm:"size:20" json:"phone"`
	Email         string      `gorm:"size:255" json:"email"`
	Address       string      `gorm:"type:text" json:"address"`
	Notes         string      `gorm:"type:text" json:"notes"`
	Documents     []*Document `gorm:"polymorphic:Reference" json:"documents"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSupplier struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

func (input *NewSupplier) validate(ctx context.Context, businessId string, exceptId int) error {
	if err := utils.ValidateUnique[Supplier](ctx, businessId, "name", input.Name, exceptId); err != nil {
		return errors.New("a supplier with this name already exists")
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return errors.New("invalid email")
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return errors.New("invalid phone number")
		}
	}
	return nil
}

func CreateSupplier(ctx context.Context, input *NewSupplier) (*Supplier, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(ctx, businessId, 0); err != nil {
		return nil, err
	}

	supplier := Supplier{
		BusinessId:    businessId,
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
		Notes:         input.Notes,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&supplier).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisList[Supplier](businessId); err != nil {
		return nil, err
	}
	return &supplier, nil
}

func UpdateSupplier(ctx context.Context, id int, input *NewSupplier) (*Supplier, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	supplier, err := utils.FetchModel[Supplier](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, businessId, id); err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(supplier).Updates(map[string]interface{}{
		"Name":          input.Name,
		"ContactPerson": input.ContactPerson,
		"Phone":         input.Phone,
		"Email":         input.Email,
		"Address":       input.Address,
		"Notes":         input.Notes,
	}).Error
	if err != nil {
		return nil, err
	}

	if err := utils.RemoveRedisList[Supplier](businessId); err != nil {
		return nil, err
	}
	return supplier, nil
}

func GetSuppliers(ctx context.Context) ([]*Supplier, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	suppliers, err := utils.RetrieveRedisList[Supplier](businessId)
	if err != nil {
		return nil, err
	}
	if suppliers == nil {
		suppliers, err = utils.FetchAllModels[Supplier](ctx, businessId, "Documents")
		if err != nil {
			return nil, err
		}
		if err := utils.StoreRedisList[Supplier](suppliers, businessId); err != nil {
			return nil, err
		}
	}
	return suppliers, nil
}

func GetSupplier(ctx context.Context, id int) (*Supplier, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	return utils.FetchModel[Supplier](ctx, businessId, id, "Documents")
}

func DeleteSupplier(ctx context.Context, id int) (*Supplier, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	supplier, err := utils.FetchModel[Supplier](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	// items keep their supplier_id history; block only when still referenced
	count, err := utils.ResourceCountWhere[InventoryItem](ctx, businessId, "supplier_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("supplier is still referenced by inventory items")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(supplier).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisList[Supplier](businessId); err != nil {
		return nil, err
	}
	return supplier, nil
}
