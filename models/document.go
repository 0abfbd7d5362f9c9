package models

import (
	"context"
	"errors"
	"time"

	"github.com/restobooks/backoffice_backend/config"
	"github.com/restobooks/backoffice_backend/utils"
	"gorm.io/gorm"
)

// Document is a stored file attached to another record. ReferenceType and
// ReferenceID form the polymorphic link (invoices, recipes, suppliers).
type Document struct {
	ID            int       `gorm:"primary_key" json:"id"`
	BusinessId    string    `gorm:"index;not null" json:"business_id"`
	DocumentUrl   string    `gorm:"size:512;not null" json:"document_url"`
	FileName      string    `gorm:"size:255" json:"file_name"`
	ThumbnailUrl  string    `gorm:"size:512" json:"thumbnail_url"`
	ReferenceType string    `gorm:"index;size:50" json:"reference_type"`
	ReferenceID   int       `gorm:"index" json:"reference_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewDocument struct {
	DocumentUrl  string `json:"document_url" binding:"required"`
	FileName     string `json:"file_name"`
	ThumbnailUrl string `json:"thumbnail_url"`
}

func (input NewDocument) mapInput(businessId, referenceType string, referenceId int) (*Document, error) {
	if err := utils.CheckDocumentExistInGCS(input.DocumentUrl); err != nil {
		return nil, errors.New("document object does not exist in storage")
	}
	return &Document{
		BusinessId:    businessId,
		DocumentUrl:   input.DocumentUrl,
		FileName:      input.FileName,
		ThumbnailUrl:  input.ThumbnailUrl,
		ReferenceType: referenceType,
		ReferenceID:   referenceId,
	}, nil
}

func mapNewDocuments(businessId string, input []*NewDocument, referenceType string, referenceId int) ([]*Document, error) {
	var documents []*Document
	for _, in := range input {
		d, err := in.mapInput(businessId, referenceType, referenceId)
		if err != nil {
			return nil, err
		}
		documents = append(documents, d)
	}
	return documents, nil
}

func (d *Document) store(tx *gorm.DB, ctx context.Context) error {
	return tx.WithContext(ctx).Create(d).Error
}

// AttachDocuments verifies each object exists in storage then links the
// rows to the given record.
func AttachDocuments(ctx context.Context, referenceType string, referenceId int, input []*NewDocument) ([]*Document, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	documents, err := mapNewDocuments(businessId, input, referenceType, referenceId)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()
	for _, d := range documents {
		if err := d.store(tx, ctx); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return documents, nil
}

func GetDocument(ctx context.Context, id int) (*Document, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	return utils.FetchModel[Document](ctx, businessId, id)
}

func GetDocumentsFor(ctx context.Context, referenceType string, referenceId int) ([]*Document, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	return utils.FetchModelsWhere[Document](ctx, businessId,
		"reference_type = ? AND reference_id = ?", referenceType, referenceId)
}

// DeleteDocument removes the row first, then the stored object and its
// thumbnail. A missing storage object is not an error.
func DeleteDocument(ctx context.Context, id int) (*Document, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	document, err := utils.FetchModel[Document](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(document).Error; err != nil {
		return nil, err
	}
	if err := utils.DeleteObjectFromGCS(ctx, utils.ExtractObjectKeyFromURL(document.DocumentUrl)); err != nil {
		return nil, err
	}
	if document.ThumbnailUrl != "" {
		if err := utils.DeleteObjectFromGCS(ctx, utils.ExtractObjectKeyFromURL(document.ThumbnailUrl)); err != nil {
			return nil, err
		}
	}
	return document, nil
}
