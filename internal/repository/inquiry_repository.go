package repository

import (
	"context"

	"gorm.io/gorm"

	"homefinder/internal/model"
)

// InquiryRepository defines inquiry persistence operations.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *model.Inquiry) error
	List(ctx context.Context) ([]model.Inquiry, error)
}

type inquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository creates a new inquiry repository.
func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *model.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

// List returns all inquiries, newest first.
func (r *inquiryRepository) List(ctx context.Context) ([]model.Inquiry, error) {
	inquiries := []model.Inquiry{}
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&inquiries).Error; err != nil {
		return nil, err
	}
	return inquiries, nil
}
