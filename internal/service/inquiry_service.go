package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "homefinder/internal/errors"
	"homefinder/internal/model"
	"homefinder/internal/repository"
)

// InquiryInput is a visitor's contact request about a property.
type InquiryInput struct {
	PropertyID  uint   `json:"property_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	InquiryType string `json:"inquiry_type"`
}

// InquiryService records and lists inquiries.
type InquiryService interface {
	Submit(ctx context.Context, input InquiryInput) (*model.Inquiry, error)
	List(ctx context.Context) ([]model.Inquiry, error)
}

type inquiryService struct {
	inquiries  repository.InquiryRepository
	properties repository.PropertyRepository
}

// NewInquiryService creates a new inquiry service.
func NewInquiryService(inquiries repository.InquiryRepository, properties repository.PropertyRepository) InquiryService {
	return &inquiryService{inquiries: inquiries, properties: properties}
}

func (s *inquiryService) Submit(ctx context.Context, input InquiryInput) (*model.Inquiry, error) {
	name, email := strings.TrimSpace(input.Name), strings.TrimSpace(input.Email)
	if input.PropertyID == 0 {
		return nil, apperrors.Validation("missing required field: property_id")
	}
	if err := requireFields("name", name, "email", email); err != nil {
		return nil, err
	}

	if _, err := s.properties.FindByID(ctx, input.PropertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, apperrors.Internal(fmt.Errorf("find property: %w", err))
	}

	inquiryType := strings.TrimSpace(input.InquiryType)
	if inquiryType == "" {
		inquiryType = model.InquiryTypeGeneral
	}

	inquiry := &model.Inquiry{
		PropertyID:  input.PropertyID,
		Name:        name,
		Email:       email,
		Phone:       strings.TrimSpace(input.Phone),
		Message:     input.Message,
		InquiryType: inquiryType,
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("create inquiry: %w", err))
	}
	return inquiry, nil
}

func (s *inquiryService) List(ctx context.Context) ([]model.Inquiry, error) {
	inquiries, err := s.inquiries.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list inquiries: %w", err))
	}
	return inquiries, nil
}
