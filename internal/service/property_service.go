package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "homefinder/internal/errors"
	"homefinder/internal/model"
	"homefinder/internal/repository"
)

// ErrPropertyNotFound is returned when a property does not exist.
var ErrPropertyNotFound = apperrors.NotFound("PROPERTY_NOT_FOUND", "property not found")

// PropertyInput carries the writable fields of a property. A nil field was
// not supplied by the client.
type PropertyInput struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" swaggertype:"number"`
	Location    *string          `json:"location"`
	Bedrooms    *int             `json:"bedrooms"`
	Bathrooms   *int             `json:"bathrooms"`
	Area        *float64         `json:"area"`
	Images      []string         `json:"images"`
	Amenities   []string         `json:"amenities"`
	IsAvailable *bool            `json:"is_available"`
}

// PropertyStats summarizes the catalogue.
type PropertyStats struct {
	Total        int             `json:"total"`
	Available    int             `json:"available"`
	AveragePrice decimal.Decimal `json:"average_price" swaggertype:"string"`
	Locations    []string        `json:"locations"`
}

// PropertyService handles property operations.
type PropertyService interface {
	List(ctx context.Context, filter repository.PropertyFilter) ([]model.Property, error)
	Get(ctx context.Context, id uint) (*model.Property, error)
	Create(ctx context.Context, input PropertyInput) (*model.Property, error)
	Update(ctx context.Context, id uint, input PropertyInput) (*model.Property, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*PropertyStats, error)
}

type propertyService struct {
	repo repository.PropertyRepository
}

// NewPropertyService creates a new property service.
func NewPropertyService(repo repository.PropertyRepository) PropertyService {
	return &propertyService{repo: repo}
}

// List returns all properties matching filter.
func (s *propertyService) List(ctx context.Context, filter repository.PropertyFilter) ([]model.Property, error) {
	properties, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list properties: %w", err))
	}
	return properties, nil
}

// Get retrieves a property by ID.
func (s *propertyService) Get(ctx context.Context, id uint) (*model.Property, error) {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, apperrors.Internal(fmt.Errorf("get property: %w", err))
	}
	return property, nil
}

// Create validates input and stores a new property.
func (s *propertyService) Create(ctx context.Context, input PropertyInput) (*model.Property, error) {
	if field := input.firstMissing(); field != "" {
		return nil, apperrors.Validation("missing required field: " + field)
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	property := &model.Property{
		Images:      model.StringList{},
		Amenities:   model.StringList{},
		IsAvailable: true,
	}
	input.apply(property)

	if err := s.repo.Create(ctx, property); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("create property: %w", err))
	}
	return property, nil
}

// Update overwrites the supplied fields and keeps the rest.
func (s *propertyService) Update(ctx context.Context, id uint, input PropertyInput) (*model.Property, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	property, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	input.apply(property)
	if err := s.repo.Update(ctx, property); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, apperrors.Internal(fmt.Errorf("update property: %w", err))
	}
	return property, nil
}

// Delete removes a property.
func (s *propertyService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPropertyNotFound
		}
		return apperrors.Internal(fmt.Errorf("delete property: %w", err))
	}
	return nil
}

// Stats computes catalogue statistics.
func (s *propertyService) Stats(ctx context.Context) (*PropertyStats, error) {
	properties, err := s.List(ctx, repository.PropertyFilter{})
	if err != nil {
		return nil, err
	}

	stats := &PropertyStats{Total: len(properties), AveragePrice: decimal.Zero, Locations: []string{}}
	seen := map[string]bool{}
	sum := decimal.Zero
	for _, p := range properties {
		if p.IsAvailable {
			stats.Available++
		}
		sum = sum.Add(p.Price)
		if !seen[p.Location] {
			seen[p.Location] = true
			stats.Locations = append(stats.Locations, p.Location)
		}
	}
	if stats.Total > 0 {
		stats.AveragePrice = sum.Div(decimal.NewFromInt(int64(stats.Total))).Round(2)
	}
	sort.Strings(stats.Locations)
	return stats, nil
}

// firstMissing names the first required field absent from a create request.
func (in PropertyInput) firstMissing() string {
	switch {
	case in.Title == nil || strings.TrimSpace(*in.Title) == "":
		return "title"
	case in.Description == nil || strings.TrimSpace(*in.Description) == "":
		return "description"
	case in.Price == nil:
		return "price"
	case in.Location == nil || strings.TrimSpace(*in.Location) == "":
		return "location"
	case in.Bedrooms == nil:
		return "bedrooms"
	case in.Bathrooms == nil:
		return "bathrooms"
	case in.Area == nil:
		return "area"
	}
	return ""
}

func (in PropertyInput) validate() error {
	switch {
	case in.Price != nil && in.Price.IsNegative():
		return apperrors.Validation("price must not be negative")
	case in.Area != nil && *in.Area < 0:
		return apperrors.Validation("area must not be negative")
	case in.Bedrooms != nil && *in.Bedrooms < 0:
		return apperrors.Validation("bedrooms must not be negative")
	case in.Bathrooms != nil && *in.Bathrooms < 0:
		return apperrors.Validation("bathrooms must not be negative")
	case in.Title != nil && strings.TrimSpace(*in.Title) == "":
		return apperrors.Validation("title must not be empty")
	case in.Location != nil && strings.TrimSpace(*in.Location) == "":
		return apperrors.Validation("location must not be empty")
	case hasSeparator(in.Images):
		return apperrors.Validation("images entries must not contain commas")
	case hasSeparator(in.Amenities):
		return apperrors.Validation("amenities entries must not contain commas")
	}
	return nil
}

func hasSeparator(items []string) bool {
	for _, item := range items {
		if strings.Contains(item, model.ListSeparator) {
			return true
		}
	}
	return false
}

func (in PropertyInput) apply(p *model.Property) {
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Location != nil {
		p.Location = strings.TrimSpace(*in.Location)
	}
	if in.Bedrooms != nil {
		p.Bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		p.Bathrooms = *in.Bathrooms
	}
	if in.Area != nil {
		p.Area = *in.Area
	}
	if in.Images != nil {
		p.Images = cleanList(in.Images)
	}
	if in.Amenities != nil {
		p.Amenities = cleanList(in.Amenities)
	}
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}
}

// cleanList trims entries and drops blank ones.
func cleanList(items []string) model.StringList {
	out := model.StringList{}
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
