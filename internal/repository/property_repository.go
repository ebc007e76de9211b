package repository

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"homefinder/internal/model"
)

// PropertyFilter narrows a property listing. Zero values mean "no constraint".
type PropertyFilter struct {
	Query        string
	Location     string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	MinBedrooms  int
	MinBathrooms int
	Available    *bool
}

// PropertyRepository defines property persistence operations.
type PropertyRepository interface {
	Create(ctx context.Context, property *model.Property) error
	Update(ctx context.Context, property *model.Property) error
	FindByID(ctx context.Context, id uint) (*model.Property, error)
	List(ctx context.Context, filter PropertyFilter) ([]model.Property, error)
	Delete(ctx context.Context, id uint) error
}

type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository.
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

// Create creates a new property.
func (r *propertyRepository) Create(ctx context.Context, property *model.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

// Update writes every column of an existing property and refreshes
// updated_at. It never inserts: a property deleted in the meantime yields
// gorm.ErrRecordNotFound.
func (r *propertyRepository) Update(ctx context.Context, property *model.Property) error {
	db := r.db.WithContext(ctx)
	res := db.Model(property).Select("*").Omit("id", "created_at").Updates(property)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// MySQL reports zero affected rows when nothing changed, so tell that
	// apart from a missing row.
	var count int64
	if err := db.Model(&model.Property{}).Where("id = ?", property.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds a property by ID.
func (r *propertyRepository) FindByID(ctx context.Context, id uint) (*model.Property, error) {
	var property model.Property
	if err := r.db.WithContext(ctx).First(&property, id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// List returns properties matching filter in storage order.
func (r *propertyRepository) List(ctx context.Context, filter PropertyFilter) ([]model.Property, error) {
	q := r.db.WithContext(ctx).Model(&model.Property{})

	if s := strings.TrimSpace(filter.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?", like, like, like)
	}
	if s := strings.TrimSpace(filter.Location); s != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.MinBedrooms > 0 {
		q = q.Where("bedrooms >= ?", filter.MinBedrooms)
	}
	if filter.MinBathrooms > 0 {
		q = q.Where("bathrooms >= ?", filter.MinBathrooms)
	}
	if filter.Available != nil {
		q = q.Where("is_available = ?", *filter.Available)
	}

	properties := []model.Property{}
	if err := q.Order("id").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// Delete removes a property together with the likes and inquiries that point
// at it. Returns gorm.ErrRecordNotFound when nothing matched.
func (r *propertyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&model.Inquiry{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Property{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
