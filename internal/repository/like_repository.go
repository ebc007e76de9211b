package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homefinder/internal/model"
)

// LikeRepository stores the properties each user has saved.
type LikeRepository interface {
	Add(ctx context.Context, userID, propertyID uint) error
	Remove(ctx context.Context, userID, propertyID uint) error
	ListProperties(ctx context.Context, userID uint) ([]model.Property, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Add records a like. Liking twice is not an error.
func (r *likeRepository) Add(ctx context.Context, userID, propertyID uint) error {
	like := &model.Like{UserID: userID, PropertyID: propertyID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error
}

// Remove deletes a like, returning gorm.ErrRecordNotFound if there was none.
func (r *likeRepository) Remove(ctx context.Context, userID, propertyID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&model.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListProperties returns the liked properties of a user, most recent like first.
func (r *likeRepository) ListProperties(ctx context.Context, userID uint) ([]model.Property, error) {
	properties := []model.Property{}
	err := r.db.WithContext(ctx).
		Select("properties.*").
		Joins("JOIN likes ON likes.property_id = properties.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Order("likes.id DESC").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}
