package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "homefinder/internal/errors"
	"homefinder/internal/model"
	"homefinder/internal/repository"
)

// ErrLikeNotFound is returned when removing a like that does not exist.
var ErrLikeNotFound = apperrors.NotFound("LIKE_NOT_FOUND", "like not found")

// LikeService manages the properties a user has saved.
type LikeService interface {
	List(ctx context.Context, userID uint) ([]model.Property, error)
	Like(ctx context.Context, userID, propertyID uint) error
	Unlike(ctx context.Context, userID, propertyID uint) error
}

type likeService struct {
	likes      repository.LikeRepository
	properties repository.PropertyRepository
}

// NewLikeService creates a new like service.
func NewLikeService(likes repository.LikeRepository, properties repository.PropertyRepository) LikeService {
	return &likeService{likes: likes, properties: properties}
}

func (s *likeService) List(ctx context.Context, userID uint) ([]model.Property, error) {
	properties, err := s.likes.ListProperties(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list likes: %w", err))
	}
	return properties, nil
}

// Like saves a property for the user. Liking an already liked property is a no-op.
func (s *likeService) Like(ctx context.Context, userID, propertyID uint) error {
	if propertyID == 0 {
		return apperrors.Validation("missing required field: property_id")
	}
	if _, err := s.properties.FindByID(ctx, propertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPropertyNotFound
		}
		return apperrors.Internal(fmt.Errorf("find property: %w", err))
	}
	if err := s.likes.Add(ctx, userID, propertyID); err != nil {
		return apperrors.Internal(fmt.Errorf("add like: %w", err))
	}
	return nil
}

func (s *likeService) Unlike(ctx context.Context, userID, propertyID uint) error {
	if err := s.likes.Remove(ctx, userID, propertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLikeNotFound
		}
		return apperrors.Internal(fmt.Errorf("remove like: %w", err))
	}
	return nil
}
