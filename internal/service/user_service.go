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

// ErrUserNotFound is returned when a user does not exist.
var ErrUserNotFound = apperrors.NotFound("USER_NOT_FOUND", "user not found")

// UserService exposes read access to accounts.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	RoleOf(ctx context.Context, id uint) (model.Role, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperrors.Internal(fmt.Errorf("get user: %w", err))
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list users: %w", err))
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// RoleOf returns the stored role of a user. It satisfies auth.RoleLookup.
func (s *userService) RoleOf(ctx context.Context, id uint) (model.Role, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}
