package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "homefinder/internal/errors"
	"homefinder/internal/model"
)

func TestInquiryService_Submit(t *testing.T) {
	t.Run("defaults the inquiry type", func(t *testing.T) {
		inquiries, properties := new(MockInquiryRepository), new(MockPropertyRepository)
		properties.On("FindByID", mock.Anything, uint(3)).Return(&model.Property{ID: 3}, nil)
		inquiries.On("Create", mock.Anything, mock.MatchedBy(func(i *model.Inquiry) bool {
			return i.InquiryType == model.InquiryTypeGeneral && i.Email == "eve@example.com"
		})).Return(nil)

		inquiry, err := NewInquiryService(inquiries, properties).Submit(context.Background(), InquiryInput{
			PropertyID: 3,
			Name:       "Eve",
			Email:      " eve@example.com ",
			Message:    "Is it still available?",
		})

		require.NoError(t, err)
		assert.Equal(t, "Eve", inquiry.Name)
		inquiries.AssertExpectations(t)
	})

	t.Run("keeps an explicit type", func(t *testing.T) {
		inquiries, properties := new(MockInquiryRepository), new(MockPropertyRepository)
		properties.On("FindByID", mock.Anything, uint(3)).Return(&model.Property{ID: 3}, nil)
		inquiries.On("Create", mock.Anything, mock.Anything).Return(nil)

		inquiry, err := NewInquiryService(inquiries, properties).Submit(context.Background(), InquiryInput{
			PropertyID: 3, Name: "Eve", Email: "eve@example.com", InquiryType: "viewing",
		})

		require.NoError(t, err)
		assert.Equal(t, "viewing", inquiry.InquiryType)
	})

	t.Run("unknown property", func(t *testing.T) {
		properties := new(MockPropertyRepository)
		properties.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := NewInquiryService(new(MockInquiryRepository), properties).Submit(context.Background(), InquiryInput{
			PropertyID: 9, Name: "Eve", Email: "eve@example.com",
		})

		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := NewInquiryService(new(MockInquiryRepository), new(MockPropertyRepository)).Submit(context.Background(), InquiryInput{
			PropertyID: 9, Email: "eve@example.com",
		})

		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})
}

func TestUserService(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Role: model.RoleAdmin}, nil)
	repo.On("FindByID", mock.Anything, uint(2)).Return(nil, gorm.ErrRecordNotFound)
	repo.On("List", mock.Anything).Return(nil, nil)
	svc := NewUserService(repo)
	ctx := context.Background()

	role, err := svc.RoleOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)

	_, err = svc.RoleOf(ctx, 2)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.User{}, users)
}
