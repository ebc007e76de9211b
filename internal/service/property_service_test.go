package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "homefinder/internal/errors"
	"homefinder/internal/model"
	"homefinder/internal/repository"
)

func ptr[T any](v T) *T { return &v }

func fullInput() PropertyInput {
	return PropertyInput{
		Title:       ptr("Cozy Cottage"),
		Description: ptr("Two bedrooms near the park"),
		Price:       ptr(decimal.NewFromInt(250000)),
		Location:    ptr("Springfield"),
		Bedrooms:    ptr(2),
		Bathrooms:   ptr(1),
		Area:        ptr(80.5),
	}
}

func TestPropertyService_Create(t *testing.T) {
	mockRepo := new(MockPropertyRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Property")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Property).ID = 1
	})

	svc := NewPropertyService(mockRepo)
	property, err := svc.Create(context.Background(), fullInput())

	require.NoError(t, err)
	assert.Equal(t, uint(1), property.ID)
	assert.Equal(t, "Cozy Cottage", property.Title)
	assert.True(t, property.Price.Equal(decimal.NewFromInt(250000)))
	assert.True(t, property.IsAvailable)
	assert.Equal(t, model.StringList{}, property.Images)
	assert.Equal(t, model.StringList{}, property.Amenities)
	mockRepo.AssertExpectations(t)
}

func TestPropertyService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PropertyInput)
		message string
	}{
		{"missing title", func(in *PropertyInput) { in.Title = nil }, "missing required field: title"},
		{"blank title", func(in *PropertyInput) { in.Title = ptr("  ") }, "missing required field: title"},
		{"missing description", func(in *PropertyInput) { in.Description = nil }, "missing required field: description"},
		{"missing price", func(in *PropertyInput) { in.Price = nil }, "missing required field: price"},
		{"missing location", func(in *PropertyInput) { in.Location = nil }, "missing required field: location"},
		{"missing bedrooms", func(in *PropertyInput) { in.Bedrooms = nil }, "missing required field: bedrooms"},
		{"missing bathrooms", func(in *PropertyInput) { in.Bathrooms = nil }, "missing required field: bathrooms"},
		{"missing area", func(in *PropertyInput) { in.Area = nil }, "missing required field: area"},
		{"first missing wins", func(in *PropertyInput) { in.Area = nil; in.Price = nil }, "missing required field: price"},
		{"negative price", func(in *PropertyInput) { in.Price = ptr(decimal.NewFromInt(-1)) }, "price must not be negative"},
		{"negative area", func(in *PropertyInput) { in.Area = ptr(-3.0) }, "area must not be negative"},
		{"negative bedrooms", func(in *PropertyInput) { in.Bedrooms = ptr(-1) }, "bedrooms must not be negative"},
		{"comma in image", func(in *PropertyInput) { in.Images = []string{"a.png", "b,c.png"} }, "images entries must not contain commas"},
		{"comma in amenity", func(in *PropertyInput) { in.Amenities = []string{"Garden, large"} }, "amenities entries must not contain commas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPropertyRepository)
			svc := NewPropertyService(mockRepo)

			input := fullInput()
			tt.mutate(&input)
			property, err := svc.Create(context.Background(), input)

			assert.Nil(t, property)
			var ae *apperrors.AppError
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, apperrors.KindValidation, ae.Kind)
			assert.Equal(t, tt.message, ae.Message)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestPropertyService_Create_OptionalFields(t *testing.T) {
	mockRepo := new(MockPropertyRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Property")).Return(nil)

	input := fullInput()
	input.Images = []string{"https://cdn.example.com/a.png", " ", " b.png "}
	input.Amenities = []string{"Pool"}
	input.IsAvailable = ptr(false)

	property, err := NewPropertyService(mockRepo).Create(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, model.StringList{"https://cdn.example.com/a.png", "b.png"}, property.Images)
	assert.Equal(t, model.StringList{"Pool"}, property.Amenities)
	assert.False(t, property.IsAvailable)
}

func TestPropertyService_Update(t *testing.T) {
	existing := &model.Property{
		ID:          3,
		Title:       "Loft",
		Description: "Open plan",
		Price:       decimal.NewFromInt(400000),
		Location:    "Harbor",
		Bedrooms:    1,
		Bathrooms:   1,
		Area:        60,
		Images:      model.StringList{"a.png"},
		Amenities:   model.StringList{"Gym"},
		IsAvailable: true,
	}
	before := *existing

	mockRepo := new(MockPropertyRepository)
	mockRepo.On("FindByID", mock.Anything, uint(3)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, existing).Return(nil)

	updated, err := NewPropertyService(mockRepo).Update(context.Background(), 3, PropertyInput{
		Price: ptr(decimal.NewFromInt(500000)),
	})

	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(500000)))
	updated.Price = before.Price
	assert.Equal(t, before, *updated)
	mockRepo.AssertExpectations(t)
}

func TestPropertyService_NotFound(t *testing.T) {
	mockRepo := new(MockPropertyRepository)
	mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Delete", mock.Anything, uint(99)).Return(gorm.ErrRecordNotFound)
	svc := NewPropertyService(mockRepo)
	ctx := context.Background()

	_, err := svc.Get(ctx, 99)
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	_, err = svc.Update(ctx, 99, PropertyInput{Title: ptr("x")})
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	err = svc.Delete(ctx, 99)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestPropertyService_Update_DeletedConcurrently(t *testing.T) {
	mockRepo := new(MockPropertyRepository)
	mockRepo.On("FindByID", mock.Anything, uint(4)).Return(&model.Property{ID: 4, Title: "Gone"}, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(gorm.ErrRecordNotFound)

	_, err := NewPropertyService(mockRepo).Update(context.Background(), 4, PropertyInput{Title: ptr("Back")})

	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestPropertyService_Update_RejectsCommaEntries(t *testing.T) {
	mockRepo := new(MockPropertyRepository)

	_, err := NewPropertyService(mockRepo).Update(context.Background(), 4, PropertyInput{Amenities: []string{"Garden, large"}})

	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestPropertyService_StorageFailure(t *testing.T) {
	mockRepo := new(MockPropertyRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("deadlock"))

	_, err := NewPropertyService(mockRepo).Create(context.Background(), fullInput())

	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
	assert.Contains(t, apperrors.MapErrorToHTTP(err).Message, "deadlock")
}

func TestPropertyService_List(t *testing.T) {
	filter := repository.PropertyFilter{Location: "harbor", MinBedrooms: 2}
	mockRepo := new(MockPropertyRepository)
	mockRepo.On("List", mock.Anything, filter).Return([]model.Property{{ID: 1}}, nil)

	properties, err := NewPropertyService(mockRepo).List(context.Background(), filter)

	require.NoError(t, err)
	assert.Len(t, properties, 1)
	mockRepo.AssertExpectations(t)
}

func TestPropertyService_Stats(t *testing.T) {
	t.Run("empty catalogue", func(t *testing.T) {
		mockRepo := new(MockPropertyRepository)
		mockRepo.On("List", mock.Anything, repository.PropertyFilter{}).Return([]model.Property{}, nil)

		stats, err := NewPropertyService(mockRepo).Stats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, stats.Total)
		assert.True(t, stats.AveragePrice.IsZero())
		assert.Equal(t, []string{}, stats.Locations)
	})

	t.Run("mixed catalogue", func(t *testing.T) {
		mockRepo := new(MockPropertyRepository)
		mockRepo.On("List", mock.Anything, repository.PropertyFilter{}).Return([]model.Property{
			{Price: decimal.NewFromInt(100), Location: "Harbor", IsAvailable: true},
			{Price: decimal.NewFromInt(200), Location: "Downtown", IsAvailable: false},
			{Price: decimal.NewFromInt(400), Location: "Harbor", IsAvailable: true},
		}, nil)

		stats, err := NewPropertyService(mockRepo).Stats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, stats.Total)
		assert.Equal(t, 2, stats.Available)
		assert.Equal(t, "233.33", stats.AveragePrice.StringFixed(2))
		assert.Equal(t, []string{"Downtown", "Harbor"}, stats.Locations)
	})
}
