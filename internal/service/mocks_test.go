package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"homefinder/internal/model"
	"homefinder/internal/oauth"
	"homefinder/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockPropertyRepository is a mock implementation of PropertyRepository.
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *model.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Update(ctx context.Context, property *model.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uint) (*model.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Property), args.Error(1)
}

func (m *MockPropertyRepository) List(ctx context.Context, filter repository.PropertyFilter) ([]model.Property, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Property), args.Error(1)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLikeRepository is a mock implementation of LikeRepository.
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Add(ctx context.Context, userID, propertyID uint) error {
	args := m.Called(ctx, userID, propertyID)
	return args.Error(0)
}

func (m *MockLikeRepository) Remove(ctx context.Context, userID, propertyID uint) error {
	args := m.Called(ctx, userID, propertyID)
	return args.Error(0)
}

func (m *MockLikeRepository) ListProperties(ctx context.Context, userID uint) ([]model.Property, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Property), args.Error(1)
}

// MockInquiryRepository is a mock implementation of InquiryRepository.
type MockInquiryRepository struct {
	mock.Mock
}

func (m *MockInquiryRepository) Create(ctx context.Context, inquiry *model.Inquiry) error {
	args := m.Called(ctx, inquiry)
	return args.Error(0)
}

func (m *MockInquiryRepository) List(ctx context.Context) ([]model.Inquiry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Inquiry), args.Error(1)
}

// MockStateStore is a mock implementation of StateStoreInterface.
type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) NewState(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockStateStore) ConsumeState(ctx context.Context, state string) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

// MockBridge is a mock implementation of oauth.Bridge.
type MockBridge struct {
	mock.Mock
}

func (m *MockBridge) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockBridge) Exchange(ctx context.Context, code string) (*oauth.Identity, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth.Identity), args.Error(1)
}

// MockProvider is a mock implementation of storage.Provider.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Put(ctx context.Context, key string, body io.ReadSeeker, contentType string) error {
	args := m.Called(ctx, key, body, contentType)
	return args.Error(0)
}

// assignUserID emulates the database filling in the primary key on insert.
func assignUserID(id uint) func(mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = id
	}
}
