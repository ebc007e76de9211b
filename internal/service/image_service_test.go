package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "homefinder/internal/errors"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"photo.png", "photo.png"},
		{"../../etc/passwd.png", "passwd.png"},
		{`..\..\windows\evil.jpg`, "evil.jpg"},
		{"my house (1).JPG", "my_house__1_.JPG"},
		{".hidden.gif", "hidden.gif"},
		{"ünïcode.webp", "_n_code.webp"},
		{"/", ""},
		{"..", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.in))
		})
	}
}

func TestImageService_Upload(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		storedAs    string
		expectedErr error
	}{
		{name: "png", filename: "front.png", storedAs: "front.png"},
		{name: "uppercase extension", filename: "Front.JPEG", storedAs: "Front.JPEG"},
		{name: "path traversal is sanitized", filename: "../../etc/passwd.png", storedAs: "passwd.png"},
		{name: "text file rejected", filename: "doc.txt", expectedErr: ErrFileTypeNotAllowed},
		{name: "no extension rejected", filename: "README", expectedErr: ErrFileTypeNotAllowed},
		{name: "empty filename rejected", filename: "", expectedErr: ErrMissingFilename},
		{name: "only dots rejected", filename: "..", expectedErr: ErrMissingFilename},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(MockProvider)
			if tt.expectedErr == nil {
				provider.On("Put", mock.Anything, "uploads/"+tt.storedAs, mock.Anything, mock.AnythingOfType("string")).Return(nil)
			}

			svc := NewImageService(provider, "http://localhost:8080/", nil)
			got, err := svc.Upload(context.Background(), tt.filename, strings.NewReader("data"))

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
				assert.Empty(t, got)
				provider.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "http://localhost:8080/uploads/"+tt.storedAs, got)
			provider.AssertExpectations(t)
		})
	}
}

func TestImageService_UploadContentType(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Put", mock.Anything, "uploads/a.png", mock.Anything, "image/png").Return(nil)

	_, err := NewImageService(provider, "http://cdn", nil).Upload(context.Background(), "a.png", strings.NewReader("x"))

	require.NoError(t, err)
	provider.AssertExpectations(t)
}

func TestImageService_URLAddressesStoredKey(t *testing.T) {
	var storedKey string
	provider := new(MockProvider)
	provider.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { storedKey = args.String(1) }).
		Return(nil)

	raw, err := NewImageService(provider, "https://bucket.s3.amazonaws.com", nil).
		Upload(context.Background(), "house.png", strings.NewReader("x"))
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "uploads/house.png", storedKey)
	assert.Equal(t, storedKey, strings.TrimPrefix(u.Path, "/"))
}

func TestImageService_StorageFailure(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Put", mock.Anything, "uploads/a.png", mock.Anything, mock.Anything).Return(errors.New("bucket missing"))

	_, err := NewImageService(provider, "http://cdn", nil).Upload(context.Background(), "a.png", strings.NewReader("x"))

	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}
