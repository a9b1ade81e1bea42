package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/artifaks/herbal-wisdom/internal/errors"
)

// MockObjectStore is a mock implementation of storage.ObjectStore.
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Upload(ctx context.Context, bucket, objectPath, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, bucket, objectPath, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Delete(ctx context.Context, bucket, objectPath string) error {
	args := m.Called(ctx, bucket, objectPath)
	return args.Error(0)
}

func (m *MockObjectStore) PublicURL(bucket, objectPath string) string {
	args := m.Called(bucket, objectPath)
	return args.String(0)
}

func TestStorageService_UploadImage(t *testing.T) {
	tests := []struct {
		name          string
		contentType   string
		size          int64
		body          string
		setupMock     func(*MockObjectStore)
		expectedError error
	}{
		{
			name:        "accepts jpeg",
			contentType: "image/jpeg",
			size:        1024,
			body:        "jpeg bytes",
			setupMock: func(m *MockObjectStore) {
				m.On("Upload", mock.Anything, "herb-images", mock.MatchedBy(func(p string) bool {
					return strings.HasPrefix(p, "herb-images/") && strings.HasSuffix(p, ".jpg")
				}), "image/jpeg", mock.Anything).Return("https://cdn.example.com/herb-images/x.jpg", nil)
			},
		},
		{
			name:        "accepts content type with charset parameter",
			contentType: "image/PNG; charset=binary",
			size:        1024,
			body:        "png bytes",
			setupMock: func(m *MockObjectStore) {
				m.On("Upload", mock.Anything, "herb-images", mock.MatchedBy(func(p string) bool {
					return strings.HasSuffix(p, ".png")
				}), "image/PNG; charset=binary", mock.Anything).Return("https://cdn.example.com/herb-images/x.png", nil)
			},
		},
		{
			name:          "rejects oversize declared length",
			contentType:   "image/jpeg",
			size:          MaxImageSize + 1,
			body:          "tiny",
			setupMock:     func(m *MockObjectStore) {},
			expectedError: apperrors.ErrImageTooLarge,
		},
		{
			name:          "rejects disallowed type",
			contentType:   "image/gif",
			size:          1024,
			body:          "gif bytes",
			setupMock:     func(m *MockObjectStore) {},
			expectedError: apperrors.ErrInvalidImageType,
		},
		{
			name:          "rejects body larger than the declared length",
			contentType:   "image/webp",
			size:          1024,
			body:          strings.Repeat("x", MaxImageSize+10),
			setupMock:     func(m *MockObjectStore) {},
			expectedError: apperrors.ErrImageTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockObjectStore)
			tt.setupMock(mockStore)

			service := NewStorageService(mockStore, "herb-images")
			url, err := service.UploadImage(context.Background(), "photo.bin", tt.contentType, tt.size, strings.NewReader(tt.body))

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, url)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, url)
			}

			mockStore.AssertExpectations(t)
		})
	}
}

func TestStorageService_UploadImage_UniquePaths(t *testing.T) {
	mockStore := new(MockObjectStore)
	var paths []string
	mockStore.On("Upload", mock.Anything, "herb-images", mock.Anything, "image/png", mock.Anything).
		Run(func(args mock.Arguments) {
			paths = append(paths, args.String(2))
		}).Return("https://cdn.example.com/img.png", nil)

	service := NewStorageService(mockStore, "herb-images")
	for i := 0; i < 3; i++ {
		_, err := service.UploadImage(context.Background(), "same-name.png", "image/png", 4, strings.NewReader("data"))
		assert.NoError(t, err)
	}

	seen := map[string]bool{}
	for _, p := range paths {
		assert.False(t, seen[p], "blob path %q reused", p)
		seen[p] = true
	}
}

func TestStorageService_DeleteImage(t *testing.T) {
	mockStore := new(MockObjectStore)
	mockStore.On("Delete", mock.Anything, "herb-images", "herb-images/x.jpg").Return(nil)

	service := NewStorageService(mockStore, "herb-images")
	assert.NoError(t, service.DeleteImage(context.Background(), "herb-images/x.jpg"))
	mockStore.AssertExpectations(t)
}
