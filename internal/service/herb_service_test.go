package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "github.com/artifaks/herbal-wisdom/internal/errors"
	"github.com/artifaks/herbal-wisdom/internal/model"
)

// MockHerbRepository is a mock implementation of HerbRepository.
type MockHerbRepository struct {
	mock.Mock
}

func (m *MockHerbRepository) List(ctx context.Context, filter model.HerbFilter, page model.Pagination) ([]model.Herb, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Herb), args.Get(1).(int64), args.Error(2)
}

func (m *MockHerbRepository) FindByID(ctx context.Context, id uint) (*model.Herb, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Herb), args.Error(1)
}

func (m *MockHerbRepository) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockHerbRepository) Create(ctx context.Context, herb *model.Herb) error {
	args := m.Called(ctx, herb)
	return args.Error(0)
}

func (m *MockHerbRepository) Update(ctx context.Context, herb *model.Herb) error {
	args := m.Called(ctx, herb)
	return args.Error(0)
}

func (m *MockHerbRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestHerbService_List(t *testing.T) {
	mockRepo := new(MockHerbRepository)
	filter := model.HerbFilter{Category: "Calming"}

	// A zero page size is replaced with the default before hitting the
	// repository.
	mockRepo.On("List", mock.Anything, filter, model.Pagination{Page: 1, PageSize: 20}).
		Return([]model.Herb{{ID: 1, Name: "Chamomile", Category: "Calming"}}, int64(1), nil)

	service := NewHerbService(mockRepo, nil)
	page, err := service.List(context.Background(), filter, model.Pagination{Page: 1})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), page.Count)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, "Chamomile", page.Data[0].Name)

	mockRepo.AssertExpectations(t)
}

func TestHerbService_List_EmptyResultIsNotNil(t *testing.T) {
	mockRepo := new(MockHerbRepository)
	mockRepo.On("List", mock.Anything, mock.Anything, mock.Anything).Return([]model.Herb(nil), int64(0), nil)

	service := NewHerbService(mockRepo, nil)
	page, err := service.List(context.Background(), model.HerbFilter{}, model.Pagination{})

	assert.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}

func TestHerbService_GetByID(t *testing.T) {
	tests := []struct {
		name          string
		id            uint
		setupMock     func(*MockHerbRepository)
		expectedError error
	}{
		{
			name: "found",
			id:   1,
			setupMock: func(m *MockHerbRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.Herb{ID: 1, Name: "Echinacea"}, nil)
			},
		},
		{
			name: "not found",
			id:   99,
			setupMock: func(m *MockHerbRepository) {
				m.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrHerbNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockHerbRepository)
			tt.setupMock(mockRepo)

			service := NewHerbService(mockRepo, nil)
			herb, err := service.GetByID(context.Background(), tt.id)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, herb)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, herb)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestHerbService_Categories(t *testing.T) {
	mockRepo := new(MockHerbRepository)
	mockRepo.On("Categories", mock.Anything).Return([]string{"Adaptogen", "Calming", "Immune"}, nil)

	service := NewHerbService(mockRepo, nil)
	categories, err := service.Categories(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"Adaptogen", "Calming", "Immune"}, categories)
	mockRepo.AssertExpectations(t)
}

func TestHerbService_Update_NotFound(t *testing.T) {
	mockRepo := new(MockHerbRepository)
	mockRepo.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)

	service := NewHerbService(mockRepo, nil)
	err := service.Update(context.Background(), &model.Herb{ID: 7, Name: "Ghost Herb"})

	assert.Equal(t, apperrors.ErrHerbNotFound, err)
	mockRepo.AssertExpectations(t)
}

func TestHerbService_Delete(t *testing.T) {
	mockRepo := new(MockHerbRepository)
	mockRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.Herb{ID: 3}, nil)
	mockRepo.On("Delete", mock.Anything, uint(3)).Return(nil)

	service := NewHerbService(mockRepo, nil)
	assert.NoError(t, service.Delete(context.Background(), 3))
	mockRepo.AssertExpectations(t)
}
