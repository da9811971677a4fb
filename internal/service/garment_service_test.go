package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "fitcloset/internal/errors"
	"fitcloset/internal/model"
	"fitcloset/internal/repository"
)

// fakeGarmentCache is an in-memory GarmentCache for exercising cache hits
// and evictions without a Redis server.
type fakeGarmentCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeGarmentCache {
	return &fakeGarmentCache{data: map[string][]byte{}}
}

func (f *fakeGarmentCache) GetJSON(_ context.Context, key string, dest any) bool {
	raw, ok := f.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (f *fakeGarmentCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) {
	if raw, err := json.Marshal(value); err == nil {
		f.data[key] = raw
	}
}

func (f *fakeGarmentCache) Delete(_ context.Context, key string) {
	delete(f.data, key)
}

// MockGarmentRepository is a mock implementation of GarmentRepository.
type MockGarmentRepository struct {
	mock.Mock
}

func (m *MockGarmentRepository) Create(ctx context.Context, garment *model.Garment) error {
	args := m.Called(ctx, garment)
	return args.Error(0)
}

func (m *MockGarmentRepository) FindByID(ctx context.Context, id uint) (*model.Garment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Garment), args.Error(1)
}

func (m *MockGarmentRepository) Update(ctx context.Context, id uint, patch model.GarmentPatch) (*model.Garment, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Garment), args.Error(1)
}

func (m *MockGarmentRepository) SoftDelete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGarmentRepository) List(ctx context.Context, limit, offset int, filters repository.GarmentFilters) ([]model.Garment, error) {
	args := m.Called(ctx, limit, offset, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Garment), args.Error(1)
}

func (m *MockGarmentRepository) Search(ctx context.Context, query string, limit int) ([]model.Garment, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Garment), args.Error(1)
}

func (m *MockGarmentRepository) ByBrand(ctx context.Context, brand string, limit int) ([]model.Garment, error) {
	args := m.Called(ctx, brand, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Garment), args.Error(1)
}

func (m *MockGarmentRepository) ByCategory(ctx context.Context, category string, limit int) ([]model.Garment, error) {
	args := m.Called(ctx, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Garment), args.Error(1)
}

func (m *MockGarmentRepository) TopRated(ctx context.Context, limit int) ([]model.Garment, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Garment), args.Error(1)
}

func TestGarmentService_List(t *testing.T) {
	tests := []struct {
		name           string
		limit          int
		offset         int
		expectedLimit  int
		expectedOffset int
	}{
		{name: "defaults", limit: 0, offset: 0, expectedLimit: 50, expectedOffset: 0},
		{name: "explicit values", limit: 10, offset: 20, expectedLimit: 10, expectedOffset: 20},
		{name: "limit clamped to max", limit: 1000, offset: 0, expectedLimit: 100, expectedOffset: 0},
		{name: "negative offset reset", limit: 10, offset: -1, expectedLimit: 10, expectedOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockGarmentRepository)
			service := NewGarmentService(mockRepo, newFakeCache())

			mockRepo.On("List", mock.Anything, tt.expectedLimit, tt.expectedOffset, repository.GarmentFilters{}).
				Return([]model.Garment{}, nil)

			_, err := service.List(context.Background(), tt.limit, tt.offset, repository.GarmentFilters{})
			assert.NoError(t, err)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGarmentService_Get(t *testing.T) {
	t.Run("available garment", func(t *testing.T) {
		mockRepo := new(MockGarmentRepository)
		service := NewGarmentService(mockRepo, newFakeCache())

		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Garment{ID: 1, Name: "Denim Jacket", Available: true}, nil)

		garment, err := service.Get(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, "Denim Jacket", garment.Name)
	})

	t.Run("soft-deleted garment", func(t *testing.T) {
		mockRepo := new(MockGarmentRepository)
		service := NewGarmentService(mockRepo, newFakeCache())

		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.Garment{ID: 2, Available: false}, nil)

		garment, err := service.Get(context.Background(), 2)
		assert.Nil(t, garment)
		assert.ErrorIs(t, err, ErrGarmentUnavailable)
	})

	t.Run("unknown garment", func(t *testing.T) {
		mockRepo := new(MockGarmentRepository)
		service := NewGarmentService(mockRepo, newFakeCache())

		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		garment, err := service.Get(context.Background(), 99)
		assert.Nil(t, garment)
		assert.ErrorIs(t, err, ErrGarmentNotFound)
	})
}

func TestGarmentService_Search(t *testing.T) {
	t.Run("empty query rejected", func(t *testing.T) {
		service := NewGarmentService(new(MockGarmentRepository), newFakeCache())

		garments, err := service.Search(context.Background(), "", 10)
		assert.Nil(t, garments)

		var validationErr *apperrors.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("limit defaults and clamps", func(t *testing.T) {
		mockRepo := new(MockGarmentRepository)
		service := NewGarmentService(mockRepo, newFakeCache())

		mockRepo.On("Search", mock.Anything, "jacket", 20).Return([]model.Garment{}, nil).Once()
		mockRepo.On("Search", mock.Anything, "jacket", 100).Return([]model.Garment{}, nil).Once()

		_, err := service.Search(context.Background(), "jacket", 0)
		assert.NoError(t, err)
		_, err = service.Search(context.Background(), "jacket", 9999)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestGarmentService_TopRated(t *testing.T) {
	mockRepo := new(MockGarmentRepository)
	service := NewGarmentService(mockRepo, newFakeCache())

	mockRepo.On("TopRated", mock.Anything, 10).Return([]model.Garment{{ID: 1, Rating: 4.9}}, nil)

	garments, err := service.TopRated(context.Background(), 0)
	assert.NoError(t, err)
	assert.Len(t, garments, 1)
	mockRepo.AssertExpectations(t)
}

func TestGarmentService_Create(t *testing.T) {
	t.Run("defaults to available", func(t *testing.T) {
		mockRepo := new(MockGarmentRepository)
		service := NewGarmentService(mockRepo, newFakeCache())

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(g *model.Garment) bool {
			return g.Available && g.Name == "Denim Jacket"
		})).Return(nil)

		garment, err := service.Create(context.Background(), GarmentInput{
			Name:  "Denim Jacket",
			Brand: "UrbanStyle",
			Price: decimal.NewFromFloat(89.99),
		})
		assert.NoError(t, err)
		assert.True(t, garment.Available)
	})

	t.Run("explicit unavailable respected", func(t *testing.T) {
		mockRepo := new(MockGarmentRepository)
		service := NewGarmentService(mockRepo, newFakeCache())

		available := false
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(g *model.Garment) bool {
			return !g.Available
		})).Return(nil)

		garment, err := service.Create(context.Background(), GarmentInput{
			Name:      "Denim Jacket",
			Brand:     "UrbanStyle",
			Price:     decimal.NewFromFloat(89.99),
			Available: &available,
		})
		assert.NoError(t, err)
		assert.False(t, garment.Available)
	})
}

func TestGarmentService_Update(t *testing.T) {
	t.Run("applies patch", func(t *testing.T) {
		mockRepo := new(MockGarmentRepository)
		service := NewGarmentService(mockRepo, newFakeCache())

		name := "Renamed Jacket"
		patch := model.GarmentPatch{Name: &name}
		mockRepo.On("Update", mock.Anything, uint(1), patch).Return(&model.Garment{ID: 1, Name: name}, nil)

		garment, err := service.Update(context.Background(), 1, patch)
		assert.NoError(t, err)
		assert.Equal(t, name, garment.Name)
	})

	t.Run("empty patch returns existing garment", func(t *testing.T) {
		mockRepo := new(MockGarmentRepository)
		service := NewGarmentService(mockRepo, newFakeCache())

		mockRepo.On("Update", mock.Anything, uint(1), model.GarmentPatch{}).Return(nil, nil)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Garment{ID: 1, Name: "Denim Jacket"}, nil)

		garment, err := service.Update(context.Background(), 1, model.GarmentPatch{})
		assert.NoError(t, err)
		assert.Equal(t, "Denim Jacket", garment.Name)
	})

	t.Run("unknown garment", func(t *testing.T) {
		mockRepo := new(MockGarmentRepository)
		service := NewGarmentService(mockRepo, newFakeCache())

		mockRepo.On("Update", mock.Anything, uint(99), mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		garment, err := service.Update(context.Background(), 99, model.GarmentPatch{})
		assert.Nil(t, garment)
		assert.ErrorIs(t, err, ErrGarmentNotFound)
	})
}

func TestGarmentService_SoftDelete(t *testing.T) {
	t.Run("existing garment", func(t *testing.T) {
		mockRepo := new(MockGarmentRepository)
		service := NewGarmentService(mockRepo, newFakeCache())

		mockRepo.On("SoftDelete", mock.Anything, uint(1)).Return(nil)

		assert.NoError(t, service.SoftDelete(context.Background(), 1))
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown garment", func(t *testing.T) {
		mockRepo := new(MockGarmentRepository)
		service := NewGarmentService(mockRepo, newFakeCache())

		mockRepo.On("SoftDelete", mock.Anything, uint(99)).Return(gorm.ErrRecordNotFound)

		assert.ErrorIs(t, service.SoftDelete(context.Background(), 99), ErrGarmentNotFound)
	})
}

func TestGarmentService_CacheInvalidation(t *testing.T) {
	t.Run("soft delete evicts cached top rated list", func(t *testing.T) {
		mockRepo := new(MockGarmentRepository)
		service := NewGarmentService(mockRepo, newFakeCache())

		mockRepo.On("TopRated", mock.Anything, 10).
			Return([]model.Garment{{ID: 1, Name: "Denim Jacket", Rating: 4.9, Available: true}}, nil).Once()

		// warm the cache, then serve the second read from it
		garments, err := service.TopRated(context.Background(), 0)
		assert.NoError(t, err)
		assert.Len(t, garments, 1)
		garments, err = service.TopRated(context.Background(), 0)
		assert.NoError(t, err)
		assert.Len(t, garments, 1)

		mockRepo.On("SoftDelete", mock.Anything, uint(1)).Return(nil)
		assert.NoError(t, service.SoftDelete(context.Background(), 1))

		mockRepo.On("TopRated", mock.Anything, 10).Return([]model.Garment{}, nil).Once()
		garments, err = service.TopRated(context.Background(), 0)
		assert.NoError(t, err)
		assert.Empty(t, garments)
		mockRepo.AssertExpectations(t)
	})

	t.Run("update evicts cached top rated list", func(t *testing.T) {
		mockRepo := new(MockGarmentRepository)
		service := NewGarmentService(mockRepo, newFakeCache())

		mockRepo.On("TopRated", mock.Anything, 10).
			Return([]model.Garment{{ID: 1, Rating: 4.9, Available: true}}, nil).Once()
		_, err := service.TopRated(context.Background(), 0)
		assert.NoError(t, err)

		rating := 1.0
		mockRepo.On("Update", mock.Anything, uint(1), model.GarmentPatch{Rating: &rating}).
			Return(&model.Garment{ID: 1, Rating: rating, Available: true}, nil)
		_, err = service.Update(context.Background(), 1, model.GarmentPatch{Rating: &rating})
		assert.NoError(t, err)

		mockRepo.On("TopRated", mock.Anything, 10).
			Return([]model.Garment{{ID: 2, Rating: 4.5, Available: true}}, nil).Once()
		garments, err := service.TopRated(context.Background(), 0)
		assert.NoError(t, err)
		assert.Equal(t, uint(2), garments[0].ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("update evicts cached single garment", func(t *testing.T) {
		mockRepo := new(MockGarmentRepository)
		service := NewGarmentService(mockRepo, newFakeCache())

		mockRepo.On("FindByID", mock.Anything, uint(1)).
			Return(&model.Garment{ID: 1, Name: "Denim Jacket", Available: true}, nil).Once()

		// warm, then hit the cache
		_, err := service.Get(context.Background(), 1)
		assert.NoError(t, err)
		garment, err := service.Get(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, "Denim Jacket", garment.Name)

		name := "Renamed Jacket"
		mockRepo.On("Update", mock.Anything, uint(1), model.GarmentPatch{Name: &name}).
			Return(&model.Garment{ID: 1, Name: name, Available: true}, nil)
		_, err = service.Update(context.Background(), 1, model.GarmentPatch{Name: &name})
		assert.NoError(t, err)

		mockRepo.On("FindByID", mock.Anything, uint(1)).
			Return(&model.Garment{ID: 1, Name: name, Available: true}, nil).Once()
		garment, err = service.Get(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, name, garment.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-default window bypasses the cache", func(t *testing.T) {
		mockRepo := new(MockGarmentRepository)
		service := NewGarmentService(mockRepo, newFakeCache())

		mockRepo.On("TopRated", mock.Anything, 5).
			Return([]model.Garment{{ID: 1, Rating: 4.9, Available: true}}, nil).Twice()

		_, err := service.TopRated(context.Background(), 5)
		assert.NoError(t, err)
		_, err = service.TopRated(context.Background(), 5)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
