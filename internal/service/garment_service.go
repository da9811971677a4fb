package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fitcloset/internal/errors"
	"fitcloset/internal/model"
	"fitcloset/internal/repository"
)

const (
	defaultListLimit   = 50
	defaultFacetLimit  = 20
	defaultTopLimit    = 10
	maxListLimit       = 100
	garmentCacheTTL    = 5 * time.Minute
	topRatedCacheTTL   = time.Minute
	topRatedCacheKey   = "garments:top"
	garmentCachePrefix = "garment:"
)

var (
	// ErrGarmentNotFound is returned when a garment id does not exist.
	ErrGarmentNotFound = errors.New("garment not found")
	// ErrGarmentUnavailable is returned when a public read hits a
	// soft-deleted garment.
	ErrGarmentUnavailable = errors.New("garment not available")
)

// GarmentInput is the validated shape for creating a garment.
type GarmentInput struct {
	Name        string
	Brand       string
	Price       decimal.Decimal
	Rating      float64
	ImageURL    string
	Description string
	Category    string
	Style       string
	Available   *bool
}

// GarmentService handles catalog reads and mutations.
type GarmentService interface {
	List(ctx context.Context, limit, offset int, filters repository.GarmentFilters) ([]model.Garment, error)
	Get(ctx context.Context, id uint) (*model.Garment, error)
	Search(ctx context.Context, query string, limit int) ([]model.Garment, error)
	ByBrand(ctx context.Context, brand string, limit int) ([]model.Garment, error)
	ByCategory(ctx context.Context, category string, limit int) ([]model.Garment, error)
	TopRated(ctx context.Context, limit int) ([]model.Garment, error)
	Create(ctx context.Context, in GarmentInput) (*model.Garment, error)
	Update(ctx context.Context, id uint, patch model.GarmentPatch) (*model.Garment, error)
	SoftDelete(ctx context.Context, id uint) error
}

// GarmentCache is the read cache for hot catalog paths. *cache.Client
// implements it; a fail-safe implementation degrades to misses.
type GarmentCache interface {
	GetJSON(ctx context.Context, key string, dest any) bool
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

type garmentService struct {
	repo  repository.GarmentRepository
	cache GarmentCache
}

// NewGarmentService creates a garment service with repository and cache.
func NewGarmentService(repo repository.GarmentRepository, cache GarmentCache) GarmentService {
	return &garmentService{repo: repo, cache: cache}
}

func garmentCacheKey(id uint) string {
	return fmt.Sprintf("%s%d", garmentCachePrefix, id)
}

// List returns available garments matching conjunctive filters, newest-first.
// Limit defaults to 50 and is clamped to 100.
func (s *garmentService) List(ctx context.Context, limit, offset int, filters repository.GarmentFilters) ([]model.Garment, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset, filters)
}

// Get returns a garment for the public read path: absent and soft-deleted
// rows both fail, the latter with ErrGarmentUnavailable.
func (s *garmentService) Get(ctx context.Context, id uint) (*model.Garment, error) {
	var cached model.Garment
	if s.cache.GetJSON(ctx, garmentCacheKey(id), &cached) {
		if !cached.Available {
			return nil, ErrGarmentUnavailable
		}
		return &cached, nil
	}

	garment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGarmentNotFound
		}
		return nil, fmt.Errorf("find garment: %w", err)
	}

	s.cache.SetJSON(ctx, garmentCacheKey(id), garment, garmentCacheTTL)

	if !garment.Available {
		return nil, ErrGarmentUnavailable
	}
	return garment, nil
}

// Search returns available garments matched by substring, rating descending.
func (s *garmentService) Search(ctx context.Context, query string, limit int) ([]model.Garment, error) {
	if query == "" {
		return nil, apperrors.Validation("Search query is required")
	}
	if limit <= 0 {
		limit = defaultFacetLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.Search(ctx, query, limit)
}

// ByBrand returns available garments of a brand, rating descending.
func (s *garmentService) ByBrand(ctx context.Context, brand string, limit int) ([]model.Garment, error) {
	if limit <= 0 {
		limit = defaultFacetLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ByBrand(ctx, brand, limit)
}

// ByCategory returns available garments of a category, rating descending.
func (s *garmentService) ByCategory(ctx context.Context, category string, limit int) ([]model.Garment, error) {
	if limit <= 0 {
		limit = defaultFacetLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ByCategory(ctx, category, limit)
}

// TopRated returns available garments by rating descending, newest-first on
// ties. The default window is cached briefly; the cached key is evicted by
// every catalog mutation so a re-rated or soft-deleted garment never outlives
// the write.
func (s *garmentService) TopRated(ctx context.Context, limit int) ([]model.Garment, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	if limit == defaultTopLimit {
		var cached []model.Garment
		if s.cache.GetJSON(ctx, topRatedCacheKey, &cached) {
			return cached, nil
		}
	}

	garments, err := s.repo.TopRated(ctx, limit)
	if err != nil {
		return nil, err
	}
	if limit == defaultTopLimit {
		s.cache.SetJSON(ctx, topRatedCacheKey, garments, topRatedCacheTTL)
	}
	return garments, nil
}

// Create adds a garment to the catalog.
func (s *garmentService) Create(ctx context.Context, in GarmentInput) (*model.Garment, error) {
	available := true
	if in.Available != nil {
		available = *in.Available
	}

	garment := &model.Garment{
		Name:        in.Name,
		Brand:       in.Brand,
		Price:       in.Price,
		Rating:      in.Rating,
		ImageURL:    in.ImageURL,
		Description: in.Description,
		Category:    in.Category,
		Style:       in.Style,
		Available:   available,
	}
	if err := s.repo.Create(ctx, garment); err != nil {
		return nil, fmt.Errorf("create garment: %w", err)
	}
	return garment, nil
}

// Update applies a partial update. An all-nil patch returns the garment
// unchanged. The cached copy is invalidated.
func (s *garmentService) Update(ctx context.Context, id uint, patch model.GarmentPatch) (*model.Garment, error) {
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGarmentNotFound
		}
		return nil, fmt.Errorf("update garment: %w", err)
	}
	if updated == nil {
		existing, err := s.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGarmentNotFound
			}
			return nil, fmt.Errorf("find garment: %w", err)
		}
		return existing, nil
	}

	s.cache.Delete(ctx, garmentCacheKey(id))
	s.cache.Delete(ctx, topRatedCacheKey)
	return updated, nil
}

// SoftDelete hides the garment from public listings but preserves the row.
func (s *garmentService) SoftDelete(ctx context.Context, id uint) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGarmentNotFound
		}
		return fmt.Errorf("delete garment: %w", err)
	}
	s.cache.Delete(ctx, garmentCacheKey(id))
	s.cache.Delete(ctx, topRatedCacheKey)
	return nil
}
