package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fitcloset/internal/model"
)

// GarmentFilters are conjunctive filters for catalog listing. Zero values
// leave the corresponding clause out.
type GarmentFilters struct {
	Brand    string
	Category string
	Style    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Search   string
}

// GarmentRepository defines garment catalog persistence operations. Public
// listings only ever see available rows; FindByID deliberately returns
// unavailable rows so admin paths can still read soft-deleted garments.
type GarmentRepository interface {
	Create(ctx context.Context, garment *model.Garment) error
	FindByID(ctx context.Context, id uint) (*model.Garment, error)
	Update(ctx context.Context, id uint, patch model.GarmentPatch) (*model.Garment, error)
	SoftDelete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int, filters GarmentFilters) ([]model.Garment, error)
	Search(ctx context.Context, query string, limit int) ([]model.Garment, error)
	ByBrand(ctx context.Context, brand string, limit int) ([]model.Garment, error)
	ByCategory(ctx context.Context, category string, limit int) ([]model.Garment, error)
	TopRated(ctx context.Context, limit int) ([]model.Garment, error)
}

type garmentRepository struct {
	db *gorm.DB
}

// NewGarmentRepository creates a new garment repository.
func NewGarmentRepository(db *gorm.DB) GarmentRepository {
	return &garmentRepository{db: db}
}

// Create creates a new garment.
func (r *garmentRepository) Create(ctx context.Context, garment *model.Garment) error {
	return r.db.WithContext(ctx).Create(garment).Error
}

// FindByID finds a garment by ID regardless of availability.
func (r *garmentRepository) FindByID(ctx context.Context, id uint) (*model.Garment, error) {
	var garment model.Garment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&garment).Error; err != nil {
		return nil, err
	}
	return &garment, nil
}

// Update applies a partial update. An empty patch is a no-op returning a nil
// garment and no error.
func (r *garmentRepository) Update(ctx context.Context, id uint, patch model.GarmentPatch) (*model.Garment, error) {
	updates := patch.Changes()
	if len(updates) == 0 {
		return nil, nil
	}

	res := r.db.WithContext(ctx).Model(&model.Garment{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// SoftDelete marks the garment unavailable. The row is preserved.
func (r *garmentRepository) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&model.Garment{}).
		Where("id = ?", id).
		Update("available", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns available garments matching the filters, newest-first.
func (r *garmentRepository) List(ctx context.Context, limit, offset int, filters GarmentFilters) ([]model.Garment, error) {
	q := r.db.WithContext(ctx).Where("available = ?", true)

	if filters.Brand != "" {
		q = q.Where("brand = ?", filters.Brand)
	}
	if filters.Category != "" {
		q = q.Where("category = ?", filters.Category)
	}
	if filters.Style != "" {
		q = q.Where("style = ?", filters.Style)
	}
	if filters.MinPrice != nil {
		q = q.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		q = q.Where("price <= ?", *filters.MaxPrice)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		q = q.Where("name LIKE ? OR brand LIKE ? OR description LIKE ?", pattern, pattern, pattern)
	}

	var garments []model.Garment
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&garments).Error; err != nil {
		return nil, err
	}
	return garments, nil
}

// Search returns available garments whose name, brand or description contains
// the query, ordered by rating descending.
func (r *garmentRepository) Search(ctx context.Context, query string, limit int) ([]model.Garment, error) {
	pattern := "%" + query + "%"
	var garments []model.Garment
	if err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Where("name LIKE ? OR brand LIKE ? OR description LIKE ?", pattern, pattern, pattern).
		Order("rating DESC").
		Limit(limit).
		Find(&garments).Error; err != nil {
		return nil, err
	}
	return garments, nil
}

// ByBrand returns available garments of a brand, rating descending.
func (r *garmentRepository) ByBrand(ctx context.Context, brand string, limit int) ([]model.Garment, error) {
	var garments []model.Garment
	if err := r.db.WithContext(ctx).
		Where("available = ? AND brand = ?", true, brand).
		Order("rating DESC").
		Limit(limit).
		Find(&garments).Error; err != nil {
		return nil, err
	}
	return garments, nil
}

// ByCategory returns available garments of a category, rating descending.
func (r *garmentRepository) ByCategory(ctx context.Context, category string, limit int) ([]model.Garment, error) {
	var garments []model.Garment
	if err := r.db.WithContext(ctx).
		Where("available = ? AND category = ?", true, category).
		Order("rating DESC").
		Limit(limit).
		Find(&garments).Error; err != nil {
		return nil, err
	}
	return garments, nil
}

// TopRated returns available garments by rating descending, ties broken
// newest-created-first.
func (r *garmentRepository) TopRated(ctx context.Context, limit int) ([]model.Garment, error) {
	var garments []model.Garment
	if err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("rating DESC, created_at DESC").
		Limit(limit).
		Find(&garments).Error; err != nil {
		return nil, err
	}
	return garments, nil
}
