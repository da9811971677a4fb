package repository

import (
	"context"

	"gorm.io/gorm"

	"fitcloset/internal/model"
)

// BodyMeasurementRepository defines persistence for the single measurement
// set owned by an avatar.
type BodyMeasurementRepository interface {
	Create(ctx context.Context, m *model.BodyMeasurement) error
	FindByAvatarID(ctx context.Context, avatarID uint) (*model.BodyMeasurement, error)
	Update(ctx context.Context, avatarID uint, patch model.BodyMeasurementPatch) (*model.BodyMeasurement, error)
}

type measurementRepository struct {
	db *gorm.DB
}

// NewBodyMeasurementRepository creates a new body measurement repository.
func NewBodyMeasurementRepository(db *gorm.DB) BodyMeasurementRepository {
	return &measurementRepository{db: db}
}

// Create creates a measurement set for an avatar.
func (r *measurementRepository) Create(ctx context.Context, m *model.BodyMeasurement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// FindByAvatarID finds the measurement set for an avatar.
func (r *measurementRepository) FindByAvatarID(ctx context.Context, avatarID uint) (*model.BodyMeasurement, error) {
	var m model.BodyMeasurement
	if err := r.db.WithContext(ctx).Where("avatar_id = ?", avatarID).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// Update applies a set-if-non-nil partial update keyed by avatar ID. An empty
// patch is a no-op returning a nil measurement and no error.
func (r *measurementRepository) Update(ctx context.Context, avatarID uint, patch model.BodyMeasurementPatch) (*model.BodyMeasurement, error) {
	updates := patch.Changes()
	if len(updates) == 0 {
		return nil, nil
	}

	if err := r.db.WithContext(ctx).Model(&model.BodyMeasurement{}).
		Where("avatar_id = ?", avatarID).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByAvatarID(ctx, avatarID)
}
