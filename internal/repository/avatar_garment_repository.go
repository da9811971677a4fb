package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fitcloset/internal/model"
)

// AvatarGarmentRepository defines persistence for wardrobe membership edges.
type AvatarGarmentRepository interface {
	Add(ctx context.Context, avatarID, garmentID uint) (*model.AvatarGarment, error)
	Remove(ctx context.Context, avatarID, garmentID uint) error
	ListForAvatar(ctx context.Context, avatarID uint) ([]model.AvatarGarment, error)
	ClearForAvatar(ctx context.Context, avatarID uint) error
}

type avatarGarmentRepository struct {
	db *gorm.DB
}

// NewAvatarGarmentRepository creates a new wardrobe repository.
func NewAvatarGarmentRepository(db *gorm.DB) AvatarGarmentRepository {
	return &avatarGarmentRepository{db: db}
}

// Add links a garment into the wardrobe. Adding an existing edge is
// idempotent: the stored edge is returned and no duplicate is inserted.
func (r *avatarGarmentRepository) Add(ctx context.Context, avatarID, garmentID uint) (*model.AvatarGarment, error) {
	var existing model.AvatarGarment
	err := r.db.WithContext(ctx).
		Where("avatar_id = ? AND garment_id = ?", avatarID, garmentID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	edge := &model.AvatarGarment{AvatarID: avatarID, GarmentID: garmentID}
	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		return nil, err
	}
	return edge, nil
}

// Remove deletes the edge for (avatarID, garmentID).
func (r *avatarGarmentRepository) Remove(ctx context.Context, avatarID, garmentID uint) error {
	return r.db.WithContext(ctx).
		Where("avatar_id = ? AND garment_id = ?", avatarID, garmentID).
		Delete(&model.AvatarGarment{}).Error
}

// ListForAvatar returns the wardrobe edges with joined garment data.
func (r *avatarGarmentRepository) ListForAvatar(ctx context.Context, avatarID uint) ([]model.AvatarGarment, error) {
	var edges []model.AvatarGarment
	if err := r.db.WithContext(ctx).
		Preload("Garment").
		Where("avatar_id = ?", avatarID).
		Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

// ClearForAvatar removes every edge belonging to the avatar.
func (r *avatarGarmentRepository) ClearForAvatar(ctx context.Context, avatarID uint) error {
	return r.db.WithContext(ctx).
		Where("avatar_id = ?", avatarID).
		Delete(&model.AvatarGarment{}).Error
}
