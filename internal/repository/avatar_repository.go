package repository

import (
	"context"

	"gorm.io/gorm"

	"fitcloset/internal/model"
)

// AvatarRepository defines avatar persistence operations. The one-per-user
// invariant is checked by callers before Create; the store does not enforce
// it atomically.
type AvatarRepository interface {
	Create(ctx context.Context, avatar *model.Avatar) error
	FindByID(ctx context.Context, id uint) (*model.Avatar, error)
	FindByUserID(ctx context.Context, userID uint) (*model.Avatar, error)
	Update(ctx context.Context, id uint, patch model.AvatarPatch) (*model.Avatar, error)
	Delete(ctx context.Context, id uint) error
	ListPublic(ctx context.Context, limit, offset int) ([]model.Avatar, error)
}

type avatarRepository struct {
	db *gorm.DB
}

// NewAvatarRepository creates a new avatar repository.
func NewAvatarRepository(db *gorm.DB) AvatarRepository {
	return &avatarRepository{db: db}
}

// Create creates a new avatar profile.
func (r *avatarRepository) Create(ctx context.Context, avatar *model.Avatar) error {
	return r.db.WithContext(ctx).Create(avatar).Error
}

// FindByID finds an avatar by ID.
func (r *avatarRepository) FindByID(ctx context.Context, id uint) (*model.Avatar, error) {
	var avatar model.Avatar
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&avatar).Error; err != nil {
		return nil, err
	}
	return &avatar, nil
}

// FindByUserID finds the avatar owned by a user.
func (r *avatarRepository) FindByUserID(ctx context.Context, userID uint) (*model.Avatar, error) {
	var avatar model.Avatar
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&avatar).Error; err != nil {
		return nil, err
	}
	return &avatar, nil
}

// Update applies a partial update. An empty patch is a no-op returning a nil
// avatar and no error.
func (r *avatarRepository) Update(ctx context.Context, id uint, patch model.AvatarPatch) (*model.Avatar, error) {
	updates := patch.Changes()
	if len(updates) == 0 {
		return nil, nil
	}

	if err := r.db.WithContext(ctx).Model(&model.Avatar{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete removes the avatar. Dependent measurement and wardrobe rows are
// removed by the foreign-key cascade.
func (r *avatarRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Avatar{}, id).Error
}

// ListPublic returns public avatars ordered newest-created-first.
func (r *avatarRepository) ListPublic(ctx context.Context, limit, offset int) ([]model.Avatar, error) {
	var avatars []model.Avatar
	if err := r.db.WithContext(ctx).
		Where("public_profile = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&avatars).Error; err != nil {
		return nil, err
	}
	return avatars, nil
}
