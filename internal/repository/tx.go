package repository

import (
	"context"

	"gorm.io/gorm"
)

// AvatarStores bundles the repositories touched by the avatar setup flow so
// a multi-statement write can run against one transaction.
type AvatarStores struct {
	Avatars      AvatarRepository
	Measurements BodyMeasurementRepository
	Wardrobe     AvatarGarmentRepository
}

// TxManager runs a function within a database transaction. Any error rolls
// the whole transaction back; nil commits.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, stores AvatarStores) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager over the GORM connection.
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

// WithinTransaction executes fn with transaction-scoped repositories.
func (m *gormTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context, stores AvatarStores) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stores := AvatarStores{
			Avatars:      &avatarRepository{db: tx},
			Measurements: &measurementRepository{db: tx},
			Wardrobe:     &avatarGarmentRepository{db: tx},
		}
		return fn(ctx, stores)
	})
}
