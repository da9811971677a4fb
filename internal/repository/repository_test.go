package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fitcloset/internal/model"
)

// newTestDB opens an in-memory database and migrates the full schema. A
// single connection keeps every query on the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Avatar{},
		&model.BodyMeasurement{},
		&model.Garment{},
		&model.AvatarGarment{},
	))
	return db
}

func seedAvatar(t *testing.T, db *gorm.DB, userID uint) *model.Avatar {
	t.Helper()
	avatar := &model.Avatar{
		UserID:          userID,
		FullName:        "Test Avatar",
		Age:             30,
		Height:          178,
		HeightUnit:      "cm",
		Weight:          72,
		WeightUnit:      "kg",
		AvatarType:      model.AvatarTypeGeneric,
		MeasurementMode: "manual",
	}
	require.NoError(t, db.Create(avatar).Error)
	return avatar
}

func seedGarment(t *testing.T, db *gorm.DB, garment *model.Garment) *model.Garment {
	t.Helper()
	require.NoError(t, db.Create(garment).Error)
	return garment
}
