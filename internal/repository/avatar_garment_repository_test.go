package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitcloset/internal/model"
)

func TestAvatarGarmentRepository_Add_Idempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewAvatarGarmentRepository(db)
	ctx := context.Background()

	avatar := seedAvatar(t, db, 1)
	shirt := seedGarment(t, db, &model.Garment{
		Name: "Oxford Shirt", Brand: "Uniqlo", Price: decimal.NewFromFloat(29.99),
	})
	pants := seedGarment(t, db, &model.Garment{
		Name: "Chino Pants", Brand: "Uniqlo", Price: decimal.NewFromFloat(49.99),
	})

	first, err := repo.Add(ctx, avatar.ID, shirt.ID)
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	t.Run("repeated add returns the stored edge", func(t *testing.T) {
		second, err := repo.Add(ctx, avatar.ID, shirt.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		var count int64
		require.NoError(t, db.Model(&model.AvatarGarment{}).
			Where("avatar_id = ? AND garment_id = ?", avatar.ID, shirt.ID).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("distinct garment inserts a new edge", func(t *testing.T) {
		edge, err := repo.Add(ctx, avatar.ID, pants.ID)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, edge.ID)

		edges, err := repo.ListForAvatar(ctx, avatar.ID)
		require.NoError(t, err)
		assert.Len(t, edges, 2)
	})
}

func TestAvatarGarmentRepository_ListForAvatar_PreloadsGarment(t *testing.T) {
	db := newTestDB(t)
	repo := NewAvatarGarmentRepository(db)
	ctx := context.Background()

	avatar := seedAvatar(t, db, 1)
	garment := seedGarment(t, db, &model.Garment{
		Name: "Denim Jacket", Brand: "Levis", Price: decimal.NewFromFloat(89.99),
	})
	_, err := repo.Add(ctx, avatar.ID, garment.ID)
	require.NoError(t, err)

	edges, err := repo.ListForAvatar(ctx, avatar.ID)

	require.NoError(t, err)
	require.Len(t, edges, 1)
	require.NotNil(t, edges[0].Garment)
	assert.Equal(t, "Denim Jacket", edges[0].Garment.Name)
}

func TestAvatarGarmentRepository_Remove(t *testing.T) {
	db := newTestDB(t)
	repo := NewAvatarGarmentRepository(db)
	ctx := context.Background()

	avatar := seedAvatar(t, db, 1)
	garment := seedGarment(t, db, &model.Garment{
		Name: "Wool Coat", Brand: "Zara", Price: decimal.NewFromFloat(150),
	})
	_, err := repo.Add(ctx, avatar.ID, garment.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Remove(ctx, avatar.ID, garment.ID))

	edges, err := repo.ListForAvatar(ctx, avatar.ID)
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestAvatarGarmentRepository_ClearForAvatar(t *testing.T) {
	db := newTestDB(t)
	repo := NewAvatarGarmentRepository(db)
	ctx := context.Background()

	avatar := seedAvatar(t, db, 1)
	other := seedAvatar(t, db, 2)
	shirt := seedGarment(t, db, &model.Garment{
		Name: "Oxford Shirt", Brand: "Uniqlo", Price: decimal.NewFromFloat(29.99),
	})
	pants := seedGarment(t, db, &model.Garment{
		Name: "Chino Pants", Brand: "Uniqlo", Price: decimal.NewFromFloat(49.99),
	})
	for _, garmentID := range []uint{shirt.ID, pants.ID} {
		_, err := repo.Add(ctx, avatar.ID, garmentID)
		require.NoError(t, err)
	}
	_, err := repo.Add(ctx, other.ID, shirt.ID)
	require.NoError(t, err)

	require.NoError(t, repo.ClearForAvatar(ctx, avatar.ID))

	edges, err := repo.ListForAvatar(ctx, avatar.ID)
	require.NoError(t, err)
	assert.Empty(t, edges)

	kept, err := repo.ListForAvatar(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
