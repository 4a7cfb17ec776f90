package repository

import (
	"context"
	"testing"

	"github.com/mhbagheri-99/e-commerce/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderExistsForUserProduct(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	orderRepo := NewOrderRepository(db)
	userRepo := NewUserRepository(db)

	product := &model.Product{Name: "E-Book", PriceInCents: 10000, Currency: "USD", FilePath: "ebook.pdf"}
	require.NoError(t, db.Create(product).Error)

	user, err := userRepo.Upsert(ctx, db, "a@example.com")
	require.NoError(t, err)

	exists, err := orderRepo.ExistsForUserProduct(ctx, "a@example.com", product.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, orderRepo.Create(ctx, db, &model.Order{
		UserID:       user.ID,
		ProductID:    product.ID,
		TotalInCents: 10000,
	}))

	exists, err = orderRepo.ExistsForUserProduct(ctx, "a@example.com", product.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Same product, different buyer identity.
	exists, err = orderRepo.ExistsForUserProduct(ctx, "b@example.com", product.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserUpsertIsIdempotentByEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	userRepo := NewUserRepository(db)

	first, err := userRepo.Upsert(ctx, db, "a@example.com")
	require.NoError(t, err)

	second, err := userRepo.Upsert(ctx, db, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
