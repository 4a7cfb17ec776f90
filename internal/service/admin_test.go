package service

import (
	"context"
	"testing"
	"time"

	"github.com/mhbagheri-99/e-commerce/internal/dto"
	"github.com/mhbagheri-99/e-commerce/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAdmin(t *testing.T) (AdminService, repos, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	r := newRepos(db)
	svc := NewAdminService(r.product, r.discountCode, r.user)

	return svc, r, db
}

func TestCreateCouponValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, r, _ := newAdmin(t)

	product := &model.Product{Name: "E-Book", PriceInCents: 10000, Currency: "USD", FilePath: "ebook.pdf"}
	require.NoError(t, r.product.Create(ctx, product))

	t.Run("percentage above 100 rejected", func(t *testing.T) {
		_, err := svc.CreateCoupon(ctx, &dto.CreateCouponRequest{
			Code: "SAVE150", Type: "PERCENTAGE", Amount: 150, AllProducts: true,
		})
		assert.ErrorIs(t, err, ErrCouponInvalid)
	})

	t.Run("store-wide with explicit product list rejected", func(t *testing.T) {
		_, err := svc.CreateCoupon(ctx, &dto.CreateCouponRequest{
			Code: "BOTH", Type: "PERCENTAGE", Amount: 10,
			AllProducts: true, ProductIDs: []string{product.ID},
		})
		assert.ErrorIs(t, err, ErrCouponInvalid)
	})

	t.Run("scoped coupon without products rejected", func(t *testing.T) {
		_, err := svc.CreateCoupon(ctx, &dto.CreateCouponRequest{
			Code: "NOSCOPE", Type: "FIXED", Amount: 500, AllProducts: false,
		})
		assert.ErrorIs(t, err, ErrCouponInvalid)
	})

	t.Run("past expiry rejected", func(t *testing.T) {
		yesterday := time.Now().Add(-24 * time.Hour)
		_, err := svc.CreateCoupon(ctx, &dto.CreateCouponRequest{
			Code: "OLD", Type: "FIXED", Amount: 500, AllProducts: true, ExpiresAt: &yesterday,
		})
		assert.ErrorIs(t, err, ErrCouponInvalid)
	})

	t.Run("valid scoped coupon persists with join rows", func(t *testing.T) {
		coupon, err := svc.CreateCoupon(ctx, &dto.CreateCouponRequest{
			Code: "EBOOK10", Type: "PERCENTAGE", Amount: 10,
			AllProducts: false, ProductIDs: []string{product.ID},
		})
		require.NoError(t, err)
		assert.True(t, coupon.IsActive)

		found, err := r.discountCode.FindUsableByCode(ctx, "EBOOK10", product.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
	})
}

func TestDeleteProductBlockedByOrders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, r, db := newAdmin(t)

	product := &model.Product{Name: "E-Book", PriceInCents: 10000, Currency: "USD", FilePath: "ebook.pdf"}
	require.NoError(t, r.product.Create(ctx, product))

	user, err := r.user.Upsert(ctx, db, "a@example.com")
	require.NoError(t, err)
	require.NoError(t, r.order.Create(ctx, db, &model.Order{UserID: user.ID, ProductID: product.ID, TotalInCents: 10000}))

	err = svc.DeleteProduct(ctx, product.ID)
	assert.ErrorIs(t, err, ErrProductHasOrders)

	// The row is still there.
	_, err = r.product.FindByID(ctx, product.ID)
	require.NoError(t, err)
}

func TestDeleteCustomerCascadesOrders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, r, db := newAdmin(t)

	product := &model.Product{Name: "E-Book", PriceInCents: 10000, Currency: "USD", FilePath: "ebook.pdf"}
	require.NoError(t, r.product.Create(ctx, product))

	user, err := r.user.Upsert(ctx, db, "a@example.com")
	require.NoError(t, err)
	require.NoError(t, r.order.Create(ctx, db, &model.Order{UserID: user.ID, ProductID: product.ID, TotalInCents: 10000}))

	require.NoError(t, svc.DeleteCustomer(ctx, user.ID))

	assert.Zero(t, countRows(t, db, &model.User{}))
	assert.Zero(t, countRows(t, db, &model.Order{}))
}
