package repository

import (
	"context"

	"github.com/mhbagheri-99/e-commerce/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	ExistsForUserProduct(ctx context.Context, email string, productID string) (bool, error)
	FindByUserID(ctx context.Context, userID string) ([]*model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

// ExistsForUserProduct backs the duplicate-purchase check: one buyer identity
// may hold at most one order per product. Joined through users so the check
// works off the email natural key before any user row is guaranteed to exist.
func (r *orderRepoImpl) ExistsForUserProduct(ctx context.Context, email string, productID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Joins("JOIN users ON users.id = orders.user_id").
		Where("users.email = ?", email).
		Where("orders.product_id = ?", productID).
		Count(&count).Error

	return count > 0, err
}

func (r *orderRepoImpl) FindByUserID(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}
