package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mhbagheri-99/e-commerce/internal/model"

	"gorm.io/gorm"
)

type DiscountCodeRepository interface {
	// FindUsableByCode and FindUsableByID apply the same usability predicate;
	// both return (nil, nil) when no usable code matches. Callers treat
	// "absent" and "present but ineligible" identically.
	FindUsableByCode(ctx context.Context, code string, productID string) (*model.DiscountCode, error)
	FindUsableByID(ctx context.Context, id string, productID string) (*model.DiscountCode, error)

	Create(ctx context.Context, discountCode *model.DiscountCode) error
	FindAll(ctx context.Context) ([]*model.DiscountCode, error)
	SetActive(ctx context.Context, id string, isActive bool) error
	Delete(ctx context.Context, id string) error
}

type discountCodeRepoImpl struct {
	db *gorm.DB
}

func NewDiscountCodeRepository(db *gorm.DB) DiscountCodeRepository {
	return &discountCodeRepoImpl{
		db: db,
	}
}

// usableForProduct narrows a discount-code query to codes currently usable for
// the given product: active, unexpired, under their usage limit, and either
// store-wide or explicitly covering the product. Reads current state on every
// call; eligibility is never cached.
func usableForProduct(productID string, now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("discount_codes.is_active = ?", true).
			Where("discount_codes.expires_at IS NULL OR discount_codes.expires_at > ?", now).
			Where("discount_codes.`limit` IS NULL OR discount_codes.used < discount_codes.`limit`").
			Where(`discount_codes.all_products = ? OR EXISTS (
				SELECT 1 FROM discount_code_products
				WHERE discount_code_products.discount_code_id = discount_codes.id
				AND discount_code_products.product_id = ?
			)`, true, productID)
	}
}

func (r *discountCodeRepoImpl) FindUsableByCode(ctx context.Context, code string, productID string) (*model.DiscountCode, error) {
	var discountCode model.DiscountCode
	err := r.db.WithContext(ctx).
		Scopes(usableForProduct(productID, time.Now())).
		Where("discount_codes.code = ?", code).
		First(&discountCode).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &discountCode, nil
}

func (r *discountCodeRepoImpl) FindUsableByID(ctx context.Context, id string, productID string) (*model.DiscountCode, error) {
	var discountCode model.DiscountCode
	err := r.db.WithContext(ctx).
		Scopes(usableForProduct(productID, time.Now())).
		Where("discount_codes.id = ?", id).
		First(&discountCode).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &discountCode, nil
}

func (r *discountCodeRepoImpl) Create(ctx context.Context, discountCode *model.DiscountCode) error {
	return r.db.WithContext(ctx).Create(discountCode).Error
}

func (r *discountCodeRepoImpl) FindAll(ctx context.Context) ([]*model.DiscountCode, error) {
	var discountCodes []*model.DiscountCode
	err := r.db.WithContext(ctx).
		Preload("Products").
		Order("created_at DESC").
		Find(&discountCodes).Error

	if err != nil {
		return nil, err
	}

	return discountCodes, nil
}

func (r *discountCodeRepoImpl) SetActive(ctx context.Context, id string, isActive bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.DiscountCode{}).
		Where("id = ?", id).
		Update("is_active", isActive)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *discountCodeRepoImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.DiscountCode{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
