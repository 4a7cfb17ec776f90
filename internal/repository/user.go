package repository

import (
	"context"
	"errors"

	"github.com/mhbagheri-99/e-commerce/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	// Upsert returns the row for email, inserting it first if absent. Runs on
	// the caller's transaction so user creation and order creation commit
	// together.
	Upsert(ctx context.Context, tx *gorm.DB, email string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAllWithOrderCounts(ctx context.Context) ([]*UserWithOrderCount, error)
	Delete(ctx context.Context, userID string) error
}

type UserWithOrderCount struct {
	model.User
	OrderCount int64
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{
		db: db,
	}
}

func (r *userRepoImpl) Upsert(ctx context.Context, tx *gorm.DB, email string) (*model.User, error) {
	var user model.User
	err := tx.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = model.User{Email: email}
		if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) FindAllWithOrderCounts(ctx context.Context) ([]*UserWithOrderCount, error) {
	var users []*UserWithOrderCount
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select("users.*, COUNT(orders.id) AS order_count").
		Joins("LEFT JOIN orders ON orders.user_id = users.id").
		Group("users.id").
		Order("users.created_at DESC").
		Find(&users).Error

	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepoImpl) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Order{}, "user_id = ?", userID).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.User{}, "id = ?", userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}
