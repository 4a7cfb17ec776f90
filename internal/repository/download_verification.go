package repository

import (
	"context"

	"github.com/mhbagheri-99/e-commerce/internal/model"

	"gorm.io/gorm"
)

type DownloadVerificationRepository interface {
	Create(ctx context.Context, verification *model.DownloadVerification) error
}

type downloadVerificationRepoImpl struct {
	db *gorm.DB
}

func NewDownloadVerificationRepository(db *gorm.DB) DownloadVerificationRepository {
	return &downloadVerificationRepoImpl{
		db: db,
	}
}

func (r *downloadVerificationRepoImpl) Create(ctx context.Context, verification *model.DownloadVerification) error {
	return r.db.WithContext(ctx).Create(verification).Error
}
