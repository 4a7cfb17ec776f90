package service

import (
	"context"
	"errors"

	"github.com/mhbagheri-99/e-commerce/internal/model"
	"github.com/mhbagheri-99/e-commerce/internal/repository"

	"gorm.io/gorm"
)

type CatalogService interface {
	ListAvailableProducts(ctx context.Context) ([]*model.Product, error)
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
}

type catalogServiceImpl struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogServiceImpl{
		productRepo: productRepo,
	}
}

func (s *catalogServiceImpl) ListAvailableProducts(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.FindAvailable(ctx)
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !product.IsAvailable {
		return nil, ErrProductNotFound
	}

	return product, nil
}
