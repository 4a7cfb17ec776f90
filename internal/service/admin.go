package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mhbagheri-99/e-commerce/internal/dto"
	"github.com/mhbagheri-99/e-commerce/internal/model"
	"github.com/mhbagheri-99/e-commerce/internal/repository"

	"gorm.io/gorm"
)

type AdminService interface {
	CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*model.Product, error)
	ListProducts(ctx context.Context) ([]*model.Product, error)
	UpdateProduct(ctx context.Context, productID string, req *dto.UpdateProductRequest) error
	SetProductAvailability(ctx context.Context, productID string, isAvailable bool) error
	DeleteProduct(ctx context.Context, productID string) error

	CreateCoupon(ctx context.Context, req *dto.CreateCouponRequest) (*model.DiscountCode, error)
	ListCoupons(ctx context.Context) ([]*model.DiscountCode, error)
	SetCouponActive(ctx context.Context, id string, isActive bool) error
	DeleteCoupon(ctx context.Context, id string) error

	ListCustomers(ctx context.Context) ([]*dto.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, userID string) error
}

type adminServiceImpl struct {
	productRepo      repository.ProductRepository
	discountCodeRepo repository.DiscountCodeRepository
	userRepo         repository.UserRepository
}

func NewAdminService(
	productRepo repository.ProductRepository,
	discountCodeRepo repository.DiscountCodeRepository,
	userRepo repository.UserRepository,
) AdminService {
	return &adminServiceImpl{
		productRepo:      productRepo,
		discountCodeRepo: discountCodeRepo,
		userRepo:         userRepo,
	}
}

func (s *adminServiceImpl) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*model.Product, error) {
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	product := &model.Product{
		Name:         req.Name,
		Description:  req.Description,
		PriceInCents: req.PriceInCents,
		Currency:     currency,
		FilePath:     req.FilePath,
		ImagePath:    req.ImagePath,
		// New products start hidden until an admin flips availability.
		IsAvailable: false,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

func (s *adminServiceImpl) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.FindAll(ctx)
}

func (s *adminServiceImpl) UpdateProduct(ctx context.Context, productID string, req *dto.UpdateProductRequest) error {
	err := s.productRepo.Update(ctx, &model.Product{
		ID:           productID,
		Name:         req.Name,
		Description:  req.Description,
		PriceInCents: req.PriceInCents,
		Currency:     req.Currency,
		FilePath:     req.FilePath,
		ImagePath:    req.ImagePath,
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}

	return err
}

func (s *adminServiceImpl) SetProductAvailability(ctx context.Context, productID string, isAvailable bool) error {
	err := s.productRepo.SetAvailability(ctx, productID, isAvailable)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}

	return err
}

func (s *adminServiceImpl) DeleteProduct(ctx context.Context, productID string) error {
	hasOrders, err := s.productRepo.HasOrders(ctx, productID)
	if err != nil {
		return fmt.Errorf("check product orders: %w", err)
	}
	if hasOrders {
		return ErrProductHasOrders
	}

	err = s.productRepo.Delete(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}

	return err
}

func (s *adminServiceImpl) CreateCoupon(ctx context.Context, req *dto.CreateCouponRequest) (*model.DiscountCode, error) {
	discountType := model.DiscountType(req.Type)

	if discountType == model.DiscountTypePercentage && req.Amount > 100 {
		return nil, fmt.Errorf("%w: percentage discount must be at most 100", ErrCouponInvalid)
	}
	if req.AllProducts && len(req.ProductIDs) > 0 {
		return nil, fmt.Errorf("%w: a store-wide code cannot also list specific products", ErrCouponInvalid)
	}
	if !req.AllProducts && len(req.ProductIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one product must be selected", ErrCouponInvalid)
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(time.Now()) {
		return nil, fmt.Errorf("%w: expiry must be in the future", ErrCouponInvalid)
	}

	discountCode := &model.DiscountCode{
		Code:        req.Code,
		Type:        discountType,
		Amount:      req.Amount,
		Limit:       req.Limit,
		ExpiresAt:   req.ExpiresAt,
		AllProducts: req.AllProducts,
		IsActive:    true,
	}
	for _, productID := range req.ProductIDs {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown product %s", ErrCouponInvalid, productID)
			}
			return nil, fmt.Errorf("load product: %w", err)
		}
		discountCode.Products = append(discountCode.Products, *product)
	}

	if err := s.discountCodeRepo.Create(ctx, discountCode); err != nil {
		return nil, fmt.Errorf("create discount code: %w", err)
	}

	return discountCode, nil
}

func (s *adminServiceImpl) ListCoupons(ctx context.Context) ([]*model.DiscountCode, error) {
	return s.discountCodeRepo.FindAll(ctx)
}

func (s *adminServiceImpl) SetCouponActive(ctx context.Context, id string, isActive bool) error {
	err := s.discountCodeRepo.SetActive(ctx, id, isActive)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidDiscountCode
	}

	return err
}

func (s *adminServiceImpl) DeleteCoupon(ctx context.Context, id string) error {
	err := s.discountCodeRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidDiscountCode
	}

	return err
}

func (s *adminServiceImpl) ListCustomers(ctx context.Context) ([]*dto.CustomerResponse, error) {
	users, err := s.userRepo.FindAllWithOrderCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	customers := make([]*dto.CustomerResponse, 0, len(users))
	for _, user := range users {
		customers = append(customers, &dto.CustomerResponse{
			ID:         user.ID,
			Email:      user.Email,
			OrderCount: user.OrderCount,
			CreatedAt:  user.CreatedAt,
		})
	}

	return customers, nil
}

func (s *adminServiceImpl) DeleteCustomer(ctx context.Context, userID string) error {
	return s.userRepo.Delete(ctx, userID)
}
