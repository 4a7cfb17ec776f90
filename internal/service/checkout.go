package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mhbagheri-99/e-commerce/internal/client"
	"github.com/mhbagheri-99/e-commerce/internal/dto"
	"github.com/mhbagheri-99/e-commerce/internal/model"
	"github.com/mhbagheri-99/e-commerce/internal/repository"

	"gorm.io/gorm"
)

const (
	metadataProductID      = "productId"
	metadataDiscountCodeID = "discountCodeId"
)

type CheckoutService interface {
	// CreatePaymentIntent validates the purchase and opens a provider-side
	// intent for the (possibly discounted) amount. Read-only against the
	// store's own database; a failed call can always be retried from scratch.
	CreatePaymentIntent(ctx context.Context, email, productID, discountCodeID string) (*dto.PurchaseResponse, error)

	// PreviewCoupon resolves a code string for the purchase page. A code that
	// is absent, inactive, expired, exhausted, or scoped to other products
	// yields Usable=false, never an error.
	PreviewCoupon(ctx context.Context, productID, code string) (*dto.CouponPreview, error)

	// PurchaseSuccess reports the outcome of a completed provider redirect and
	// mints a fresh download credential when the charge went through.
	PurchaseSuccess(ctx context.Context, paymentIntentID string) (*dto.PurchaseSuccessResponse, error)
}

type checkoutServiceImpl struct {
	paymentClient    client.PaymentClient
	productRepo      repository.ProductRepository
	orderRepo        repository.OrderRepository
	discountCodeRepo repository.DiscountCodeRepository
	verificationRepo repository.DownloadVerificationRepository
}

func NewCheckoutService(
	paymentClient client.PaymentClient,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	discountCodeRepo repository.DiscountCodeRepository,
	verificationRepo repository.DownloadVerificationRepository,
) CheckoutService {
	return &checkoutServiceImpl{
		paymentClient:    paymentClient,
		productRepo:      productRepo,
		orderRepo:        orderRepo,
		discountCodeRepo: discountCodeRepo,
		verificationRepo: verificationRepo,
	}
}

func (s *checkoutServiceImpl) CreatePaymentIntent(ctx context.Context, email, productID, discountCodeID string) (*dto.PurchaseResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("load product: %w", err)
	}

	// A code id submitted by the client must still pass the usability check
	// now: it may have expired or been deactivated since the page rendered.
	var discountCode *model.DiscountCode
	if discountCodeID != "" {
		discountCode, err = s.discountCodeRepo.FindUsableByID(ctx, discountCodeID, productID)
		if err != nil {
			return nil, fmt.Errorf("resolve discount code: %w", err)
		}
		if discountCode == nil {
			return nil, ErrInvalidDiscountCode
		}
	}

	exists, err := s.orderRepo.ExistsForUserProduct(ctx, email, productID)
	if err != nil {
		return nil, fmt.Errorf("check existing order: %w", err)
	}
	if exists {
		return nil, ErrDuplicatePurchase
	}

	amount := DiscountedPriceInCents(product.PriceInCents, discountCode)

	metadata := map[string]string{
		metadataProductID: product.ID,
	}
	if discountCode != nil {
		metadata[metadataDiscountCodeID] = discountCode.ID
	}

	intent, err := s.paymentClient.CreatePaymentIntent(ctx, amount, product.Currency, metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}
	if intent.ClientSecret == "" {
		return nil, ErrPaymentProvider
	}

	return &dto.PurchaseResponse{ClientSecret: intent.ClientSecret}, nil
}

func (s *checkoutServiceImpl) PreviewCoupon(ctx context.Context, productID, code string) (*dto.CouponPreview, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("load product: %w", err)
	}

	discountCode, err := s.discountCodeRepo.FindUsableByCode(ctx, code, productID)
	if err != nil {
		return nil, fmt.Errorf("resolve discount code: %w", err)
	}
	if discountCode == nil {
		return &dto.CouponPreview{Usable: false}, nil
	}

	return &dto.CouponPreview{
		Usable:                 true,
		DiscountCodeID:         discountCode.ID,
		DiscountedPriceInCents: DiscountedPriceInCents(product.PriceInCents, discountCode),
	}, nil
}

func (s *checkoutServiceImpl) PurchaseSuccess(ctx context.Context, paymentIntentID string) (*dto.PurchaseSuccessResponse, error) {
	intent, err := s.paymentClient.RetrievePaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	productID := intent.Metadata[metadataProductID]
	if productID == "" {
		return nil, ErrProductNotFound
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("load product: %w", err)
	}

	resp := &dto.PurchaseSuccessResponse{
		Succeeded:   intent.Status == model.PaymentIntentStatusSucceeded,
		ProductID:   product.ID,
		ProductName: product.Name,
	}

	if resp.Succeeded {
		verification, err := issueVerification(ctx, s.verificationRepo, product.ID)
		if err != nil {
			return nil, fmt.Errorf("issue download verification: %w", err)
		}
		resp.DownloadVerificationID = verification.ID
	}

	return resp, nil
}
