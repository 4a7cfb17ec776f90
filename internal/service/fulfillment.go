package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mhbagheri-99/e-commerce/internal/client"
	"github.com/mhbagheri-99/e-commerce/internal/model"
	"github.com/mhbagheri-99/e-commerce/internal/repository"

	"gorm.io/gorm"
)

// downloadVerificationTTL is how long a freshly issued download credential
// stays redeemable.
const downloadVerificationTTL = 24 * time.Hour

type FulfillmentService interface {
	// HandleWebhook consumes one provider delivery. The provider retries on
	// error returns, so only terminal rejections (bad signature, malformed
	// event) map to ErrInvalidSignature/ErrMalformedEvent; anything else
	// propagates as a transient failure.
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
}

type fulfillmentServiceImpl struct {
	db               *gorm.DB
	paymentClient    client.PaymentClient
	emailClient      client.EmailClient
	baseURL          string
	emailFrom        string
	dedupeEvents     bool
	productRepo      repository.ProductRepository
	userRepo         repository.UserRepository
	orderRepo        repository.OrderRepository
	verificationRepo repository.DownloadVerificationRepository
	webhookEventRepo repository.WebhookEventRepository
}

func NewFulfillmentService(
	db *gorm.DB,
	paymentClient client.PaymentClient,
	emailClient client.EmailClient,
	baseURL string,
	emailFrom string,
	dedupeEvents bool,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	verificationRepo repository.DownloadVerificationRepository,
	webhookEventRepo repository.WebhookEventRepository,
) FulfillmentService {
	return &fulfillmentServiceImpl{
		db:               db,
		paymentClient:    paymentClient,
		emailClient:      emailClient,
		baseURL:          baseURL,
		emailFrom:        emailFrom,
		dedupeEvents:     dedupeEvents,
		productRepo:      productRepo,
		userRepo:         userRepo,
		orderRepo:        orderRepo,
		verificationRepo: verificationRepo,
		webhookEventRepo: webhookEventRepo,
	}
}

func (s *fulfillmentServiceImpl) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := s.paymentClient.VerifyWebhookSignature(payload, signatureHeader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	// The provider sends every subscribed event kind to this endpoint; anything
	// but a completed charge is acknowledged without side effects.
	if event.Type != model.EventTypeChargeSucceeded {
		return nil
	}

	return s.handleChargeSucceeded(ctx, event)
}

func (s *fulfillmentServiceImpl) handleChargeSucceeded(ctx context.Context, event *model.PaymentEvent) error {
	charge := event.Data.Object

	productID := charge.Metadata[metadataProductID]
	email := charge.BillingDetails.Email
	if productID == "" || email == "" {
		return fmt.Errorf("%w: missing product id or buyer email", ErrMalformedEvent)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %s not in catalog", ErrMalformedEvent, productID)
		}
		return fmt.Errorf("load product: %w", err)
	}

	// Optional hardening: the provider delivers at least once, so the same
	// charge can arrive twice. With dedupe on, a repeat event id is an
	// acknowledged no-op. With it off (the default), every delivery fulfills.
	if s.dedupeEvents && event.ID != "" {
		processed, err := s.webhookEventRepo.Exists(ctx, event.ID)
		if err != nil {
			return fmt.Errorf("check webhook event: %w", err)
		}
		if processed {
			return nil
		}
	}

	// The user upsert and the order insert commit together; this is the single
	// write that must not happen partially.
	order := &model.Order{
		ProductID:    product.ID,
		TotalInCents: charge.Amount,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.Upsert(ctx, tx, email)
		if err != nil {
			return fmt.Errorf("upsert user: %w", err)
		}

		order.UserID = user.ID
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	verification, err := issueVerification(ctx, s.verificationRepo, product.ID)
	if err != nil {
		return fmt.Errorf("issue download verification: %w", err)
	}

	html, err := renderReceiptEmail(order, product, verification.ID, s.baseURL)
	if err != nil {
		return err
	}

	err = s.emailClient.Send(ctx, &client.EmailMessage{
		From:    s.emailFrom,
		To:      email,
		Subject: "Your order is ready",
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("send receipt email: %w", err)
	}

	if s.dedupeEvents && event.ID != "" {
		if err := s.webhookEventRepo.MarkProcessed(ctx, event.ID, event.Type); err != nil {
			return fmt.Errorf("mark webhook event processed: %w", err)
		}
	}

	return nil
}

// issueVerification mints a fresh download credential: an unguessable opaque
// id that expires 24 hours from issuance. Tokens are never reused or updated;
// multiple live tokens per product are expected.
func issueVerification(ctx context.Context, repo repository.DownloadVerificationRepository, productID string) (*model.DownloadVerification, error) {
	verification := &model.DownloadVerification{
		ProductID: productID,
		ExpiresAt: time.Now().Add(downloadVerificationTTL),
	}
	if err := repo.Create(ctx, verification); err != nil {
		return nil, err
	}

	return verification, nil
}
