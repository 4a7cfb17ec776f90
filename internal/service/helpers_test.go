package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/mhbagheri-99/e-commerce/internal/client"
	"github.com/mhbagheri-99/e-commerce/internal/model"
	"github.com/mhbagheri-99/e-commerce/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Product{},
		&model.User{},
		&model.Order{},
		&model.DiscountCode{},
		&model.DownloadVerification{},
		&model.WebhookEvent{},
	))

	return db
}

type repos struct {
	product      repository.ProductRepository
	user         repository.UserRepository
	order        repository.OrderRepository
	discountCode repository.DiscountCodeRepository
	verification repository.DownloadVerificationRepository
	webhookEvent repository.WebhookEventRepository
}

func newRepos(db *gorm.DB) repos {
	return repos{
		product:      repository.NewProductRepository(db),
		user:         repository.NewUserRepository(db),
		order:        repository.NewOrderRepository(db),
		discountCode: repository.NewDiscountCodeRepository(db),
		verification: repository.NewDownloadVerificationRepository(db),
		webhookEvent: repository.NewWebhookEventRepository(db),
	}
}

type createIntentCall struct {
	amount   int64
	currency string
	metadata map[string]string
}

// stubPaymentClient satisfies client.PaymentClient for checkout tests.
type stubPaymentClient struct {
	createCalls []createIntentCall
	intent      *model.PaymentIntent
	createErr   error

	retrieveIntent *model.PaymentIntent
	retrieveErr    error

	verifyEvent *model.PaymentEvent
	verifyErr   error
}

func (s *stubPaymentClient) CreatePaymentIntent(ctx context.Context, amountInCents int64, currency string, metadata map[string]string) (*model.PaymentIntent, error) {
	s.createCalls = append(s.createCalls, createIntentCall{amount: amountInCents, currency: currency, metadata: metadata})
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.intent, nil
}

func (s *stubPaymentClient) RetrievePaymentIntent(ctx context.Context, intentID string) (*model.PaymentIntent, error) {
	if s.retrieveErr != nil {
		return nil, s.retrieveErr
	}
	return s.retrieveIntent, nil
}

func (s *stubPaymentClient) VerifyWebhookSignature(payload []byte, signatureHeader string) (*model.PaymentEvent, error) {
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return s.verifyEvent, nil
}

// stubEmailClient records sent messages.
type stubEmailClient struct {
	sent    []*client.EmailMessage
	sendErr error
}

func (s *stubEmailClient) Send(ctx context.Context, msg *client.EmailMessage) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, msg)
	return nil
}
