package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/mhbagheri-99/e-commerce/internal/client"
	"github.com/mhbagheri-99/e-commerce/internal/config"
	"github.com/mhbagheri-99/e-commerce/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const fulfillmentWebhookSecret = "whsec_fulfillment_test"

type fulfillmentFixture struct {
	svc   FulfillmentService
	db    *gorm.DB
	r     repos
	email *stubEmailClient
}

func newFulfillment(t *testing.T, dedupe bool) fulfillmentFixture {
	t.Helper()

	db := newTestDB(t)
	r := newRepos(db)
	email := &stubEmailClient{}
	paymentClient := client.NewPaymentClient(&config.Payment{
		BaseApiURL:    "http://unused",
		SecretKey:     "sk_test",
		WebhookSecret: fulfillmentWebhookSecret,
	})

	svc := NewFulfillmentService(
		db,
		paymentClient,
		email,
		"https://store.example.com",
		"Support <support@example.com>",
		dedupe,
		r.product, r.user, r.order, r.verification, r.webhookEvent,
	)

	return fulfillmentFixture{svc: svc, db: db, r: r, email: email}
}

func signedChargeEvent(t *testing.T, eventID, eventType, productID, email string, amount int64) (payload []byte, header string) {
	t.Helper()

	event := model.PaymentEvent{
		ID:      eventID,
		Type:    eventType,
		Created: time.Now().Unix(),
		Data: model.EventData{Object: model.Charge{
			ID:             "ch_1",
			Amount:         amount,
			Currency:       "usd",
			Status:         "succeeded",
			BillingDetails: model.BillingDetails{Email: email},
			Metadata:       map[string]string{"productId": productID},
		}},
	}

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	now := time.Now().Unix()
	header = fmt.Sprintf("t=%d,v1=%s", now, client.ComputeSignature(fulfillmentWebhookSecret, now, payload))
	return payload, header
}

func countRows(t *testing.T, db *gorm.DB, entity interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(entity).Count(&count).Error)
	return count
}

func TestHandleWebhookFulfillsOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFulfillment(t, false)

	product := &model.Product{Name: "E-Book", PriceInCents: 10000, Currency: "USD", FilePath: "ebook.pdf"}
	require.NoError(t, f.r.product.Create(ctx, product))

	payload, header := signedChargeEvent(t, "evt_1", model.EventTypeChargeSucceeded, product.ID, "a@example.com", 8000)
	require.NoError(t, f.svc.HandleWebhook(ctx, payload, header))

	var order model.Order
	require.NoError(t, f.db.First(&order).Error)
	assert.Equal(t, product.ID, order.ProductID)
	assert.Equal(t, int64(8000), order.TotalInCents)

	var user model.User
	require.NoError(t, f.db.First(&user, "email = ?", "a@example.com").Error)
	assert.Equal(t, user.ID, order.UserID)

	var verification model.DownloadVerification
	require.NoError(t, f.db.First(&verification).Error)
	assert.Equal(t, product.ID, verification.ProductID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), verification.ExpiresAt, time.Minute)

	require.Len(t, f.email.sent, 1)
	msg := f.email.sent[0]
	assert.Equal(t, "a@example.com", msg.To)
	assert.Equal(t, "Your order is ready", msg.Subject)
	assert.Contains(t, msg.HTML, verification.ID)
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFulfillment(t, false)

	payload, _ := signedChargeEvent(t, "evt_1", model.EventTypeChargeSucceeded, "p1", "a@example.com", 8000)
	err := f.svc.HandleWebhook(ctx, payload, "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Zero(t, countRows(t, f.db, &model.Order{}))
}

func TestHandleWebhookIgnoresOtherEventKinds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFulfillment(t, false)

	payload, header := signedChargeEvent(t, "evt_1", "charge.refunded", "p1", "a@example.com", 8000)
	require.NoError(t, f.svc.HandleWebhook(ctx, payload, header))
	assert.Zero(t, countRows(t, f.db, &model.Order{}))
	assert.Empty(t, f.email.sent)
}

func TestHandleWebhookUnknownProduct(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFulfillment(t, false)

	payload, header := signedChargeEvent(t, "evt_1", model.EventTypeChargeSucceeded, "missing", "a@example.com", 8000)
	err := f.svc.HandleWebhook(ctx, payload, header)
	assert.ErrorIs(t, err, ErrMalformedEvent)
	assert.Zero(t, countRows(t, f.db, &model.Order{}))
	assert.Empty(t, f.email.sent)
}

func TestHandleWebhookMissingEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFulfillment(t, false)

	product := &model.Product{Name: "E-Book", PriceInCents: 10000, Currency: "USD", FilePath: "ebook.pdf"}
	require.NoError(t, f.r.product.Create(ctx, product))

	payload, header := signedChargeEvent(t, "evt_1", model.EventTypeChargeSucceeded, product.ID, "", 8000)
	err := f.svc.HandleWebhook(ctx, payload, header)
	assert.ErrorIs(t, err, ErrMalformedEvent)
	assert.Zero(t, countRows(t, f.db, &model.Order{}))
}

// Duplicate delivery without dedup is the inherited default: each delivery
// fulfills again. This pins the current behavior rather than endorsing it.
func TestHandleWebhookDuplicateDeliveryWithoutDedupe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFulfillment(t, false)

	product := &model.Product{Name: "E-Book", PriceInCents: 10000, Currency: "USD", FilePath: "ebook.pdf"}
	require.NoError(t, f.r.product.Create(ctx, product))

	payload, header := signedChargeEvent(t, "evt_1", model.EventTypeChargeSucceeded, product.ID, "a@example.com", 8000)
	require.NoError(t, f.svc.HandleWebhook(ctx, payload, header))
	require.NoError(t, f.svc.HandleWebhook(ctx, payload, header))

	assert.Equal(t, int64(2), countRows(t, f.db, &model.Order{}))
	assert.Equal(t, int64(2), countRows(t, f.db, &model.DownloadVerification{}))
	assert.Len(t, f.email.sent, 2)

	// Still only one user row for the email.
	assert.Equal(t, int64(1), countRows(t, f.db, &model.User{}))
}

func TestHandleWebhookDuplicateDeliveryWithDedupe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFulfillment(t, true)

	product := &model.Product{Name: "E-Book", PriceInCents: 10000, Currency: "USD", FilePath: "ebook.pdf"}
	require.NoError(t, f.r.product.Create(ctx, product))

	payload, header := signedChargeEvent(t, "evt_1", model.EventTypeChargeSucceeded, product.ID, "a@example.com", 8000)
	require.NoError(t, f.svc.HandleWebhook(ctx, payload, header))
	require.NoError(t, f.svc.HandleWebhook(ctx, payload, header))

	assert.Equal(t, int64(1), countRows(t, f.db, &model.Order{}))
	assert.Equal(t, int64(1), countRows(t, f.db, &model.DownloadVerification{}))
	assert.Len(t, f.email.sent, 1)
}

func TestHandleWebhookEmailFailurePropagates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFulfillment(t, false)
	f.email.sendErr = fmt.Errorf("smtp down")

	product := &model.Product{Name: "E-Book", PriceInCents: 10000, Currency: "USD", FilePath: "ebook.pdf"}
	require.NoError(t, f.r.product.Create(ctx, product))

	payload, header := signedChargeEvent(t, "evt_1", model.EventTypeChargeSucceeded, product.ID, "a@example.com", 8000)
	err := f.svc.HandleWebhook(ctx, payload, header)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSignature)
	assert.NotErrorIs(t, err, ErrMalformedEvent)
}
