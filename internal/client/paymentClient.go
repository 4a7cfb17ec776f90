package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mhbagheri-99/e-commerce/internal/config"
	"github.com/mhbagheri-99/e-commerce/internal/model"
)

// signatureTolerance bounds how old a signed webhook timestamp may be.
const signatureTolerance = 5 * time.Minute

type PaymentClient interface {
	CreatePaymentIntent(ctx context.Context, amountInCents int64, currency string, metadata map[string]string) (*model.PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, intentID string) (*model.PaymentIntent, error)
	VerifyWebhookSignature(payload []byte, signatureHeader string) (*model.PaymentEvent, error)
}

type paymentClientImpl struct {
	httpClient    *http.Client
	baseApiURL    string
	secretKey     string
	webhookSecret string
	now           func() time.Time
}

func NewPaymentClient(paymentCfg *config.Payment) PaymentClient {
	return &paymentClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:    paymentCfg.BaseApiURL,
		secretKey:     paymentCfg.SecretKey,
		webhookSecret: paymentCfg.WebhookSecret,
		now:           time.Now,
	}
}

func (c *paymentClientImpl) CreatePaymentIntent(ctx context.Context, amountInCents int64, currency string, metadata map[string]string) (*model.PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountInCents, 10))
	form.Set("currency", currency)
	for key, value := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/payment_intents",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("payment provider error %d: %s", resp.StatusCode, string(b))
	}

	var intent model.PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("decode payment intent response: %w", err)
	}

	return &intent, nil
}

func (c *paymentClientImpl) RetrievePaymentIntent(ctx context.Context, intentID string) (*model.PaymentIntent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v1/payment_intents/%s", c.baseApiURL, url.PathEscape(intentID)),
		nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("payment provider error %d: %s", resp.StatusCode, string(b))
	}

	var intent model.PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("decode payment intent response: %w", err)
	}

	return &intent, nil
}

// VerifyWebhookSignature checks the provider's timestamped HMAC header
// (t=<unix>,v1=<hex>) against the shared webhook secret and decodes the event.
// Verification is local; no provider round-trip.
func (c *paymentClientImpl) VerifyWebhookSignature(payload []byte, signatureHeader string) (*model.PaymentEvent, error) {
	timestamp, signature, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return nil, err
	}

	eventTime := time.Unix(timestamp, 0)
	age := c.now().Sub(eventTime)
	if age > signatureTolerance || age < -signatureTolerance {
		return nil, fmt.Errorf("signature timestamp outside tolerance")
	}

	expected := ComputeSignature(c.webhookSecret, timestamp, payload)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, fmt.Errorf("signature mismatch")
	}

	var event model.PaymentEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("decode webhook payload: %w", err)
	}

	return &event, nil
}

func parseSignatureHeader(header string) (timestamp int64, signature string, err error) {
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp, err = strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, "", fmt.Errorf("parse signature timestamp: %w", err)
			}
		case "v1":
			signature = value
		}
	}

	if timestamp == 0 || signature == "" {
		return 0, "", fmt.Errorf("malformed signature header")
	}

	return timestamp, signature, nil
}

// ComputeSignature derives the hex HMAC-SHA256 of "<timestamp>.<payload>".
// Exported so tests and local tooling can produce valid headers.
func ComputeSignature(secret string, timestamp int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
