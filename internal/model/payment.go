package model

// Wire types for the payment provider's webhook payloads and API responses.

const (
	EventTypeChargeSucceeded = "charge.succeeded"

	PaymentIntentStatusSucceeded = "succeeded"
)

type BillingDetails struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Charge is the provider-side record of a completed payment. Metadata carries
// the productId/discountCodeId correlation set at intent-creation time.
type Charge struct {
	ID             string            `json:"id"`
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency"`
	Status         string            `json:"status"`
	BillingDetails BillingDetails    `json:"billing_details"`
	Metadata       map[string]string `json:"metadata"`
}

type EventData struct {
	Object Charge `json:"object"`
}

type PaymentEvent struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Created int64     `json:"created"`
	Data    EventData `json:"data"`
}

type PaymentIntent struct {
	ID           string            `json:"id"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Status       string            `json:"status"`
	ClientSecret string            `json:"client_secret"`
	Metadata     map[string]string `json:"metadata"`
}
