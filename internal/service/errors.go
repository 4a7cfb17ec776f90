package service

import "errors"

// Checkout and fulfillment failure taxonomy. Every condition is scoped to a
// single request or webhook delivery; handlers map these to HTTP statuses.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrInvalidDiscountCode = errors.New("invalid discount code")
	ErrDuplicatePurchase   = errors.New("product already purchased by this buyer")
	ErrPaymentProvider     = errors.New("payment provider did not return a usable intent")
	ErrInvalidSignature    = errors.New("webhook signature verification failed")
	ErrMalformedEvent      = errors.New("malformed webhook event")
)

// Admin back-office failures.
var (
	ErrCouponInvalid    = errors.New("invalid coupon definition")
	ErrProductHasOrders = errors.New("product has orders and cannot be deleted")
)
