package dto

import "time"

// -------- checkout --------

type PurchaseRequest struct {
	Email          string `json:"email" validate:"required,email"`
	DiscountCodeID string `json:"discount_code_id,omitempty" validate:"omitempty,uuid4"`
}

type PurchaseResponse struct {
	ClientSecret string `json:"client_secret"`
}

type CouponPreview struct {
	Usable                 bool   `json:"usable"`
	DiscountCodeID         string `json:"discount_code_id,omitempty"`
	DiscountedPriceInCents int64  `json:"discounted_price_in_cents,omitempty"`
}

type PurchaseSuccessResponse struct {
	Succeeded              bool   `json:"succeeded"`
	ProductID              string `json:"product_id"`
	ProductName            string `json:"product_name"`
	DownloadVerificationID string `json:"download_verification_id,omitempty"`
}

// -------- orders --------

type EmailHistoryRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type EmailHistoryResponse struct {
	Message string `json:"message"`
}

// -------- catalog --------

type ProductResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	PriceInCents int64  `json:"price_in_cents"`
	Currency     string `json:"currency"`
	ImagePath    string `json:"image_path,omitempty"`
}

// -------- admin --------

type CreateProductRequest struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	PriceInCents int64  `json:"price_in_cents" validate:"required,gt=0"`
	Currency     string `json:"currency"`
	FilePath     string `json:"file_path" validate:"required"`
	ImagePath    string `json:"image_path"`
}

type UpdateProductRequest struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	PriceInCents int64  `json:"price_in_cents" validate:"required,gt=0"`
	Currency     string `json:"currency"`
	FilePath     string `json:"file_path" validate:"required"`
	ImagePath    string `json:"image_path"`
}

type SetAvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

type CreateCouponRequest struct {
	Code        string     `json:"code" validate:"required"`
	Type        string     `json:"type" validate:"required,oneof=PERCENTAGE FIXED"`
	Amount      int64      `json:"amount" validate:"required,gt=0"`
	Limit       *int64     `json:"limit,omitempty" validate:"omitempty,gt=0"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	AllProducts bool       `json:"all_products"`
	ProductIDs  []string   `json:"product_ids,omitempty"`
}

type SetCouponActiveRequest struct {
	IsActive bool `json:"is_active"`
}

type CustomerResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	OrderCount int64     `json:"order_count"`
	CreatedAt  time.Time `json:"created_at"`
}
