package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeFixed      DiscountType = "FIXED"
)

type Product struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:255;not null"`
	Description  string `gorm:"type:text"`
	PriceInCents int64  `gorm:"not null"`
	Currency     string `gorm:"size:8;not null;default:USD"`
	FilePath     string `gorm:"size:512;not null"` // downloadable asset
	ImagePath    string `gorm:"size:512"`
	IsAvailable  bool   `gorm:"not null;default:true;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// User rows are created lazily on first successful order, keyed by email.
type User struct {
	ID        string `gorm:"primaryKey;size:36"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Orders []Order
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Order captures the price actually charged; the catalog price is never
// re-read after purchase.
type Order struct {
	ID           string `gorm:"primaryKey;size:36"`
	UserID       string `gorm:"size:36;index;not null"`
	ProductID    string `gorm:"size:36;index;not null"`
	TotalInCents int64  `gorm:"not null"`
	CreatedAt    time.Time

	Product Product
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type DiscountCode struct {
	ID          string       `gorm:"primaryKey;size:36"`
	Code        string       `gorm:"size:64;uniqueIndex;not null"`
	Type        DiscountType `gorm:"size:16;not null"`
	Amount      int64        `gorm:"not null"` // percent 1-100 or fixed cents
	Limit       *int64
	Used        int64 `gorm:"not null;default:0"`
	ExpiresAt   *time.Time
	AllProducts bool `gorm:"not null;default:false"`
	IsActive    bool `gorm:"not null;default:true"`
	CreatedAt   time.Time

	Products []Product `gorm:"many2many:discount_code_products"`
}

func (d *DiscountCode) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// DownloadVerification is a short-lived opaque credential for fetching a
// purchased file. Insert-only; rows simply expire.
type DownloadVerification struct {
	ID        string `gorm:"primaryKey;size:36"`
	ProductID string `gorm:"size:36;index;not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (d *DownloadVerification) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// WebhookEvent records processed provider event ids when webhook
// deduplication is enabled.
type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}
