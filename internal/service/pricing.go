package service

import "github.com/mhbagheri-99/e-commerce/internal/model"

// DiscountedPriceInCents applies a discount code to the current catalog price.
// Codes never stack; the input is always the undiscounted price.
//
// PERCENTAGE discounts round half up. FIXED discounts floor at zero.
func DiscountedPriceInCents(priceInCents int64, discountCode *model.DiscountCode) int64 {
	if discountCode == nil {
		return priceInCents
	}

	switch discountCode.Type {
	case model.DiscountTypePercentage:
		return (priceInCents*(100-discountCode.Amount) + 50) / 100
	case model.DiscountTypeFixed:
		if discountCode.Amount >= priceInCents {
			return 0
		}
		return priceInCents - discountCode.Amount
	}

	return priceInCents
}
