package services

import (
	"storefront/entity"
)

// FeeQuote is the result of resolving a quarter against a cook's delivery
// areas. Available=false means delivery is not offered there; Fee stays nil.
// An available quarter with Fee=0 is free delivery, not an error.
type FeeQuote struct {
	Available bool   `json:"available"`
	Fee       *int64 `json:"fee"`
}

// OrderSummary is recomputed on every cart/promo/delivery change and only
// persisted when frozen onto an Order at placement.
type OrderSummary struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`

	// nil until the delivery fee can be resolved; pickup always resolves
	// to 0.
	DeliveryFee *int64 `json:"deliveryFee"`
	Total       *int64 `json:"total"`

	DeliveryUnavailable bool `json:"deliveryUnavailable"`

	// Minimum-order gate on the post-discount food subtotal. The delivery
	// fee is deliberately excluded: the floor protects food revenue, the
	// fee is a pass-through.
	BelowMinimum bool  `json:"belowMinimum"`
	AmountNeeded int64 `json:"amountNeeded"`
}

// FoodSubtotal sums line totals from unit price and quantity.
func FoodSubtotal(items []entity.CartItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.UnitPrice * int64(it.Qty)
	}
	return sum
}

// DiscountFor prices a promo against the food subtotal. The discount never
// exceeds the subtotal, so the discounted subtotal cannot go negative.
func DiscountFor(kind entity.PromoKind, value, subtotal int64) int64 {
	if subtotal <= 0 || value <= 0 {
		return 0
	}
	var d int64
	switch kind {
	case entity.PromoPercentage:
		// round half-up on integer math
		d = (subtotal*value + 50) / 100
	case entity.PromoFixed:
		d = value
	default:
		return 0
	}
	if d > subtotal {
		d = subtotal
	}
	return d
}

// ComputeSummary combines subtotal, discount, delivery selection and the
// cook's minimum into the final summary. Pure: no state, no I/O.
func ComputeSummary(subtotal, discount int64, method entity.DeliveryMethod, quote FeeQuote, minOrder int64) OrderSummary {
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}

	s := OrderSummary{Subtotal: subtotal, Discount: discount}

	discounted := subtotal - discount
	if discounted < minOrder {
		s.BelowMinimum = true
		s.AmountNeeded = minOrder - discounted
	}

	var fee int64
	switch method {
	case entity.MethodPickup:
		// pickup forces fee 0 regardless of any quarter selected earlier
		fee = 0
	case entity.MethodDelivery:
		if !quote.Available || quote.Fee == nil {
			// totals cannot finalize without a resolved fee
			s.DeliveryUnavailable = true
			return s
		}
		fee = *quote.Fee
	default:
		return s
	}

	total := discounted + fee
	s.DeliveryFee = &fee
	s.Total = &total
	return s
}
