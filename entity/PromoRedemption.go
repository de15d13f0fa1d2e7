package entity

import (
	"gorm.io/gorm"
)

// PromoRedemption is written only when an order is placed; applying or
// removing a code on a cart never touches usage.
type PromoRedemption struct {
	gorm.Model
	PromoCodeID uint      `gorm:"index" json:"promoCodeId"`
	PromoCode   PromoCode `json:"-"`

	OrderID uint  `gorm:"uniqueIndex" json:"orderId"`
	Order   Order `json:"-"`
}

func (PromoRedemption) TableName() string { return "promo_redemptions" }
