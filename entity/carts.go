package entity

import (
	"gorm.io/gorm"
)

// Cart is keyed by the browser session so guests can shop before
// authenticating. It is locked to one cook at a time.
type Cart struct {
	gorm.Model
	SessionKey string `gorm:"size:64;uniqueIndex;not null" json:"-"`
	UserID     *uint  `json:"userId,omitempty"`
	User       *User  `json:"-"`

	CookID uint `json:"cookId"`
	Cook   Cook `json:"-"`

	// Applied promo code, if any. At most one per cart; applying a new
	// code replaces the old one.
	PromoCodeID *uint      `json:"promoCodeId,omitempty"`
	PromoCode   *PromoCode `json:"-"`

	Items []CartItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
