package entity

import (
	"gorm.io/gorm"
)

// Cook is a tenant: a vendor running their own branded storefront.
type Cook struct {
	gorm.Model
	Name    string `json:"name"`
	Slug    string `gorm:"size:80;uniqueIndex;not null" json:"slug"`
	Bio     string `json:"bio"`
	Picture string `json:"picture"`

	// Floor on the post-discount food subtotal required to check out.
	MinOrderAmount int64  `json:"minOrderAmount"`
	Currency       string `gorm:"size:8;default:XAF" json:"currency"`
	Active         bool   `gorm:"default:true" json:"active"`

	UserID uint `json:"userId"` // owner (users.id)
	User   User `json:"-"`

	TownID uint `json:"townId"`
	Town   Town `json:"-"`

	Meals           []Meal           `json:"-"`
	FeeGroups       []FeeGroup       `json:"-"`
	DeliveryAreas   []DeliveryArea   `json:"-"`
	PickupLocations []PickupLocation `json:"-"`
	PromoCodes      []PromoCode      `json:"-"`
	Orders          []Order          `json:"-"`
}
