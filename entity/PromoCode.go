package entity

import (
	"time"

	"gorm.io/gorm"
)

// PromoKind is a closed variant; an unhandled kind is a bug, not a branch
// to ignore.
type PromoKind string

const (
	PromoPercentage PromoKind = "percentage"
	PromoFixed      PromoKind = "fixed"
)

func (k PromoKind) Valid() bool {
	return k == PromoPercentage || k == PromoFixed
}

// PromoCode is matched case-insensitively; Code is stored uppercase.
type PromoCode struct {
	gorm.Model
	CookID uint `gorm:"index:uniq_cook_code,unique" json:"cookId"`
	Cook   Cook `json:"-"`

	Code   string    `gorm:"size:50;index:uniq_cook_code,unique;not null" json:"code"`
	Detail string    `json:"detail"`
	Kind   PromoKind `gorm:"size:20;not null" json:"kind"`
	Value  int64     `json:"value"` // percent for percentage, amount for fixed

	MinOrderAmount int64      `json:"minOrderAmount"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	UsageLimit     *int       `json:"usageLimit,omitempty"`
	UsedCount      int        `json:"usedCount"`

	Redemptions []PromoRedemption `json:"-"`
}
