package entity

import (
	"gorm.io/gorm"
)

// Wallet holds the prepaid balance usable as a payment provider.
type Wallet struct {
	gorm.Model
	UserID  uint  `gorm:"uniqueIndex" json:"userId"`
	User    User  `json:"-"`
	Balance int64 `json:"balance"`
}
