package entity

import (
	"gorm.io/gorm"
)

// FeeGroup is a set of delivery areas sharing one delivery fee.
type FeeGroup struct {
	gorm.Model
	CookID uint   `json:"cookId"`
	Cook   Cook   `json:"-"`
	Name   string `gorm:"size:100" json:"name"`
	Fee    int64  `json:"fee"`

	Areas []DeliveryArea `gorm:"foreignKey:FeeGroupID" json:"-"`
}
