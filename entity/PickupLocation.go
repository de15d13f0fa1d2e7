package entity

import (
	"gorm.io/gorm"
)

type PickupLocation struct {
	gorm.Model
	CookID    uint   `json:"cookId"`
	Cook      Cook   `json:"-"`
	Name      string `gorm:"size:120" json:"name"`
	Note      string `json:"note"`
	Available bool   `gorm:"default:true" json:"available"`
}
