package entity

import (
	"gorm.io/gorm"
)

type OrderStatus struct {
	gorm.Model
	StatusName string `gorm:"size:50;uniqueIndex;not null" json:"statusName"`

	Orders []Order `json:"-"`
}
