package entity

import (
	"gorm.io/gorm"
)

type PaymentStatus struct {
	gorm.Model
	StatusName string `gorm:"size:50;uniqueIndex;not null" json:"statusName"`

	Payments []Payment `json:"-"`
}
