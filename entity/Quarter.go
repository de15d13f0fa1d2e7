package entity

import (
	"gorm.io/gorm"
)

// Quarter is a neighbourhood-level delivery zone within a town, the
// finest-grained unit a delivery fee can be assigned to.
type Quarter struct {
	gorm.Model
	Name   string `gorm:"size:100;not null" json:"name"`
	TownID uint   `json:"townId"`
	Town   Town   `json:"-"`
}
