package entity

import (
	"gorm.io/gorm"
)

type Town struct {
	gorm.Model
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	Quarters []Quarter `json:"quarters,omitempty"`
}
