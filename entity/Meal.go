package entity

import (
	"gorm.io/gorm"
)

type Meal struct {
	gorm.Model
	Name      string `json:"name"`
	Detail    string `json:"detail"`
	Picture   string `json:"picture"`
	Available bool   `gorm:"default:true" json:"available"`

	CookID uint `json:"cookId"`
	Cook   Cook `json:"-"` // preload only when the cook header is needed

	Components []MealComponent `json:"components,omitempty"`
}
