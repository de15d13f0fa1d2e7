package entity

import (
	"gorm.io/gorm"
)

// MealComponent is the orderable unit of a meal (e.g. "Eru - plate",
// "Water fufu - wrap"). Price is in the smallest currency unit.
type MealComponent struct {
	gorm.Model
	Name        string `json:"name"`
	Unit        string `gorm:"size:40" json:"unit"` // plate, wrap, litre, ...
	Price       int64  `json:"price"`
	MaxPerOrder int    `gorm:"default:10" json:"maxPerOrder"`
	Stock       int    `json:"stock"`
	Available   bool   `gorm:"default:true" json:"available"`

	MealID uint `json:"mealId"`
	Meal   Meal `json:"-"`

	CartItems  []CartItem  `gorm:"foreignKey:ComponentID" json:"-"`
	OrderItems []OrderItem `gorm:"foreignKey:ComponentID" json:"-"`
}
