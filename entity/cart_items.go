package entity

import (
	"gorm.io/gorm"
)

// CartItem snapshots name/unit/price at add time; the snapshot is
// revalidated against live component data at order placement.
type CartItem struct {
	gorm.Model
	CartID uint `json:"cartId"`
	Cart   Cart `json:"-"`

	ComponentID uint          `json:"componentId"`
	Component   MealComponent `json:"-"`

	MealID uint `json:"mealId"`
	Meal   Meal `json:"-"`

	Name      string `json:"name"`
	Unit      string `json:"unit"`
	Qty       int    `json:"qty"`
	UnitPrice int64  `json:"unitPrice"`
	Total     int64  `json:"total"`
}
