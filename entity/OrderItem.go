package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	Qty       int    `json:"qty"`
	UnitPrice int64  `json:"unitPrice"`
	Total     int64  `json:"total"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	ComponentID uint          `json:"componentId"`
	Component   MealComponent `json:"-"`

	MealID uint `json:"mealId"`
	Meal   Meal `json:"-"` // preload only when the meal name is needed
}
