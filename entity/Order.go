package entity

import (
	"time"

	"gorm.io/gorm"
)

type DeliveryMethod string

const (
	MethodDelivery DeliveryMethod = "delivery"
	MethodPickup   DeliveryMethod = "pickup"
)

func (m DeliveryMethod) Valid() bool {
	return m == MethodDelivery || m == MethodPickup
}

// Order freezes the computed summary at placement time; totals are never
// recomputed from items afterwards.
type Order struct {
	gorm.Model
	Reference string `gorm:"size:40;uniqueIndex;not null" json:"reference"`

	Subtotal    int64 `json:"subtotal"`
	Discount    int64 `json:"discount"`
	DeliveryFee int64 `json:"deliveryFee"`
	Total       int64 `json:"total"`

	DeliveryMethod   DeliveryMethod  `gorm:"size:20" json:"deliveryMethod"`
	QuarterID        *uint           `json:"quarterId,omitempty"`
	Quarter          *Quarter        `json:"-"`
	PickupLocationID *uint           `json:"pickupLocationId,omitempty"`
	PickupLocation   *PickupLocation `json:"-"`

	Phone        string     `gorm:"size:30" json:"phone"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
	PromoCode    string     `gorm:"size:50" json:"promoCode"` // snapshot of the applied code

	SessionKey string `gorm:"size:64;index" json:"-"`
	UserID     *uint  `json:"userId,omitempty"`
	User       *User  `json:"-"` // preload only for account views

	CookID uint `json:"cookId"`
	Cook   Cook `json:"-"`

	OrderStatusID uint        `json:"orderStatusId"`
	OrderStatus   OrderStatus `json:"orderStatus"`

	OrderItems []OrderItem `json:"-"`
	Payments   []Payment   `json:"-"`
}
