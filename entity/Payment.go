package entity

import (
	"time"

	"gorm.io/gorm"
)

// PaymentProvider is the closed set of supported providers.
type PaymentProvider string

const (
	ProviderMTNMoMo     PaymentProvider = "mtn_momo"
	ProviderOrangeMoney PaymentProvider = "orange_money"
	ProviderWallet      PaymentProvider = "wallet"
)

func (p PaymentProvider) Valid() bool {
	switch p {
	case ProviderMTNMoMo, ProviderOrangeMoney, ProviderWallet:
		return true
	}
	return false
}

type Payment struct {
	gorm.Model
	Amount      int64           `json:"amount"`
	Provider    PaymentProvider `gorm:"size:30" json:"provider"`
	Phone       string          `gorm:"size:30" json:"phone"`
	ExternalRef string          `gorm:"size:80" json:"externalRef"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	PaymentStatusID uint          `json:"paymentStatusId"`
	PaymentStatus   PaymentStatus `json:"-"` // preload only for detail views
}
