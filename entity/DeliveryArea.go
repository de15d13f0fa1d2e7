package entity

import (
	"gorm.io/gorm"
)

// DeliveryArea is one quarter a cook delivers to. The effective fee comes
// from the fee group when FeeGroupID is set, otherwise from IndividualFee.
// A fee of 0 is valid (free delivery) and distinct from unavailable.
type DeliveryArea struct {
	gorm.Model
	CookID uint `gorm:"index:uniq_cook_quarter,unique" json:"cookId"`
	Cook   Cook `json:"-"`

	QuarterID uint    `gorm:"index:uniq_cook_quarter,unique" json:"quarterId"`
	Quarter   Quarter `json:"-"`

	FeeGroupID    *uint     `json:"feeGroupId,omitempty"`
	FeeGroup      *FeeGroup `json:"-"`
	IndividualFee *int64    `json:"individualFee,omitempty"`

	// No column default here: an area created with Available=false must
	// stay unavailable, and gorm would otherwise swap the zero value for
	// the default on insert.
	Available bool `json:"available"`
}
