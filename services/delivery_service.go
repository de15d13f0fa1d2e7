package services

import (
	"errors"

	"storefront/entity"
	"storefront/repository"

	"gorm.io/gorm"
)

type DeliveryService struct {
	Repo *repository.DeliveryRepository
}

func NewDeliveryService(repo *repository.DeliveryRepository) *DeliveryService {
	return &DeliveryService{Repo: repo}
}

// ResolveFee maps a quarter to the cook's delivery fee. Unknown or
// flagged-off quarters resolve to {Available:false} rather than an error so
// the caller can offer another quarter, pickup, or direct contact.
func (s *DeliveryService) ResolveFee(cookID, quarterID uint) (FeeQuote, error) {
	area, err := s.Repo.GetArea(cookID, quarterID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return FeeQuote{Available: false}, nil
	}
	if err != nil {
		return FeeQuote{}, err
	}
	if !area.Available {
		return FeeQuote{Available: false}, nil
	}

	if area.FeeGroupID != nil && area.FeeGroup != nil {
		fee := area.FeeGroup.Fee
		return FeeQuote{Available: true, Fee: &fee}, nil
	}
	if area.IndividualFee != nil {
		fee := *area.IndividualFee
		return FeeQuote{Available: true, Fee: &fee}, nil
	}
	// configured but without any fee source: treat as unavailable
	return FeeQuote{Available: false}, nil
}

// AreaView is the storefront's quarter picker row.
type AreaView struct {
	QuarterID   uint   `json:"quarterId"`
	QuarterName string `json:"quarterName"`
	TownID      uint   `json:"townId"`
	TownName    string `json:"townName"`
	Available   bool   `json:"available"`
	Fee         *int64 `json:"fee"`
}

func (s *DeliveryService) ListAreas(cookID uint) ([]AreaView, error) {
	areas, err := s.Repo.ListAreas(cookID)
	if err != nil {
		return nil, err
	}
	out := make([]AreaView, 0, len(areas))
	for _, a := range areas {
		v := AreaView{
			QuarterID:   a.QuarterID,
			QuarterName: a.Quarter.Name,
			TownID:      a.Quarter.TownID,
			TownName:    a.Quarter.Town.Name,
			Available:   a.Available,
		}
		if a.Available {
			if a.FeeGroupID != nil && a.FeeGroup != nil {
				fee := a.FeeGroup.Fee
				v.Fee = &fee
			} else if a.IndividualFee != nil {
				fee := *a.IndividualFee
				v.Fee = &fee
			} else {
				v.Available = false
			}
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *DeliveryService) ListPickupLocations(cookID uint) ([]entity.PickupLocation, error) {
	return s.Repo.ListPickupLocations(cookID, true)
}

// HasPickup tells the checkout whether "switch to pickup" is a valid
// fallback when a quarter is unavailable.
func (s *DeliveryService) HasPickup(cookID uint) (bool, error) {
	locs, err := s.Repo.ListPickupLocations(cookID, true)
	if err != nil {
		return false, err
	}
	return len(locs) > 0, nil
}
