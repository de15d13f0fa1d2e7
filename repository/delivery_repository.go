package repository

import (
	"storefront/entity"

	"gorm.io/gorm"
)

type DeliveryRepository struct{ DB *gorm.DB }

func NewDeliveryRepository(db *gorm.DB) *DeliveryRepository { return &DeliveryRepository{DB: db} }

func (r *DeliveryRepository) GetArea(cookID, quarterID uint) (*entity.DeliveryArea, error) {
	var area entity.DeliveryArea
	err := r.DB.Where("cook_id = ? AND quarter_id = ?", cookID, quarterID).
		Preload("FeeGroup").
		First(&area).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *DeliveryRepository) ListAreas(cookID uint) ([]entity.DeliveryArea, error) {
	var areas []entity.DeliveryArea
	err := r.DB.Where("cook_id = ?", cookID).
		Preload("Quarter").
		Preload("Quarter.Town").
		Preload("FeeGroup").
		Order("quarter_id ASC").
		Find(&areas).Error
	return areas, err
}

func (r *DeliveryRepository) ListPickupLocations(cookID uint, onlyAvailable bool) ([]entity.PickupLocation, error) {
	q := r.DB.Where("cook_id = ?", cookID)
	if onlyAvailable {
		q = q.Where("available = ?", true)
	}
	var locs []entity.PickupLocation
	err := q.Order("id ASC").Find(&locs).Error
	return locs, err
}

func (r *DeliveryRepository) GetPickupLocation(cookID, locID uint) (*entity.PickupLocation, error) {
	var loc entity.PickupLocation
	err := r.DB.Where("cook_id = ? AND id = ?", cookID, locID).First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *DeliveryRepository) ListTownsWithQuarters() ([]entity.Town, error) {
	var towns []entity.Town
	err := r.DB.Preload("Quarters").Order("name ASC").Find(&towns).Error
	return towns, err
}

// ----- partner CRUD -----

func (r *DeliveryRepository) CreateArea(area *entity.DeliveryArea) error {
	return r.DB.Create(area).Error
}

func (r *DeliveryRepository) UpdateArea(cookID, areaID uint, updates map[string]any) error {
	return r.DB.Model(&entity.DeliveryArea{}).
		Where("id = ? AND cook_id = ?", areaID, cookID).
		Updates(updates).Error
}

func (r *DeliveryRepository) DeleteArea(cookID, areaID uint) error {
	return r.DB.Where("id = ? AND cook_id = ?", areaID, cookID).
		Delete(&entity.DeliveryArea{}).Error
}

func (r *DeliveryRepository) CreateFeeGroup(g *entity.FeeGroup) error {
	return r.DB.Create(g).Error
}

func (r *DeliveryRepository) UpdateFeeGroup(cookID, groupID uint, updates map[string]any) error {
	return r.DB.Model(&entity.FeeGroup{}).
		Where("id = ? AND cook_id = ?", groupID, cookID).
		Updates(updates).Error
}

func (r *DeliveryRepository) CreatePickupLocation(l *entity.PickupLocation) error {
	return r.DB.Create(l).Error
}

func (r *DeliveryRepository) UpdatePickupLocation(cookID, locID uint, updates map[string]any) error {
	return r.DB.Model(&entity.PickupLocation{}).
		Where("id = ? AND cook_id = ?", locID, cookID).
		Updates(updates).Error
}
