package repository

import (
	"storefront/entity"

	"gorm.io/gorm"
)

type PromoRepository struct{ DB *gorm.DB }

func NewPromoRepository(db *gorm.DB) *PromoRepository { return &PromoRepository{DB: db} }

// FindByCode expects the code already normalized to uppercase.
func (r *PromoRepository) FindByCode(cookID uint, code string) (*entity.PromoCode, error) {
	var p entity.PromoCode
	err := r.DB.Where("cook_id = ? AND code = ?", cookID, code).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// RecordRedemption increments usage and writes the redemption row. Runs
// inside the order-placement transaction only.
func (r *PromoRepository) RecordRedemption(tx *gorm.DB, promoID, orderID uint) error {
	if err := tx.Model(&entity.PromoCode{}).Where("id = ?", promoID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
		return err
	}
	return tx.Create(&entity.PromoRedemption{PromoCodeID: promoID, OrderID: orderID}).Error
}

// ----- partner CRUD -----

func (r *PromoRepository) ListForCook(cookID uint) ([]entity.PromoCode, error) {
	var rows []entity.PromoCode
	err := r.DB.Where("cook_id = ?", cookID).Order("id DESC").Find(&rows).Error
	return rows, err
}

func (r *PromoRepository) Create(p *entity.PromoCode) error {
	return r.DB.Create(p).Error
}

func (r *PromoRepository) Update(cookID, promoID uint, updates map[string]any) error {
	return r.DB.Model(&entity.PromoCode{}).
		Where("id = ? AND cook_id = ?", promoID, cookID).
		Updates(updates).Error
}

func (r *PromoRepository) Delete(cookID, promoID uint) error {
	return r.DB.Where("id = ? AND cook_id = ?", promoID, cookID).
		Delete(&entity.PromoCode{}).Error
}
