package repository

import (
	"errors"

	"storefront/entity"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// GetCartWithItems returns the session's cart, or an empty unsaved cart so
// the storefront can always render something.
func (r *CartRepository) GetCartWithItems(sessionKey string) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("session_key = ?", sessionKey).
		Preload("Items").
		Preload("Items.Component").
		Preload("Items.Meal").
		Preload("PromoCode").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Cart{SessionKey: sessionKey}, nil
	}
	return &c, err
}

func (r *CartRepository) GetOrCreateCart(sessionKey string, cookID uint, userID *uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("session_key = ?", sessionKey).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = entity.Cart{SessionKey: sessionKey, CookID: cookID, UserID: userID}
		if err := r.DB.Create(&c).Error; err != nil {
			return nil, err
		}
		return &c, nil
	}
	return &c, err
}

// UpsertItem merges lines by component: adding a component already in the
// cart increments its quantity. maxQty caps the merged quantity.
func (r *CartRepository) UpsertItem(tx *gorm.DB, cartID uint, row *entity.CartItem, maxQty int) error {
	var exist entity.CartItem
	err := tx.Where("cart_id = ? AND component_id = ?", cartID, row.ComponentID).
		First(&exist).Error
	if err == nil {
		exist.Qty += row.Qty
		if maxQty > 0 && exist.Qty > maxQty {
			exist.Qty = maxQty
		}
		exist.UnitPrice = row.UnitPrice
		exist.Total = int64(exist.Qty) * exist.UnitPrice
		return tx.Save(&exist).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row.CartID = cartID
	return tx.Create(row).Error
}

func (r *CartRepository) GetItemForSession(sessionKey string, itemID uint) (*entity.CartItem, error) {
	var it entity.CartItem
	err := r.DB.Preload("Component").
		Where("id = ? AND cart_id IN (SELECT id FROM carts WHERE session_key = ? AND deleted_at IS NULL)", itemID, sessionKey).
		First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CartRepository) SaveItem(tx *gorm.DB, it *entity.CartItem) error {
	return tx.Save(it).Error
}

func (r *CartRepository) RemoveItem(tx *gorm.DB, sessionKey string, itemID uint) error {
	if err := tx.
		Where("id = ? AND cart_id IN (SELECT id FROM carts WHERE session_key = ? AND deleted_at IS NULL)", itemID, sessionKey).
		Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	// cart emptied -> unlock the cook and drop the promo
	return tx.Exec(`
		UPDATE carts SET cook_id = 0, promo_code_id = NULL
		 WHERE session_key = ?
		   AND NOT EXISTS (SELECT 1 FROM cart_items ci WHERE ci.cart_id = carts.id AND ci.deleted_at IS NULL)
	`, sessionKey).Error
}

func (r *CartRepository) ClearCart(tx *gorm.DB, sessionKey string) error {
	var c entity.Cart
	if err := tx.Where("session_key = ?", sessionKey).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if err := tx.Where("cart_id = ?", c.ID).Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Model(&entity.Cart{}).Where("id = ?", c.ID).
		Updates(map[string]any{"cook_id": 0, "promo_code_id": nil}).Error
}

func (r *CartRepository) SetPromo(cartID uint, promoID *uint) error {
	return r.DB.Model(&entity.Cart{}).Where("id = ?", cartID).
		Update("promo_code_id", promoID).Error
}

// AttachUser links a guest cart to the account after login.
func (r *CartRepository) AttachUser(sessionKey string, userID uint) error {
	return r.DB.Model(&entity.Cart{}).
		Where("session_key = ? AND user_id IS NULL", sessionKey).
		Update("user_id", userID).Error
}
