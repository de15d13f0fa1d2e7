package repository

import (
	"errors"

	"storefront/entity"

	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) GetStatusIDByName(name string) (uint, error) {
	var st entity.OrderStatus
	if err := r.DB.Where("status_name = ?", name).First(&st).Error; err != nil {
		return 0, err
	}
	return st.ID, nil
}

func (r *OrderRepository) GetPaymentStatusIDByName(name string) (uint, error) {
	var st entity.PaymentStatus
	if err := r.DB.Where("status_name = ?", name).First(&st).Error; err != nil {
		return 0, err
	}
	return st.ID, nil
}

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) CreatePayment(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

func (r *OrderRepository) GetByReference(ref string) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Where("reference = ?", ref).Preload("OrderStatus").First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

func (r *OrderRepository) GetPayment(orderID uint) (*entity.Payment, error) {
	var p entity.Payment
	err := r.DB.Where("order_id = ?", orderID).Order("id DESC").First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *OrderRepository) ListForSession(sessionKey string, userID *uint, limit int) ([]entity.Order, error) {
	q := r.DB.Preload("OrderStatus").Order("id DESC")
	if userID != nil {
		q = q.Where("session_key = ? OR user_id = ?", sessionKey, *userID)
	} else {
		q = q.Where("session_key = ?", sessionKey)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []entity.Order
	err := q.Find(&rows).Error
	return rows, err
}

func (r *OrderRepository) ListForCook(cookID uint, statusID *uint, page, limit int) ([]entity.Order, int64, error) {
	q := r.DB.Model(&entity.Order{}).Where("cook_id = ?", cookID)
	if statusID != nil {
		q = q.Where("order_status_id = ?", *statusID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	var rows []entity.Order
	err := q.Preload("OrderStatus").
		Order("id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

// UpdateStatusGuard flips status only when the order is still in `from`;
// returns rows affected so callers can detect lost races.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID, from, to uint) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND order_status_id = ?", orderID, from).
		Update("order_status_id", to)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) UpdatePaymentStatus(tx *gorm.DB, paymentID, statusID uint) error {
	return tx.Model(&entity.Payment{}).Where("id = ?", paymentID).
		Update("payment_status_id", statusID).Error
}

// ----- wallet -----

func (r *OrderRepository) GetWallet(userID uint) (*entity.Wallet, error) {
	var w entity.Wallet
	err := r.DB.Where("user_id = ?", userID).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// DebitWallet fails with no rows affected when the balance is short.
func (r *OrderRepository) DebitWallet(tx *gorm.DB, userID uint, amount int64) error {
	res := tx.Model(&entity.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("insufficient balance")
	}
	return nil
}
