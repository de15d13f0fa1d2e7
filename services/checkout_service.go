package services

import (
	"errors"
	"fmt"
	"time"

	"storefront/entity"
	"storefront/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBelowMinimumOrder      = errors.New("order below cook minimum")
	ErrQuarterUnavailable     = errors.New("delivery not available for this quarter")
	ErrPickupLocationNotFound = errors.New("pickup location not found")
	ErrInsufficientWallet     = errors.New("insufficient wallet balance")
	ErrWalletRequiresAccount  = errors.New("wallet payment requires an account")
)

// StaleLine reports a price or availability drift between the cart snapshot
// and live data, so the UI can show old vs. new instead of silently
// charging a different amount.
type StaleLine struct {
	ItemID   uint   `json:"itemId"`
	Name     string `json:"name"`
	OldPrice int64  `json:"oldPrice"`
	NewPrice int64  `json:"newPrice"`
	Removed  bool   `json:"removed"` // component no longer orderable
}

type StaleCartError struct {
	Lines []StaleLine `json:"lines"`
}

func (e *StaleCartError) Error() string {
	return fmt.Sprintf("cart out of date: %d line(s) changed", len(e.Lines))
}

type StatusIDs struct {
	PendingPayment uint
	Paid           uint
	Cancelled      uint
	Expired        uint

	PayPending uint
	PaySuccess uint
	PayFailed  uint
}

type CheckoutService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	CartRepo *repository.CartRepository
	CookRepo *repository.CookRepository

	Delivery *DeliveryService
	Promo    *PromoService

	Status StatusIDs
}

func NewCheckoutService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	cookRepo *repository.CookRepository,
	delivery *DeliveryService,
	promo *PromoService,
) *CheckoutService {
	s := &CheckoutService{
		DB: db, Repo: repo, CartRepo: cartRepo, CookRepo: cookRepo,
		Delivery: delivery, Promo: promo,
	}

	if id, err := repo.GetStatusIDByName("Pending Payment"); err == nil {
		s.Status.PendingPayment = id
	}
	if id, err := repo.GetStatusIDByName("Paid"); err == nil {
		s.Status.Paid = id
	}
	if id, err := repo.GetStatusIDByName("Cancelled"); err == nil {
		s.Status.Cancelled = id
	}
	if id, err := repo.GetStatusIDByName("Expired"); err == nil {
		s.Status.Expired = id
	}

	if id, err := repo.GetPaymentStatusIDByName("Pending"); err == nil {
		s.Status.PayPending = id
	}
	if id, err := repo.GetPaymentStatusIDByName("Success"); err == nil {
		s.Status.PaySuccess = id
	}
	if id, err := repo.GetPaymentStatusIDByName("Failed"); err == nil {
		s.Status.PayFailed = id
	}

	return s
}

// ----- summary -----

type SummaryIn struct {
	Method           entity.DeliveryMethod
	QuarterID        uint
	PickupLocationID uint
}

type SummaryOut struct {
	OrderSummary
	PromoCode string `json:"promoCode,omitempty"`
	// fallback hint when the selected quarter is unavailable
	PickupAvailable bool `json:"pickupAvailable"`
}

// Summary recomputes the order summary from live cart, promo and delivery
// state. It holds no state of its own; the client only mirrors the result.
func (s *CheckoutService) Summary(sessionKey string, in SummaryIn) (*SummaryOut, error) {
	cart, err := s.CartRepo.GetCartWithItems(sessionKey)
	if err != nil {
		return nil, err
	}

	subtotal := FoodSubtotal(cart.Items)

	var discount int64
	var code string
	if cart.PromoCodeID != nil && cart.PromoCode != nil {
		// stale/invalid codes still show here; they are rejected and
		// dropped at placement
		discount = DiscountFor(cart.PromoCode.Kind, cart.PromoCode.Value, subtotal)
		code = cart.PromoCode.Code
	}

	quote := FeeQuote{}
	if in.Method == entity.MethodDelivery && in.QuarterID != 0 && cart.CookID != 0 {
		quote, err = s.Delivery.ResolveFee(cart.CookID, in.QuarterID)
		if err != nil {
			return nil, err
		}
	}

	var minOrder int64
	if cart.CookID != 0 {
		cook, err := s.CookRepo.GetByID(cart.CookID)
		if err != nil {
			return nil, err
		}
		minOrder = cook.MinOrderAmount
	}

	out := &SummaryOut{
		OrderSummary: ComputeSummary(subtotal, discount, in.Method, quote, minOrder),
		PromoCode:    code,
	}
	if out.DeliveryUnavailable && cart.CookID != 0 {
		out.PickupAvailable, _ = s.Delivery.HasPickup(cart.CookID)
	}
	return out, nil
}

// ----- placement -----

type PlaceOrderReq struct {
	Method           string     `json:"method" binding:"required,oneof=delivery pickup"`
	QuarterID        uint       `json:"quarterId"`
	PickupLocationID uint       `json:"pickupLocationId"`
	Phone            string     `json:"phone" binding:"required"`
	ScheduledFor     *time.Time `json:"scheduledFor"`

	Provider string `json:"provider" binding:"required,oneof=mtn_momo orange_money wallet"`
	PayPhone string `json:"payPhone"`
}

type PlaceOrderRes struct {
	Reference string `json:"reference"`
	Total     int64  `json:"total"`
}

// PlaceOrder re-validates everything the summary showed — live prices, the
// promo code, the delivery fee, the minimum — and freezes the result onto
// an Order in one transaction.
func (s *CheckoutService) PlaceOrder(sessionKey string, userID *uint, req *PlaceOrderReq) (*PlaceOrderRes, error) {
	cart, err := s.CartRepo.GetCartWithItems(sessionKey)
	if err != nil {
		return nil, err
	}
	if cart.ID == 0 || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	if stale, err := s.refreshStaleLines(cart); err != nil {
		return nil, err
	} else if stale != nil {
		return nil, stale
	}

	subtotal := FoodSubtotal(cart.Items)

	// promo re-validation at submission time
	var discount int64
	var promo *entity.PromoCode
	if cart.PromoCodeID != nil && cart.PromoCode != nil {
		promo = cart.PromoCode
		if err := s.Promo.Validate(promo, subtotal, time.Now()); err != nil {
			// drop the code so the summary step reloads without it
			_ = s.CartRepo.SetPromo(cart.ID, nil)
			return nil, err
		}
		discount = DiscountFor(promo.Kind, promo.Value, subtotal)
	}

	method := entity.DeliveryMethod(req.Method)
	quote := FeeQuote{}
	var quarterID, pickupID *uint
	switch method {
	case entity.MethodDelivery:
		quote, err = s.Delivery.ResolveFee(cart.CookID, req.QuarterID)
		if err != nil {
			return nil, err
		}
		if !quote.Available {
			return nil, ErrQuarterUnavailable
		}
		quarterID = &req.QuarterID
	case entity.MethodPickup:
		if _, err := s.Delivery.Repo.GetPickupLocation(cart.CookID, req.PickupLocationID); err != nil {
			return nil, ErrPickupLocationNotFound
		}
		pickupID = &req.PickupLocationID
	}

	cook, err := s.CookRepo.GetByID(cart.CookID)
	if err != nil {
		return nil, err
	}

	summary := ComputeSummary(subtotal, discount, method, quote, cook.MinOrderAmount)
	if summary.BelowMinimum {
		return nil, ErrBelowMinimumOrder
	}
	if summary.Total == nil {
		return nil, ErrQuarterUnavailable
	}
	total := *summary.Total

	provider := entity.PaymentProvider(req.Provider)
	if provider == entity.ProviderWallet {
		if userID == nil {
			return nil, ErrWalletRequiresAccount
		}
		w, err := s.Repo.GetWallet(*userID)
		if err != nil || w.Balance < total {
			return nil, ErrInsufficientWallet
		}
	}

	var promoCode string
	if promo != nil {
		promoCode = promo.Code
	}

	var out PlaceOrderRes
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		order := entity.Order{
			Reference:        uuid.NewString(),
			Subtotal:         summary.Subtotal,
			Discount:         summary.Discount,
			DeliveryFee:      *summary.DeliveryFee,
			Total:            total,
			DeliveryMethod:   method,
			QuarterID:        quarterID,
			PickupLocationID: pickupID,
			Phone:            req.Phone,
			ScheduledFor:     req.ScheduledFor,
			PromoCode:        promoCode,
			SessionKey:       sessionKey,
			UserID:           userID,
			CookID:           cart.CookID,
			OrderStatusID:    s.Status.PendingPayment,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for _, it := range cart.Items {
			oi := entity.OrderItem{
				Name: it.Name, Unit: it.Unit,
				Qty: it.Qty, UnitPrice: it.UnitPrice, Total: it.UnitPrice * int64(it.Qty),
				OrderID: order.ID, ComponentID: it.ComponentID, MealID: it.MealID,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}

		// usage is recorded here and only here
		if promo != nil {
			if err := s.Promo.RecordRedemption(tx, promo.ID, order.ID); err != nil {
				return err
			}
		}

		payPhone := req.PayPhone
		if payPhone == "" {
			payPhone = req.Phone
		}
		p := entity.Payment{
			Amount:          total,
			Provider:        provider,
			Phone:           payPhone,
			OrderID:         order.ID,
			PaymentStatusID: s.Status.PayPending,
		}
		if err := s.Repo.CreatePayment(tx, &p); err != nil {
			return err
		}

		if err := s.CartRepo.ClearCart(tx, sessionKey); err != nil {
			return err
		}

		out = PlaceOrderRes{Reference: order.Reference, Total: total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// refreshStaleLines compares cart snapshots with live component data. On
// drift it rewrites the cart rows to live values and returns the diff; the
// order is not created on a stale cart.
func (s *CheckoutService) refreshStaleLines(cart *entity.Cart) (*StaleCartError, error) {
	var stale []StaleLine
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for i := range cart.Items {
			it := &cart.Items[i]
			comp := it.Component

			if !comp.Available || comp.Stock <= 0 {
				stale = append(stale, StaleLine{
					ItemID: it.ID, Name: it.Name,
					OldPrice: it.UnitPrice, NewPrice: comp.Price, Removed: true,
				})
				if err := tx.Delete(&entity.CartItem{}, it.ID).Error; err != nil {
					return err
				}
				continue
			}

			if comp.Price != it.UnitPrice {
				stale = append(stale, StaleLine{
					ItemID: it.ID, Name: it.Name,
					OldPrice: it.UnitPrice, NewPrice: comp.Price,
				})
				it.UnitPrice = comp.Price
				it.Total = comp.Price * int64(it.Qty)
				if err := tx.Save(it).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(stale) > 0 {
		return &StaleCartError{Lines: stale}, nil
	}
	return nil, nil
}

// ----- read side -----

type OrderDetail struct {
	Order   *entity.Order      `json:"order"`
	Items   []entity.OrderItem `json:"items"`
	Payment *entity.Payment    `json:"payment,omitempty"`
}

func (s *CheckoutService) DetailByReference(sessionKey string, userID *uint, ref string) (*OrderDetail, error) {
	o, err := s.Repo.GetByReference(ref)
	if err != nil {
		return nil, err
	}
	if !orderBelongsTo(o, sessionKey, userID) {
		return nil, gorm.ErrRecordNotFound
	}
	items, err := s.Repo.GetOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	detail := &OrderDetail{Order: o, Items: items}
	if p, err := s.Repo.GetPayment(o.ID); err == nil {
		detail.Payment = p
	}
	return detail, nil
}

func (s *CheckoutService) ListForSession(sessionKey string, userID *uint, limit int) ([]entity.Order, error) {
	return s.Repo.ListForSession(sessionKey, userID, limit)
}

func orderBelongsTo(o *entity.Order, sessionKey string, userID *uint) bool {
	if o.SessionKey == sessionKey {
		return true
	}
	return userID != nil && o.UserID != nil && *o.UserID == *userID
}
