package services

import (
	"errors"
	"strings"
	"time"

	"storefront/entity"
	"storefront/repository"

	"gorm.io/gorm"
)

// Expected business failures the controller maps to inline messages.
var (
	ErrPromoNotFound       = errors.New("promo code not found")
	ErrPromoExpired        = errors.New("promo code expired")
	ErrPromoUsageExhausted = errors.New("promo code usage limit reached")
	ErrPromoMinimumNotMet  = errors.New("order below promo minimum")
	ErrNoPromoApplied      = errors.New("no promo code applied")
)

type PromoService struct {
	Repo     *repository.PromoRepository
	CartRepo *repository.CartRepository
}

func NewPromoService(repo *repository.PromoRepository, cartRepo *repository.CartRepository) *PromoService {
	return &PromoService{Repo: repo, CartRepo: cartRepo}
}

// NormalizeCode is the canonical form codes are stored and matched in.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate is the single validation path, used both at apply time and again
// at order placement: a code that was fine when applied may have expired or
// hit its limit by submission.
func (s *PromoService) Validate(p *entity.PromoCode, foodSubtotal int64, at time.Time) error {
	if p.ExpiresAt != nil && at.After(*p.ExpiresAt) {
		return ErrPromoExpired
	}
	if p.UsageLimit != nil && p.UsedCount >= *p.UsageLimit {
		return ErrPromoUsageExhausted
	}
	if foodSubtotal < p.MinOrderAmount {
		return ErrPromoMinimumNotMet
	}
	return nil
}

type ApplyOut struct {
	Code     string `json:"code"`
	Discount int64  `json:"discount"`
	Subtotal int64  `json:"subtotal"`
}

// Apply validates the code against the cart's cook and current food
// subtotal, then stores it on the cart. Applying over an existing code
// replaces it; codes never stack.
func (s *PromoService) Apply(sessionKey, code string) (*ApplyOut, error) {
	cart, err := s.CartRepo.GetCartWithItems(sessionKey)
	if err != nil {
		return nil, err
	}
	if cart.ID == 0 || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	p, err := s.Repo.FindByCode(cart.CookID, NormalizeCode(code))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPromoNotFound
	}
	if err != nil {
		return nil, err
	}

	subtotal := FoodSubtotal(cart.Items)
	if err := s.Validate(p, subtotal, time.Now()); err != nil {
		return nil, err
	}

	if err := s.CartRepo.SetPromo(cart.ID, &p.ID); err != nil {
		return nil, err
	}

	return &ApplyOut{
		Code:     p.Code,
		Discount: DiscountFor(p.Kind, p.Value, subtotal),
		Subtotal: subtotal,
	}, nil
}

// Remove clears the applied code. Usage counters are untouched: usage is
// recorded only at order placement.
func (s *PromoService) Remove(sessionKey string) error {
	cart, err := s.CartRepo.GetCartWithItems(sessionKey)
	if err != nil {
		return err
	}
	if cart.ID == 0 || cart.PromoCodeID == nil {
		return ErrNoPromoApplied
	}
	return s.CartRepo.SetPromo(cart.ID, nil)
}

// RecordRedemption runs inside the order-placement transaction.
func (s *PromoService) RecordRedemption(tx *gorm.DB, promoID, orderID uint) error {
	return s.Repo.RecordRedemption(tx, promoID, orderID)
}
