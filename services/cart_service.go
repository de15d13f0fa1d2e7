package services

import (
	"errors"

	"storefront/entity"
	"storefront/repository"

	"gorm.io/gorm"
)

var (
	ErrCartEmpty            = errors.New("cart is empty")
	ErrCartHasOtherCook     = errors.New("cart has another cook")
	ErrComponentUnavailable = errors.New("component unavailable")
	ErrComponentNotFound    = errors.New("component not found")
)

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	CookRepo *repository.CookRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, kr *repository.CookRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, CookRepo: kr}
}

type AddToCartIn struct {
	CookID      uint `json:"cookId" binding:"required"`
	ComponentID uint `json:"componentId" binding:"required"`
	Qty         int  `json:"qty" binding:"min=1"`
}

// MealGroupView groups cart lines by meal for display; derived on every
// read, never persisted.
type MealGroupView struct {
	MealID   uint              `json:"mealId"`
	MealName string            `json:"mealName"`
	Lines    []entity.CartItem `json:"lines"`
	Subtotal int64             `json:"subtotal"`
}

type CartView struct {
	Cart     *entity.Cart    `json:"cart"`
	Groups   []MealGroupView `json:"groups"`
	Subtotal int64           `json:"subtotal"`
}

func (s *CartService) Get(sessionKey string) (*CartView, error) {
	c, err := s.CartRepo.GetCartWithItems(sessionKey)
	if err != nil {
		return nil, err
	}
	return &CartView{
		Cart:     c,
		Groups:   groupByMeal(c.Items),
		Subtotal: FoodSubtotal(c.Items),
	}, nil
}

func groupByMeal(items []entity.CartItem) []MealGroupView {
	groups := make([]MealGroupView, 0)
	index := make(map[uint]int)
	for _, it := range items {
		i, ok := index[it.MealID]
		if !ok {
			i = len(groups)
			index[it.MealID] = i
			groups = append(groups, MealGroupView{MealID: it.MealID, MealName: it.Meal.Name})
		}
		groups[i].Lines = append(groups[i].Lines, it)
		groups[i].Subtotal += it.UnitPrice * int64(it.Qty)
	}
	return groups
}

// maxQty is the per-line quantity cap: stock on hand bounded by the cook's
// per-order limit.
func maxQty(comp *entity.MealComponent) int {
	max := comp.Stock
	if comp.MaxPerOrder > 0 && comp.MaxPerOrder < max {
		max = comp.MaxPerOrder
	}
	return max
}

func (s *CartService) Add(sessionKey string, userID *uint, in *AddToCartIn) error {
	if in.Qty <= 0 {
		in.Qty = 1
	}

	c, err := s.CartRepo.GetOrCreateCart(sessionKey, in.CookID, userID)
	if err != nil {
		return err
	}

	// one cook per cart until it is cleared
	if c.CookID != 0 && c.CookID != in.CookID {
		return ErrCartHasOtherCook
	}
	if c.CookID == 0 {
		c.CookID = in.CookID
		if err := s.CartRepo.DB.Save(c).Error; err != nil {
			return err
		}
	}

	comp, err := s.CookRepo.GetComponent(in.ComponentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrComponentNotFound
	}
	if err != nil {
		return err
	}
	if comp.Meal.CookID != in.CookID {
		return ErrComponentNotFound
	}
	if !comp.Available || !comp.Meal.Available || comp.Stock <= 0 {
		return ErrComponentUnavailable
	}

	limit := maxQty(comp)
	if in.Qty > limit {
		in.Qty = limit
	}

	line := &entity.CartItem{
		ComponentID: comp.ID,
		MealID:      comp.MealID,
		Name:        comp.Name,
		Unit:        comp.Unit,
		Qty:         in.Qty,
		UnitPrice:   comp.Price,
		Total:       comp.Price * int64(in.Qty),
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.UpsertItem(tx, c.ID, line, limit)
	})
}

// SetQty clamps to [1, min(stock, maxPerOrder)]; qty <= 0 removes the line.
func (s *CartService) SetQty(sessionKey string, itemID uint, qty int) error {
	if qty <= 0 {
		return s.RemoveItem(sessionKey, itemID)
	}

	it, err := s.CartRepo.GetItemForSession(sessionKey, itemID)
	if err != nil {
		return err
	}

	limit := maxQty(&it.Component)
	if limit > 0 && qty > limit {
		qty = limit
	}
	it.Qty = qty
	it.Total = it.UnitPrice * int64(qty)

	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.SaveItem(tx, it)
	})
}

func (s *CartService) RemoveItem(sessionKey string, itemID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.RemoveItem(tx, sessionKey, itemID)
	})
}

func (s *CartService) Clear(sessionKey string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.ClearCart(tx, sessionKey)
	})
}
