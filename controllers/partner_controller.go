package controllers

import (
	"errors"
	"strconv"
	"time"

	"storefront/entity"
	"storefront/pkg/resp"
	"storefront/repository"
	"storefront/services"
	"storefront/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PartnerController is the cook-side management surface.
type PartnerController struct {
	DB       *gorm.DB
	CookRepo *repository.CookRepository
	Promo    *repository.PromoRepository
	Delivery *repository.DeliveryRepository
	Checkout *services.CheckoutService
}

func NewPartnerController(
	db *gorm.DB,
	cookRepo *repository.CookRepository,
	promoRepo *repository.PromoRepository,
	deliveryRepo *repository.DeliveryRepository,
	checkout *services.CheckoutService,
) *PartnerController {
	return &PartnerController{
		DB: db, CookRepo: cookRepo, Promo: promoRepo,
		Delivery: deliveryRepo, Checkout: checkout,
	}
}

func (h *PartnerController) cookOf(c *gin.Context) (*entity.Cook, bool) {
	uid := utils.CurrentUserID(c)
	if uid == nil {
		resp.Unauthorized(c, "unauthorized")
		return nil, false
	}
	cook, err := h.CookRepo.GetForOwner(*uid)
	if err != nil {
		resp.Forbidden(c, "no cook profile")
		return nil, false
	}
	return cook, true
}

// ----- orders -----

// GET /partner/orders?statusId=&page=&limit=
func (h *PartnerController) Orders(c *gin.Context) {
	cook, ok := h.cookOf(c)
	if !ok {
		return
	}

	var statusID *uint
	if v, err := strconv.ParseUint(c.Query("statusId"), 10, 32); err == nil {
		id := uint(v)
		statusID = &id
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	rows, total, err := h.Checkout.Repo.ListForCook(cook.ID, statusID, page, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": rows, "total": total, "page": page, "limit": limit})
}

// POST /partner/orders/:reference/cancel
func (h *PartnerController) CancelOrder(c *gin.Context) {
	cook, ok := h.cookOf(c)
	if !ok {
		return
	}
	if err := h.Checkout.CookCancel(cook.ID, c.Param("reference")); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "order not found")
		case errors.Is(err, services.ErrForbidden):
			resp.Forbidden(c, "forbidden")
		case errors.Is(err, services.ErrInvalidTransition):
			resp.Conflict(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// POST /partner/orders/:reference/expire — manual retry-timeout sweep.
func (h *PartnerController) ExpireOrder(c *gin.Context) {
	cook, ok := h.cookOf(c)
	if !ok {
		return
	}
	o, err := h.Checkout.Repo.GetByReference(c.Param("reference"))
	if err != nil {
		resp.NotFound(c, "order not found")
		return
	}
	if o.CookID != cook.ID {
		resp.Forbidden(c, "forbidden")
		return
	}
	if err := h.Checkout.ExpireOrder(o.Reference); err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			resp.Conflict(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// ----- promo codes -----

type promoIn struct {
	Code           string     `json:"code" binding:"required"`
	Detail         string     `json:"detail"`
	Kind           string     `json:"kind" binding:"required,oneof=percentage fixed"`
	Value          int64      `json:"value" binding:"required,min=1"`
	MinOrderAmount int64      `json:"minOrderAmount"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	UsageLimit     *int       `json:"usageLimit"`
}

// GET /partner/promos
func (h *PartnerController) Promos(c *gin.Context) {
	cook, ok := h.cookOf(c)
	if !ok {
		return
	}
	rows, err := h.Promo.ListForCook(cook.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}

// POST /partner/promos
func (h *PartnerController) CreatePromo(c *gin.Context) {
	cook, ok := h.cookOf(c)
	if !ok {
		return
	}
	var in promoIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	kind := entity.PromoKind(in.Kind)
	if kind == entity.PromoPercentage && in.Value > 100 {
		resp.BadRequest(c, "percentage value must be <= 100")
		return
	}
	p := entity.PromoCode{
		CookID:         cook.ID,
		Code:           services.NormalizeCode(in.Code),
		Detail:         in.Detail,
		Kind:           kind,
		Value:          in.Value,
		MinOrderAmount: in.MinOrderAmount,
		ExpiresAt:      in.ExpiresAt,
		UsageLimit:     in.UsageLimit,
	}
	if err := h.Promo.Create(&p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			resp.Conflict(c, "code already exists")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, p)
}

// PATCH /partner/promos/:id
func (h *PartnerController) UpdatePromo(c *gin.Context) {
	cook, ok := h.cookOf(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	var in map[string]any
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	// codes and kinds are immutable once issued; only limits can move
	updates := map[string]any{}
	for _, k := range []string{"detail", "min_order_amount", "expires_at", "usage_limit"} {
		if v, ok := in[k]; ok {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		resp.BadRequest(c, "nothing to update")
		return
	}
	if err := h.Promo.Update(cook.ID, uint(id), updates); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// DELETE /partner/promos/:id
func (h *PartnerController) DeletePromo(c *gin.Context) {
	cook, ok := h.cookOf(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	if err := h.Promo.Delete(cook.ID, uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// ----- delivery config -----

type areaIn struct {
	QuarterID     uint   `json:"quarterId" binding:"required"`
	FeeGroupID    *uint  `json:"feeGroupId"`
	IndividualFee *int64 `json:"individualFee"`
	Available     *bool  `json:"available"`
}

// POST /partner/delivery-areas
func (h *PartnerController) CreateArea(c *gin.Context) {
	cook, ok := h.cookOf(c)
	if !ok {
		return
	}
	var in areaIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if in.FeeGroupID == nil && in.IndividualFee == nil {
		resp.BadRequest(c, "feeGroupId or individualFee required")
		return
	}
	if in.IndividualFee != nil && *in.IndividualFee < 0 {
		resp.BadRequest(c, "fee must be >= 0")
		return
	}
	area := entity.DeliveryArea{
		CookID:        cook.ID,
		QuarterID:     in.QuarterID,
		FeeGroupID:    in.FeeGroupID,
		IndividualFee: in.IndividualFee,
		Available:     true,
	}
	if in.Available != nil {
		area.Available = *in.Available
	}
	if err := h.Delivery.CreateArea(&area); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			resp.Conflict(c, "quarter already configured")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, area)
}

// PATCH /partner/delivery-areas/:id
func (h *PartnerController) UpdateArea(c *gin.Context) {
	cook, ok := h.cookOf(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	var in map[string]any
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	updates := map[string]any{}
	for _, k := range []string{"fee_group_id", "individual_fee", "available"} {
		if v, ok := in[k]; ok {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		resp.BadRequest(c, "nothing to update")
		return
	}
	if err := h.Delivery.UpdateArea(cook.ID, uint(id), updates); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// DELETE /partner/delivery-areas/:id
func (h *PartnerController) DeleteArea(c *gin.Context) {
	cook, ok := h.cookOf(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	if err := h.Delivery.DeleteArea(cook.ID, uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// POST /partner/fee-groups
func (h *PartnerController) CreateFeeGroup(c *gin.Context) {
	cook, ok := h.cookOf(c)
	if !ok {
		return
	}
	var in struct {
		Name string `json:"name" binding:"required"`
		Fee  int64  `json:"fee" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	g := entity.FeeGroup{CookID: cook.ID, Name: in.Name, Fee: in.Fee}
	if err := h.Delivery.CreateFeeGroup(&g); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, g)
}

// PATCH /partner/fee-groups/:id
func (h *PartnerController) UpdateFeeGroup(c *gin.Context) {
	cook, ok := h.cookOf(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	var in map[string]any
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	updates := map[string]any{}
	for _, k := range []string{"name", "fee"} {
		if v, ok := in[k]; ok {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		resp.BadRequest(c, "nothing to update")
		return
	}
	if err := h.Delivery.UpdateFeeGroup(cook.ID, uint(id), updates); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// POST /partner/pickup-locations
func (h *PartnerController) CreatePickupLocation(c *gin.Context) {
	cook, ok := h.cookOf(c)
	if !ok {
		return
	}
	var in struct {
		Name string `json:"name" binding:"required"`
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	l := entity.PickupLocation{CookID: cook.ID, Name: in.Name, Note: in.Note, Available: true}
	if err := h.Delivery.CreatePickupLocation(&l); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, l)
}

// PATCH /partner/pickup-locations/:id
func (h *PartnerController) UpdatePickupLocation(c *gin.Context) {
	cook, ok := h.cookOf(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	var in map[string]any
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	updates := map[string]any{}
	for _, k := range []string{"name", "note", "available"} {
		if v, ok := in[k]; ok {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		resp.BadRequest(c, "nothing to update")
		return
	}
	if err := h.Delivery.UpdatePickupLocation(cook.ID, uint(id), updates); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// ----- menu -----

// POST /partner/meals
func (h *PartnerController) CreateMeal(c *gin.Context) {
	cook, ok := h.cookOf(c)
	if !ok {
		return
	}
	var in struct {
		Name    string `json:"name" binding:"required"`
		Detail  string `json:"detail"`
		Picture string `json:"picture"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	m := entity.Meal{CookID: cook.ID, Name: in.Name, Detail: in.Detail, Picture: in.Picture, Available: true}
	if err := h.DB.Create(&m).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, m)
}

// POST /partner/meals/:id/components
func (h *PartnerController) CreateComponent(c *gin.Context) {
	cook, ok := h.cookOf(c)
	if !ok {
		return
	}
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}

	var meal entity.Meal
	if err := h.DB.Where("id = ? AND cook_id = ?", mealID, cook.ID).First(&meal).Error; err != nil {
		resp.NotFound(c, "meal not found")
		return
	}

	var in struct {
		Name        string `json:"name" binding:"required"`
		Unit        string `json:"unit" binding:"required"`
		Price       int64  `json:"price" binding:"required,min=1"`
		MaxPerOrder int    `json:"maxPerOrder"`
		Stock       int    `json:"stock"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	comp := entity.MealComponent{
		MealID: meal.ID, Name: in.Name, Unit: in.Unit, Price: in.Price,
		MaxPerOrder: in.MaxPerOrder, Stock: in.Stock, Available: true,
	}
	if err := h.DB.Create(&comp).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, comp)
}

// PATCH /partner/components/:id
func (h *PartnerController) UpdateComponent(c *gin.Context) {
	cook, ok := h.cookOf(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	var in map[string]any
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	updates := map[string]any{}
	for _, k := range []string{"name", "unit", "price", "max_per_order", "stock", "available"} {
		if v, ok := in[k]; ok {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		resp.BadRequest(c, "nothing to update")
		return
	}
	err = h.DB.Model(&entity.MealComponent{}).
		Where("id = ? AND meal_id IN (SELECT id FROM meals WHERE cook_id = ?)", id, cook.ID).
		Updates(updates).Error
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}
