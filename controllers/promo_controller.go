package controllers

import (
	"errors"

	"storefront/pkg/resp"
	"storefront/services"
	"storefront/utils"

	"github.com/gin-gonic/gin"
)

type PromoController struct{ Svc *services.PromoService }

func NewPromoController(s *services.PromoService) *PromoController { return &PromoController{Svc: s} }

// POST /cart/promo
func (h *PromoController) Apply(c *gin.Context) {
	var body struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := h.Svc.Apply(utils.CurrentSessionKey(c), body.Code)
	if err != nil {
		// all expected: inline message, cart and totals unchanged
		switch {
		case errors.Is(err, services.ErrPromoNotFound):
			resp.NotFound(c, err.Error())
		case errors.Is(err, services.ErrPromoExpired),
			errors.Is(err, services.ErrPromoUsageExhausted),
			errors.Is(err, services.ErrPromoMinimumNotMet),
			errors.Is(err, services.ErrCartEmpty):
			resp.BadRequest(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, out)
}

// DELETE /cart/promo
func (h *PromoController) Remove(c *gin.Context) {
	if err := h.Svc.Remove(utils.CurrentSessionKey(c)); err != nil {
		if errors.Is(err, services.ErrNoPromoApplied) {
			resp.BadRequest(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}
