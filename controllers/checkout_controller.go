package controllers

import (
	"errors"
	"strconv"

	"storefront/entity"
	"storefront/pkg/resp"
	"storefront/services"
	"storefront/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CheckoutController struct{ Svc *services.CheckoutService }

func NewCheckoutController(s *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Svc: s}
}

// GET /checkout/summary?method=&quarterId=&pickupLocationId=
func (h *CheckoutController) Summary(c *gin.Context) {
	in := services.SummaryIn{
		Method: entity.DeliveryMethod(c.DefaultQuery("method", "delivery")),
	}
	if !in.Method.Valid() {
		resp.BadRequest(c, "invalid delivery method")
		return
	}
	if v, err := strconv.ParseUint(c.Query("quarterId"), 10, 32); err == nil {
		in.QuarterID = uint(v)
	}
	if v, err := strconv.ParseUint(c.Query("pickupLocationId"), 10, 32); err == nil {
		in.PickupLocationID = uint(v)
	}

	out, err := h.Svc.Summary(utils.CurrentSessionKey(c), in)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /checkout/orders
func (h *CheckoutController) PlaceOrder(c *gin.Context) {
	var req services.PlaceOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := h.Svc.PlaceOrder(utils.CurrentSessionKey(c), utils.CurrentUserID(c), &req)
	if err != nil {
		var stale *services.StaleCartError
		switch {
		case errors.As(err, &stale):
			// cart was refreshed to live prices; client re-renders the diff
			resp.Unprocessable(c, "cart out of date", stale.Lines)
		case errors.Is(err, services.ErrCartEmpty),
			errors.Is(err, services.ErrBelowMinimumOrder),
			errors.Is(err, services.ErrPromoExpired),
			errors.Is(err, services.ErrPromoUsageExhausted),
			errors.Is(err, services.ErrPromoMinimumNotMet),
			errors.Is(err, services.ErrInsufficientWallet),
			errors.Is(err, services.ErrWalletRequiresAccount):
			resp.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrQuarterUnavailable),
			errors.Is(err, services.ErrPickupLocationNotFound):
			resp.Conflict(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.Created(c, out)
}

// GET /orders
func (h *CheckoutController) List(c *gin.Context) {
	limit := 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	rows, err := h.Svc.ListForSession(utils.CurrentSessionKey(c), utils.CurrentUserID(c), limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /orders/:reference
func (h *CheckoutController) Detail(c *gin.Context) {
	detail, err := h.Svc.DetailByReference(utils.CurrentSessionKey(c), utils.CurrentUserID(c), c.Param("reference"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "order not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, detail)
}

// POST /orders/:reference/pay — payment-provider confirmation callback.
func (h *CheckoutController) ConfirmPayment(c *gin.Context) {
	var body struct {
		ExternalRef string `json:"externalRef"`
	}
	_ = c.ShouldBindJSON(&body)

	if err := h.Svc.ConfirmPayment(c.Param("reference"), body.ExternalRef); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "order not found")
		case errors.Is(err, services.ErrInvalidTransition):
			resp.Conflict(c, err.Error())
		case errors.Is(err, services.ErrInsufficientWallet):
			resp.BadRequest(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// POST /orders/:reference/cancel
func (h *CheckoutController) Cancel(c *gin.Context) {
	err := h.Svc.CancelOrder(utils.CurrentSessionKey(c), utils.CurrentUserID(c), c.Param("reference"))
	if err != nil {
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
