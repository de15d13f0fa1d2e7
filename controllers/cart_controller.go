package controllers

import (
	"errors"
	"net/http"

	"storefront/pkg/resp"
	"storefront/services"
	"storefront/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	view, err := h.Svc.Get(utils.CurrentSessionKey(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": view.Cart, "groups": view.Groups, "subtotal": view.Subtotal})
}

// POST /cart/items
func (h *CartController) Add(c *gin.Context) {
	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	err := h.Svc.Add(utils.CurrentSessionKey(c), utils.CurrentUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCartHasOtherCook):
			resp.Conflict(c, err.Error())
		case errors.Is(err, services.ErrComponentNotFound), errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "not found")
		case errors.Is(err, services.ErrComponentUnavailable):
			resp.BadRequest(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.Created(c, gin.H{"ok": true})
}

// PATCH /cart/items/qty
func (h *CartController) SetQty(c *gin.Context) {
	var body struct {
		ItemID uint `json:"itemId" binding:"required"`
		Qty    int  `json:"qty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.SetQty(utils.CurrentSessionKey(c), body.ItemID, body.Qty); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "item not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// DELETE /cart/items
func (h *CartController) RemoveItem(c *gin.Context) {
	var body struct {
		ItemID uint `json:"itemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.RemoveItem(utils.CurrentSessionKey(c), body.ItemID); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	if err := h.Svc.Clear(utils.CurrentSessionKey(c)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}
