package controllers

import (
	"errors"

	"storefront/pkg/resp"
	"storefront/repository"
	"storefront/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StorefrontController struct {
	CookRepo *repository.CookRepository
	Delivery *services.DeliveryService
}

func NewStorefrontController(cr *repository.CookRepository, d *services.DeliveryService) *StorefrontController {
	return &StorefrontController{CookRepo: cr, Delivery: d}
}

// GET /cooks/:slug — the landing payload: cook header plus the menu.
func (h *StorefrontController) Landing(c *gin.Context) {
	cook, err := h.CookRepo.GetBySlug(c.Param("slug"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.NotFound(c, "cook not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	meals, err := h.CookRepo.ListMeals(cook.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	resp.OK(c, gin.H{"cook": cook, "meals": meals})
}

// GET /cooks/:slug/quarters — quarter picker rows with availability + fee.
func (h *StorefrontController) Quarters(c *gin.Context) {
	cook, err := h.CookRepo.GetBySlug(c.Param("slug"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.NotFound(c, "cook not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	areas, err := h.Delivery.ListAreas(cook.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	resp.OK(c, areas)
}

// GET /towns — town/quarter reference data for the address picker.
func (h *StorefrontController) Towns(c *gin.Context) {
	towns, err := h.Delivery.Repo.ListTownsWithQuarters()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, towns)
}

// GET /cooks/:slug/pickup-locations
func (h *StorefrontController) PickupLocations(c *gin.Context) {
	cook, err := h.CookRepo.GetBySlug(c.Param("slug"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.NotFound(c, "cook not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	locs, err := h.Delivery.ListPickupLocations(cook.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	resp.OK(c, locs)
}
