package routes

import (
	"storefront/configs"
	"storefront/controllers"
	"storefront/middlewares"
	"storefront/repository"
	"storefront/services"
	"storefront/ws"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	db := configs.DB()

	// Repositories
	cookRepo := repository.NewCookRepository(db)
	cartRepo := repository.NewCartRepository(db)
	promoRepo := repository.NewPromoRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	deliverySvc := services.NewDeliveryService(deliveryRepo)
	promoSvc := services.NewPromoService(promoRepo, cartRepo)
	cartSvc := services.NewCartService(db, cartRepo, cookRepo)
	checkoutSvc := services.NewCheckoutService(db, orderRepo, cartRepo, cookRepo, deliverySvc, promoSvc)

	// Controllers
	authCtrl := controllers.NewAuthController(db, cfg, cartRepo)
	frontCtrl := controllers.NewStorefrontController(cookRepo, deliverySvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	promoCtrl := controllers.NewPromoController(promoSvc)
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc)
	partnerCtrl := controllers.NewPartnerController(db, cookRepo, promoRepo, deliveryRepo, checkoutSvc)
	summaryHub := ws.NewSummaryHub(checkoutSvc)

	// Auth (public)
	a := r.Group("/auth", middlewares.SessionMiddleware())
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", middlewares.AuthMiddleware(), authCtrl.Me)

	// Storefront: session-keyed, auth optional (guests shop too)
	shop := r.Group("/", middlewares.SessionMiddleware(), middlewares.OptionalAuth())
	{
		shop.GET("/towns", frontCtrl.Towns)
		shop.GET("/cooks/:slug", frontCtrl.Landing)
		shop.GET("/cooks/:slug/quarters", frontCtrl.Quarters)
		shop.GET("/cooks/:slug/pickup-locations", frontCtrl.PickupLocations)

		shop.GET("/cart", cartCtrl.Get)
		shop.POST("/cart/items", cartCtrl.Add)
		shop.PATCH("/cart/items/qty", cartCtrl.SetQty)
		shop.DELETE("/cart/items", cartCtrl.RemoveItem)
		shop.DELETE("/cart", cartCtrl.Clear)

		shop.POST("/cart/promo", promoCtrl.Apply)
		shop.DELETE("/cart/promo", promoCtrl.Remove)

		shop.GET("/checkout/summary", checkoutCtrl.Summary)
		shop.POST("/checkout/orders", checkoutCtrl.PlaceOrder)

		shop.GET("/orders", checkoutCtrl.List)
		shop.GET("/orders/:reference", checkoutCtrl.Detail)
		shop.POST("/orders/:reference/pay", checkoutCtrl.ConfirmPayment)
		shop.POST("/orders/:reference/cancel", checkoutCtrl.Cancel)

		shop.GET("/ws/summary", summaryHub.HandleWebSocket)
	}

	// Partner (cook/admin)
	partner := r.Group("/partner", middlewares.AuthMiddleware("cook", "admin"))
	{
		partner.GET("/orders", partnerCtrl.Orders)
		partner.POST("/orders/:reference/cancel", partnerCtrl.CancelOrder)
		partner.POST("/orders/:reference/expire", partnerCtrl.ExpireOrder)

		partner.GET("/promos", partnerCtrl.Promos)
		partner.POST("/promos", partnerCtrl.CreatePromo)
		partner.PATCH("/promos/:id", partnerCtrl.UpdatePromo)
		partner.DELETE("/promos/:id", partnerCtrl.DeletePromo)

		partner.POST("/delivery-areas", partnerCtrl.CreateArea)
		partner.PATCH("/delivery-areas/:id", partnerCtrl.UpdateArea)
		partner.DELETE("/delivery-areas/:id", partnerCtrl.DeleteArea)
		partner.POST("/fee-groups", partnerCtrl.CreateFeeGroup)
		partner.PATCH("/fee-groups/:id", partnerCtrl.UpdateFeeGroup)
		partner.POST("/pickup-locations", partnerCtrl.CreatePickupLocation)
		partner.PATCH("/pickup-locations/:id", partnerCtrl.UpdatePickupLocation)

		partner.POST("/meals", partnerCtrl.CreateMeal)
		partner.POST("/meals/:id/components", partnerCtrl.CreateComponent)
		partner.PATCH("/components/:id", partnerCtrl.UpdateComponent)
	}
}
