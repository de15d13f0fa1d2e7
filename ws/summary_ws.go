package ws

import (
	"net/http"

	"storefront/configs"
	"storefront/entity"
	"storefront/services"
	"storefront/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// SummaryHub pushes freshly computed order summaries to checkout sessions.
// The client never does money math; it mirrors the last frame it got and
// asks for a refresh after any cart mutation or delivery-selection change.
type SummaryHub struct {
	checkout *services.CheckoutService
}

func NewSummaryHub(checkout *services.CheckoutService) *SummaryHub {
	return &SummaryHub{checkout: checkout}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// refreshReq mirrors the summary query params.
type refreshReq struct {
	Op               string `json:"op"` // "refresh"
	Method           string `json:"method"`
	QuarterID        uint   `json:"quarterId"`
	PickupLocationID uint   `json:"pickupLocationId"`
}

type frame struct {
	Type    string               `json:"type"`
	Summary *services.SummaryOut `json:"summary,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// WS route: /ws/summary
func (h *SummaryHub) HandleWebSocket(c *gin.Context) {
	sessionKey := utils.CurrentSessionKey(c)
	if sessionKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no session"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		configs.Logger().Warnw("ws upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	for {
		var req refreshReq
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		if req.Op != "refresh" {
			_ = conn.WriteJSON(frame{Type: "error", Error: "unknown op"})
			continue
		}

		method := entity.DeliveryMethod(req.Method)
		if !method.Valid() {
			method = entity.MethodDelivery
		}
		out, err := h.checkout.Summary(sessionKey, services.SummaryIn{
			Method:           method,
			QuarterID:        req.QuarterID,
			PickupLocationID: req.PickupLocationID,
		})
		if err != nil {
			configs.Logger().Errorw("summary recompute failed", "err", err)
			_ = conn.WriteJSON(frame{Type: "error", Error: "summary unavailable"})
			continue
		}
		if err := conn.WriteJSON(frame{Type: "summary", Summary: out}); err != nil {
			return
		}
	}
}
