package occupancy

import (
	"errors"
	"net/http"
	"strconv"

	"tablebook/internal/pkg/response"
	"tablebook/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/merchants/:id/occupancy", h.Snapshot)
	rg.GET("/merchants/:id/occupancy/ws", h.Watch)
}

func (h *Handler) Snapshot(c *gin.Context) {
	merchantID, ok := pathMerchantID(c)
	if !ok {
		return
	}

	snap, err := h.service.Snapshot(c.Request.Context(), merchantID)
	if err != nil {
		writeOccupancyError(c, err)
		return
	}
	response.Success(c, http.StatusOK, snap)
}

// Watch upgrades to a websocket and streams snapshots as bookings move.
func (h *Handler) Watch(c *gin.Context) {
	merchantID, ok := pathMerchantID(c)
	if !ok {
		return
	}
	if h.hub == nil {
		response.Error(c, http.StatusServiceUnavailable, "FEED_DISABLED", "Live occupancy feed is not enabled")
		return
	}

	// Prime the connection with the current snapshot once upgraded.
	snap, err := h.service.Snapshot(c.Request.Context(), merchantID)
	if err != nil {
		writeOccupancyError(c, err)
		return
	}
	go h.hub.Broadcast(merchantID, snap)

	if err := h.hub.ServeWS(c.Writer, c.Request, merchantID); err != nil {
		// Upgrade failed before the connection was established.
		c.Abort()
	}
}

func pathMerchantID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid merchant id")
		return 0, false
	}
	return id, true
}

func writeOccupancyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrMerchantNotFound):
		response.Error(c, http.StatusNotFound, "MERCHANT_NOT_FOUND", "Merchant not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
