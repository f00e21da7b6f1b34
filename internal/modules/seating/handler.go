package seating

import (
	"errors"
	"net/http"
	"strconv"

	"tablebook/internal/domain"
	"tablebook/internal/pkg/response"
	"tablebook/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/merchants/:id/zones", h.DefineZones)
	rg.GET("/merchants/:id/zones", h.ListZones)
	rg.GET("/merchants/:id/seats", h.ListSeats)
}

type defineZonesRequest struct {
	Zones []domain.ZoneDefinition `json:"zones" binding:"required"`
}

func (h *Handler) DefineZones(c *gin.Context) {
	merchantID, ok := pathMerchantID(c)
	if !ok {
		return
	}

	var req defineZonesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	seats, err := h.service.DefineZones(c.Request.Context(), merchantID, req.Zones)
	if err != nil {
		writeSeatingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"seats": seats})
}

func (h *Handler) ListSeats(c *gin.Context) {
	merchantID, ok := pathMerchantID(c)
	if !ok {
		return
	}

	seats, err := h.service.ListSeats(c.Request.Context(), merchantID, c.Query("zone"))
	if err != nil {
		writeSeatingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"seats": seats})
}

func (h *Handler) ListZones(c *gin.Context) {
	merchantID, ok := pathMerchantID(c)
	if !ok {
		return
	}

	zones, err := h.service.ListZones(c.Request.Context(), merchantID)
	if err != nil {
		writeSeatingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"zones": zones})
}

func pathMerchantID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid merchant id")
		return 0, false
	}
	return id, true
}

func writeSeatingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid zone definitions")
	case errors.Is(err, repository.ErrMerchantNotFound):
		response.Error(c, http.StatusNotFound, "MERCHANT_NOT_FOUND", "Merchant not found")
	case errors.Is(err, repository.ErrSeatsInUse):
		response.Error(c, http.StatusConflict, "SEATS_IN_USE",
			"Active reservations reference the current seats; resolve them before redefining zones")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
