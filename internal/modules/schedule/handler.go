package schedule

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

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

// RegisterRoutes wires the booking and lifecycle endpoints. Who may call the
// staff transitions is decided by middleware on the group, not here.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.CreateReservation)
	rg.GET("/reservations/:id", h.GetReservation)
	rg.POST("/reservations/:id/check-in", h.CheckIn)
	rg.POST("/reservations/:id/complete", h.Complete)
	rg.POST("/reservations/:id/cancel", h.Cancel)
	rg.POST("/reservations/:id/no-show", h.MarkNoShow)
	rg.GET("/my/reservations", h.MyReservations)
	rg.GET("/merchants/:id/reservations", h.MerchantReservations)
}

// RegisterPublicRoutes wires the read-only availability preview.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/merchants/:id/availability", h.Availability)
}

func (h *Handler) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.UserID = c.GetInt64("user_id")

	res, err := h.service.CreateReservation(c.Request.Context(), req)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"reservation": res})
}

func (h *Handler) GetReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := h.service.GetReservation(c.Request.Context(), id)
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) CheckIn(c *gin.Context) {
	h.applyTransition(c, h.service.CheckIn)
}

func (h *Handler) Complete(c *gin.Context) {
	h.applyTransition(c, h.service.Complete)
}

func (h *Handler) Cancel(c *gin.Context) {
	h.applyTransition(c, h.service.Cancel)
}

func (h *Handler) MarkNoShow(c *gin.Context) {
	h.applyTransition(c, h.service.MarkNoShow)
}

func (h *Handler) applyTransition(c *gin.Context, fn func(ctx context.Context, id int64) (*domain.Reservation, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := fn(c.Request.Context(), id)
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) MyReservations(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, err := h.service.UserReservations(c.Request.Context(), userID, limit, offset)
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservations": rows})
}

func (h *Handler) MerchantReservations(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, err := h.service.MerchantReservations(c.Request.Context(), id, c.Query("status"), limit, offset)
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservations": rows})
}

func (h *Handler) Availability(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	zone := c.Query("zone")
	start, err1 := time.Parse(time.RFC3339, c.Query("start"))
	end, err2 := time.Parse(time.RFC3339, c.Query("end"))
	if zone == "" || err1 != nil || err2 != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "zone, start and end (RFC3339) are required")
		return
	}

	out, err := h.service.Availability(c.Request.Context(), id, zone, start, end)
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func writeScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation request")
	case errors.Is(err, repository.ErrMerchantNotFound):
		response.Error(c, http.StatusNotFound, "MERCHANT_NOT_FOUND", "Merchant not found")
	case errors.Is(err, repository.ErrSeatNotFound):
		response.Error(c, http.StatusNotFound, "SEAT_NOT_FOUND", "Seat not found")
	case errors.Is(err, repository.ErrReservationNotFound):
		response.Error(c, http.StatusNotFound, "RESERVATION_NOT_FOUND", "Reservation not found")
	case errors.Is(err, ErrNoAvailability):
		response.Error(c, http.StatusConflict, "NO_AVAILABILITY", "No seat is free for the requested window")
	case errors.Is(err, repository.ErrSlotConflict):
		response.Error(c, http.StatusConflict, "SLOT_CONFLICT", "Lost the seat to a concurrent booking, please resubmit")
	case errors.Is(err, domain.ErrAlreadyFinalized):
		response.Error(c, http.StatusConflict, "ALREADY_FINALIZED", "Reservation is already in a terminal status")
	case errors.Is(err, domain.ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Illegal reservation status transition")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
