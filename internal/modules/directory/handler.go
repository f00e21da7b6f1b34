package directory

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
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/merchants", h.List)
	rg.GET("/merchants/:id", h.Get)
}

// RegisterRoutes mounts the authenticated endpoints. Delete additionally
// expects an ownership check on the group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/merchants", h.Register)
}

func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/merchants/:id", h.Remove)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.OwnerID = c.GetInt64("user_id")

	m, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		writeDirectoryError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, m)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	m, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeDirectoryError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	merchants, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeDirectoryError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"merchants": merchants})
}

func (h *Handler) Remove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		writeDirectoryError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid merchant id")
		return 0, false
	}
	return id, true
}

func writeDirectoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid merchant data")
	case errors.Is(err, repository.ErrMerchantNotFound):
		response.Error(c, http.StatusNotFound, "MERCHANT_NOT_FOUND", "Merchant not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
