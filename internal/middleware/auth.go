package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"tablebook/internal/domain"
	jwtsvc "tablebook/internal/pkg/jwt"
	"tablebook/internal/pkg/response"
	"tablebook/internal/repository"

	"github.com/gin-gonic/gin"
)

// RequireAuth validates the Bearer token and stores user_id and role
// on the request context.
func RequireAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// OwnershipChecker guards merchant-scoped routes.
type OwnershipChecker struct {
	merchantRepo *repository.MerchantRepository
}

func NewOwnershipChecker(merchantRepo *repository.MerchantRepository) *OwnershipChecker {
	return &OwnershipChecker{merchantRepo: merchantRepo}
}

// CheckMerchantOwnership verifies the user owns the merchant in URL param
// "id". Admins pass regardless of ownership.
func (oc *OwnershipChecker) CheckMerchantOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		if userID == 0 {
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		if c.GetString("role") == string(domain.RoleAdmin) {
			c.Next()
			return
		}

		merchantID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			response.CustomError(c, http.StatusBadRequest, "INVALID_ID", "Invalid merchant ID")
			c.Abort()
			return
		}

		merchant, err := oc.merchantRepo.GetByID(c.Request.Context(), merchantID)
		if err != nil {
			if errors.Is(err, repository.ErrMerchantNotFound) {
				response.CustomError(c, http.StatusNotFound, "NOT_FOUND", "Merchant not found")
			} else {
				response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load merchant")
			}
			c.Abort()
			return
		}

		if merchant.OwnerID != userID {
			response.CustomError(c, http.StatusForbidden, "FORBIDDEN", "You don't own this merchant")
			c.Abort()
			return
		}

		c.Next()
	}
}
