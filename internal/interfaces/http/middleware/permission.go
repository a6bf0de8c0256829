package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// StaffConfig holds configuration for the staff gate
type StaffConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when access is denied (optional)
	OnDenied func(c *gin.Context)
}

// RequireStaff lets only staff users through. It must run after JWTAuthMiddleware.
func RequireStaff() gin.HandlerFunc {
	return RequireStaffWithConfig(StaffConfig{})
}

// RequireStaffWithConfig creates the staff gate with custom config
func RequireStaffWithConfig(cfg StaffConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "Authentication required", getRequestIDFromContext(c)))
			return
		}
		if !claims.IsStaff {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Staff access denied",
					zap.String("user_id", claims.UserID),
					zap.String("path", c.Request.URL.Path))
			}
			if cfg.OnDenied != nil {
				cfg.OnDenied(c)
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden, "Staff access required", getRequestIDFromContext(c)))
			return
		}
		c.Next()
	}
}
