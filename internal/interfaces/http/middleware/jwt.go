package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUsernameKey = "jwt_username"
	JWTIsStaffKey  = "jwt_is_staff"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// errSessionsRevoked marks tokens issued before the user's last password change
var errSessionsRevoked = fmt.Errorf("%w: user sessions revoked", auth.ErrTokenBlacklisted)

// JWTMiddlewareConfig configures the bearer token guard
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// TokenBlacklist is optional. Lookups that fail are logged and the
	// token is accepted.
	TokenBlacklist   auth.TokenBlacklist
	SkipPaths        []string
	SkipPathPrefixes []string
	// OnError replaces the default 401 response
	OnError func(c *gin.Context, err error)
	Logger  *zap.Logger
}

// DefaultJWTConfig lets health, metrics and swagger through unauthenticated
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService:       jwtService,
		SkipPaths:        []string{"/health", "/metrics"},
		SkipPathPrefixes: []string{"/swagger"},
	}
}

func (cfg JWTMiddlewareConfig) log() *zap.Logger {
	if cfg.Logger == nil {
		return zap.NewNop()
	}
	return cfg.Logger
}

func (cfg JWTMiddlewareConfig) skips(path string) bool {
	if slices.Contains(cfg.SkipPaths, path) {
		return true
	}
	return slices.ContainsFunc(cfg.SkipPathPrefixes, func(p string) bool {
		return strings.HasPrefix(path, p)
	})
}

// authenticate validates the access token and checks both revocation kinds:
// the token's own jti (logout) and the user's revocation time (password change).
func (cfg JWTMiddlewareConfig) authenticate(ctx context.Context, raw string) (*auth.Claims, error) {
	claims, err := cfg.JWTService.ValidateAccessToken(raw)
	if err != nil {
		return nil, err
	}
	if cfg.TokenBlacklist == nil {
		return claims, nil
	}

	if claims.ID != "" {
		revoked, err := cfg.TokenBlacklist.IsTokenRevoked(ctx, claims.ID)
		switch {
		case err != nil:
			cfg.log().Error("Failed to check token blacklist", zap.String("jti", claims.ID), zap.Error(err))
		case revoked:
			return nil, auth.ErrTokenBlacklisted
		}
	}

	revoked, err := cfg.TokenBlacklist.IsUserTokenRevoked(ctx, claims.UserID, claims.GetIssuedAtTime())
	switch {
	case err != nil:
		cfg.log().Error("Failed to check user token revocation", zap.String("user_id", claims.UserID), zap.Error(err))
	case revoked:
		return nil, errSessionsRevoked
	}
	return claims, nil
}

// JWTAuthMiddlewareWithConfig rejects requests without a valid, unrevoked
// access token. Claims are stored on the gin context for the handlers.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.skips(c.Request.URL.Path) {
			c.Next()
			return
		}

		raw, ok := bearerToken(c)
		if !ok {
			rejectToken(c, cfg, auth.ErrInvalidToken)
			return
		}
		claims, err := cfg.authenticate(c.Request.Context(), raw)
		if err != nil {
			rejectToken(c, cfg, err)
			return
		}

		setClaims(c, claims)
		cfg.log().Debug("JWT authentication successful",
			zap.String("user_id", claims.UserID),
			zap.String("username", claims.Username))
		c.Next()
	}
}

// OptionalJWTAuthMiddleware stores the claims of a valid token and treats
// every other request, including ones with a bad token, as anonymous.
// Public routes use it so logs and traces of signed-in shoppers carry their user id.
func OptionalJWTAuthMiddleware(jwtService *auth.JWTService, blacklist auth.TokenBlacklist) gin.HandlerFunc {
	cfg := JWTMiddlewareConfig{JWTService: jwtService, TokenBlacklist: blacklist}
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			if claims, err := cfg.authenticate(c.Request.Context(), raw); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTUsernameKey, claims.Username)
	c.Set(JWTIsStaffKey, claims.IsStaff)
	// read by the request logger
	c.Set("user_id", claims.UserID)

	ctx := c.Request.Context()
	ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.UserID)
	c.Request = c.Request.WithContext(ctx)
}

// authFailure maps a token error onto the API error code and message.
// A request with no Authorization header at all gets ERR_UNAUTHORIZED.
func authFailure(err error, hasHeader bool) (code, message string) {
	switch {
	case errors.Is(err, errSessionsRevoked):
		return dto.ErrCodeTokenInvalid, "Session ended by a password change. Please log in again"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return dto.ErrCodeTokenInvalid, "Token has been revoked"
	case errors.Is(err, auth.ErrExpiredToken):
		return dto.ErrCodeTokenExpired, "Token has expired"
	case !hasHeader:
		return dto.ErrCodeUnauthorized, "Authentication required"
	default:
		return dto.ErrCodeTokenInvalid, "Invalid token"
	}
}

func rejectToken(c *gin.Context, cfg JWTMiddlewareConfig, err error) {
	if cfg.OnError != nil {
		cfg.OnError(c, err)
		return
	}
	cfg.log().Warn("JWT authentication failed", zap.Error(err), zap.String("path", c.Request.URL.Path))

	code, message := authFailure(err, c.GetHeader(AuthHeaderKey) != "")
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, getRequestIDFromContext(c)))
}

// GetJWTClaims is nil on anonymous requests
func GetJWTClaims(c *gin.Context) *auth.Claims {
	v, _ := c.Get(JWTClaimsKey)
	claims, _ := v.(*auth.Claims)
	return claims
}

func GetJWTUserID(c *gin.Context) string   { return c.GetString(JWTUserIDKey) }
func GetJWTUsername(c *gin.Context) string { return c.GetString(JWTUsernameKey) }

// IsStaff reports whether the authenticated user may use the admin API
func IsStaff(c *gin.Context) bool {
	return c.GetBool(JWTIsStaffKey)
}
