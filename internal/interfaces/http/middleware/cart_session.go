package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/infrastructure/logger"
)

const (
	// CartSessionKey is the gin key holding the cart session id
	CartSessionKey = "cart_session_id"
	// IdempotencyKeyHeader carries the client key of a retried checkout
	IdempotencyKeyHeader = "Idempotency-Key"
)

// CartSessionConfig describes the cart cookie
type CartSessionConfig struct {
	CookieName string
	MaxAge     time.Duration
	Domain     string
	Path       string
	Secure     bool
	SameSite   http.SameSite
}

// DefaultCartSessionConfig returns the cookie defaults
func DefaultCartSessionConfig() CartSessionConfig {
	return CartSessionConfig{
		CookieName: "cart_session",
		MaxAge:     14 * 24 * time.Hour,
		Path:       "/",
		SameSite:   http.SameSiteLaxMode,
	}
}

// ParseSameSite maps the configured name to an http.SameSite value
func ParseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// CartSession makes sure every request has a cart session id. A missing or
// unusable cookie gets a fresh random id, which is sent back as a cookie.
// The cart row itself is only created by the first add.
func CartSession(cfg CartSessionConfig) gin.HandlerFunc {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCartSessionConfig().CookieName
	}
	if cfg.Path == "" {
		cfg.Path = "/"
	}

	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.CookieName)
		if err != nil || !validSessionID(sessionID) {
			sessionID = uuid.NewString()
		}
		// refresh the expiry on every visit
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     cfg.CookieName,
			Value:    sessionID,
			Path:     cfg.Path,
			Domain:   cfg.Domain,
			MaxAge:   int(cfg.MaxAge.Seconds()),
			Secure:   cfg.Secure,
			HttpOnly: true,
			SameSite: cfg.SameSite,
		})

		c.Set(CartSessionKey, sessionID)
		ctx := c.Request.Context()
		ctx, _ = logger.WithSessionID(ctx, logger.FromContext(ctx), sessionID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetCartSessionID returns the cart session id set by CartSession
func GetCartSessionID(c *gin.Context) string {
	return c.GetString(CartSessionKey)
}

func validSessionID(id string) bool {
	if id == "" || len(id) > cart.MaxSessionIDLength {
		return false
	}
	for _, r := range id {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			return false
		}
	}
	return true
}
