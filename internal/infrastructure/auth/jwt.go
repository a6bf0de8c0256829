package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// TokenType distinguishes the two halves of a token pair
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidTokenType   = errors.New("invalid token type")
	ErrInvalidClaims      = errors.New("invalid token claims")
	ErrTokenNotYetValid   = errors.New("token is not yet valid")
	ErrMissingUserID      = errors.New("missing user_id in claims")
	ErrMaxRefreshExceeded = errors.New("maximum refresh count exceeded")
	ErrTokenBlacklisted   = errors.New("token has been revoked")
)

// Claims is the payload of both token kinds. IsStaff is only set on access
// tokens; RefreshCount only on refresh tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	IsStaff      bool      `json:"is_staff,omitempty"`
	TokenType    TokenType `json:"token_type"`
	RefreshCount int       `json:"refresh_count,omitempty"`
}

// TokenPair is returned by login and refresh
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// GenerateTokenInput identifies the user a pair is issued to
type GenerateTokenInput struct {
	UserID   uuid.UUID
	Username string
	IsStaff  bool
}

// signingKey is the HMAC secret and lifetime of one token kind
type signingKey struct {
	secret []byte
	ttl    time.Duration
}

// JWTService issues and verifies HS256 token pairs. Access and refresh
// tokens are signed with separate secrets when RefreshSecret is configured.
type JWTService struct {
	keys            map[TokenType]signingKey
	issuer          string
	maxRefreshCount int
	now             func() time.Time
}

// NewJWTService creates a JWT service from the jwt config section
func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := cfg.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.Secret
	}
	return &JWTService{
		keys: map[TokenType]signingKey{
			TokenTypeAccess:  {secret: []byte(cfg.Secret), ttl: cfg.AccessTokenExpiration},
			TokenTypeRefresh: {secret: []byte(refreshSecret), ttl: cfg.RefreshTokenExpiration},
		},
		issuer:          cfg.Issuer,
		maxRefreshCount: cfg.MaxRefreshCount,
		now:             time.Now,
	}
}

// GenerateTokenPair issues a fresh pair at login
func (s *JWTService) GenerateTokenPair(input GenerateTokenInput) (*TokenPair, error) {
	return s.issuePair(input, 0)
}

func (s *JWTService) issuePair(input GenerateTokenInput, refreshCount int) (*TokenPair, error) {
	now := s.now()
	pair := &TokenPair{TokenType: "Bearer"}

	var err error
	pair.AccessToken, pair.AccessTokenExpiresAt, err = s.sign(TokenTypeAccess, now, &Claims{
		UserID:   input.UserID.String(),
		Username: input.Username,
		IsStaff:  input.IsStaff,
	})
	if err != nil {
		return nil, err
	}
	// staff status is re-read from the database on refresh
	pair.RefreshToken, pair.RefreshTokenExpiresAt, err = s.sign(TokenTypeRefresh, now, &Claims{
		UserID:       input.UserID.String(),
		Username:     input.Username,
		RefreshCount: refreshCount,
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// sign fills in the registered claims for kind and signs the token
func (s *JWTService) sign(kind TokenType, now time.Time, claims *Claims) (string, time.Time, error) {
	key := s.keys[kind]
	expires := now.Add(key.ttl)
	claims.TokenType = kind
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.issuer,
		Subject:   claims.UserID,
		Audience:  jwt.ClaimStrings{s.issuer},
		ExpiresAt: jwt.NewNumericDate(expires),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// ValidateAccessToken verifies a bearer token from the Authorization header
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.parse(TokenTypeAccess, tokenString)
}

// ValidateRefreshToken verifies a token presented to /auth/refresh
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.parse(TokenTypeRefresh, tokenString)
}

func (s *JWTService) parse(kind TokenType, raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.keys[kind].secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, ErrTokenNotYetValid
	case err != nil:
		return nil, ErrInvalidToken
	}

	if claims.TokenType != kind {
		return nil, ErrInvalidTokenType
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// RefreshTokenPair exchanges a valid refresh token for a new pair.
// isStaff is the user's current staff flag as loaded by the caller.
func (s *JWTService) RefreshTokenPair(refreshToken string, isStaff bool) (*TokenPair, *Claims, error) {
	claims, err := s.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, err
	}
	if s.maxRefreshCount > 0 && claims.RefreshCount >= s.maxRefreshCount {
		return nil, nil, ErrMaxRefreshExceeded
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, nil, ErrInvalidClaims
	}

	pair, err := s.issuePair(GenerateTokenInput{UserID: userID, Username: claims.Username, IsStaff: isStaff}, claims.RefreshCount+1)
	if err != nil {
		return nil, nil, err
	}
	return pair, claims, nil
}

func (s *JWTService) GetAccessTokenExpiration() time.Duration  { return s.keys[TokenTypeAccess].ttl }
func (s *JWTService) GetRefreshTokenExpiration() time.Duration { return s.keys[TokenTypeRefresh].ttl }

func (c *Claims) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

func (c *Claims) GetIssuedAtTime() time.Time  { return numericTime(c.IssuedAt) }
func (c *Claims) GetExpiresAtTime() time.Time { return numericTime(c.ExpiresAt) }

// GetRemainingTTL is how long a revocation entry for this token must live
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(time.Until(c.ExpiresAt.Time), 0)
}

func numericTime(d *jwt.NumericDate) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}
