package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist revokes tokens before they expire. A single token is
// revoked on logout; all of a user's tokens are revoked when the password
// changes.
//
// JWT iat claims have second precision, so a user revocation rejects every
// token issued up to and including the second it was recorded in.
type TokenBlacklist interface {
	// RevokeToken rejects the token with the given jti for ttl, which should
	// be the token's remaining lifetime.
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)

	// RevokeUserTokens rejects every token issued to userID so far. ttl
	// should cover the longest token lifetime.
	RevokeUserTokens(ctx context.Context, userID string, ttl time.Duration) error
	IsUserTokenRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

func revokedAt(issuedAt time.Time, revokedUnix int64) bool {
	return issuedAt.Unix() <= revokedUnix
}

// RedisTokenBlacklist shares revocations between every server instance
type RedisTokenBlacklist struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisTokenBlacklist creates a token blacklist on a shared Redis client
func NewRedisTokenBlacklist(client redis.UniversalClient) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client, keyPrefix: "storefront:revoked:"}
}

func (b *RedisTokenBlacklist) tokenKey(jti string) string {
	return b.keyPrefix + "token:" + jti
}

func (b *RedisTokenBlacklist) userKey(userID string) string {
	return b.keyPrefix + "user:" + userID
}

func (b *RedisTokenBlacklist) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.tokenKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, b.tokenKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}

func (b *RedisTokenBlacklist) RevokeUserTokens(ctx context.Context, userID string, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.userKey(userID), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("revoke user tokens: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsUserTokenRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	raw, err := b.client.Get(ctx, b.userKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check revoked user tokens: %w", err)
	}
	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("parse revocation time %q: %w", raw, err)
	}
	return revokedAt(issuedAt, unix), nil
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist is used when Redis is not configured.
// Revocations are local to one process.
type InMemoryTokenBlacklist struct {
	mu     sync.Mutex
	now    func() time.Time
	tokens map[string]time.Time // jti -> entry expiry
	users  map[string]userRevocation
}

type userRevocation struct {
	at      int64 // unix seconds
	expires time.Time
}

// NewInMemoryTokenBlacklist creates a new in-memory token blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		now:    time.Now,
		tokens: make(map[string]time.Time),
		users:  make(map[string]userRevocation),
	}
}

func (b *InMemoryTokenBlacklist) RevokeToken(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[jti] = b.now().Add(ttl)
	return nil
}

func (b *InMemoryTokenBlacklist) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expires, ok := b.tokens[jti]
	if !ok {
		return false, nil
	}
	if b.now().After(expires) {
		delete(b.tokens, jti)
		return false, nil
	}
	return true, nil
}

func (b *InMemoryTokenBlacklist) RevokeUserTokens(_ context.Context, userID string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	b.users[userID] = userRevocation{at: now.Unix(), expires: now.Add(ttl)}
	return nil
}

func (b *InMemoryTokenBlacklist) IsUserTokenRevoked(_ context.Context, userID string, issuedAt time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rev, ok := b.users[userID]
	if !ok {
		return false, nil
	}
	if b.now().After(rev.expires) {
		delete(b.users, userID)
		return false, nil
	}
	return revokedAt(issuedAt, rev.at), nil
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
