// Package testutil provides shared helpers for storefront tests: gin test
// contexts that stand in for the auth and cart session middleware, an event
// recorder and polling assertions.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestContext wraps a Gin test context with HTTP recorder.
type TestContext struct {
	Context  *gin.Context
	Recorder *httptest.ResponseRecorder
	Engine   *gin.Engine
}

// NewTestContext creates a Gin test context around req, or a GET / when req is nil.
func NewTestContext(t *testing.T, req *http.Request) *TestContext {
	t.Helper()
	if req == nil {
		req = httptest.NewRequest(http.MethodGet, "/", nil)
	}

	w := httptest.NewRecorder()
	c, engine := gin.CreateTestContext(w)
	c.Request = req
	return &TestContext{Context: c, Recorder: w, Engine: engine}
}

func (tc *TestContext) SetRequestID(id string) {
	tc.Context.Set(middleware.RequestIDKey, id)
}

// SetCartSession sets the cart session the cart handlers read.
func (tc *TestContext) SetCartSession(id string) {
	tc.Context.Set(middleware.CartSessionKey, id)
}

// SetUser stores the keys the JWT middleware would set for an authenticated caller.
func (tc *TestContext) SetUser(id uuid.UUID, username string, staff bool) {
	claims := &auth.Claims{UserID: id.String(), Username: username, IsStaff: staff}
	tc.Context.Set(middleware.JWTClaimsKey, claims)
	tc.Context.Set(middleware.JWTUserIDKey, claims.UserID)
	tc.Context.Set(middleware.JWTUsernameKey, username)
	tc.Context.Set(middleware.JWTIsStaffKey, staff)
}

func (tc *TestContext) ResponseBody() []byte {
	return tc.Recorder.Body.Bytes()
}

func (tc *TestContext) ResponseCode() int {
	return tc.Recorder.Code
}

// NewTestUUID derives a reproducible UUID from seed.
func NewTestUUID(seed string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed))
}

// TestUserID returns a standard customer ID for tests.
func TestUserID() uuid.UUID {
	return NewTestUUID("test-user")
}

// TestCartSession returns a standard cart session ID for tests.
func TestCartSession() string {
	return NewTestUUID("test-cart").String()
}

// RequireEventually polls condition until it holds or fails the test.
func RequireEventually(t *testing.T, condition func() bool, timeout, interval time.Duration, msgAndArgs ...any) {
	t.Helper()
	if !WaitForCondition(t, condition, timeout, interval) {
		require.Fail(t, "Condition not met within timeout", msgAndArgs...)
	}
}
