package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

// Helper function to create a test user
func createTestUser() *identity.User {
	user, err := identity.NewUser("testuser", "test@example.com", "Password123")
	if err != nil {
		panic(err)
	}
	user.ClearDomainEvents()
	user.MarkPersisted()
	return user
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	})
}

// Helper function to create auth service
func createAuthService(userRepo *MockUserRepository, blacklist auth.TokenBlacklist) (*AuthService, *auth.JWTService) {
	jwtService := newTestJWTService()
	return NewAuthService(userRepo, jwtService, blacklist, DefaultAuthServiceConfig(), zap.NewNop()), jwtService
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	user := createTestUser()
	user.IsStaff = true
	user.FailedAttempts = 2

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("Update", ctx, user).Return(nil)

	authService, jwtService := createAuthService(userRepo, nil)

	result, err := authService.Login(ctx, LoginRequest{Username: "  TestUser ", Password: "Password123"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "testuser", result.User.Username)
	assert.Equal(t, 0, user.FailedAttempts)
	assert.NotNil(t, user.LastLoginAt)

	claims, err := jwtService.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.True(t, claims.IsStaff)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	user := createTestUser()

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("Update", ctx, user).Return(nil)

	authService, _ := createAuthService(userRepo, nil)

	_, err := authService.Login(ctx, LoginRequest{Username: "testuser", Password: "WrongPassword1"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, user.FailedAttempts)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

	authService, _ := createAuthService(userRepo, nil)

	_, err := authService.Login(ctx, LoginRequest{Username: "ghost", Password: "Password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	boom := errors.New("db down")
	userRepo.On("FindByUsername", ctx, "testuser").Return(nil, boom)

	authService, _ := createAuthService(userRepo, nil)

	_, err := authService.Login(ctx, LoginRequest{Username: "testuser", Password: "Password123"})
	assert.ErrorIs(t, err, boom)
}

func TestAuthService_Login_LockedAccount(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	user := createTestUser()
	until := time.Now().Add(10 * time.Minute)
	user.Status = identity.UserStatusLocked
	user.LockedUntil = &until

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)

	authService, _ := createAuthService(userRepo, nil)

	// even the right password is refused while locked
	_, err := authService.Login(ctx, LoginRequest{Username: "testuser", Password: "Password123"})
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestAuthService_Login_LockExpired(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	user := createTestUser()
	until := time.Now().Add(-time.Minute)
	user.Status = identity.UserStatusLocked
	user.LockedUntil = &until
	user.FailedAttempts = 5

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("Update", ctx, user).Return(nil)

	authService, _ := createAuthService(userRepo, nil)

	_, err := authService.Login(ctx, LoginRequest{Username: "testuser", Password: "Password123"})
	require.NoError(t, err)
	assert.Equal(t, identity.UserStatusActive, user.Status)
	assert.Nil(t, user.LockedUntil)
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	user := createTestUser()
	user.Deactivate()

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)

	authService, _ := createAuthService(userRepo, nil)

	_, err := authService.Login(ctx, LoginRequest{Username: "testuser", Password: "Password123"})
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestAuthService_Login_AccountLocksAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	user := createTestUser()

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("Update", ctx, user).Return(nil)

	authService, _ := createAuthService(userRepo, nil)

	for i := 0; i < 4; i++ {
		_, err := authService.Login(ctx, LoginRequest{Username: "testuser", Password: "WrongPassword1"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := authService.Login(ctx, LoginRequest{Username: "testuser", Password: "WrongPassword1"})
	assert.ErrorIs(t, err, ErrAccountLocked)
	assert.True(t, user.IsLocked())
	require.NotNil(t, user.LockedUntil)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), *user.LockedUntil, 5*time.Second)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	user := createTestUser()

	authService, jwtService := createAuthService(userRepo, auth.NewInMemoryTokenBlacklist())
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{UserID: user.ID, Username: user.Username})
	require.NoError(t, err)

	// promoted after the first login: the refreshed access token says so
	user.IsStaff = true
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	result, err := authService.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.IsStaff)

	refreshClaims, err := jwtService.ValidateRefreshToken(result.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshClaims.RefreshCount)
}

func TestAuthService_RefreshToken_Rejected(t *testing.T) {
	ctx := context.Background()
	user := createTestUser()

	tests := []struct {
		name  string
		token func(*auth.JWTService) string
		setup func(*MockUserRepository, auth.TokenBlacklist)
		code  string
	}{
		{
			name:  "garbage",
			token: func(*auth.JWTService) string { return "not-a-jwt" },
			code:  "TOKEN_INVALID",
		},
		{
			name: "access token used as refresh token",
			token: func(j *auth.JWTService) string {
				pair, _ := j.GenerateTokenPair(auth.GenerateTokenInput{UserID: user.ID, Username: user.Username})
				return pair.AccessToken
			},
			code: "TOKEN_INVALID",
		},
		{
			name: "user gone",
			token: func(j *auth.JWTService) string {
				pair, _ := j.GenerateTokenPair(auth.GenerateTokenInput{UserID: user.ID, Username: user.Username})
				return pair.RefreshToken
			},
			setup: func(r *MockUserRepository, _ auth.TokenBlacklist) {
				r.On("FindByID", mock.Anything, user.ID).Return(nil, shared.ErrNotFound)
			},
			code: "TOKEN_INVALID",
		},
		{
			name: "tokens of user invalidated",
			token: func(j *auth.JWTService) string {
				pair, _ := j.GenerateTokenPair(auth.GenerateTokenInput{UserID: user.ID, Username: user.Username})
				return pair.RefreshToken
			},
			setup: func(_ *MockUserRepository, b auth.TokenBlacklist) {
				_ = b.RevokeUserTokens(context.Background(), user.ID.String(), time.Hour)
			},
			code: "TOKEN_REVOKED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			blacklist := auth.NewInMemoryTokenBlacklist()
			authService, jwtService := createAuthService(userRepo, blacklist)
			token := tt.token(jwtService)
			if tt.setup != nil {
				tt.setup(userRepo, blacklist)
			}

			_, err := authService.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: token})
			var de *shared.DomainError
			require.True(t, errors.As(err, &de), "got %v", err)
			assert.Equal(t, tt.code, de.Code)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	blacklist := auth.NewInMemoryTokenBlacklist()
	authService, _ := createAuthService(new(MockUserRepository), blacklist)

	err := authService.Logout(ctx, LogoutInput{UserID: uuid.New(), TokenJTI: "jti-1", ExpiresAt: time.Now().Add(time.Minute)})
	require.NoError(t, err)
	revoked, err := blacklist.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// already expired tokens need no entry
	require.NoError(t, authService.Logout(ctx, LogoutInput{TokenJTI: "jti-2", ExpiresAt: time.Now().Add(-time.Minute)}))
	revoked, _ = blacklist.IsTokenRevoked(ctx, "jti-2")
	assert.False(t, revoked)
}

func TestAuthService_Logout_WithoutBlacklist(t *testing.T) {
	authService, _ := createAuthService(new(MockUserRepository), nil)
	assert.NoError(t, authService.Logout(context.Background(), LogoutInput{TokenJTI: "jti", ExpiresAt: time.Now().Add(time.Hour)}))
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	user := createTestUser()
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Update", ctx, user).Return(nil)

	blacklist := auth.NewInMemoryTokenBlacklist()
	authService, jwtService := createAuthService(userRepo, blacklist)
	before, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{UserID: user.ID, Username: user.Username})
	require.NoError(t, err)
	claims, err := jwtService.ValidateRefreshToken(before.RefreshToken)
	require.NoError(t, err)

	err = authService.ChangePassword(ctx, user.ID, ChangePasswordRequest{
		CurrentPassword:    "Password123",
		NewPassword:        "Different456",
		NewPasswordConfirm: "Different456",
	})

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("Different456"))
	assert.False(t, user.VerifyPassword("Password123"))
	revoked, err := blacklist.IsUserTokenRevoked(ctx, user.ID.String(), claims.GetIssuedAtTime())
	require.NoError(t, err)
	assert.True(t, revoked)
	userRepo.AssertExpectations(t)
}

func TestAuthService_ChangePassword_Rejected(t *testing.T) {
	tests := []struct {
		name string
		req  ChangePasswordRequest
		code string
	}{
		{"wrong current password", ChangePasswordRequest{"Nope12345", "Different456", "Different456"}, "INVALID_PASSWORD"},
		{"confirmation mismatch", ChangePasswordRequest{"Password123", "Different456", "Different457"}, shared.ErrInvalidInput.Code},
		{"unchanged", ChangePasswordRequest{"Password123", "Password123", "Password123"}, "INVALID_PASSWORD"},
		{"too weak", ChangePasswordRequest{"Password123", "lettersonly", "lettersonly"}, "INVALID_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			userRepo := new(MockUserRepository)
			user := createTestUser()
			userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
			blacklist := auth.NewInMemoryTokenBlacklist()
			authService, _ := createAuthService(userRepo, blacklist)

			err := authService.ChangePassword(ctx, user.ID, tt.req)

			var de *shared.DomainError
			require.True(t, errors.As(err, &de), "got %v", err)
			assert.Equal(t, tt.code, de.Code)
			assert.True(t, user.VerifyPassword("Password123"))
			userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			revoked, _ := blacklist.IsUserTokenRevoked(ctx, user.ID.String(), time.Now().Add(-time.Minute))
			assert.False(t, revoked)
		})
	}
}

func TestAuthService_ChangePassword_UserNotFound(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	id := uuid.New()
	userRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)
	authService, _ := createAuthService(userRepo, nil)

	err := authService.ChangePassword(ctx, id, ChangePasswordRequest{"Password123", "Different456", "Different456"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
