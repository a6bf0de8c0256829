package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var (
	ErrUsernameTaken    = shared.NewDomainError(shared.ErrAlreadyExists.Code, "Username is already taken")
	ErrEmailTaken       = shared.NewDomainError(shared.ErrAlreadyExists.Code, "Email is already in use")
	ErrPasswordMismatch = shared.NewDomainError(shared.ErrInvalidInput.Code, "Passwords do not match")
)

// UserService handles account registration and profile management
type UserService struct {
	userRepo       identity.UserRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{userRepo: userRepo, logger: logger}
}

// SetEventPublisher sets the event publisher
func (s *UserService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Register creates a customer account
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	if req.Password != req.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}
	user, err := s.newUser(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if err := user.SetNames(req.FirstName, req.LastName); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))
	s.publish(ctx, user)

	resp := ToUserResponse(user)
	return &resp, nil
}

// CreateStaff creates an account allowed into the admin API
func (s *UserService) CreateStaff(ctx context.Context, input CreateStaffInput) (*UserResponse, error) {
	user, err := s.newUser(ctx, input.Username, input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	user.IsStaff = true

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("Staff user created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))
	s.publish(ctx, user)

	resp := ToUserResponse(user)
	return &resp, nil
}

// MyAccount returns the profile of the given user
func (s *UserService) MyAccount(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// EditProfile replaces the names and email of the given user
func (s *UserService) EditProfile(ctx context.Context, userID uuid.UUID, req EditProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Version != nil && *req.Version != user.Version {
		return nil, shared.ErrConcurrencyConflict
	}

	email := identity.NormalizeEmail(req.Email)
	if email != user.Email {
		taken, err := s.userRepo.ExistsByEmail(ctx, email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}
	if err := user.UpdateProfile(req.FirstName, req.LastName, email); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.publish(ctx, user)

	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *UserService) newUser(ctx context.Context, username, email, password string) (*identity.User, error) {
	taken, err := s.userRepo.ExistsByUsername(ctx, identity.NormalizeUsername(username))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	taken, err = s.userRepo.ExistsByEmail(ctx, identity.NormalizeEmail(email), uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}
	return identity.NewUser(username, email, password)
}

func (s *UserService) publish(ctx context.Context, user *identity.User) {
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, user.GetDomainEvents()...); err != nil {
			s.logger.Warn("failed to publish user events",
				zap.String("user_id", user.ID.String()), zap.Error(err))
		}
	}
	user.ClearDomainEvents()
}
