package identity

import (
	"github.com/storefront/backend/internal/domain/shared"
)

// AggregateTypeUser names the user aggregate in events
const AggregateTypeUser = "User"

const (
	EventTypeUserRegistered     = "UserRegistered"
	EventTypeUserProfileUpdated = "UserProfileUpdated"
)

// UserRegisteredEvent is published when an account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
	Email    string `json:"email"`
}

func NewUserRegisteredEvent(u *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, u.ID),
		Username:        u.Username,
		Email:           u.Email,
	}
}

// UserProfileUpdatedEvent is published after a profile edit
type UserProfileUpdatedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

func NewUserProfileUpdatedEvent(u *User) *UserProfileUpdatedEvent {
	return &UserProfileUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserProfileUpdated, AggregateTypeUser, u.ID),
		Email:           u.Email,
	}
}
