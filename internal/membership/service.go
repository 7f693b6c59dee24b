// internal/membership/service.go
package membership

import (
	"context"
	"errors"
)

var (
	ErrInvalidJoinCode    = errors.New("invalid join code")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotApproved        = errors.New("account pending admin approval")
	ErrUserNotFound       = errors.New("user not found")
	ErrRateLimited        = errors.New("rate limit exceeded")
)

// Service defines the interface for the membership service.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, email, password string) (string, Profile, error)
	GetUser(ctx context.Context, id string) (*User, error)
	PendingUsers(ctx context.Context) ([]Profile, error)
	Approve(ctx context.Context, userID string) error
}
