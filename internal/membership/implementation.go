// internal/membership/implementation.go
package membership

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"growingtogether/internal/auth"
	"growingtogether/pkg/docstore"
)

const usersCollection = "users"

// service implements the Service interface.
type service struct {
	store       docstore.Store
	tokens      *auth.TokenManager
	joinCode    string
	log         *zap.Logger
	rateLimiter *rate.Limiter

	now   func() time.Time
	newID func() string
}

// NewService creates a new membership service instance.
func NewService(store docstore.Store, tokens *auth.TokenManager, joinCode string, log *zap.Logger) Service {
	return &service{
		store:       store,
		tokens:      tokens,
		joinCode:    joinCode,
		log:         log,
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute), 5),
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

// Register creates a new unapproved account guarded by the community join code.
func (s *service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if !s.rateLimiter.Allow() {
		return nil, ErrRateLimited
	}
	if input.JoinCode != s.joinCode {
		return nil, ErrInvalidJoinCode
	}
	if input.Email == "" || input.Username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email, username and password are required", ErrInvalidCredentials)
	}

	err := s.store.FindOne(ctx, usersCollection, docstore.Filter{"email": input.Email}, &User{})
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	passwordHash, salt, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           s.newID(),
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: passwordHash,
		Salt:         salt,
		Role:         RoleMember,
		PlotNumber:   input.PlotNumber,
		JoinDate:     s.now(),
		IsApproved:   false,
	}

	if err := s.store.Insert(ctx, usersCollection, user.ID, user); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	s.log.Info("user registered, awaiting approval",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
	)
	return user, nil
}

// Login verifies credentials and returns a bearer token for approved accounts.
func (s *service) Login(ctx context.Context, email, password string) (string, Profile, error) {
	if !s.rateLimiter.Allow() {
		return "", Profile{}, ErrRateLimited
	}

	user := &User{}
	err := s.store.FindOne(ctx, usersCollection, docstore.Filter{"email": email}, user)
	if errors.Is(err, docstore.ErrNotFound) {
		return "", Profile{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", Profile{}, fmt.Errorf("find user: %w", err)
	}

	ok, err := verifyPassword(password, user.Salt, user.PasswordHash)
	if err != nil || !ok {
		return "", Profile{}, ErrInvalidCredentials
	}
	if !user.IsApproved {
		return "", Profile{}, ErrNotApproved
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", Profile{}, fmt.Errorf("issue token: %w", err)
	}

	return token, user.Profile(), nil
}

// GetUser retrieves a user by id.
func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	user := &User{}
	err := s.store.FindOne(ctx, usersCollection, docstore.Filter{"id": id}, user)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// PendingUsers lists accounts awaiting admin approval.
func (s *service) PendingUsers(ctx context.Context) ([]Profile, error) {
	users := []User{}
	err := s.store.Find(ctx, usersCollection,
		docstore.Filter{"is_approved": false},
		docstore.FindOptions{SortBy: "join_date"},
		&users,
	)
	if err != nil {
		return nil, fmt.Errorf("list pending users: %w", err)
	}

	profiles := make([]Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	return profiles, nil
}

// Approve marks an account as approved.
func (s *service) Approve(ctx context.Context, userID string) error {
	matched, err := s.store.UpdateOne(ctx, usersCollection,
		docstore.Filter{"id": userID},
		docstore.Patch{"is_approved": true},
	)
	if err != nil {
		return fmt.Errorf("approve user: %w", err)
	}
	if matched == 0 {
		return ErrUserNotFound
	}

	s.log.Info("user approved", zap.String("user_id", userID))
	return nil
}
