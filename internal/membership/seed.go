// internal/membership/seed.go
package membership

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"growingtogether/pkg/docstore"
)

// SeedAdmin creates the bootstrap admin account if no account exists for
// the email. Returns true when a new account was written.
func SeedAdmin(ctx context.Context, store docstore.Store, email, username, password string) (bool, error) {
	err := store.FindOne(ctx, usersCollection, docstore.Filter{"email": email}, &User{})
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return false, fmt.Errorf("check existing admin: %w", err)
	}

	passwordHash, salt, err := hashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	admin := User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Salt:         salt,
		Role:         RoleAdmin,
		JoinDate:     time.Now().UTC(),
		IsApproved:   true,
	}
	if err := store.Insert(ctx, usersCollection, admin.ID, admin); err != nil {
		return false, fmt.Errorf("insert admin: %w", err)
	}
	return true, nil
}
