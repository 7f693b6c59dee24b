// internal/membership/domain.go
package membership

import "time"

// Role values assignable to a user.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User represents a community member account as stored.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Salt         string    `json:"salt"`
	Role         string    `json:"role"`
	PlotNumber   string    `json:"plot_number,omitempty"`
	JoinDate     time.Time `json:"join_date"`
	IsApproved   bool      `json:"is_approved"`
}

// Profile is the user shape returned to API callers. Credentials never
// leave the service.
type Profile struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	PlotNumber string `json:"plot_number,omitempty"`
}

// Profile derives the public shape of a user.
func (u *User) Profile() Profile {
	return Profile{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		Role:       u.Role,
		PlotNumber: u.PlotNumber,
	}
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	Email      string
	Username   string
	Password   string
	JoinCode   string
	PlotNumber string
}
