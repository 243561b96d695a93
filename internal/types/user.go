package types

import (
	"time"

	"github.com/google/uuid"
)

// User is an account record. Disabled accounts stay in the table and can no
// longer authenticate.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	HashedPassword string     `json:"-"`
	Disabled       bool       `json:"disabled"`
	CreatedAt      time.Time  `json:"created_at"`
	DisabledAt     *time.Time `json:"disabled_at"`
}

// Active reports whether the account may act.
func (u *User) Active() bool {
	return u != nil && !u.Disabled
}

// UserResponse is the public shape of a user.
type UserResponse struct {
	ID         uuid.UUID  `json:"id" example:"d290f1ee-6c54-4b01-90e6-d701748f0851"`
	Username   string     `json:"username" example:"alice"`
	Email      string     `json:"email" example:"alice@example.com"`
	CreatedAt  time.Time  `json:"created_at"`
	DisabledAt *time.Time `json:"disabled_at"`
	Disabled   bool       `json:"disabled"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		CreatedAt:  u.CreatedAt,
		DisabledAt: u.DisabledAt,
		Disabled:   u.Disabled,
	}
}

// CreateUserRequest registers a new account.
type CreateUserRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"correct-password"`
}

type CreateUserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

type UserByIDRequest struct {
	ID uuid.UUID `json:"id"`
}

type UserByUsernameRequest struct {
	Username string `json:"username"`
}

// Column limits from the users table.
const (
	MaxUsernameLength = 50
	MaxEmailLength    = 100
)
