package auth

import (
	"time"

	"github.com/google/uuid"
)

// Roles recognized by the service.
const (
	RoleAdmin   = "admin"
	RoleRegular = "regular"
)

// User is the authenticated account exposed to handlers.
type User struct {
	ID        uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"nama_lengkap"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"no_telp,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest provisions an account (admin only).
type CreateUserRequest struct {
	Username string  `json:"username" validate:"required,min=3"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName string  `json:"nama_lengkap" validate:"required"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"no_telp,omitempty"`
	Role     string  `json:"role" validate:"required,oneof=admin regular"`
}

// TokenPair is returned on successful login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
