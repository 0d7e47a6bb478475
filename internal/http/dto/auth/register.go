// Package auth contains DTOs for the authentication endpoints.
package auth

import "github.com/Gulcan00/blog-api/internal/store"

// RegisterRequest represents the request body for POST /api/auth/register
type RegisterRequest struct {
	// Username is required: 3-30 chars, letters/numbers/underscores.
	Username string `json:"username"`
	// Email is required and must be a valid email format.
	Email string `json:"email"`
	// Password is required: min 8 chars with upper, lower and digit.
	Password string `json:"password"`
}

// AuthResponse represents the response for a successful registration
// or login.
type AuthResponse struct {
	Message string      `json:"message"`
	User    UserPayload `json:"user"`
	Token   string      `json:"token"`
}

// UserPayload is the public shape of a user. The password hash never
// leaves the service layer. Timestamps are opt-in per endpoint.
type UserPayload struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

const timeLayout = "2006-01-02T15:04:05.000Z"

// NewUserPayload maps a stored user to its public shape without
// timestamps.
func NewUserPayload(u *store.User) UserPayload {
	return UserPayload{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}

// WithCreatedAt adds the creation timestamp.
func (p UserPayload) WithCreatedAt(u *store.User) UserPayload {
	p.CreatedAt = u.CreatedAt.UTC().Format(timeLayout)
	return p
}

// WithUpdatedAt adds the last-update timestamp.
func (p UserPayload) WithUpdatedAt(u *store.User) UserPayload {
	p.UpdatedAt = u.UpdatedAt.UTC().Format(timeLayout)
	return p
}
