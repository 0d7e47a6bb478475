// Package auth resolves verified token claims to a request-scoped
// identity.
package auth

import (
	"context"

	"github.com/Gulcan00/blog-api/internal/store"
	"github.com/Gulcan00/blog-api/internal/token"
)

// Identity is the resolved principal attached to a request after
// authentication. It lives for the request only and is never persisted.
type Identity struct {
	UserID   string
	Username string
	Email    string
	Role     store.Role
}

// Resolver turns verified claims into a current Identity.
type Resolver struct {
	users store.UserRepository
}

// NewResolver builds a Resolver over the user repository.
func NewResolver(users store.UserRepository) *Resolver {
	return &Resolver{users: users}
}

// Resolve re-fetches the user by the token subject on every request
// instead of trusting the embedded claims. If the user was deleted or
// its role changed after issuance, the new state wins immediately.
// Returns store.ErrNotFound when the subject no longer exists.
func (r *Resolver) Resolve(ctx context.Context, claims *token.Claims) (*Identity, error) {
	u, err := r.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	return &Identity{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}, nil
}
