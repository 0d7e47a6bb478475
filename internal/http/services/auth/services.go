// Package auth contains the registration and login services.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dto "github.com/Gulcan00/blog-api/internal/http/dto/auth"
	"github.com/Gulcan00/blog-api/internal/store"
	"github.com/Gulcan00/blog-api/internal/token"
)

// RegisterService defines operations for user registration.
type RegisterService interface {
	Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error)
}

// LoginService defines operations for password login.
type LoginService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error)
}

// Service errors (sentinel)
var (
	ErrUserExists         = errors.New("user with this email or username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrHashFailed         = errors.New("failed to hash password")
	ErrCreateFailed       = errors.New("failed to create user")
	ErrLookupFailed       = errors.New("failed to look up user")
	ErrTokenFailed        = errors.New("failed to issue token")
)

// ValidationError aggregates field validation failures. The handler
// serializes the messages as a 400 errors array.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Messages, "; "))
}

// Deps contains the dependencies shared by the auth services.
type Deps struct {
	Users  store.UserRepository
	Issuer *token.Issuer
}

// Services groups the auth domain services.
type Services struct {
	Register RegisterService
	Login    LoginService
}

// NewServices builds the auth service aggregate.
func NewServices(d Deps) Services {
	return Services{
		Register: NewRegisterService(d),
		Login:    NewLoginService(d),
	}
}
