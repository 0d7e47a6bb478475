package auth

import (
	"context"

	dto "github.com/Gulcan00/blog-api/internal/http/dto/auth"
	"github.com/Gulcan00/blog-api/internal/observability/logger"
	"github.com/Gulcan00/blog-api/internal/security/password"
	"github.com/Gulcan00/blog-api/internal/store"
	"github.com/Gulcan00/blog-api/internal/validation"
)

type loginService struct {
	deps Deps
}

// NewLoginService builds the login service.
func NewLoginService(deps Deps) LoginService {
	return &loginService{deps: deps}
}

// dummyHash keeps the unknown-email path doing the same argon2 work as
// the wrong-password path, so response timing does not reveal whether
// an account exists. It matches no password.
const dummyHash = "$argon2id$v=19$m=65536,t=3,p=1$YXV0aC1kdW1teS1zYWx0$WJpsm0MZW0S3YFWTzO9hBnE5iJNJ1ajeCdTXuZFtYvI"

func (s *loginService) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("Login"),
	)

	in.Email = validation.NormalizeEmail(in.Email)

	if msgs := validation.ValidateLogin(in.Email, in.Password); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	user, err := s.deps.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if store.IsNotFound(err) {
			password.Verify(in.Password, dummyHash)
			log.Debug("login for unknown email")
			return nil, ErrInvalidCredentials
		}
		log.Error("user lookup failed", logger.Err(err))
		return nil, ErrLookupFailed
	}

	if !password.Verify(in.Password, user.PasswordHash) {
		log.Debug("password check failed", logger.UserID(user.ID))
		return nil, ErrInvalidCredentials
	}

	raw, _, err := s.deps.Issuer.Issue(user)
	if err != nil {
		log.Error("token issuance failed", logger.Err(err), logger.UserID(user.ID))
		return nil, ErrTokenFailed
	}

	log.Info("user logged in", logger.UserID(user.ID))
	return &dto.AuthResponse{
		Message: "Login successful",
		User:    dto.NewUserPayload(user),
		Token:   raw,
	}, nil
}
