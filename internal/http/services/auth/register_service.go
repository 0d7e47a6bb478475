package auth

import (
	"context"
	"strings"

	dto "github.com/Gulcan00/blog-api/internal/http/dto/auth"
	"github.com/Gulcan00/blog-api/internal/observability/logger"
	"github.com/Gulcan00/blog-api/internal/security/password"
	"github.com/Gulcan00/blog-api/internal/store"
	"github.com/Gulcan00/blog-api/internal/validation"
)

type registerService struct {
	deps Deps
}

// NewRegisterService builds the registration service.
func NewRegisterService(deps Deps) RegisterService {
	return &registerService{deps: deps}
}

func (s *registerService) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.register"),
		logger.Op("Register"),
	)

	// Normalize inputs
	in.Username = strings.TrimSpace(in.Username)
	in.Email = validation.NormalizeEmail(in.Email)

	if msgs := validation.ValidateRegister(in.Username, in.Email, in.Password); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	// Uniqueness covers email and username in one check.
	exists, err := s.deps.Users.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		log.Error("existence check failed", logger.Err(err))
		return nil, ErrCreateFailed
	}
	if exists {
		log.Debug("duplicate registration attempt")
		return nil, ErrUserExists
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		log.Error("password hashing failed", logger.Err(err))
		return nil, ErrHashFailed
	}

	user, err := s.deps.Users.Create(ctx, store.CreateUserInput{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		// A concurrent registration can still hit the unique index.
		if store.IsDuplicate(err) {
			log.Debug("duplicate registration lost the race")
			return nil, ErrUserExists
		}
		log.Error("user creation failed", logger.Err(err))
		return nil, ErrCreateFailed
	}

	log = log.With(logger.UserID(user.ID))

	raw, _, err := s.deps.Issuer.Issue(user)
	if err != nil {
		log.Error("token issuance failed", logger.Err(err))
		return nil, ErrTokenFailed
	}

	log.Info("user registered")
	return &dto.AuthResponse{
		Message: "User registered successfully",
		User:    dto.NewUserPayload(user).WithCreatedAt(user),
		Token:   raw,
	}, nil
}
