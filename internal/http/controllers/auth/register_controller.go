package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	dto "github.com/Gulcan00/blog-api/internal/http/dto/auth"
	httperrors "github.com/Gulcan00/blog-api/internal/http/errors"
	svc "github.com/Gulcan00/blog-api/internal/http/services/auth"
	"github.com/Gulcan00/blog-api/internal/observability/logger"
)

// RegisterController handles the registration endpoint.
type RegisterController struct {
	service svc.RegisterService
}

// NewRegisterController builds the registration controller.
func NewRegisterController(service svc.RegisterService) *RegisterController {
	return &RegisterController{service: service}
}

// Register handles POST /api/auth/register
func (c *RegisterController) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("RegisterController.Register"))

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	result, err := c.service.Register(ctx, req)
	if err != nil {
		log.Debug("registration rejected", logger.Err(err))
		writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// writeAuthError maps service errors from register and login onto HTTP
// responses.
func writeAuthError(w http.ResponseWriter, err error) {
	var vErr *svc.ValidationError
	switch {
	case errors.As(err, &vErr):
		httperrors.WriteValidationErrors(w, vErr.Messages)

	case errors.Is(err, svc.ErrUserExists):
		httperrors.WriteError(w, httperrors.ErrUserExists)

	case errors.Is(err, svc.ErrInvalidCredentials):
		httperrors.WriteError(w, httperrors.ErrInvalidCredentials)

	default:
		httperrors.WriteError(w, httperrors.ErrInternal.WithCause(err))
	}
}
