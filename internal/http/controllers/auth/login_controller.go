package auth

import (
	"encoding/json"
	"net/http"

	dto "github.com/Gulcan00/blog-api/internal/http/dto/auth"
	httperrors "github.com/Gulcan00/blog-api/internal/http/errors"
	svc "github.com/Gulcan00/blog-api/internal/http/services/auth"
	"github.com/Gulcan00/blog-api/internal/observability/logger"
)

// LoginController handles the login endpoint.
type LoginController struct {
	service svc.LoginService
}

// NewLoginController builds the login controller.
func NewLoginController(service svc.LoginService) *LoginController {
	return &LoginController{service: service}
}

// Login handles POST /api/auth/login
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	result, err := c.service.Login(ctx, req)
	if err != nil {
		log.Debug("login rejected", logger.Err(err))
		writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
