package auth

import (
	"net/http"

	dto "github.com/Gulcan00/blog-api/internal/http/dto/auth"
	httperrors "github.com/Gulcan00/blog-api/internal/http/errors"
	"github.com/Gulcan00/blog-api/internal/http/middlewares"
	"github.com/Gulcan00/blog-api/internal/observability/logger"
	"github.com/Gulcan00/blog-api/internal/store"
)

// MeController handles the current-user endpoint.
type MeController struct {
	users store.UserRepository
}

// NewMeController builds the current-user controller.
func NewMeController(users store.UserRepository) *MeController {
	return &MeController{users: users}
}

// Me handles GET /api/auth/me. The identity was already resolved by the
// authentication gate; the lookup here only adds the timestamps.
func (c *MeController) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("MeController.Me"))

	identity := middlewares.GetIdentity(ctx)
	if identity == nil {
		httperrors.WriteError(w, httperrors.ErrAuthRequired)
		return
	}

	user, err := c.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if store.IsNotFound(err) {
			// Deleted between the gate and here; keep the rejection
			// indistinguishable from any other bad token.
			httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
			return
		}
		log.Error("user lookup failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternal.WithCause(err))
		return
	}

	writeJSON(w, http.StatusOK, dto.MeResponse{
		User: dto.NewUserPayload(user).WithCreatedAt(user).WithUpdatedAt(user),
	})
}
