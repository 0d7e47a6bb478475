package blog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "github.com/Gulcan00/blog-api/internal/http/dto/blog"
	httperrors "github.com/Gulcan00/blog-api/internal/http/errors"
	"github.com/Gulcan00/blog-api/internal/http/middlewares"
	svc "github.com/Gulcan00/blog-api/internal/http/services/blog"
	"github.com/Gulcan00/blog-api/internal/observability/logger"
)

// CommentsController handles the comment endpoints.
type CommentsController struct {
	service svc.CommentService
}

// NewCommentsController builds the comments controller.
func NewCommentsController(service svc.CommentService) *CommentsController {
	return &CommentsController{service: service}
}

// ListByPost handles GET /api/posts/{id}/comments
func (c *CommentsController) ListByPost(w http.ResponseWriter, r *http.Request) {
	comments, err := c.service.ListByPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeCommentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// Get handles GET /api/comments/{id}
func (c *CommentsController) Get(w http.ResponseWriter, r *http.Request) {
	comment, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeCommentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// Create handles POST /api/posts/{id}/comments
func (c *CommentsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("CommentsController.Create"))

	identity := middlewares.GetIdentity(ctx)
	if identity == nil {
		httperrors.WriteError(w, httperrors.ErrAuthRequired)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	var req dto.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	comment, err := c.service.Create(ctx, chi.URLParam(r, "id"), identity.UserID, req.Content)
	if err != nil {
		log.Debug("comment creation rejected", logger.Err(err))
		writeCommentError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// Delete handles DELETE /api/comments/{id}
func (c *CommentsController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("CommentsController.Delete"))

	identity := middlewares.GetIdentity(ctx)
	if identity == nil {
		httperrors.WriteError(w, httperrors.ErrAuthRequired)
		return
	}

	if err := c.service.Delete(ctx, chi.URLParam(r, "id"), identity.UserID); err != nil {
		log.Debug("comment delete rejected", logger.Err(err))
		writeCommentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Comment deleted successfully"})
}

// writeCommentError maps comment service errors onto HTTP responses.
func writeCommentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrPostNotFound):
		httperrors.WriteError(w, httperrors.ErrPostNotFound)

	case errors.Is(err, svc.ErrCommentNotFound):
		httperrors.WriteError(w, httperrors.ErrCommentNotFound)

	case errors.Is(err, svc.ErrEmptyContent):
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithMessage("Comment content is required"))

	case errors.Is(err, svc.ErrNotOwner):
		httperrors.WriteError(w, httperrors.ErrForbidden.WithMessage("You can only delete your own comments"))

	default:
		httperrors.WriteError(w, httperrors.ErrInternal.WithCause(err))
	}
}
