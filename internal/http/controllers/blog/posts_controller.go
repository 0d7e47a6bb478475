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

// PostsController handles the post endpoints.
type PostsController struct {
	service svc.PostService
}

// NewPostsController builds the posts controller.
func NewPostsController(service svc.PostService) *PostsController {
	return &PostsController{service: service}
}

// List handles GET /api/posts
func (c *PostsController) List(w http.ResponseWriter, r *http.Request) {
	posts, err := c.service.List(r.Context())
	if err != nil {
		writePostError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Get handles GET /api/posts/{id}
func (c *PostsController) Get(w http.ResponseWriter, r *http.Request) {
	post, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writePostError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Create handles POST /api/posts
func (c *PostsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PostsController.Create"))

	identity := middlewares.GetIdentity(ctx)
	if identity == nil {
		httperrors.WriteError(w, httperrors.ErrAuthRequired)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	var req dto.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	post, err := c.service.Create(ctx, identity.UserID, req)
	if err != nil {
		log.Debug("post creation rejected", logger.Err(err))
		writePostError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// Update handles PUT /api/posts/{id}
func (c *PostsController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PostsController.Update"))

	identity := middlewares.GetIdentity(ctx)
	if identity == nil {
		httperrors.WriteError(w, httperrors.ErrAuthRequired)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	var req dto.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	post, err := c.service.Update(ctx, chi.URLParam(r, "id"), identity.UserID, req)
	if err != nil {
		log.Debug("post update rejected", logger.Err(err))
		writePostError(w, err, "You can only edit your own posts")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /api/posts/{id}
func (c *PostsController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PostsController.Delete"))

	identity := middlewares.GetIdentity(ctx)
	if identity == nil {
		httperrors.WriteError(w, httperrors.ErrAuthRequired)
		return
	}

	if err := c.service.Delete(ctx, chi.URLParam(r, "id"), identity.UserID); err != nil {
		log.Debug("post delete rejected", logger.Err(err))
		writePostError(w, err, "You can only delete your own posts")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writePostError maps post service errors onto HTTP responses. The
// ownerMsg personalizes the 403 per operation.
func writePostError(w http.ResponseWriter, err error, ownerMsg string) {
	switch {
	case errors.Is(err, svc.ErrPostNotFound):
		httperrors.WriteError(w, httperrors.ErrPostNotFound)

	case errors.Is(err, svc.ErrNotOwner):
		appErr := httperrors.ErrForbidden
		if ownerMsg != "" {
			appErr = appErr.WithMessage(ownerMsg)
		}
		httperrors.WriteError(w, appErr)

	default:
		httperrors.WriteError(w, httperrors.ErrInternal.WithCause(err))
	}
}
