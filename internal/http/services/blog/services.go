// Package blog contains the post and comment services.
package blog

import (
	"context"
	"errors"
	"time"

	"github.com/Gulcan00/blog-api/internal/cache"
	dto "github.com/Gulcan00/blog-api/internal/http/dto/blog"
	"github.com/Gulcan00/blog-api/internal/store"
)

// PostService defines operations on posts.
type PostService interface {
	List(ctx context.Context) ([]dto.PostPayload, error)
	Get(ctx context.Context, id string) (*dto.PostPayload, error)
	Create(ctx context.Context, authorID string, in dto.CreatePostRequest) (*dto.PostPayload, error)
	Update(ctx context.Context, id, actorID string, in dto.UpdatePostRequest) (*dto.PostPayload, error)
	Delete(ctx context.Context, id, actorID string) error
}

// CommentService defines operations on comments.
type CommentService interface {
	ListByPost(ctx context.Context, postID string) ([]dto.CommentPayload, error)
	Get(ctx context.Context, id string) (*dto.CommentPayload, error)
	Create(ctx context.Context, postID, userID, content string) (*dto.CommentPayload, error)
	Delete(ctx context.Context, id, actorID string) error
}

// Service errors (sentinel)
var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotOwner        = errors.New("resource owned by another user")
	ErrEmptyContent    = errors.New("comment content is required")
	ErrStoreFailed     = errors.New("storage operation failed")
)

// Deps contains the dependencies shared by the blog services.
type Deps struct {
	Posts    store.PostRepository
	Comments store.CommentRepository
	Users    store.UserRepository
	Cache    cache.Client
	CacheTTL time.Duration
}

// Services groups the blog domain services.
type Services struct {
	Posts    PostService
	Comments CommentService
}

// NewServices builds the blog service aggregate.
func NewServices(d Deps) Services {
	if d.CacheTTL == 0 {
		d.CacheTTL = 2 * time.Minute
	}
	return Services{
		Posts:    NewPostService(d),
		Comments: NewCommentService(d),
	}
}

// authorLoader resolves author summaries with a per-call memo so a
// listing does not refetch the same user.
type authorLoader struct {
	users store.UserRepository
	memo  map[string]*store.User
}

func newAuthorLoader(users store.UserRepository) *authorLoader {
	return &authorLoader{users: users, memo: make(map[string]*store.User)}
}

func (l *authorLoader) load(ctx context.Context, id string) *store.User {
	if u, ok := l.memo[id]; ok {
		return u
	}
	u, err := l.users.GetByID(ctx, id)
	if err != nil {
		// A deleted author leaves the post readable; the payload falls
		// back to the bare author id.
		l.memo[id] = nil
		return nil
	}
	l.memo[id] = u
	return u
}
