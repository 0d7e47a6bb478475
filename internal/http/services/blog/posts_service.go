package blog

import (
	"context"
	"encoding/json"
	"strings"

	dto "github.com/Gulcan00/blog-api/internal/http/dto/blog"
	"github.com/Gulcan00/blog-api/internal/observability/logger"
	"github.com/Gulcan00/blog-api/internal/store"
)

const (
	postsListKey  = "posts:all"
	postKeyPrefix = "posts:"
)

type postService struct {
	deps Deps
}

// NewPostService builds the post service.
func NewPostService(deps Deps) PostService {
	return &postService{deps: deps}
}

func (s *postService) List(ctx context.Context) ([]dto.PostPayload, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("blog.posts"), logger.Op("List"))

	if s.deps.Cache != nil {
		if raw, err := s.deps.Cache.Get(ctx, postsListKey); err == nil {
			var out []dto.PostPayload
			if json.Unmarshal([]byte(raw), &out) == nil {
				return out, nil
			}
		}
	}

	posts, err := s.deps.Posts.List(ctx)
	if err != nil {
		log.Error("post listing failed", logger.Err(err))
		return nil, ErrStoreFailed
	}

	authors := newAuthorLoader(s.deps.Users)
	out := make([]dto.PostPayload, 0, len(posts))
	for i := range posts {
		out = append(out, dto.NewPostPayload(&posts[i], authors.load(ctx, posts[i].AuthorID)))
	}

	s.cacheSet(ctx, postsListKey, out)
	return out, nil
}

func (s *postService) Get(ctx context.Context, id string) (*dto.PostPayload, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("blog.posts"), logger.Op("Get"), logger.PostID(id))

	if s.deps.Cache != nil {
		if raw, err := s.deps.Cache.Get(ctx, postKeyPrefix+id); err == nil {
			var out dto.PostPayload
			if json.Unmarshal([]byte(raw), &out) == nil {
				return &out, nil
			}
		}
	}

	post, err := s.deps.Posts.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, ErrPostNotFound
		}
		log.Error("post lookup failed", logger.Err(err))
		return nil, ErrStoreFailed
	}

	author, _ := s.deps.Users.GetByID(ctx, post.AuthorID)
	out := dto.NewPostPayload(post, author)

	s.cacheSet(ctx, postKeyPrefix+id, out)
	return &out, nil
}

func (s *postService) Create(ctx context.Context, authorID string, in dto.CreatePostRequest) (*dto.PostPayload, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("blog.posts"), logger.Op("Create"), logger.UserID(authorID))

	post, err := s.deps.Posts.Create(ctx, strings.TrimSpace(in.Title), in.Content, authorID)
	if err != nil {
		log.Error("post creation failed", logger.Err(err))
		return nil, ErrStoreFailed
	}

	author, _ := s.deps.Users.GetByID(ctx, authorID)
	out := dto.NewPostPayload(post, author)

	s.invalidate(ctx, postsListKey)
	log.Info("post created", logger.PostID(post.ID))
	return &out, nil
}

func (s *postService) Update(ctx context.Context, id, actorID string, in dto.UpdatePostRequest) (*dto.PostPayload, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("blog.posts"), logger.Op("Update"), logger.PostID(id))

	post, err := s.deps.Posts.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, ErrPostNotFound
		}
		log.Error("post lookup failed", logger.Err(err))
		return nil, ErrStoreFailed
	}
	if post.AuthorID != actorID {
		log.Debug("update rejected, not the author", logger.UserID(actorID))
		return nil, ErrNotOwner
	}

	updated, err := s.deps.Posts.Update(ctx, id, store.UpdatePostInput{
		Title:   strings.TrimSpace(in.Title),
		Content: in.Content,
	})
	if err != nil {
		if store.IsNotFound(err) {
			return nil, ErrPostNotFound
		}
		log.Error("post update failed", logger.Err(err))
		return nil, ErrStoreFailed
	}

	author, _ := s.deps.Users.GetByID(ctx, updated.AuthorID)
	out := dto.NewPostPayload(updated, author)

	s.invalidate(ctx, postsListKey, postKeyPrefix+id)
	return &out, nil
}

func (s *postService) Delete(ctx context.Context, id, actorID string) error {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("blog.posts"), logger.Op("Delete"), logger.PostID(id))

	post, err := s.deps.Posts.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return ErrPostNotFound
		}
		log.Error("post lookup failed", logger.Err(err))
		return ErrStoreFailed
	}
	if post.AuthorID != actorID {
		log.Debug("delete rejected, not the author", logger.UserID(actorID))
		return ErrNotOwner
	}

	if err := s.deps.Posts.Delete(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return ErrPostNotFound
		}
		log.Error("post delete failed", logger.Err(err))
		return ErrStoreFailed
	}

	s.invalidate(ctx, postsListKey, postKeyPrefix+id)
	log.Info("post deleted")
	return nil
}

func (s *postService) cacheSet(ctx context.Context, key string, v any) {
	if s.deps.Cache == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, key, string(b), s.deps.CacheTTL); err != nil {
		logger.From(ctx).Debug("cache set failed", logger.Err(err))
	}
}

func (s *postService) invalidate(ctx context.Context, keys ...string) {
	if s.deps.Cache == nil {
		return
	}
	for _, key := range keys {
		if err := s.deps.Cache.Delete(ctx, key); err != nil {
			logger.From(ctx).Debug("cache invalidation failed", logger.Err(err))
		}
	}
}
