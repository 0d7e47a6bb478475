package blog

import (
	"context"
	"strings"

	dto "github.com/Gulcan00/blog-api/internal/http/dto/blog"
	"github.com/Gulcan00/blog-api/internal/observability/logger"
	"github.com/Gulcan00/blog-api/internal/store"
)

type commentService struct {
	deps Deps
}

// NewCommentService builds the comment service.
func NewCommentService(deps Deps) CommentService {
	return &commentService{deps: deps}
}

// ListByPost does not check that the post exists; an unknown post
// simply has no comments and lists as empty.
func (s *commentService) ListByPost(ctx context.Context, postID string) ([]dto.CommentPayload, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("blog.comments"), logger.Op("ListByPost"), logger.PostID(postID))

	comments, err := s.deps.Comments.ListByPost(ctx, postID)
	if err != nil {
		log.Error("comment listing failed", logger.Err(err))
		return nil, ErrStoreFailed
	}

	users := newAuthorLoader(s.deps.Users)
	out := make([]dto.CommentPayload, 0, len(comments))
	for i := range comments {
		out = append(out, dto.NewCommentPayload(&comments[i], users.load(ctx, comments[i].UserID)))
	}
	return out, nil
}

func (s *commentService) Get(ctx context.Context, id string) (*dto.CommentPayload, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("blog.comments"), logger.Op("Get"), logger.CommentID(id))

	comment, err := s.deps.Comments.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, ErrCommentNotFound
		}
		log.Error("comment lookup failed", logger.Err(err))
		return nil, ErrStoreFailed
	}

	user, _ := s.deps.Users.GetByID(ctx, comment.UserID)
	out := dto.NewCommentPayload(comment, user)

	if post, err := s.deps.Posts.GetByID(ctx, comment.PostID); err == nil {
		out.Post = &dto.PostSummary{ID: post.ID, Title: post.Title}
	}
	return &out, nil
}

func (s *commentService) Create(ctx context.Context, postID, userID, content string) (*dto.CommentPayload, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("blog.comments"), logger.Op("Create"), logger.PostID(postID), logger.UserID(userID))

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	if _, err := s.deps.Posts.GetByID(ctx, postID); err != nil {
		if store.IsNotFound(err) {
			return nil, ErrPostNotFound
		}
		log.Error("post lookup failed", logger.Err(err))
		return nil, ErrStoreFailed
	}

	comment, err := s.deps.Comments.Create(ctx, postID, userID, content)
	if err != nil {
		log.Error("comment creation failed", logger.Err(err))
		return nil, ErrStoreFailed
	}

	user, _ := s.deps.Users.GetByID(ctx, userID)
	out := dto.NewCommentPayload(comment, user)

	log.Info("comment created", logger.CommentID(comment.ID))
	return &out, nil
}

func (s *commentService) Delete(ctx context.Context, id, actorID string) error {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("blog.comments"), logger.Op("Delete"), logger.CommentID(id))

	comment, err := s.deps.Comments.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return ErrCommentNotFound
		}
		log.Error("comment lookup failed", logger.Err(err))
		return ErrStoreFailed
	}
	if comment.UserID != actorID {
		log.Debug("delete rejected, not the commenter", logger.UserID(actorID))
		return ErrNotOwner
	}

	if err := s.deps.Comments.Delete(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return ErrCommentNotFound
		}
		log.Error("comment delete failed", logger.Err(err))
		return ErrStoreFailed
	}

	log.Info("comment deleted")
	return nil
}
