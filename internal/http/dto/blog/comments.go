package blog

import "github.com/Gulcan00/blog-api/internal/store"

// CreateCommentRequest represents the request body for
// POST /api/posts/{id}/comments
type CreateCommentRequest struct {
	// Content is required.
	Content string `json:"content"`
}

// UserSummary is the embedded commenter shape.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PostSummary is the embedded post shape on a single comment lookup.
type PostSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// CommentPayload is the public shape of a comment.
type CommentPayload struct {
	ID        string       `json:"id"`
	Content   string       `json:"content"`
	PostID    string       `json:"postId"`
	UserID    string       `json:"userId"`
	User      UserSummary  `json:"user"`
	Post      *PostSummary `json:"post,omitempty"`
	CreatedAt string       `json:"createdAt"`
}

// NewCommentPayload maps a stored comment and its author to the public
// shape.
func NewCommentPayload(c *store.Comment, user *store.User) CommentPayload {
	out := CommentPayload{
		ID:        c.ID,
		Content:   c.Content,
		PostID:    c.PostID,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt.UTC().Format(timeLayout),
	}
	if user != nil {
		out.User = UserSummary{ID: user.ID, Username: user.Username, Email: user.Email}
	} else {
		out.User = UserSummary{ID: c.UserID}
	}
	return out
}
