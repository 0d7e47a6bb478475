// Package blog contains DTOs for the post and comment endpoints.
package blog

import "github.com/Gulcan00/blog-api/internal/store"

// CreatePostRequest represents the request body for POST /api/posts
type CreatePostRequest struct {
	// Title is required.
	Title string `json:"title"`
	// Content is required.
	Content string `json:"content"`
}

// UpdatePostRequest represents the request body for PUT /api/posts/{id}
type UpdatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// AuthorSummary is the embedded author shape on posts. Only public
// fields; the stored user carries more.
type AuthorSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// PostPayload is the public shape of a post.
type PostPayload struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	AuthorID  string        `json:"authorId"`
	Author    AuthorSummary `json:"author"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
}

const timeLayout = "2006-01-02T15:04:05.000Z"

// NewPostPayload maps a stored post and its author to the public shape.
func NewPostPayload(p *store.Post, author *store.User) PostPayload {
	out := PostPayload{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt: p.UpdatedAt.UTC().Format(timeLayout),
	}
	if author != nil {
		out.Author = AuthorSummary{ID: author.ID, Username: author.Username}
	} else {
		out.Author = AuthorSummary{ID: p.AuthorID}
	}
	return out
}

// MessageResponse carries a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
