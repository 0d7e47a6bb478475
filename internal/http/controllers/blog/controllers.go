// Package blog contains the controllers for the post and comment
// endpoints.
package blog

import (
	"encoding/json"
	"net/http"

	svc "github.com/Gulcan00/blog-api/internal/http/services/blog"
)

const (
	maxBodySize     = 256 * 1024 // 256KB, post bodies can be large
	contentTypeJSON = "application/json; charset=utf-8"
)

// Controllers groups the blog endpoint controllers.
type Controllers struct {
	Posts    *PostsController
	Comments *CommentsController
}

// NewControllers builds the blog controller aggregate.
func NewControllers(services svc.Services) *Controllers {
	return &Controllers{
		Posts:    NewPostsController(services.Posts),
		Comments: NewCommentsController(services.Comments),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
