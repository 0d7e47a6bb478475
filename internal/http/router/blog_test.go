package router

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gulcan00/blog-api/internal/store"
)

// registerAuthor creates a user and promotes it to AUTHOR. The token
// predates the promotion; the gates observe the stored role, not the
// one baked into the token.
func (s *testServer) registerAuthor(t *testing.T, username, email string) (id, tok string) {
	t.Helper()
	id, tok = s.register(t, username, email, "Passw0rdOk")
	s.store.SetRole(id, store.RoleAuthor)
	return id, tok
}

func (s *testServer) createPost(t *testing.T, tok, title, content string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/posts", tok, map[string]string{
		"title": title, "content": content,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(t, rec)["id"].(string)
}

func TestPostCreateRequiresAuthorRole(t *testing.T) {
	s := newTestServer(t)
	_, readerTok := s.register(t, "reader", "reader@example.com", "Passw0rdOk")

	rec := s.do(t, http.MethodPost, "/api/posts", readerTok, map[string]string{
		"title": "t", "content": "c",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Insufficient permissions", decode(t, rec)["error"])

	rec = s.do(t, http.MethodPost, "/api/posts", "", map[string]string{
		"title": "t", "content": "c",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication required", decode(t, rec)["error"])
}

func TestPostCRUD(t *testing.T) {
	s := newTestServer(t)
	authorID, authorTok := s.registerAuthor(t, "ada", "ada@example.com")

	postID := s.createPost(t, authorTok, "First post", "Hello world")

	t.Run("list is public", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/posts", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "First post")
	})

	t.Run("get by id includes author", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/posts/"+postID, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "First post", body["title"])
		author := body["author"].(map[string]any)
		assert.Equal(t, authorID, author["id"])
		assert.Equal(t, "ada", author["username"])
	})

	t.Run("update by owner", func(t *testing.T) {
		rec := s.do(t, http.MethodPut, "/api/posts/"+postID, authorTok, map[string]string{
			"title": "Edited", "content": "Hello again",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Edited", decode(t, rec)["title"])
	})

	t.Run("unknown post is 404", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/posts/does-not-exist", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Post not found", decode(t, rec)["error"])
	})

	t.Run("delete by owner", func(t *testing.T) {
		rec := s.do(t, http.MethodDelete, "/api/posts/"+postID, authorTok, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = s.do(t, http.MethodGet, "/api/posts/"+postID, "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPostOwnershipIsEnforced(t *testing.T) {
	s := newTestServer(t)
	_, adaTok := s.registerAuthor(t, "ada", "ada@example.com")
	_, graceTok := s.registerAuthor(t, "grace", "grace@example.com")

	postID := s.createPost(t, adaTok, "Ada's post", "content")

	rec := s.do(t, http.MethodPut, "/api/posts/"+postID, graceTok, map[string]string{
		"title": "hijacked", "content": "x",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You can only edit your own posts", decode(t, rec)["error"])

	rec = s.do(t, http.MethodDelete, "/api/posts/"+postID, graceTok, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You can only delete your own posts", decode(t, rec)["error"])
}

func TestComments(t *testing.T) {
	s := newTestServer(t)
	_, authorTok := s.registerAuthor(t, "ada", "ada@example.com")
	readerID, readerTok := s.register(t, "reader", "reader@example.com", "Passw0rdOk")

	postID := s.createPost(t, authorTok, "Post", "content")

	var commentID string

	t.Run("any authenticated role can comment", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/posts/"+postID+"/comments", readerTok, map[string]string{
			"content": "  nice post  ",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		body := decode(t, rec)
		assert.Equal(t, "nice post", body["content"]) // trimmed
		assert.Equal(t, readerID, body["userId"])
		user := body["user"].(map[string]any)
		assert.Equal(t, readerID, user["id"])
		commentID = body["id"].(string)
	})

	t.Run("anonymous cannot comment", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/posts/"+postID+"/comments", "", map[string]string{
			"content": "anon",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("empty content rejected", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/posts/"+postID+"/comments", readerTok, map[string]string{
			"content": "   ",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Comment content is required", decode(t, rec)["error"])
	})

	t.Run("comment on unknown post", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/posts/nope/comments", readerTok, map[string]string{
			"content": "hello",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Post not found", decode(t, rec)["error"])
	})

	t.Run("listing is public", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/posts/"+postID+"/comments", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "nice post")
	})

	t.Run("listing for unknown post is empty", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/posts/nope/comments", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var out []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Empty(t, out)
	})

	t.Run("get single comment includes post summary", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/comments/"+commentID, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		post := body["post"].(map[string]any)
		assert.Equal(t, postID, post["id"])
		assert.Equal(t, "Post", post["title"])
	})

	t.Run("only the commenter can delete", func(t *testing.T) {
		rec := s.do(t, http.MethodDelete, "/api/comments/"+commentID, authorTok, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "You can only delete your own comments", decode(t, rec)["error"])

		rec = s.do(t, http.MethodDelete, "/api/comments/"+commentID, readerTok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Comment deleted successfully", decode(t, rec)["message"])

		rec = s.do(t, http.MethodDelete, "/api/comments/"+commentID, readerTok, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Comment not found", decode(t, rec)["error"])
	})
}

func TestRoleChangeObservedImmediately(t *testing.T) {
	s := newTestServer(t)
	id, tok := s.register(t, "ada", "ada@example.com", "Passw0rdOk")

	// USER role: rejected.
	rec := s.do(t, http.MethodPost, "/api/posts", tok, map[string]string{"title": "t", "content": "c"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Promotion takes effect on the very next request with the same
	// token, because the gate reads the stored role.
	s.store.SetRole(id, store.RoleAuthor)
	rec = s.do(t, http.MethodPost, "/api/posts", tok, map[string]string{"title": "t", "content": "c"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}
