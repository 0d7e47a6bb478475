package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gulcan00/blog-api/internal/auth"
	"github.com/Gulcan00/blog-api/internal/cache"
	authctrl "github.com/Gulcan00/blog-api/internal/http/controllers/auth"
	blogctrl "github.com/Gulcan00/blog-api/internal/http/controllers/blog"
	healthctrl "github.com/Gulcan00/blog-api/internal/http/controllers/health"
	authsvc "github.com/Gulcan00/blog-api/internal/http/services/auth"
	blogsvc "github.com/Gulcan00/blog-api/internal/http/services/blog"
	"github.com/Gulcan00/blog-api/internal/store/memory"
	"github.com/Gulcan00/blog-api/internal/token"
)

// testServer wires the full HTTP surface over the memory store.
type testServer struct {
	handler http.Handler
	store   *memory.Store
	issuer  *token.Issuer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st := memory.New()
	issuer := token.NewIssuer("test-secret", "blog-api", time.Hour)
	resolver := auth.NewResolver(st.Users())
	ca := cache.NewMemory("test")

	authServices := authsvc.NewServices(authsvc.Deps{Users: st.Users(), Issuer: issuer})
	blogServices := blogsvc.NewServices(blogsvc.Deps{
		Posts:    st.Posts(),
		Comments: st.Comments(),
		Users:    st.Users(),
		Cache:    ca,
		CacheTTL: time.Minute,
	})

	handler := New(Deps{
		Auth:     authctrl.NewControllers(authServices, st.Users()),
		Blog:     blogctrl.NewControllers(blogServices),
		Health:   healthctrl.NewController(st, ca),
		Issuer:   issuer,
		Resolver: resolver,
	})

	return &testServer{handler: handler, store: st, issuer: issuer}
}

func (s *testServer) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// register creates a user through the API and returns its id and token.
func (s *testServer) register(t *testing.T, username, email, pass string) (id, tok string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username, "email": email, "password": pass,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	user := body["user"].(map[string]any)
	return user["id"].(string), body["token"].(string)
}

func TestRegisterSuccess(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "ada", "email": "Ada@Example.com", "password": "Passw0rdOk",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "User registered successfully", body["message"])
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "ada", user["username"])
	assert.Equal(t, "ada@example.com", user["email"]) // normalized
	assert.Equal(t, "USER", user["role"])
	assert.NotEmpty(t, user["createdAt"])
	assert.NotContains(t, user, "passwordHash")
}

func TestRegisterValidationErrors(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "a!", "email": "nope", "password": "x",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Errors, 5)
	assert.Contains(t, body.Errors, "Must be a valid email address")
}

func TestRegisterDuplicate(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ada", "ada@example.com", "Passw0rdOk")

	cases := []map[string]string{
		{"username": "ada", "email": "other@example.com", "password": "Passw0rdOk"},
		{"username": "other", "email": "ada@example.com", "password": "Passw0rdOk"},
	}
	for _, req := range cases {
		rec := s.do(t, http.MethodPost, "/api/auth/register", "", req)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "User with this email or username already exists", decode(t, rec)["error"])
	}
}

func TestLoginSuccess(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ada", "ada@example.com", "Passw0rdOk")

	rec := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "Passw0rdOk",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "ada", user["username"])
}

func TestLoginRejectionsAreUniform(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ada", "ada@example.com", "Passw0rdOk")

	unknown := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ghost@example.com", "password": "Passw0rdOk",
	})
	wrongPass := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "WrongPass1",
	})

	// Unknown account and wrong password must be indistinguishable.
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, unknown.Body.String(), wrongPass.Body.String())
	assert.Equal(t, "Invalid credentials", decode(t, unknown)["error"])
}

func TestMe(t *testing.T) {
	s := newTestServer(t)
	id, tok := s.register(t, "ada", "ada@example.com", "Passw0rdOk")

	t.Run("authenticated", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/auth/me", tok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		user := decode(t, rec)["user"].(map[string]any)
		assert.Equal(t, id, user["id"])
		assert.NotEmpty(t, user["createdAt"])
		assert.NotEmpty(t, user["updatedAt"])
	})

	t.Run("no token", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Authentication required", decode(t, rec)["error"])
	})

	t.Run("deleted user", func(t *testing.T) {
		require.NoError(t, s.store.Users().Delete(context.Background(), id))
		rec := s.do(t, http.MethodGet, "/api/auth/me", tok, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", decode(t, rec)["error"])
	})
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decode(t, rec)["status"])
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Resource not found", decode(t, rec)["error"])
}
