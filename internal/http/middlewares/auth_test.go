package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gulcan00/blog-api/internal/auth"
	"github.com/Gulcan00/blog-api/internal/store"
	"github.com/Gulcan00/blog-api/internal/store/memory"
	"github.com/Gulcan00/blog-api/internal/token"
)

func setupGate(t *testing.T) (*memory.Store, *token.Issuer, Middleware) {
	t.Helper()
	st := memory.New()
	issuer := token.NewIssuer("gate-secret", "blog-api", time.Hour)
	return st, issuer, RequireAuth(issuer, auth.NewResolver(st.Users()))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func errBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestRequireAuthMissingToken(t *testing.T) {
	_, _, gate := setupGate(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	gate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication required", errBody(t, rec))
}

func TestRequireAuthRejectionsAreUniform(t *testing.T) {
	st, issuer, gate := setupGate(t)

	user, err := st.Users().Create(context.Background(), store.CreateUserInput{
		Username: "ada", Email: "ada@example.com", PasswordHash: "x",
	})
	require.NoError(t, err)

	valid, _, err := issuer.Issue(user)
	require.NoError(t, err)

	foreign, _, err := token.NewIssuer("other-secret", "blog-api", time.Hour).Issue(user)
	require.NoError(t, err)

	ghost := *user
	ghost.ID = "00000000-0000-0000-0000-000000000000"
	unknownSubject, _, err := issuer.Issue(&ghost)
	require.NoError(t, err)

	cases := map[string]string{
		"garbage token":   "Bearer not.a.token",
		"bad signature":   "Bearer " + foreign,
		"unknown subject": "Bearer " + unknownSubject,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", header)
			rec := httptest.NewRecorder()
			gate(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Invalid credentials", errBody(t, rec))
		})
	}

	// Sanity: the valid token passes.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+valid)
	rec := httptest.NewRecorder()
	gate(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthDeletedUser(t *testing.T) {
	st, issuer, gate := setupGate(t)

	user, err := st.Users().Create(context.Background(), store.CreateUserInput{
		Username: "ada", Email: "ada@example.com", PasswordHash: "x",
	})
	require.NoError(t, err)

	raw, _, err := issuer.Issue(user)
	require.NoError(t, err)
	require.NoError(t, st.Users().Delete(context.Background(), user.ID))

	// Token is cryptographically fine; the subject is gone. Same
	// rejection as any other bad token.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	gate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", errBody(t, rec))
}

func TestRequireRole(t *testing.T) {
	identity := &auth.Identity{UserID: "u1", Role: store.RoleUser}
	author := &auth.Identity{UserID: "u2", Role: store.RoleAuthor}

	run := func(gate Middleware, id *auth.Identity) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/posts", nil)
		if id != nil {
			req = req.WithContext(WithIdentity(req.Context(), id))
		}
		rec := httptest.NewRecorder()
		gate(okHandler()).ServeHTTP(rec, req)
		return rec
	}

	t.Run("author admitted", func(t *testing.T) {
		rec := run(RequireRole(store.RoleAuthor), author)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("user forbidden", func(t *testing.T) {
		rec := run(RequireRole(store.RoleAuthor), identity)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Insufficient permissions", errBody(t, rec))
	})

	t.Run("empty role set admits any authenticated", func(t *testing.T) {
		rec := run(RequireRole(), identity)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no identity answers 401", func(t *testing.T) {
		rec := run(RequireRole(store.RoleAuthor), nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Authentication required", errBody(t, rec))
	})
}

func TestBearerTokenExtraction(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := bearerToken(req)
	assert.False(t, ok)

	req.Header.Set("Authorization", "bearer abc123")
	raw, ok := bearerToken(req)
	assert.True(t, ok)
	assert.Equal(t, "abc123", raw)

	req.Header.Set("Authorization", "Basic abc123")
	_, ok = bearerToken(req)
	assert.False(t, ok)

	req.Header.Set("Authorization", "Bearer ")
	_, ok = bearerToken(req)
	assert.False(t, ok)
}
