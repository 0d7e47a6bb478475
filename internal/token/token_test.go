package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gulcan00/blog-api/internal/store"
)

var testUser = &store.User{
	ID:    "6f1e7a34-9f3d-4e61-a6a1-0a3a2c7f9b01",
	Email: "ada@example.com",
	Role:  store.RoleAuthor,
}

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret", "blog-api", time.Hour)

	raw, exp, err := issuer.Issue(testUser)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := issuer.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, testUser.ID, claims.Subject)
	assert.Equal(t, testUser.Email, claims.Email)
	assert.Equal(t, store.RoleAuthor, claims.Role)
	assert.WithinDuration(t, exp, claims.Expiry, time.Second)
}

func TestVerifyExpired(t *testing.T) {
	now := time.Now()
	issuer := NewIssuer("test-secret", "blog-api", time.Minute,
		WithClock(func() time.Time { return now }))

	raw, _, err := issuer.Issue(testUser)
	require.NoError(t, err)

	// Move the clock past expiry.
	now = now.Add(2 * time.Minute)

	_, err = issuer.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyCollapsesFailures(t *testing.T) {
	issuer := NewIssuer("test-secret", "blog-api", time.Hour)
	raw, _, err := issuer.Issue(testUser)
	require.NoError(t, err)

	tampered := raw[:len(raw)-4] + "AAAA"
	foreign, _, err := NewIssuer("other-secret", "blog-api", time.Hour).Issue(testUser)
	require.NoError(t, err)
	wrongIss, _, err := NewIssuer("test-secret", "someone-else", time.Hour).Issue(testUser)
	require.NoError(t, err)

	cases := map[string]string{
		"garbage":          "not.a.token",
		"empty":            "",
		"missing segments": strings.Split(raw, ".")[0],
		"tampered":         tampered,
		"wrong secret":     foreign,
		"wrong issuer":     wrongIss,
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Verify(tok)
			// Every rejection is the same sentinel.
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestDefaultTTL(t *testing.T) {
	issuer := NewIssuer("s", "blog-api", 0)
	assert.Equal(t, DefaultTTL, issuer.TTL())
}
