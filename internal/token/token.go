// Package token issues and verifies the service's identity tokens.
//
// Tokens are stateless HS256 JWTs signed with a single shared secret
// loaded at process start. Validity is determined by signature and
// expiry alone; there is no server-side revocation list. That trades
// instant revocation for horizontal scalability.
package token

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/Gulcan00/blog-api/internal/store"
)

// ErrInvalidToken is the only error Verify returns. Malformed tokens,
// signature mismatches and expiry all collapse into it so callers
// cannot build an oracle out of the failure reason.
var ErrInvalidToken = errors.New("token: invalid or expired")

// DefaultTTL is the token lifetime when none is configured.
const DefaultTTL = 24 * time.Hour

// Claims is the verified identity assertion carried by a token.
type Claims struct {
	Subject  string
	Email    string
	Role     store.Role
	IssuedAt time.Time
	Expiry   time.Time
}

// Issuer signs and verifies tokens. Immutable after construction; safe
// for unsynchronized concurrent use.
type Issuer struct {
	secret []byte
	iss    string
	ttl    time.Duration
	now    func() time.Time
}

// Option tweaks an Issuer at construction.
type Option func(*Issuer)

// WithClock overrides the time source. Test hook.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// NewIssuer builds an Issuer for the given shared secret.
// ttl <= 0 falls back to DefaultTTL.
func NewIssuer(secret, iss string, ttl time.Duration, opts ...Option) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	i := &Issuer{
		secret: []byte(secret),
		iss:    iss,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, o := range opts {
		o(i)
	}
	return i
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs a token for the user: {sub, email, role, iat, nbf, exp}.
func (i *Issuer) Issue(u *store.User) (string, time.Time, error) {
	now := i.now().UTC()
	exp := now.Add(i.ttl)

	claims := jwtv5.MapClaims{
		"iss":   i.iss,
		"sub":   u.ID,
		"email": u.Email,
		"role":  string(u.Role),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   exp.Unix(),
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// Every failure mode returns ErrInvalidToken.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	tok, err := jwtv5.Parse(raw,
		func(*jwtv5.Token) (any, error) { return i.secret, nil },
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithTimeFunc(i.now),
		jwtv5.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	mc, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	if i.iss != "" {
		if iss, _ := mc["iss"].(string); iss != i.iss {
			return nil, ErrInvalidToken
		}
	}

	sub, _ := mc["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)

	c := &Claims{
		Subject: sub,
		Email:   email,
		Role:    store.Role(role),
	}
	if iat, ok := mc["iat"].(float64); ok {
		c.IssuedAt = time.Unix(int64(iat), 0).UTC()
	}
	if exp, ok := mc["exp"].(float64); ok {
		c.Expiry = time.Unix(int64(exp), 0).UTC()
	}
	return c, nil
}
