package middlewares

import (
	"net/http"
	"strings"

	"github.com/Gulcan00/blog-api/internal/auth"
	httperrors "github.com/Gulcan00/blog-api/internal/http/errors"
	"github.com/Gulcan00/blog-api/internal/http/metrics"
	"github.com/Gulcan00/blog-api/internal/observability/logger"
	"github.com/Gulcan00/blog-api/internal/store"
	"github.com/Gulcan00/blog-api/internal/token"
)

// =================================================================================
// AUTHENTICATION GATE
// =================================================================================

// RequireAuth validates Authorization: Bearer <token>, resolves the
// subject to a current user and injects the identity into the context.
//
// A missing token answers 401 "Authentication required". Everything
// else that can go wrong (malformed token, bad signature, expiry,
// subject no longer existing) answers the same generic 401 "Invalid
// credentials". The root cause goes to the debug log only; a
// distinguishable response would hand an oracle to forgery attempts.
func RequireAuth(issuer *token.Issuer, resolver *auth.Resolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.From(ctx).With(logger.Layer("middleware"), logger.Op("RequireAuth"))

			raw, ok := bearerToken(r)
			if !ok {
				metrics.RecordAuthFailure("missing")
				w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
				httperrors.WriteError(w, httperrors.ErrAuthRequired)
				return
			}

			claims, err := issuer.Verify(raw)
			if err != nil {
				log.Debug("token verification failed", logger.Err(err))
				metrics.RecordAuthFailure("invalid")
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
				return
			}

			identity, err := resolver.Resolve(ctx, claims)
			if err != nil {
				if store.IsNotFound(err) {
					// Subject deleted after issuance: same generic rejection.
					log.Debug("token subject no longer exists")
					metrics.RecordAuthFailure("invalid")
					w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
					httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
					return
				}
				log.Error("identity resolution failed", logger.Err(err))
				httperrors.WriteError(w, httperrors.ErrInternal.WithCause(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
		})
	}
}

// =================================================================================
// AUTHORIZATION GATE
// =================================================================================

// RequireRole admits requests whose resolved identity carries one of
// the given roles. Must run after RequireAuth; a missing identity is a
// wiring mistake and answers 401, never a crash. An empty role set
// admits any authenticated identity. Membership is exact, with no
// wildcards or hierarchy.
func RequireRole(roles ...store.Role) Middleware {
	allowed := make(map[store.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if identity == nil {
				httperrors.WriteError(w, httperrors.ErrAuthRequired)
				return
			}

			if len(allowed) > 0 {
				if _, ok := allowed[identity.Role]; !ok {
					httperrors.WriteError(w, httperrors.ErrForbidden)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(ah[len("bearer "):])
	return raw, raw != ""
}
