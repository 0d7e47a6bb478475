package middlewares

import (
	"context"

	"github.com/Gulcan00/blog-api/internal/auth"
)

// =================================================================================
// CONTEXT KEYS
// =================================================================================

type ctxKey string

const (
	// ctxIdentityKey holds the resolved *auth.Identity
	ctxIdentityKey ctxKey = "identity"
	// ctxRequestIDKey holds the request ID
	ctxRequestIDKey ctxKey = "request_id"
)

// WithIdentity injects the resolved identity into the context.
// Identity flows through the context explicitly; handlers never see the
// raw token.
func WithIdentity(ctx context.Context, id *auth.Identity) context.Context {
	return context.WithValue(ctx, ctxIdentityKey, id)
}

// GetIdentity returns the resolved identity, or nil when the request
// did not pass the authentication gate.
func GetIdentity(ctx context.Context) *auth.Identity {
	if v := ctx.Value(ctxIdentityKey); v != nil {
		if id, ok := v.(*auth.Identity); ok {
			return id
		}
	}
	return nil
}

func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetRequestID returns the request ID, or "" when not set.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(ctxRequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
