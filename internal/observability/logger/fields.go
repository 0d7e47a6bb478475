package logger

import (
	"time"

	"go.uber.org/zap"
)

// Standard fields: HTTP.

// RequestID field for the request ID.
func RequestID(v string) zap.Field { return zap.String("request_id", v) }

// Method field for the HTTP method.
func Method(v string) zap.Field { return zap.String("method", v) }

// Path field for the request path.
func Path(v string) zap.Field { return zap.String("path", v) }

// Status field for the HTTP status code.
func Status(v int) zap.Field { return zap.Int("status", v) }

// Bytes field for the response size.
func Bytes(v int) zap.Field { return zap.Int("bytes", v) }

// DurationMs field for the request duration in milliseconds.
func DurationMs(v int64) zap.Field { return zap.Int64("duration_ms", v) }

// Duration field for a duration value.
func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

// Standard fields: domain.

// UserID field for the acting user.
func UserID(v string) zap.Field { return zap.String("user_id", v) }

// PostID field for the post being acted on.
func PostID(v string) zap.Field { return zap.String("post_id", v) }

// CommentID field for the comment being acted on.
func CommentID(v string) zap.Field { return zap.String("comment_id", v) }

// Standard fields: system.

// Component field for the component/module name.
func Component(v string) zap.Field { return zap.String("component", v) }

// Op field for the current operation.
func Op(v string) zap.Field { return zap.String("op", v) }

// Layer field for the layer (controller, service, store).
func Layer(v string) zap.Field { return zap.String("layer", v) }

// Err field for an error.
func Err(err error) zap.Field { return zap.Error(err) }

// Any generic field.
func Any(key string, v any) zap.Field { return zap.Any(key, v) }

// String generic field.
func String(key, v string) zap.Field { return zap.String(key, v) }

// Int generic field.
func Int(key string, v int) zap.Field { return zap.Int(key, v) }
