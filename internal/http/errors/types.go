package errors

import (
	"fmt"
	"net/http"
)

// AppError is the standard application error. Code and Cause are for
// server-side logs only; the client sees Message (and HTTP status).
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Cause      error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the original cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause returns a COPY carrying the original error, so the base
// sentinels are never mutated.
func (e *AppError) WithCause(err error) *AppError {
	out := *e
	out.Cause = err
	return &out
}

// WithMessage returns a COPY with a different client-facing message.
func (e *AppError) WithMessage(msg string) *AppError {
	out := *e
	out.Message = msg
	return &out
}

// FromError converts any error into an AppError. Non-AppErrors become a
// generic internal error preserving the cause for logs.
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrInternal.WithCause(err)
}

// =================================================================================
// PREDEFINED ERRORS
// =================================================================================

var (
	// 400
	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		HTTPStatus: http.StatusBadRequest,
	}
	ErrInvalidJSON = &AppError{
		Code:       "INVALID_JSON",
		Message:    "Request body is not valid JSON",
		HTTPStatus: http.StatusBadRequest,
	}

	// 401: the two authentication messages the API can ever produce.
	// Missing token is distinguishable from a rejected one; nothing else is.
	ErrAuthRequired = &AppError{
		Code:       "AUTHENTICATION_REQUIRED",
		Message:    "Authentication required",
		HTTPStatus: http.StatusUnauthorized,
	}
	ErrInvalidCredentials = &AppError{
		Code:       "INVALID_CREDENTIALS",
		Message:    "Invalid credentials",
		HTTPStatus: http.StatusUnauthorized,
	}

	// 403
	ErrForbidden = &AppError{
		Code:       "FORBIDDEN",
		Message:    "Insufficient permissions",
		HTTPStatus: http.StatusForbidden,
	}

	// 404
	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "Resource not found",
		HTTPStatus: http.StatusNotFound,
	}
	ErrUserNotFound = &AppError{
		Code:       "USER_NOT_FOUND",
		Message:    "User not found",
		HTTPStatus: http.StatusNotFound,
	}
	ErrPostNotFound = &AppError{
		Code:       "POST_NOT_FOUND",
		Message:    "Post not found",
		HTTPStatus: http.StatusNotFound,
	}
	ErrCommentNotFound = &AppError{
		Code:       "COMMENT_NOT_FOUND",
		Message:    "Comment not found",
		HTTPStatus: http.StatusNotFound,
	}

	// 405
	ErrMethodNotAllowed = &AppError{
		Code:       "METHOD_NOT_ALLOWED",
		Message:    "Method not allowed",
		HTTPStatus: http.StatusMethodNotAllowed,
	}

	// 409
	ErrUserExists = &AppError{
		Code:       "USER_EXISTS",
		Message:    "User with this email or username already exists",
		HTTPStatus: http.StatusConflict,
	}

	// 429
	ErrRateLimited = &AppError{
		Code:       "RATE_LIMITED",
		Message:    "Too many requests, try again later",
		HTTPStatus: http.StatusTooManyRequests,
	}

	// 500
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
	}
)
