package auth

// LoginRequest represents the request body for POST /api/auth/login
type LoginRequest struct {
	// Email is required and must be a valid email format.
	Email string `json:"email"`
	// Password is required.
	Password string `json:"password"`
}
