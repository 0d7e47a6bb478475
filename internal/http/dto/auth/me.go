package auth

// MeResponse is the response for GET /api/auth/me.
type MeResponse struct {
	User UserPayload `json:"user"`
}
