// Package auth contains the controllers for the authentication
// endpoints.
package auth

import (
	"encoding/json"
	"net/http"

	svc "github.com/Gulcan00/blog-api/internal/http/services/auth"
	"github.com/Gulcan00/blog-api/internal/store"
)

const (
	maxBodySize     = 64 * 1024 // 64KB
	contentTypeJSON = "application/json; charset=utf-8"
)

// Controllers groups the auth endpoint controllers.
type Controllers struct {
	Register *RegisterController
	Login    *LoginController
	Me       *MeController
}

// NewControllers builds the auth controller aggregate.
func NewControllers(services svc.Services, users store.UserRepository) *Controllers {
	return &Controllers{
		Register: NewRegisterController(services.Register),
		Login:    NewLoginController(services.Login),
		Me:       NewMeController(users),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
