// Package health contains the health check controller.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Gulcan00/blog-api/internal/cache"
	"github.com/Gulcan00/blog-api/internal/observability/logger"
	"github.com/Gulcan00/blog-api/internal/store"
)

// Controller handles the liveness and readiness endpoints.
type Controller struct {
	store store.Store
	cache cache.Client
}

// NewController builds the health controller.
func NewController(st store.Store, ca cache.Client) *Controller {
	return &Controller{store: st, cache: ca}
}

type componentStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readyResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Healthz handles GET /healthz. Always 200 while the process serves.
func (c *Controller) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Readyz handles GET /readyz. Pings the store and cache with a short
// deadline; any failure answers 503.
func (c *Controller) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	log := logger.From(r.Context()).With(logger.Layer("controller"), logger.Op("Health.Readyz"))

	resp := readyResponse{
		Status:     "ready",
		Components: make(map[string]componentStatus),
	}

	if c.store != nil {
		if err := c.store.Ping(ctx); err != nil {
			log.Warn("store ping failed", logger.Err(err))
			resp.Status = "unavailable"
			resp.Components["store"] = componentStatus{Status: "down", Error: err.Error()}
		} else {
			resp.Components["store"] = componentStatus{Status: "up"}
		}
	}

	if c.cache != nil {
		if err := c.cache.Ping(ctx); err != nil {
			log.Warn("cache ping failed", logger.Err(err))
			if resp.Status == "ready" {
				resp.Status = "degraded"
			}
			resp.Components["cache"] = componentStatus{Status: "down", Error: err.Error()}
		} else {
			resp.Components["cache"] = componentStatus{Status: "up"}
		}
	}

	status := http.StatusOK
	if resp.Status == "unavailable" {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
