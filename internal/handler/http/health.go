package http

import (
	"net/http"
	"time"

	"usher-web/internal/handler/http/respond"
	"usher-web/internal/repository"
)

// HealthHandler reports process liveness and the active content backend.
type HealthHandler struct {
	mode    repository.Mode
	started time.Time
}

// NewHealthHandler creates a health handler for the given content mode.
func NewHealthHandler(mode repository.Mode) *HealthHandler {
	return &HealthHandler{mode: mode, started: time.Now()}
}

// healthResponse is the JSON body returned by the health endpoint.
type healthResponse struct {
	Status        string `json:"status"`
	ContentSource string `json:"content_source"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Timestamp     string `json:"timestamp"`
}

// ServeHTTP handles GET /healthz.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		ContentSource: string(h.mode),
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}
