// Package revalidate implements the webhook the CMS calls after an
// editor publishes or updates content. A valid request drops the cache
// tags for the changed content so the next read fetches fresh data.
package revalidate

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"usher-web/internal/handler/http/respond"
	"usher-web/internal/infra/cache"
	"usher-web/internal/observability/logging"
	"usher-web/internal/observability/metrics"

	"golang.org/x/time/rate"
)

// TokenHeader carries the shared secret that authenticates the CMS.
const TokenHeader = "X-Revalidate-Token"

// Invalidator drops cache entries by tag. *cache.TagStore implements it.
type Invalidator interface {
	InvalidateTags(tags []string) int
}

// Handler handles POST /api/revalidate.
type Handler struct {
	token   string
	cache   Invalidator
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewHandler creates a revalidation handler. The token must be non-empty;
// the caller decides whether to register the route at all when no token
// is configured. The limiter caps the webhook at a steady 5 req/s with
// small bursts, which is far above any real editorial cadence.
func NewHandler(token string, invalidator Invalidator, logger *slog.Logger) *Handler {
	return &Handler{
		token:   token,
		cache:   invalidator,
		limiter: rate.NewLimiter(rate.Limit(5), 10),
		logger:  logger,
	}
}

// Register registers the revalidation route on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("POST /api/revalidate", h)
}

// revalidateRequest is the JSON body the CMS sends.
type revalidateRequest struct {
	Type string `json:"type"`
	Slug string `json:"slug"`
}

// revalidateResponse acknowledges the invalidation, echoing the tags
// that were dropped.
type revalidateResponse struct {
	Revalidated bool     `json:"revalidated"`
	Tags        []string `json:"tags"`
	Timestamp   string   `json:"timestamp"`
}

// ServeHTTP handles POST /api/revalidate.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.logger)

	if !h.limiter.Allow() {
		respond.Error(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded"))
		return
	}

	got := r.Header.Get(TokenHeader)
	if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) != 1 {
		logger.Warn("revalidation request with missing or invalid token",
			slog.String("remote_addr", r.RemoteAddr))
		respond.Error(w, http.StatusUnauthorized, fmt.Errorf("invalid token"))
		return
	}

	var req revalidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	tags, ok := cache.RevalidationTags(req.Type, req.Slug)
	if !ok {
		respond.Error(w, http.StatusBadRequest,
			fmt.Errorf("invalid type %q: must be article, page or document", req.Type))
		return
	}

	removed := 0
	if h.cache != nil {
		removed = h.cache.InvalidateTags(tags)
	}
	metrics.RecordCacheInvalidations(removed)

	logger.Info("cache tags revalidated",
		slog.String("type", req.Type),
		slog.String("slug", req.Slug),
		slog.Any("tags", tags),
		slog.Int("entries_removed", removed))

	respond.JSON(w, http.StatusOK, revalidateResponse{
		Revalidated: true,
		Tags:        tags,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}
