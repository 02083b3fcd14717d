package handlers

import (
	"net/http"
	"time"

	"github.com/verdane/esgpulse/pkg/database"
	"github.com/verdane/esgpulse/pkg/logger"
	"github.com/verdane/esgpulse/pkg/redis"
)

// HealthHandler reports service and dependency health
type HealthHandler struct {
	db      *database.DB
	redis   *redis.Client
	logger  *logger.Logger
	started time.Time
}

// NewHealthHandler creates the health handler. db and redis may be nil when
// the process runs without them.
func NewHealthHandler(db *database.DB, redisClient *redis.Client, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		redis:   redisClient,
		logger:  log,
		started: time.Now(),
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":    "ok",
		"uptime":    time.Since(h.started).Round(time.Second).String(),
		"timestamp": time.Now().UTC(),
	}

	healthy := true

	if h.db != nil {
		if _, err := h.db.HealthCheck(r.Context()); err != nil {
			status["database"] = "unhealthy"
			healthy = false
		} else {
			status["database"] = "ok"
		}
	}

	if h.redis != nil && h.redis.Enabled() {
		if err := h.redis.Ping(r.Context()); err != nil {
			status["redis"] = "unhealthy"
			healthy = false
		} else {
			status["redis"] = "ok"
		}
	}

	if !healthy {
		status["status"] = "degraded"
		respondJSON(w, http.StatusServiceUnavailable, status)
		return
	}
	respondJSON(w, http.StatusOK, status)
}
