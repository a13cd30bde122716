package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/yndnr/keywire-go/internal/infra/buildinfo"
	"github.com/yndnr/keywire-go/internal/store"
	"github.com/yndnr/keywire-go/internal/telemetry/logger"
)

// handler serves the admin endpoints.
type handler struct {
	store  *store.Store
	conns  ConnCounter
	logger logger.Logger
	start  time.Time
}

func newHandler(cfg *RouterConfig) *handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	start := cfg.StartTime
	if start.IsZero() {
		start = time.Now()
	}

	return &handler{
		store:  cfg.Store,
		conns:  cfg.Conns,
		logger: log,
		start:  start,
	}
}

// statsResponse is the GET /stats payload.
type statsResponse struct {
	Status        string         `json:"status"`
	Build         buildinfo.Info `json:"build"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	Keys          int            `json:"keys"`
	Shards        int            `json:"shards"`
	Connections   int            `json:"connections"`
	Time          string         `json:"time"`
}

// handleHealth handles GET /health.
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleStats handles GET /stats.
func (h *handler) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := statsResponse{
		Status:        "running",
		Build:         buildinfo.Get(),
		UptimeSeconds: int64(time.Since(h.start).Seconds()),
		Time:          time.Now().UTC().Format(time.RFC3339),
	}
	if h.store != nil {
		resp.Keys = h.store.Len()
		resp.Shards = h.store.Shards()
	}
	if h.conns != nil {
		resp.Connections = h.conns.ConnCount()
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
