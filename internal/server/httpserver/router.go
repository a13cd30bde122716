package httpserver

import (
	"net/http"
	"time"

	"github.com/yndnr/keywire-go/internal/store"
	"github.com/yndnr/keywire-go/internal/telemetry/logger"
	"github.com/yndnr/keywire-go/internal/telemetry/metric"
)

// ConnCounter reports live KV connections for /stats.
type ConnCounter interface {
	ConnCount() int
}

// RouterConfig holds the dependencies of the admin routes.
type RouterConfig struct {
	// Store backs the key count on /stats.
	Store *store.Store

	// Conns reports live connections; nil reads as zero.
	Conns ConnCounter

	// Metrics serves /metrics; nil disables the route.
	Metrics *metric.Metrics

	// Logger for request logging.
	Logger logger.Logger

	// StartTime anchors the /stats uptime. Zero means "now".
	StartTime time.Time
}

// NewRouter builds the admin mux with its middleware chains.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	h := newHandler(cfg)
	mux := http.NewServeMux()

	// Probes stay out of the request log.
	mux.Handle("GET /health", Chain(
		http.HandlerFunc(h.handleHealth),
		RequestID(), Recover(log),
	))

	mux.Handle("GET /stats", Chain(
		http.HandlerFunc(h.handleStats),
		RequestID(), Recover(log), RequestLog(log),
	))

	if cfg.Metrics != nil {
		// Scrapes are frequent; same treatment as probes.
		mux.Handle("GET /metrics", Chain(
			cfg.Metrics.Handler(),
			RequestID(), Recover(log),
		))
	}

	return mux
}
