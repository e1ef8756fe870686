// internal/common/http/router.go
package http

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sheetsmith/internal/common/logger"
)

type RouterOptions struct {
	Logger       logger.Logger
	MaxBodyBytes int64
	// MetricsPath mounts the prometheus handler when non-empty.
	MetricsPath string
	// Ready reports readiness; nil means always ready.
	Ready *atomic.Bool
}

// NewRouter returns a chi router with the common middleware stack and the
// /health, /ready and metrics routes. Rendering endpoints are mounted by the caller.
func NewRouter(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	r := chi.NewRouter()
	r.Use(RequestID(log))
	r.Use(AccessLog(log))
	r.Use(Recoverer(log))
	r.Use(BodyLimit(opts.MaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
		if opts.Ready != nil && !opts.Ready.Load() {
			WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "shutting down",
				"time":   time.Now().Format(time.RFC3339),
			})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	if opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, promhttp.Handler())
	}

	return r
}
