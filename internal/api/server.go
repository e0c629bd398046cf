// Package api provides the portal's HTTP server: the accounting façade
// (JSON endpoints consumed by the in-page study timer) and the portal pages
// themselves.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bimalism/portal/internal/app/accounting"
)

// Server is the portal HTTP server.
type Server struct {
	svc            *accounting.Service
	pages          *PageSet
	log            *slog.Logger
	metricsEnabled bool
}

// NewServer creates the portal server. pages may be nil to serve the API
// surface only (used by tests and headless deployments).
func NewServer(svc *accounting.Service, pages *PageSet, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{svc: svc, pages: pages, log: log}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Accounting façade. The study timer in the browser polls get_coins on
	// an interval and posts update_coins when the timer flushes.
	r.Route("/api", func(r chi.Router) {
		r.Use(corsMiddleware)
		r.Get("/get_coins", s.handleGetCoins)
		r.Get("/get_timer", s.handleGetTimer)
		r.Post("/update_coins", s.handleUpdateCoins)
		r.Get("/update_coins", s.handleCreditQuery)
		r.Get("/history", s.handleHistory)
	})

	// Portal pages and static assets
	if s.pages != nil {
		s.pages.Mount(r)
	}

	return r
}

// corsMiddleware allows the timer pages to call the API from any origin,
// matching the portal's original behavior.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
