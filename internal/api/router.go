package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds the settings NewRouter needs
type RouterConfig struct {
	RateLimitRPS int
}

// NewRouter builds the HTTP handler: versioned API routes, health probes and
// the Prometheus endpoint, wrapped in the standard middleware chain
func NewRouter(handler *IndicatorHandler, cfg RouterConfig) http.Handler {
	router := mux.NewRouter()

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/indicators", handler.ListIndicators).Methods("GET")
	v1.HandleFunc("/indicators/{name}", handler.GetIndicator).Methods("GET")
	v1.HandleFunc("/indicators/{name}", handler.Compute).Methods("POST")
	v1.HandleFunc("/compute", handler.ComputeBatch).Methods("POST")
	v1.HandleFunc("/volume-ratio", handler.VolumeRatio).Methods("POST")

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	router.HandleFunc("/live", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "alive"})
	})

	router.Handle("/metrics", promhttp.Handler())

	// Middleware runs inside the router so route templates are available
	// to LoggingMiddleware.
	router.Use(
		mux.MiddlewareFunc(RequestIDMiddleware()),
		mux.MiddlewareFunc(LoggingMiddleware()),
		mux.MiddlewareFunc(ErrorHandlingMiddleware()),
		mux.MiddlewareFunc(RateLimitMiddleware(cfg.RateLimitRPS)),
	)

	return CORSMiddleware()(router)
}
