package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mcdev12/clubadmin/go/internal/admin"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func setupServer(cfg *Config, services *Services) *http.Server {
	mux := http.NewServeMux()

	// Setup CORS middleware
	c := admin.NewCORS(cfg.CORSOrigins)

	// Register the admin endpoint
	services.Admin.RegisterRoutes(mux)

	// Add health check endpoints
	setupHealthCheck(mux)
	mux.Handle("GET /health/ready", services.Readiness)

	// Wrap with request logging and CORS
	handler := c.Handler(admin.RequestLogger(mux))

	// Setup HTTP/2 server
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		// uploads carry the whole image in the body
		ReadTimeout:  60 * time.Second,
		WriteTimeout: cfg.RequestTimeout*2 + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})
}
