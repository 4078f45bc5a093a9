package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type HealthStatus struct {
	Healthy           bool     `json:"healthy"`
	DataBackend       string   `json:"data_backend"`
	DatabaseConnected *bool    `json:"database_connected,omitempty"`
	NATSConnected     *bool    `json:"nats_connected,omitempty"`
	Errors            []string `json:"errors"`
}

type pinger interface {
	Ping(ctx context.Context) error
}

type connectionState interface {
	Connected() bool
}

// ReadinessChecker reports on the dependencies the process holds open.
// The REST backend is stateless, so with no database and no NATS the
// process is always ready.
type ReadinessChecker struct {
	dataBackend string
	db          pinger
	nats        connectionState
}

func (h *ReadinessChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Healthy:     true,
		DataBackend: h.dataBackend,
		Errors:      []string{},
	}

	// Check database connection
	if h.db != nil {
		ok := true
		if err := h.db.Ping(ctx); err != nil {
			ok = false
			status.Healthy = false
			status.Errors = append(status.Errors, fmt.Sprintf("database ping failed: %v", err))
		}
		status.DatabaseConnected = &ok
	}

	// Check NATS connection. Events are best effort, so a lost
	// connection is reported but does not make the endpoint unready.
	if h.nats != nil {
		ok := h.nats.Connected()
		if !ok {
			status.Errors = append(status.Errors, "NATS disconnected")
		}
		status.NATSConnected = &ok
	}

	return status
}

func (h *ReadinessChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := h.Check(ctx)

	w.Header().Set("Content-Type", "application/json")
	if !status.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(status); err != nil {
		log.Error().Err(err).Msg("failed to write readiness response")
	}
}
