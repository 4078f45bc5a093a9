package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeConnection bool

func (f fakeConnection) Connected() bool { return bool(f) }

func serveReady(t *testing.T, h *ReadinessChecker) (int, HealthStatus) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	return rec.Code, status
}

func TestReadiness_RESTOnly(t *testing.T) {
	code, status := serveReady(t, &ReadinessChecker{dataBackend: BackendREST})
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, status.Healthy)
	assert.Nil(t, status.DatabaseConnected)
	assert.Nil(t, status.NATSConnected)
}

func TestReadiness_DatabaseDown(t *testing.T) {
	code, status := serveReady(t, &ReadinessChecker{
		dataBackend: BackendPostgres,
		db:          fakePinger{err: errors.New("connection refused")},
	})
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, status.Healthy)
	require.NotNil(t, status.DatabaseConnected)
	assert.False(t, *status.DatabaseConnected)
	assert.Equal(t, []string{"database ping failed: connection refused"}, status.Errors)
}

func TestReadiness_NATSDownStaysReady(t *testing.T) {
	code, status := serveReady(t, &ReadinessChecker{
		dataBackend: BackendPostgres,
		db:          fakePinger{},
		nats:        fakeConnection(false),
	})
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, status.Healthy)
	assert.True(t, *status.DatabaseConnected)
	assert.False(t, *status.NATSConnected)
	assert.Equal(t, []string{"NATS disconnected"}, status.Errors)
}
