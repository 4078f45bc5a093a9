package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/clubadmin/go/internal/admin"
	"github.com/mcdev12/clubadmin/go/internal/backend/backendtest"
	"github.com/stretchr/testify/assert"
)

func newTestHandler(t *testing.T, origins []string) http.Handler {
	t.Helper()
	app := admin.NewApp(admin.Config{}, admin.NewGate("4321"), admin.NewNormalizer(admin.Defaults{}), backendtest.New(), nil, clockwork.NewFakeClock())
	services := &Services{
		Admin:     admin.NewService(app, 0),
		Readiness: &ReadinessChecker{dataBackend: BackendREST},
	}
	cfg := &Config{Port: "0", RequestTimeout: time.Second, CORSOrigins: origins}
	return setupServer(cfg, services).Handler
}

func postPing(handler http.Handler, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"pin":"4321","action":"ping"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", origin)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSetupServer_RestrictedOrigins(t *testing.T) {
	handler := newTestHandler(t, []string{"https://klub.rs"})

	rec := postPing(handler, "https://klub.rs")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://klub.rs", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = postPing(handler, "https://evil.example")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestSetupServer_AnyOrigin(t *testing.T) {
	handler := newTestHandler(t, []string{"*"})

	rec := postPing(handler, "https://anywhere.example")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get(admin.RequestIDHeader))
}

func TestSetupServer_Health(t *testing.T) {
	handler := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy":true`)
}
