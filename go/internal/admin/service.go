package admin

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// DefaultMaxBodyBytes bounds a request body. Base64 media is the large
// case; 10MB of text is roughly 7.5MB of image.
const DefaultMaxBodyBytes int64 = 10 << 20

// Service is the HTTP face of the admin App.
type Service struct {
	app          *App
	maxBodyBytes int64
}

func NewService(app *App, maxBodyBytes int64) *Service {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Service{app: app, maxBodyBytes: maxBodyBytes}
}

// RegisterRoutes mounts the endpoint on / and /api/admin.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.HandleAdmin)
	mux.HandleFunc("/api/admin", s.HandleAdmin)
}

// HandleAdmin serves one admin request.
func (s *Service) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "preflight": true})
		return
	case http.MethodPost:
	default:
		writeError(w, http.StatusMethodNotAllowed, "Use POST")
		return
	}

	req, err := ParseRequest(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		writeError(w, StatusCode(err), err.Error())
		return
	}

	result, err := s.app.Handle(r.Context(), req)
	if err != nil {
		status := StatusCode(err)
		if status >= http.StatusInternalServerError {
			log.Ctx(r.Context()).Error().Err(err).Str("action", string(req.Action)).Str("category", string(CategoryOf(err))).Msg("admin request failed")
		} else {
			log.Ctx(r.Context()).Warn().Str("action", string(req.Action)).Str("category", string(CategoryOf(err))).Msg(err.Error())
		}
		writeError(w, status, err.Error())
		return
	}

	body := make(map[string]any, len(result)+1)
	for k, v := range result {
		body[k] = v
	}
	body["ok"] = true
	writeJSON(w, http.StatusOK, body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"ok": false, "error": msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}
