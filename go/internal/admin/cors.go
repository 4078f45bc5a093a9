package admin

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORS builds the CORS middleware for the admin endpoint. An empty
// origin list allows any origin. Disallowed origins get no
// Access-Control-* headers at all.
func NewCORS(allowedOrigins []string) *cors.Cors {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders:       []string{"Content-Type", RequestIDHeader},
		ExposedHeaders:       []string{RequestIDHeader},
		OptionsSuccessStatus: http.StatusOK,
	})
}
