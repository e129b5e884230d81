package middleware

import (
	"github.com/go-chi/cors"
)

// NewCORS builds the CORS policy for browser clients with the given allowed
// origins. The API surface uses only GET, POST and DELETE; X-API-Key unlocks
// the developer routes.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
			"X-API-Key",
		},
		ExposedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
