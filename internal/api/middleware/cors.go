package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the local frontend dev servers through. The toolkit is a
// single-user app, so the origin list stays permissive for LAN use.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
