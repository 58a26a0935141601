package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

// APIKeyAuthMiddleware validates the API key from the Authorization header
// (Bearer token) or the X-API-Key header.
func APIKeyAuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apiKey := os.Getenv("API_KEY")
		if apiKey == "" {
			logger.Error("API_KEY environment variable is not set")
			http.Error(w, "Server configuration error", http.StatusInternalServerError)
			return
		}

		providedKey := extractKey(r)
		if providedKey == "" {
			logger.Error("API key missing from request", zap.String("path", r.URL.Path))
			http.Error(w, "API key required. Provide it in Authorization header (Bearer <key>) or X-API-Key header", http.StatusUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
			logger.Error("Invalid API key provided", zap.String("path", r.URL.Path))
			http.Error(w, "Invalid API key", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

func extractKey(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		if len(parts) == 1 {
			return parts[0]
		}
		return ""
	}
	return r.Header.Get("X-API-Key")
}
